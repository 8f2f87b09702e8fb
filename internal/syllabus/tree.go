package syllabus

import "sync"

// Topic is a single topic node of the tree.
type Topic struct {
	Key       string
	Label     string
	Strand    Strand
	Subtopics []string
}

// StrandNode holds a strand's label and its topics in declaration order.
type StrandNode struct {
	Strand Strand
	Label  string
	Topics []*Topic
}

// Tree is the static syllabus hierarchy used for labels and topic lookup.
type Tree struct {
	mu      sync.RWMutex
	strands map[Strand]*StrandNode
	topics  map[string]*Topic
}

// NewTree creates a tree holding every strand with its default label and no
// topics.
func NewTree() *Tree {
	t := &Tree{
		strands: make(map[Strand]*StrandNode, len(strands)),
		topics:  make(map[string]*Topic),
	}
	for _, s := range strands {
		t.strands[s] = &StrandNode{Strand: s, Label: s.DefaultLabel()}
	}
	return t
}

// SetStrandLabel overrides the display label of a strand. Unknown strands
// are ignored.
func (t *Tree) SetStrandLabel(s Strand, label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if node, ok := t.strands[s]; ok && label != "" {
		node.Label = label
	}
}

// AddTopic appends a topic to a strand. A topic key already present is
// relabelled in place rather than duplicated.
func (t *Tree) AddTopic(s Strand, topic *Topic) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	node, ok := t.strands[s]
	if !ok {
		return false
	}
	topic.Strand = s
	if topic.Label == "" {
		topic.Label = topic.Key
	}
	if existing, ok := t.topics[topic.Key]; ok && existing.Strand == s {
		existing.Label = topic.Label
		existing.Subtopics = topic.Subtopics
		return true
	}
	node.Topics = append(node.Topics, topic)
	t.topics[topic.Key] = topic
	return true
}

// Strands returns the strand nodes in syllabus order.
func (t *Tree) Strands() []StrandNode {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]StrandNode, 0, len(strands))
	for _, s := range strands {
		node := t.strands[s]
		out = append(out, StrandNode{
			Strand: node.Strand,
			Label:  node.Label,
			Topics: append([]*Topic(nil), node.Topics...),
		})
	}
	return out
}

// Topics returns the topics of a strand in declaration order.
func (t *Tree) Topics(s Strand) []Topic {
	t.mu.RLock()
	defer t.mu.RUnlock()

	node, ok := t.strands[s]
	if !ok {
		return nil
	}
	out := make([]Topic, 0, len(node.Topics))
	for _, topic := range node.Topics {
		out = append(out, *topic)
	}
	return out
}

// StrandLabel returns the display label for a strand.
func (t *Tree) StrandLabel(s Strand) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if node, ok := t.strands[s]; ok {
		return node.Label
	}
	return string(s)
}

// TopicLabel returns the display label for a topic key, or the key itself
// when the topic is not declared.
func (t *Tree) TopicLabel(topic string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if node, ok := t.topics[topic]; ok {
		return node.Label
	}
	return topic
}

// HasTopic reports whether the topic is declared under the given strand.
func (t *Tree) HasTopic(s Strand, topic string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	node, ok := t.topics[topic]
	return ok && node.Strand == s
}

// TopicCount returns the number of declared topics across all strands.
func (t *Tree) TopicCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.topics)
}
