package syllabus

import "github.com/hashicorp/hcl/v2"

// StrandBlock represents a `strand "<key>" { ... }` block.
type StrandBlock struct {
	Key    string        `hcl:"key,label"`
	Label  string        `hcl:"label,optional"`
	Topics []*TopicBlock `hcl:"topic,block"`
}

// TopicBlock represents a `topic "<key>" { ... }` block nested in a strand.
type TopicBlock struct {
	Key       string   `hcl:"key,label"`
	Label     string   `hcl:"label,optional"`
	Subtopics []string `hcl:"subtopics,optional"`
}

// File is the top-level structure of a standalone syllabus file. Any other
// content is left in Remain for the caller.
type File struct {
	Strands []*StrandBlock `hcl:"strand,block"`
	Remain  hcl.Body       `hcl:",remain"`
}
