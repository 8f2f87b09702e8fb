package luamodule

// TopicKey is the state field that carries the topic identifier.
const TopicKey = "topicId"

// State is the state of a Lua module: the table returned by its factory,
// converted to plain Go data.
type State map[string]any

// TopicID implements descriptor.State.
func (s State) TopicID() string {
	v, _ := s[TopicKey].(string)
	return v
}

// Clone returns a shallow copy of s.
func (s State) Clone() State {
	if s == nil {
		return nil
	}
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
