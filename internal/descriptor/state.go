package descriptor

// State is the mutable working data of one module instance. It is opaque to
// the catalog and the state cache; the only thing they rely on is that a
// state knows which module topic it belongs to.
type State interface {
	TopicID() string
}

// InitialStateFunc produces a fresh state. It must not have side effects
// visible to the catalog because it is also called once as a registration
// smoke test.
type InitialStateFunc func() State

// ValidateFunc returns human-readable problems with a state. An empty
// result means the state is valid.
type ValidateFunc func(State) []string

// Renderer is the module's opaque rendering entry point. The rendering layer
// calls it with the current state and a callback that commits state changes.
type Renderer interface {
	Render(state State, onChange func(State)) (any, error)
}

// RenderFunc adapts an ordinary function to the Renderer interface.
type RenderFunc func(state State, onChange func(State)) (any, error)

// Render calls f.
func (f RenderFunc) Render(state State, onChange func(State)) (any, error) {
	return f(state, onChange)
}
