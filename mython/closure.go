package mython

// Closure is Mython's flat variable scope: a plain name-to-value map with no
// parent pointer. Mython has no lexical scope walking — assignment always
// binds or overwrites a name in the closure it executes against, never in an
// enclosing one, so a single map is the whole story.
type Closure struct {
	vars map[string]Value
}

// NewClosure returns an empty closure.
func NewClosure() *Closure {
	return &Closure{vars: make(map[string]Value)}
}

// Get looks up name in the closure. The ok result is false when name has
// never been assigned.
func (c *Closure) Get(name string) (Value, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Set binds name to v in this closure, creating or overwriting the
// binding.
func (c *Closure) Set(name string, v Value) {
	c.vars[name] = v
}
