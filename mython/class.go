package mython

// Method is a single overload of a class member: a name, its declared
// parameter names (arity is len(Params)), and the statement that forms its
// body.
type Method struct {
	Name   string
	Params []string
	Body   Node
}

// Class is a Mython class: a name, an ordered list of methods (ordered, not
// a map, because two methods can share a name with different arities — an
// overload set, not a single slot), and an optional parent for
// single-inheritance lookup.
type Class struct {
	Name    string
	Methods []Method
	Parent  *Class
}

// FindMethod looks up a method by exact (name, arity) match, walking the
// Parent chain when the receiving class itself has no match. This is the
// only lookup rule Mython has: no arity coercion, no default arguments.
func (c *Class) FindMethod(name string, arity int) (Method, bool) {
	for cur := c; cur != nil; cur = cur.Parent {
		for _, m := range cur.Methods {
			if m.Name == name && len(m.Params) == arity {
				return m, true
			}
		}
	}
	return Method{}, false
}

// IsA reports whether c is other or descends from it, walking the Parent
// chain.
func (c *Class) IsA(other *Class) bool {
	for cur := c; cur != nil; cur = cur.Parent {
		if cur == other {
			return true
		}
	}
	return false
}

// ClassInstance is a live Mython object: a pointer to its class plus a flat
// field closure. Because Value stores *ClassInstance, every Value copy of an
// instance shares the same Fields closure — assigning to a field through one
// reference is visible through every other reference to the same instance.
type ClassInstance struct {
	Class  *Class
	Fields *Closure
}

// NewClassInstance allocates a zero-valued instance of c with an empty field
// closure.
func NewClassInstance(c *Class) *ClassInstance {
	return &ClassInstance{Class: c, Fields: NewClosure()}
}

// Call dispatches m against this instance: it builds a fresh closure seeded
// with "self" plus the bound arguments, and executes the method body in it.
// This is the only entry point that runs a method body; MethodCall building
// on top of it is what implements the permissive-vs-strict split described
// in the evaluator (see execution_call_classes.go).
func (ci *ClassInstance) Call(m Method, args []Value, ctx *Context) (Value, error) {
	scope := NewClosure()
	scope.Set("self", NewInstanceValue(ci))
	for i, p := range m.Params {
		scope.Set(p, args[i])
	}
	return m.Body.Execute(scope, ctx)
}
