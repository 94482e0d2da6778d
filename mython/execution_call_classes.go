package mython

import "fmt"

// NewInstance evaluates ClassExpr to a Class value, allocates a fresh
// instance, and runs __init__ against it with the evaluated Args when the
// class (or an ancestor) defines one with matching arity. A class with no
// matching __init__ simply yields a zero-valued instance — Mython has no
// mandatory constructor.
type NewInstance struct {
	Pos       Position
	ClassExpr Node
	Args      []Node
}

func (n *NewInstance) Execute(scope *Closure, ctx *Context) (Value, error) {
	classVal, err := n.ClassExpr.Execute(scope, ctx)
	if err != nil {
		return Value{}, err
	}
	if classVal.Kind() != KindClass {
		return Value{}, &RuntimeError{Pos: n.Pos, Message: "expression does not name a class"}
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := a.Execute(scope, ctx)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	instance := NewClassInstance(classVal.Class())
	if m, ok := classVal.Class().FindMethod("__init__", len(args)); ok {
		leave, err := ctx.EnterCall()
		if err != nil {
			return Value{}, err
		}
		defer leave()
		if _, err := instance.Call(m, args, ctx); err != nil {
			return Value{}, err
		}
	}
	return NewInstanceValue(instance), nil
}

// MethodCall is the permissive call form used at statement/expression
// position: `object.method(args)`. A receiver that is not an instance, or an
// instance whose class has no method by that exact (name, arity), makes the
// whole expression evaluate to None rather than raising. Operator dunder
// dispatch (__eq__, __lt__, __add__) raises when the method is missing;
// __init__ is skipped and __str__ falls back to Value.String when absent.
type MethodCall struct {
	Object Node
	Method string
	Args   []Node
}

func (n *MethodCall) Execute(scope *Closure, ctx *Context) (Value, error) {
	objVal, err := n.Object.Execute(scope, ctx)
	if err != nil {
		return Value{}, err
	}
	if objVal.Kind() != KindInstance {
		return None(), nil
	}

	m, ok := objVal.Instance().Class.FindMethod(n.Method, len(n.Args))
	if !ok {
		return None(), nil
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := a.Execute(scope, ctx)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	leave, err := ctx.EnterCall()
	if err != nil {
		return Value{}, err
	}
	defer leave()
	return objVal.Instance().Call(m, args, ctx)
}

// ClassRef evaluates a bare class name to its Class value — used as the
// callee expression of NewInstance and wherever a class is referenced as a
// first-class value rather than instantiated.
type ClassRef struct {
	Pos  Position
	Name string
}

func (n *ClassRef) Execute(scope *Closure, ctx *Context) (Value, error) {
	v, ok := scope.Get(n.Name)
	if !ok {
		return Value{}, &RuntimeError{Pos: n.Pos, Message: fmt.Sprintf("name '%s' is not defined", n.Name)}
	}
	if v.Kind() != KindClass {
		return Value{}, &RuntimeError{Pos: n.Pos, Message: fmt.Sprintf("'%s' is not a class", n.Name)}
	}
	return v, nil
}
