package mython

import "errors"

// Compound runs a sequence of statements in order and always yields None —
// the statement-list building block used for method bodies, if/else
// branches, and top-level programs alike. A return statement inside it
// still escapes as a returnSignal; only ordinary fall-through yields None.
type Compound struct {
	Statements []Node
}

func (n *Compound) Execute(scope *Closure, ctx *Context) (Value, error) {
	for _, stmt := range n.Statements {
		if err := ctx.Step(); err != nil {
			return Value{}, err
		}
		if _, err := stmt.Execute(scope, ctx); err != nil {
			return Value{}, err
		}
	}
	return None(), nil
}

// Return evaluates its expression and signals the enclosing MethodBody to
// stop execution and hand that value back to the caller.
type Return struct {
	Value Node
}

func (n *Return) Execute(scope *Closure, ctx *Context) (Value, error) {
	v, err := n.Value.Execute(scope, ctx)
	if err != nil {
		return Value{}, err
	}
	return Value{}, &returnSignal{value: v}
}

// MethodBody wraps a method's statement list and is the sole place that
// catches a returnSignal: a bare fall-through (no return statement reached)
// yields None, matching a method whose body runs out without returning.
type MethodBody struct {
	Body Node
}

func (n *MethodBody) Execute(scope *Closure, ctx *Context) (Value, error) {
	v, err := n.Body.Execute(scope, ctx)
	if err != nil {
		var ret *returnSignal
		if errors.As(err, &ret) {
			return ret.value, nil
		}
		return Value{}, err
	}
	return v, nil
}

// IfElse evaluates Condition and runs Then when it is truthy, Else
// otherwise. Else may be nil when the source had no else-clause, in which
// case a falsy condition yields None.
type IfElse struct {
	Condition Node
	Then      Node
	Else      Node
}

func (n *IfElse) Execute(scope *Closure, ctx *Context) (Value, error) {
	cond, err := n.Condition.Execute(scope, ctx)
	if err != nil {
		return Value{}, err
	}
	if cond.Truthy() {
		return n.Then.Execute(scope, ctx)
	}
	if n.Else != nil {
		return n.Else.Execute(scope, ctx)
	}
	return None(), nil
}

// Print evaluates each argument and writes it in order, interleaving
// evaluation and output rather than evaluating all arguments up front — a
// side effect in argument two is observable even if argument three's
// evaluation fails.
type Print struct {
	Args []Node
}

func (n *Print) Execute(scope *Closure, ctx *Context) (Value, error) {
	for i, arg := range n.Args {
		v, err := arg.Execute(scope, ctx)
		if err != nil {
			return Value{}, err
		}
		s, err := stringify(v, ctx)
		if err != nil {
			return Value{}, err
		}
		if i > 0 {
			ctx.Write(" ")
		}
		ctx.Write(s)
	}
	ctx.Write("\n")
	return None(), nil
}

// Stringify is the `str(expr)` builtin call: evaluates expr and renders it
// through __str__ when present, falling back to Value.String otherwise.
type Stringify struct {
	Arg Node
}

func (n *Stringify) Execute(scope *Closure, ctx *Context) (Value, error) {
	v, err := n.Arg.Execute(scope, ctx)
	if err != nil {
		return Value{}, err
	}
	s, err := stringify(v, ctx)
	if err != nil {
		return Value{}, err
	}
	return NewString(s), nil
}

// stringify renders v using its class's __str__ method when v is an
// instance that defines one, and Value.String otherwise.
func stringify(v Value, ctx *Context) (string, error) {
	if v.Kind() == KindInstance {
		if m, ok := v.Instance().Class.FindMethod("__str__", 0); ok {
			result, err := v.Instance().Call(m, nil, ctx)
			if err != nil {
				return "", err
			}
			return result.String(), nil
		}
	}
	return v.String(), nil
}

// ClassDefinition registers a Class value under Name in scope — classes are
// first-class values in Mython, reachable as ordinary variables.
type ClassDefinition struct {
	Name  string
	Class *Class
}

func (n *ClassDefinition) Execute(scope *Closure, ctx *Context) (Value, error) {
	v := NewClassValue(n.Class)
	scope.Set(n.Name, v)
	return v, nil
}
