package mython

import "fmt"

// ValueKind discriminates the variant a Value currently holds.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindNumber
	KindString
	KindBool
	KindClass
	KindInstance
)

// Value is the tagged-union runtime representation of every Mython object:
// numbers, strings, booleans, none, classes, and class instances. Instances
// and classes are reference types by construction (cls/inst hold pointers), so
// copying a Value never copies the object it points at — this is how Mython's
// "variables are pointers" semantics falls out of plain Go assignment.
type Value struct {
	kind ValueKind
	num  int32
	str  string
	b    bool
	cls  *Class
	inst *ClassInstance
}

// None is the singleton-shaped none value. Mython has only one none; every
// None() call returns an equal-but-distinct Value, which is fine since None
// carries no identity of its own.
func None() Value { return Value{kind: KindNone} }

func NewNumber(n int32) Value { return Value{kind: KindNumber, num: n} }

func NewString(s string) Value { return Value{kind: KindString, str: s} }

func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

func NewClassValue(c *Class) Value { return Value{kind: KindClass, cls: c} }

func NewInstanceValue(i *ClassInstance) Value { return Value{kind: KindInstance, inst: i} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNone() bool { return v.kind == KindNone }

func (v Value) Number() int32 { return v.num }

func (v Value) Str() string { return v.str }

func (v Value) Bool() bool { return v.b }

func (v Value) Class() *Class { return v.cls }

func (v Value) Instance() *ClassInstance { return v.inst }

// Truthy implements Mython's truthiness rule: None and the boolean False are
// falsy, the number 0 is falsy, the empty string is falsy, everything else
// (including every class instance) is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNone:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.str != ""
	default:
		return true
	}
}

// String renders v the way Mython's print/str built-ins do: numbers in
// decimal, booleans as True/False, None as None, and instances via their
// __str__ method when present (handled by the evaluator, which calls
// stringify rather than this method for instances — see ast_statements.go).
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindNumber:
		return fmt.Sprintf("%d", v.num)
	case KindString:
		return v.str
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindClass:
		return "Class(" + v.cls.Name + ")"
	case KindInstance:
		return "<" + v.inst.Class.Name + " instance>"
	default:
		return "None"
	}
}

// Equal implements Mython's equality rule. None equals only None (and that
// comparison is true, unlike Less below). Numbers/strings/booleans compare
// structurally. A ClassInstance lhs compares via its __eq__/1 method.
// Anything else — mismatched kinds, or an instance lhs with no __eq__ — has
// no equality rule and is a runtime error.
func Equal(a, b Value, ctx *Context) (bool, error) {
	if a.kind == KindNone || b.kind == KindNone {
		return a.kind == KindNone && b.kind == KindNone, nil
	}
	if a.kind != b.kind {
		return false, &RuntimeError{Message: "Cannot compare objects"}
	}
	switch a.kind {
	case KindNumber:
		return a.num == b.num, nil
	case KindString:
		return a.str == b.str, nil
	case KindBool:
		return a.b == b.b, nil
	case KindInstance:
		m, ok := a.inst.Class.FindMethod("__eq__", 1)
		if !ok {
			return false, &RuntimeError{Message: "Cannot compare objects"}
		}
		result, err := a.inst.Call(m, []Value{b}, ctx)
		if err != nil {
			return false, err
		}
		return result.Truthy(), nil
	default:
		return false, &RuntimeError{Message: "Cannot compare objects"}
	}
}

// Less implements Mython's ordering rule. Unlike Equal, comparing None to
// anything (including None) is a runtime error: ordering is undefined for
// none. Numbers/strings/booleans order the natural way; instances order via
// __lt__ when defined, and raise otherwise.
func Less(a, b Value, ctx *Context) (bool, error) {
	if a.kind == KindNone || b.kind == KindNone {
		return false, &RuntimeError{Message: "cannot compare None with '<'"}
	}
	if a.kind != b.kind {
		return false, &RuntimeError{Message: "cannot compare values of different types"}
	}
	switch a.kind {
	case KindNumber:
		return a.num < b.num, nil
	case KindString:
		return a.str < b.str, nil
	case KindBool:
		return !a.b && b.b, nil
	case KindInstance:
		m, ok := a.inst.Class.FindMethod("__lt__", 1)
		if !ok {
			return false, &RuntimeError{Message: fmt.Sprintf("class %s has no __lt__ method", a.inst.Class.Name)}
		}
		result, err := a.inst.Call(m, []Value{b}, ctx)
		if err != nil {
			return false, err
		}
		return result.Truthy(), nil
	default:
		return false, &RuntimeError{Message: "value is not orderable"}
	}
}
