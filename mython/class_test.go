package mython

import "testing"

func TestFindMethodWalksParentChain(t *testing.T) {
	parent := &Class{Name: "Base", Methods: []Method{{Name: "greet", Params: nil}}}
	child := &Class{Name: "Derived", Parent: parent}

	m, ok := child.FindMethod("greet", 0)
	if !ok {
		t.Fatalf("expected to find greet on the parent class")
	}
	if m.Name != "greet" {
		t.Fatalf("found wrong method: %+v", m)
	}
}

func TestFindMethodRequiresExactArity(t *testing.T) {
	cls := &Class{Name: "C", Methods: []Method{{Name: "f", Params: []string{"x"}}}}

	if _, ok := cls.FindMethod("f", 0); ok {
		t.Fatalf("should not match arity 0 against a one-parameter method")
	}
	if _, ok := cls.FindMethod("f", 2); ok {
		t.Fatalf("should not match arity 2 against a one-parameter method")
	}
	if _, ok := cls.FindMethod("f", 1); !ok {
		t.Fatalf("should match the exact arity")
	}
}

func TestIsAWalksAncestry(t *testing.T) {
	base := &Class{Name: "Base"}
	mid := &Class{Name: "Mid", Parent: base}
	leaf := &Class{Name: "Leaf", Parent: mid}

	if !leaf.IsA(base) {
		t.Fatalf("expected Leaf to be a Base")
	}
	other := &Class{Name: "Other"}
	if leaf.IsA(other) {
		t.Fatalf("Leaf should not be an Other")
	}
}

func TestClosureHasNoParentScope(t *testing.T) {
	outer := NewClosure()
	outer.Set("x", NewNumber(1))

	inner := NewClosure()
	if _, ok := inner.Get("x"); ok {
		t.Fatalf("a fresh closure must not see bindings from an unrelated closure")
	}
}
