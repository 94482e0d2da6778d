package mython

import (
	"bytes"
	"strings"
	"testing"
)

func runSource(t *testing.T, src string) string {
	t.Helper()
	engine := NewEngine(Config{})
	var buf bytes.Buffer
	if _, err := engine.Run(src, &buf); err != nil {
		t.Fatalf("run failed: %v\nsource:\n%s", err, src)
	}
	return buf.String()
}

func TestPrintNumbersAndArithmetic(t *testing.T) {
	out := runSource(t, "print 2 + 3 * 4\n")
	if strings.TrimSpace(out) != "14" {
		t.Fatalf("got %q", out)
	}
}

func TestVariablesArePointers(t *testing.T) {
	src := `class Counter:
  def __init__():
    self.value = 0
  def bump():
    self.value = self.value + 1

c = Counter()
d = c
d.bump()
print c.value
`
	out := runSource(t, src)
	if strings.TrimSpace(out) != "1" {
		t.Fatalf("expected shared mutation through an alias, got %q", out)
	}
}

// TestAliasIncrementedDirectlyAndIndirectly is the canonical "variables are
// pointers" scenario: a counter reached through an alias is bumped once
// directly, and once indirectly through another method (do_add) that takes
// the counter as an ordinary argument. Both calls must mutate the same
// underlying instance.
func TestAliasIncrementedDirectlyAndIndirectly(t *testing.T) {
	src := `class Counter:
  def __init__():
    self.value = 0
  def bump():
    self.value = self.value + 1
  def do_add(counter):
    counter.bump()

x = Counter()
y = x
y.bump()
x.do_add(y)
print y.value
`
	out := runSource(t, src)
	if strings.TrimSpace(out) != "2" {
		t.Fatalf("expected value 2 after one direct and one indirect bump, got %q", out)
	}
}

func TestClassInheritanceAndDunderDispatch(t *testing.T) {
	src := `class Animal:
  def __init__(name):
    self.name = name
  def __str__():
    return self.name

class Dog(Animal):
  def bark():
    return self.name + " says woof"

d = Dog("Rex")
print str(d)
print d.bark()
`
	out := runSource(t, src)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 || lines[0] != "Rex" || lines[1] != "Rex says woof" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestShortCircuitEvaluation(t *testing.T) {
	src := `class Bomb:
  def explode():
    return 1 / 0

b = Bomb()
print False and b.explode()
print True or b.explode()
`
	out := runSource(t, src)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 || lines[0] != "False" || lines[1] != "True" {
		t.Fatalf("short-circuit evaluation did not prevent the side effect: %q", out)
	}
}

func TestMethodCallOnNonInstanceIsSilentNone(t *testing.T) {
	src := "x = 5\nprint x.anything()\n"
	out := runSource(t, src)
	if strings.TrimSpace(out) != "None" {
		t.Fatalf("expected None for a method call on a non-instance, got %q", out)
	}
}

func TestMethodOverloadingByArity(t *testing.T) {
	src := `class Greeter:
  def greet():
    return "hi"
  def greet(name):
    return "hi " + name

g = Greeter()
print g.greet()
print g.greet("Ann")
`
	out := runSource(t, src)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 || lines[0] != "hi" || lines[1] != "hi Ann" {
		t.Fatalf("unexpected overload dispatch: %q", out)
	}
}

func TestMissingOverloadAtMethodCallSiteIsNone(t *testing.T) {
	src := `class Greeter:
  def greet(name):
    return "hi " + name

g = Greeter()
print g.greet()
`
	out := runSource(t, src)
	if strings.TrimSpace(out) != "None" {
		t.Fatalf("expected None for a MethodCall with no arity match, got %q", out)
	}
}

func TestFieldAssignmentOnNonInstanceIsRuntimeError(t *testing.T) {
	engine := NewEngine(Config{})
	var buf bytes.Buffer
	_, err := engine.Run("x = 5\nx.y = 1\n", &buf)
	if err == nil {
		t.Fatalf("expected a runtime error assigning a field on a non-instance")
	}
}

func TestFieldReadOnNonInstanceIsRuntimeError(t *testing.T) {
	engine := NewEngine(Config{})
	var buf bytes.Buffer
	_, err := engine.Run("a = 123\nprint a.b\n", &buf)
	if err == nil {
		t.Fatalf("expected a runtime error reading a field on a non-instance")
	}
}

func TestFieldReadOfUnboundFieldIsRuntimeError(t *testing.T) {
	src := `class Empty:
  def noop():
    return 0

e = Empty()
print e.missing
`
	engine := NewEngine(Config{})
	var buf bytes.Buffer
	_, err := engine.Run(src, &buf)
	if err == nil {
		t.Fatalf("expected a runtime error reading an unbound field")
	}
}

func TestMethodFallThroughYieldsNone(t *testing.T) {
	src := `class C:
  def f():
    42

o = C()
x = o.f()
print x
`
	out := runSource(t, src)
	if strings.TrimSpace(out) != "None" {
		t.Fatalf("a method that falls through without return must yield None, got %q", out)
	}
}

func TestEqualAcrossMismatchedKindsIsRuntimeError(t *testing.T) {
	engine := NewEngine(Config{})
	var buf bytes.Buffer
	_, err := engine.Run("print 1 == \"1\"\n", &buf)
	if err == nil {
		t.Fatalf("expected a runtime error comparing a number with a string")
	}
}

func TestInstanceEqualityWithoutEqIsRuntimeError(t *testing.T) {
	src := `class C:
  def noop():
    return 0

a = C()
b = C()
print a == b
`
	engine := NewEngine(Config{})
	var buf bytes.Buffer
	_, err := engine.Run(src, &buf)
	if err == nil {
		t.Fatalf("expected a runtime error comparing instances with no __eq__ method")
	}
}

func TestLessOrEqualAndGreaterDeriveFromLessAndEqual(t *testing.T) {
	src := `class Box:
  def __init__(n):
    self.n = n
  def __lt__(other):
    return self.n < other.n
  def __eq__(other):
    return self.n == other.n

a = Box(1)
b = Box(1)
c = Box(2)
print a <= b
print c > a
print a > c
`
	out := runSource(t, src)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 || lines[0] != "True" || lines[1] != "True" || lines[2] != "False" {
		t.Fatalf("unexpected <=/> results: %q", out)
	}
}

func TestEqualityNoneAsymmetry(t *testing.T) {
	out := runSource(t, "print None == None\n")
	if strings.TrimSpace(out) != "True" {
		t.Fatalf("None should equal None, got %q", out)
	}

	engine := NewEngine(Config{})
	var buf bytes.Buffer
	_, err := engine.Run("print None < None\n", &buf)
	if err == nil {
		t.Fatalf("expected an error ordering None with '<'")
	}
}

func TestRecursionLimitIsEnforced(t *testing.T) {
	src := `class Loop:
  def recurse():
    return self.recurse()

l = Loop()
l.recurse()
`
	engine := NewEngine(Config{RecursionLimit: 50})
	var buf bytes.Buffer
	_, err := engine.Run(src, &buf)
	if err == nil {
		t.Fatalf("expected a recursion-limit error")
	}
}

func TestIfElseBranching(t *testing.T) {
	src := "x = 10\nif x > 5:\n  print 1\nelse:\n  print 0\n"
	out := runSource(t, src)
	if strings.TrimSpace(out) != "1" {
		t.Fatalf("got %q", out)
	}
}
