package mython

import "io"

const (
	defaultStepQuota      = 1_000_000
	defaultRecursionLimit = 1000
)

// Config bounds the resources a single Run call may consume. Mython has no
// iteration statements, but unbounded recursion through method calls can
// still hang or crash the host process, so every Engine enforces both a
// total evaluation-step quota and a call-depth limit.
type Config struct {
	StepQuota      int
	RecursionLimit int
}

func (c Config) withDefaults() Config {
	if c.StepQuota <= 0 {
		c.StepQuota = defaultStepQuota
	}
	if c.RecursionLimit <= 0 {
		c.RecursionLimit = defaultRecursionLimit
	}
	return c
}

// Program is a parsed, not-yet-executed Mython source file.
type Program struct {
	root Node
}

// Engine owns interpreter configuration and compiles/runs Mython programs
// against an empty top-level closure, or a caller-supplied one for
// multi-submission use (the REPL keeps one closure alive across calls to
// Execute so that classes and variables accumulate).
type Engine struct {
	cfg Config
}

// NewEngine builds an Engine, filling in any unset Config fields with the
// same style of default-on-zero-value the rest of this package uses for its
// resource guards.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Limits reports the effective step quota and recursion limit this Engine
// enforces, for host diagnostics. cmd/mython does not call it.
func (e *Engine) Limits() (stepQuota, recursionLimit int) {
	return e.cfg.StepQuota, e.cfg.RecursionLimit
}

// Compile lexes and parses src into a Program without executing it.
func (e *Engine) Compile(src string) (*Program, error) {
	lex, err := NewLexer(src)
	if err != nil {
		return nil, err
	}
	parser := NewParser(lex)
	root, err := parser.ParseProgram()
	if err != nil {
		return nil, err
	}
	return &Program{root: root}, nil
}

// Execute runs a compiled Program against scope, writing any `print` output
// to out. Passing a fresh *Closure each call gives an isolated run; reusing
// one across calls lets definitions accumulate, which is what the REPL does.
func (e *Engine) Execute(p *Program, scope *Closure, out io.Writer) (Value, error) {
	ctx := NewContext(out, e.cfg.StepQuota, e.cfg.RecursionLimit)
	return p.root.Execute(scope, ctx)
}

// Run compiles and executes src in one step against a fresh top-level
// closure, writing output to out. This is the entry point spec.md's
// external-interface section describes: byte stream in, byte sink out,
// empty top-level closure.
func (e *Engine) Run(src string, out io.Writer) (Value, error) {
	program, err := e.Compile(src)
	if err != nil {
		return Value{}, err
	}
	return e.Execute(program, NewClosure(), out)
}
