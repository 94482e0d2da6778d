package mython

import (
	"fmt"
	"io"
)

// Context carries everything an Execute call needs beyond its own scope: the
// output sink for print/stringify, and the resource guards (step quota,
// recursion depth) that keep a misbehaving program from hanging the host
// process. It is passed by pointer through every Node.Execute call the same
// way the original implementation threads its runtime Context through
// Execute, but here it also absorbs the ambient resource limits that the
// teacher's Engine enforces at the call-frame level.
type Context struct {
	out io.Writer

	stepQuota      int
	steps          int
	recursionLimit int
	depth          int
}

// NewContext returns a Context that writes to out with the given resource
// limits. A non-positive stepQuota or recursionLimit disables that guard.
func NewContext(out io.Writer, stepQuota, recursionLimit int) *Context {
	return &Context{out: out, stepQuota: stepQuota, recursionLimit: recursionLimit}
}

// Write prints s to the context's output sink.
func (c *Context) Write(s string) {
	fmt.Fprint(c.out, s)
}

// Step charges one unit against the step quota, returning a RuntimeError
// once the quota is exhausted. Compound calls it once per statement it
// runs, so an infinite recursive program terminates instead of hanging.
func (c *Context) Step() error {
	if c.stepQuota <= 0 {
		return nil
	}
	c.steps++
	if c.steps > c.stepQuota {
		return &RuntimeError{Message: "step quota exceeded"}
	}
	return nil
}

// EnterCall increments the call-depth counter, returning a RuntimeError if
// doing so would exceed the recursion limit. The returned leave function
// must be deferred by the caller to restore the counter.
func (c *Context) EnterCall() (leave func(), err error) {
	if c.recursionLimit > 0 && c.depth >= c.recursionLimit {
		return func() {}, &RuntimeError{Message: "recursion limit exceeded"}
	}
	c.depth++
	return func() { c.depth-- }, nil
}
