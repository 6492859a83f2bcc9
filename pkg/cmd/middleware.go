package cmd

import "context"

// Middleware wraps a command (cooldown gate, invocation logging, ...).
// The wrapped value remains a Command, so chains compose freely.
type Middleware func(Command) Command

// Apply applies middlewares in order; the first in the list ends up
// innermost, the last outermost.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}

// Unwrappable is implemented by wrapped commands so adapters can reach the
// underlying command, e.g. to type-assert to a slash-definition provider.
type Unwrappable interface {
	Command
	Unwrap() Command
}

// wrapped intercepts Run while delegating identity to the inner command.
type wrapped struct {
	inner Command
	run   func(ctx context.Context, inv *Invocation) error
}

func (w *wrapped) Name() string        { return w.inner.Name() }
func (w *wrapped) Description() string { return w.inner.Description() }
func (w *wrapped) Unwrap() Command     { return w.inner }

func (w *wrapped) Run(ctx context.Context, inv *Invocation) error {
	if w.run != nil {
		return w.run(ctx, inv)
	}
	return w.inner.Run(ctx, inv)
}

// Wrap returns a command that runs run instead of c.Run, delegating
// Name/Description to c. The result implements Unwrappable.
func Wrap(c Command, run func(ctx context.Context, inv *Invocation) error) Command {
	return &wrapped{inner: c, run: run}
}

// Root unwraps a command until the underlying command is not a wrapper.
func Root(c Command) Command {
	for {
		u, ok := c.(Unwrappable)
		if !ok {
			return c
		}
		c = u.Unwrap()
	}
}
