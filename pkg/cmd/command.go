// Package cmd provides a transport-agnostic command core: a command is
// something with a name, description, and Run(ctx, invocation). How commands
// are registered with Discord and dispatched is defined by the adapter.
package cmd

import "context"

// Invocation carries the minimal input any runner can pass: positional
// arguments and an opaque payload. Adapters set Payload to their own context
// (the Discord adapter passes the interaction context).
type Invocation struct {
	Args    []string
	Payload any
}

// Command is the universal contract: identity plus execution. Cooldowns,
// logging, and transport-specific registration stay in middleware and
// adapters.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}
