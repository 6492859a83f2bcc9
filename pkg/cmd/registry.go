package cmd

import (
	"fmt"
	"sort"
)

// Registry stores commands by name. It is populated once at startup and
// treated as immutable afterwards, so lookups need no locking. The registry
// does not dispatch; adapters look commands up and invoke them with their
// own context.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command, applying middlewares at registration time so the
// stored command is the fully composed chain. Duplicate names are rejected.
func (r *Registry) Register(c Command, mws ...Middleware) error {
	if _, exists := r.commands[c.Name()]; exists {
		return fmt.Errorf("command %q already registered", c.Name())
	}
	r.commands[c.Name()] = Apply(c, mws...)
	return nil
}

// Get returns the command with the given name.
func (r *Registry) Get(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// All returns every registered command, sorted by name.
func (r *Registry) All() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}
