package cmd

import (
	"context"
	"errors"
	"testing"
)

type fakeCommand struct {
	name string
	ran  int
}

func (f *fakeCommand) Name() string        { return f.name }
func (f *fakeCommand) Description() string { return "fake " + f.name }

func (f *fakeCommand) Run(ctx context.Context, inv *Invocation) error {
	f.ran++
	return nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeCommand{name: "ping"}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	c, ok := r.Get("ping")
	if !ok {
		t.Fatal("expected ping to be registered")
	}
	if c.Name() != "ping" {
		t.Errorf("Name() = %q, want ping", c.Name())
	}
	if _, ok := r.Get("nope"); ok {
		t.Error("expected miss for unregistered name")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeCommand{name: "ping"}); err != nil {
		t.Fatalf("first Register() error: %v", err)
	}
	if err := r.Register(&fakeCommand{name: "ping"}); err == nil {
		t.Error("expected error registering duplicate name")
	}
}

func TestRegistryAllSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"weather", "help", "ping"} {
		if err := r.Register(&fakeCommand{name: name}); err != nil {
			t.Fatalf("Register(%s) error: %v", name, err)
		}
	}
	all := r.All()
	want := []string{"help", "ping", "weather"}
	if len(all) != len(want) {
		t.Fatalf("All() returned %d commands, want %d", len(all), len(want))
	}
	for i, c := range all {
		if c.Name() != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, c.Name(), want[i])
		}
	}
}

func TestMiddlewareOrderAndRoot(t *testing.T) {
	inner := &fakeCommand{name: "ping"}
	var order []string
	mw := func(tag string) Middleware {
		return func(c Command) Command {
			return Wrap(c, func(ctx context.Context, inv *Invocation) error {
				order = append(order, tag)
				return c.Run(ctx, inv)
			})
		}
	}

	c := Apply(inner, mw("first"), mw("second"))
	if err := c.Run(context.Background(), &Invocation{}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	// Last applied middleware runs outermost.
	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("middleware order = %v, want [second first]", order)
	}
	if inner.ran != 1 {
		t.Errorf("inner ran %d times, want 1", inner.ran)
	}
	if Root(c) != inner {
		t.Error("Root() did not unwrap to the inner command")
	}
}

func TestWrapShortCircuit(t *testing.T) {
	inner := &fakeCommand{name: "ping"}
	denied := errors.New("denied")
	c := Wrap(inner, func(ctx context.Context, inv *Invocation) error {
		return denied
	})
	if err := c.Run(context.Background(), &Invocation{}); !errors.Is(err, denied) {
		t.Errorf("Run() error = %v, want denied", err)
	}
	if inner.ran != 0 {
		t.Errorf("inner ran %d times, want 0 when middleware denies", inner.ran)
	}
	if c.Description() != inner.Description() {
		t.Errorf("Description() = %q, want delegation to inner", c.Description())
	}
}
