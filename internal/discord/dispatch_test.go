package discord

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"butler-bot/internal/command"
	"butler-bot/internal/cooldown"
	"butler-bot/internal/session"
	"butler-bot/pkg/cmd"
)

// countingTransport is a session.Transport fake tallying every delivery.
type countingTransport struct {
	responds   int
	ephemerals int
	edits      int
	followups  int
}

func (t *countingTransport) Respond(content string, ephemeral bool) error {
	t.responds++
	if ephemeral {
		t.ephemerals++
	}
	return nil
}

func (t *countingTransport) Edit(content string) error {
	t.edits++
	return nil
}

func (t *countingTransport) Followup(content string, ephemeral bool) error {
	t.followups++
	return nil
}

func (t *countingTransport) visible() int { return t.responds + t.followups }

// stubCommand runs an injected function, typically closing over the session.
type stubCommand struct {
	run func(ctx context.Context, inv *cmd.Invocation) error
}

func (c *stubCommand) Name() string        { return "stub" }
func (c *stubCommand) Description() string { return "stub" }
func (c *stubCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	return c.run(ctx, inv)
}

func TestExecuteSuccessRespondsOnce(t *testing.T) {
	b := &Bot{log: zerolog.Nop()}
	tr := &countingTransport{}
	reply := session.New("i1", tr)

	c := &stubCommand{run: func(context.Context, *cmd.Invocation) error {
		return reply.Respond("done")
	}}
	b.execute(c.Name(), c, reply, &cmd.Invocation{})

	if tr.visible() != 1 {
		t.Errorf("visible responses = %d, want exactly 1", tr.visible())
	}
	if !reply.Terminal() {
		t.Error("session must end terminal")
	}
	if got := reply.State(); got != session.StateResponded {
		t.Errorf("state = %v, want responded", got)
	}
}

func TestExecuteTypedErrorRespondsOnce(t *testing.T) {
	b := &Bot{log: zerolog.Nop()}
	tr := &countingTransport{}
	reply := session.New("i2", tr)

	c := &stubCommand{run: func(context.Context, *cmd.Invocation) error {
		return &command.CooldownError{Remaining: time.Second}
	}}
	b.execute(c.Name(), c, reply, &cmd.Invocation{})

	if tr.visible() != 1 {
		t.Errorf("visible responses = %d, want exactly 1", tr.visible())
	}
	if tr.ephemerals != 1 {
		t.Errorf("ephemerals = %d, want the error reply to be private", tr.ephemerals)
	}
	if got := reply.State(); got != session.StateFailed {
		t.Errorf("state = %v, want failed", got)
	}
}

func TestExecutePanicRespondsOnce(t *testing.T) {
	b := &Bot{log: zerolog.Nop()}
	tr := &countingTransport{}
	reply := session.New("i3", tr)

	c := &stubCommand{run: func(context.Context, *cmd.Invocation) error {
		panic("handler bug")
	}}
	b.execute(c.Name(), c, reply, &cmd.Invocation{})

	if tr.visible() != 1 {
		t.Errorf("visible responses = %d, want exactly 1", tr.visible())
	}
	if !reply.Terminal() {
		t.Error("session must end terminal after a panic")
	}
}

func TestExecuteSilentHandlerGetsFallbackReply(t *testing.T) {
	b := &Bot{log: zerolog.Nop()}
	tr := &countingTransport{}
	reply := session.New("i4", tr)

	c := &stubCommand{run: func(context.Context, *cmd.Invocation) error {
		return nil // neither responds nor errors
	}}
	b.execute(c.Name(), c, reply, &cmd.Invocation{})

	if tr.visible() != 1 {
		t.Errorf("visible responses = %d, want the fallback reply", tr.visible())
	}
	if tr.ephemerals != 1 {
		t.Errorf("ephemerals = %d, want fallback to be private", tr.ephemerals)
	}
	if got := reply.State(); got != session.StateFailed {
		t.Errorf("state = %v, want failed", got)
	}
}

func TestExecuteErrorAfterReplyUsesFollowup(t *testing.T) {
	b := &Bot{log: zerolog.Nop()}
	tr := &countingTransport{}
	reply := session.New("i5", tr)

	c := &stubCommand{run: func(context.Context, *cmd.Invocation) error {
		if err := reply.Respond("partial"); err != nil {
			return err
		}
		return &command.ProviderError{Service: "weather", Err: errors.New("503")}
	}}
	b.execute(c.Name(), c, reply, &cmd.Invocation{})

	if tr.responds != 1 {
		t.Errorf("responds = %d, want the initial reply kept", tr.responds)
	}
	if tr.followups != 1 {
		t.Errorf("followups = %d, want the late error as a followup", tr.followups)
	}
	if got := reply.State(); got != session.StateResponded {
		t.Errorf("state = %v, want responded preserved", got)
	}
}

func TestErrorMessageCooldown(t *testing.T) {
	msg, level := errorMessage(&command.CooldownError{Remaining: 2500 * time.Millisecond})
	if !strings.Contains(msg, "2.5 seconds") {
		t.Errorf("message %q should name the remaining time", msg)
	}
	if level != zerolog.InfoLevel {
		t.Errorf("cooldown denials are expected traffic, got level %v", level)
	}
}

func TestErrorMessageNotFoundWithHint(t *testing.T) {
	msg, level := errorMessage(&command.NotFoundError{
		Kind: "timezone",
		Name: "Mars/Olympus",
		Hint: "Try /timezones for examples.",
	})
	if !strings.Contains(msg, "timezone 'Mars/Olympus'") {
		t.Errorf("message %q should name what was missing", msg)
	}
	if !strings.Contains(msg, "Try /timezones") {
		t.Errorf("message %q should carry the hint", msg)
	}
	if level != zerolog.InfoLevel {
		t.Errorf("got level %v, want info", level)
	}
}

func TestErrorMessageTimeout(t *testing.T) {
	msg, level := errorMessage(&command.TimeoutError{Service: "weather"})
	if !strings.Contains(msg, "weather") {
		t.Errorf("message %q should name the service", msg)
	}
	if level != zerolog.WarnLevel {
		t.Errorf("got level %v, want warn", level)
	}
}

func TestErrorMessageProviderHidesDetail(t *testing.T) {
	secret := errors.New("api key abc123 rejected")
	msg, level := errorMessage(&command.ProviderError{Service: "weather", Err: secret})
	if strings.Contains(msg, "abc123") {
		t.Errorf("provider detail leaked into user message: %q", msg)
	}
	if level != zerolog.ErrorLevel {
		t.Errorf("got level %v, want error", level)
	}
}

func TestErrorMessageUnknownFallsBack(t *testing.T) {
	msg, level := errorMessage(errors.New("boom"))
	if strings.Contains(msg, "boom") {
		t.Errorf("internal error text leaked into user message: %q", msg)
	}
	if level != zerolog.ErrorLevel {
		t.Errorf("got level %v, want error", level)
	}
}

func TestRunSafelyConvertsPanic(t *testing.T) {
	b := &Bot{log: zerolog.Nop()}
	err := b.runSafely("ping", func() error { panic("handler bug") })
	if err == nil {
		t.Fatal("panic should surface as an error")
	}
	if !strings.Contains(err.Error(), "handler bug") {
		t.Errorf("error %q should carry the panic value", err)
	}
}

func TestSlashDefinitionsUnwrapMiddleware(t *testing.T) {
	registry := cmd.NewRegistry()
	deps := &command.Deps{Cooldowns: cooldown.New(time.Second)}
	if err := command.RegisterAll(registry, deps); err != nil {
		t.Fatal(err)
	}

	b := &Bot{registry: registry, log: zerolog.Nop()}
	defs := b.slashDefinitions()
	if len(defs) != len(registry.All()) {
		t.Fatalf("got %d definitions for %d commands", len(defs), len(registry.All()))
	}
	seen := make(map[string]bool)
	for _, def := range defs {
		seen[def.Name] = true
	}
	for _, name := range []string{"ping", "weather", "stats"} {
		if !seen[name] {
			t.Errorf("definition for %q missing", name)
		}
	}
}
