package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"butler-bot/internal/command"
	"butler-bot/internal/session"
	"butler-bot/pkg/cmd"
)

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	reply := session.New(i.ID, newInteractionTransport(s, i.Interaction))

	c, ok := b.registry.Get(name)
	if !ok {
		b.log.Warn().Str("command", name).Msg("unknown command invoked")
		if err := reply.Fail("Unknown command."); err != nil {
			b.log.Error().Err(err).Str("command", name).Msg("failed to answer unknown command")
		}
		return
	}

	sc := &command.SlashContext{
		Session: s,
		Event:   i,
		Reply:   reply,
		Deps:    b.deps,
	}

	b.execute(name, c, reply, &cmd.Invocation{Payload: sc})
}

// execute runs one resolved command and enforces the dispatch guarantee:
// whatever the handler does (success, typed error, panic, silent return),
// the session ends in a terminal state with a visible response.
func (b *Bot) execute(name string, c cmd.Command, reply *session.Session, inv *cmd.Invocation) {
	err := b.runSafely(name, func() error {
		return c.Run(b.runCtx, inv)
	})

	if err != nil {
		b.respondError(reply, name, err)
		return
	}

	// A handler that returns nil without replying still owes the platform a
	// response.
	if !reply.Terminal() {
		b.log.Error().Str("command", name).Msg("handler returned without replying")
		if err := reply.Fail("Something went wrong."); err != nil {
			b.log.Error().Err(err).Str("command", name).Msg("failed to send fallback reply")
		}
	}
}

// runSafely converts a handler panic into an error so one bad command cannot
// take down the gateway read loop.
func (b *Bot) runSafely(name string, run func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Str("command", name).Interface("panic", r).Msg("command panicked")
			err = fmt.Errorf("command %q panicked: %v", name, r)
		}
	}()
	return run()
}

// respondError classifies a handler error, logs it at the matching severity,
// and guarantees the interaction a visible answer.
func (b *Bot) respondError(reply *session.Session, name string, err error) {
	msg, level := errorMessage(err)

	ev := b.log.WithLevel(level)
	ev.Err(err).Str("command", name).Msg("command failed")

	if ferr := reply.Fail(msg); ferr != nil && !errors.Is(ferr, session.ErrAlreadyFailed) {
		b.log.Error().Err(ferr).Str("command", name).Msg("failed to deliver error reply")
	}
}

// errorMessage maps a command error to its user-facing message and log level.
// Provider detail never reaches the user; it stays in the log.
func errorMessage(err error) (string, zerolog.Level) {
	var cdErr *command.CooldownError
	if errors.As(err, &cdErr) {
		return fmt.Sprintf("This command is on cooldown. Try again in %.1f seconds.",
			cdErr.Remaining.Seconds()), zerolog.InfoLevel
	}

	var permErr *command.PermissionError
	if errors.As(err, &permErr) {
		return "You don't have permission to do that: " + permErr.Reason, zerolog.InfoLevel
	}

	var nfErr *command.NotFoundError
	if errors.As(err, &nfErr) {
		msg := fmt.Sprintf("Could not find %s '%s'.", nfErr.Kind, nfErr.Name)
		if nfErr.Hint != "" {
			msg += " " + nfErr.Hint
		}
		return msg, zerolog.InfoLevel
	}

	var toErr *command.TimeoutError
	if errors.As(err, &toErr) {
		return fmt.Sprintf("The %s service took too long to respond. Please try again.",
			toErr.Service), zerolog.WarnLevel
	}

	var provErr *command.ProviderError
	if errors.As(err, &provErr) {
		return fmt.Sprintf("The %s service returned an error. Please try again later.",
			provErr.Service), zerolog.ErrorLevel
	}

	return "Something went wrong while running that command.", zerolog.ErrorLevel
}
