package command

import (
	"context"
	"time"

	"butler-bot/pkg/cmd"
)

// WithCooldown gates each run through the tracker. A denied check returns a
// CooldownError without invoking the handler; an allowed check records the
// invocation time before the handler runs.
func WithCooldown(t cooldownTracker) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			sc, err := FromInvocation(inv)
			if err != nil {
				return err
			}
			if remaining, allowed := t.Check(sc.User().ID, c.Name(), time.Now()); !allowed {
				return &CooldownError{Remaining: remaining}
			}
			return c.Run(ctx, inv)
		})
	}
}

// cooldownTracker is the slice of the cooldown package this middleware needs.
type cooldownTracker interface {
	Check(userID, command string, now time.Time) (time.Duration, bool)
}

// WithCommandLog records each invocation with its origin before running it.
func WithCommandLog() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			sc, err := FromInvocation(inv)
			if err != nil {
				return err
			}
			user := sc.User()
			sc.Deps.Log.Info().
				Str("command", c.Name()).
				Str("user", user.Username).
				Str("user_id", user.ID).
				Str("channel_id", sc.Event.ChannelID).
				Str("guild_id", sc.Event.GuildID).
				Msg("command invoked")
			return c.Run(ctx, inv)
		})
	}
}
