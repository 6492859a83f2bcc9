// Package command holds the bot's slash commands and the context they run
// with. Commands are transport-agnostic at the core (pkg/cmd); everything
// Discord-specific arrives through the SlashContext payload.
package command

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"butler-bot/internal/cooldown"
	"butler-bot/internal/session"
	"butler-bot/internal/weather"
	"butler-bot/pkg/cmd"
)

// SlashProvider is implemented by commands that publish a slash-command
// definition for registry sync.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Deps bundles the process-scoped collaborators commands may use. Built once
// in main and shared by every invocation.
type Deps struct {
	Registry  *cmd.Registry
	Weather   *weather.Service
	Cooldowns *cooldown.Tracker
	StartTime func() time.Time
	Log       zerolog.Logger
}

// SlashContext is the payload the Discord adapter attaches to an invocation:
// the live session, the triggering event, the reply lifecycle, and shared
// dependencies.
type SlashContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Reply   *session.Session
	Deps    *Deps
}

// FromInvocation extracts the Discord slash context from an invocation.
func FromInvocation(inv *cmd.Invocation) (*SlashContext, error) {
	sc, ok := inv.Payload.(*SlashContext)
	if !ok {
		return nil, fmt.Errorf("wrong invocation payload type %T", inv.Payload)
	}
	return sc, nil
}

// User returns the invoking user, regardless of whether the command came
// from a guild (Member set) or a DM (User set).
func (sc *SlashContext) User() *discordgo.User {
	if sc.Event.Member != nil && sc.Event.Member.User != nil {
		return sc.Event.Member.User
	}
	if sc.Event.User != nil {
		return sc.Event.User
	}
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}

// StringOption returns the named string option, or "" if absent.
func (sc *SlashContext) StringOption(name string) string {
	for _, opt := range sc.Event.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

// UserOption returns the named user option, or nil if absent.
func (sc *SlashContext) UserOption(name string) *discordgo.User {
	for _, opt := range sc.Event.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionUser {
			return opt.UserValue(sc.Session)
		}
	}
	return nil
}
