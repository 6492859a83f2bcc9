package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"butler-bot/internal/command"
	"butler-bot/pkg/cmd"
)

// syncCommands bulk-overwrites the application's command set for one guild,
// or globally when guildID is empty. Overwrite replaces the full list, so
// commands removed from the registry disappear remotely too. Individual
// creates are paced to stay under the command-registration rate limit.
func (b *Bot) syncCommands(ctx context.Context, guildID string) (int, error) {
	appID, err := b.applicationID()
	if err != nil {
		return 0, err
	}

	defs := b.slashDefinitions()

	limiter := rate.NewLimiter(rate.Every(time.Second/40), 1)
	created := 0
	for _, def := range defs {
		if err := limiter.Wait(ctx); err != nil {
			return created, fmt.Errorf("sync interrupted: %w", err)
		}
		if _, err := b.dg.ApplicationCommandCreate(appID, guildID, def); err != nil {
			return created, fmt.Errorf("register command %q: %w", def.Name, err)
		}
		created++
	}
	return created, nil
}

// applicationID resolves the bot's own application ID, preferring the state
// cache over a REST round-trip.
func (b *Bot) applicationID() (string, error) {
	if b.dg.State != nil && b.dg.State.User != nil {
		return b.dg.State.User.ID, nil
	}
	u, err := b.dg.User("@me")
	if err != nil {
		return "", fmt.Errorf("resolve application id: %w", err)
	}
	return u.ID, nil
}

// slashDefinitions collects the slash definitions of every registered command
// that publishes one. Middleware wrappers are unwrapped first.
func (b *Bot) slashDefinitions() []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range b.registry.All() {
		provider, ok := cmd.Root(c).(command.SlashProvider)
		if !ok {
			continue
		}
		defs = append(defs, provider.SlashDefinition())
	}
	return defs
}
