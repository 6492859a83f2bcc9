// Package discord adapts the command core, cooldown gate, and console
// bridge to the Discord gateway.
package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"butler-bot/internal/command"
	"butler-bot/internal/config"
	"butler-bot/internal/console"
	"butler-bot/pkg/cmd"
)

// Bot owns the gateway session. Guild and channel state is only read through
// the session's state cache; console access to it is serialized through the
// bridge-draining goroutine started by Run.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	registry *cmd.Registry
	bridge   *console.Bridge
	deps     *command.Deps
	log      zerolog.Logger

	mu        sync.Mutex
	startTime time.Time

	runCtx context.Context
}

// New wires the bot's collaborators. deps.StartTime is bound here so the
// stats command can report uptime.
func New(cfg *config.Config, registry *cmd.Registry, bridge *console.Bridge, deps *command.Deps, logger zerolog.Logger) *Bot {
	b := &Bot{
		cfg:      cfg,
		registry: registry,
		bridge:   bridge,
		deps:     deps,
		log:      logger,
	}
	deps.StartTime = b.StartTime
	return b
}

// StartTime returns when the gateway last became ready, or the zero time
// before the first ready event.
func (b *Bot) StartTime() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.startTime
}

// Run connects to the gateway and blocks until ctx is cancelled, then closes
// the connection. A close failure is returned so the process can exit
// non-zero.
func (b *Bot) Run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("create gateway session: %w", err)
	}
	b.dg = dg
	b.runCtx = ctx

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onGuildDelete)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}

	go b.serveConsole(ctx)

	<-ctx.Done()
	b.log.Info().Msg("closing gateway connection")
	if err := dg.Close(); err != nil {
		return fmt.Errorf("close gateway: %w", err)
	}
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.mu.Lock()
	b.startTime = time.Now()
	b.mu.Unlock()

	b.log.Info().Str("user", s.State.User.Username).Msg("logged in")

	// Global sync; failure leaves a possibly stale remote command list but
	// the bot keeps running.
	n, err := b.syncCommands(b.runCtx, "")
	if err != nil {
		b.log.Warn().Err(err).Msg("global command sync failed")
		return
	}
	b.log.Info().Int("count", n).Msg("synced commands globally")
	b.log.Info().Msg("global commands may take up to an hour to appear in all servers")
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.log.Info().
		Str("guild", g.Name).
		Str("guild_id", g.ID).
		Int("members", g.MemberCount).
		Msg("joined guild")

	n, err := b.syncCommands(b.runCtx, g.ID)
	if err != nil {
		b.log.Error().Err(err).Str("guild_id", g.ID).Msg("guild command sync failed")
		return
	}
	b.log.Info().Int("count", n).Str("guild_id", g.ID).Msg("synced commands to guild")
}

func (b *Bot) onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	// Guild state lives in the session's cache, nothing of ours to clean up.
	b.log.Info().Str("guild_id", g.ID).Msg("removed from guild")
}
