package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"butler-bot/internal/command"
	"butler-bot/internal/console"
)

// serveConsole drains the console bridge until ctx is cancelled. It is the
// only goroutine that executes console verbs, so verb handlers may read
// gateway state without further locking between themselves.
func (b *Bot) serveConsole(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-b.bridge.Requests():
			value, err := b.handleConsoleRequest(req.Verb, req.Args)
			req.Resolve(value, err)
		}
	}
}

func (b *Bot) handleConsoleRequest(verb console.Verb, args []string) (any, error) {
	switch verb {
	case console.VerbStatus:
		return b.statusView(), nil
	case console.VerbGuilds:
		return b.guildViews(), nil
	case console.VerbCommands:
		return b.commandViews(), nil
	case console.VerbSend:
		if len(args) < 2 {
			return nil, fmt.Errorf("send needs a channel id and a message")
		}
		return nil, b.sendToChannel(args[0], strings.Join(args[1:], " "))
	case console.VerbBroadcast:
		if len(args) < 1 {
			return nil, fmt.Errorf("broadcast needs a message")
		}
		return b.broadcast(strings.Join(args, " ")), nil
	default:
		return nil, fmt.Errorf("unknown console verb %q", verb)
	}
}

// State.Guilds is mutated by the gateway read goroutine on guild events, so
// every read below holds the state's read lock. Serializing console verbs
// through one goroutine does not cover that boundary.

func (b *Bot) statusView() console.StatusView {
	b.dg.State.RLock()
	guilds := len(b.dg.State.Guilds)
	users := 0
	for _, g := range b.dg.State.Guilds {
		users += g.MemberCount
	}
	b.dg.State.RUnlock()

	uptime := time.Duration(0)
	if start := b.StartTime(); !start.IsZero() {
		uptime = time.Since(start)
	}

	b.dg.RLock()
	online := b.dg.DataReady
	b.dg.RUnlock()

	return console.StatusView{
		Online:  online,
		Latency: b.dg.HeartbeatLatency(),
		Guilds:  guilds,
		Users:   users,
		Uptime:  uptime,
	}
}

func (b *Bot) guildViews() []console.GuildView {
	b.dg.State.RLock()
	defer b.dg.State.RUnlock()

	views := make([]console.GuildView, 0, len(b.dg.State.Guilds))
	for _, g := range b.dg.State.Guilds {
		views = append(views, console.GuildView{
			ID:      g.ID,
			Name:    g.Name,
			Owner:   g.OwnerID,
			Members: g.MemberCount,
		})
	}
	return views
}

func (b *Bot) commandViews() []console.CommandView {
	all := b.registry.All()
	views := make([]console.CommandView, 0, len(all))
	for _, c := range all {
		views = append(views, console.CommandView{
			Name:        c.Name(),
			Description: c.Description(),
		})
	}
	return views
}

func (b *Bot) sendToChannel(channelID, text string) error {
	if _, err := b.dg.State.Channel(channelID); err != nil {
		if _, err := b.dg.Channel(channelID); err != nil {
			return &command.NotFoundError{Kind: "channel", Name: channelID}
		}
	}
	if _, err := b.dg.ChannelMessageSend(channelID, text); err != nil {
		return fmt.Errorf("send to channel %s: %w", channelID, err)
	}
	return nil
}

// guildSnapshot is the slice of guild state a broadcast needs, copied out
// under the state lock. Permission checks lock the state themselves, so they
// must run after the snapshot lock is released.
type guildSnapshot struct {
	id              string
	name            string
	systemChannelID string
	textChannels    []string
}

func (b *Bot) guildSnapshots() ([]guildSnapshot, string) {
	b.dg.State.RLock()
	defer b.dg.State.RUnlock()

	botID := ""
	if b.dg.State.User != nil {
		botID = b.dg.State.User.ID
	}

	snaps := make([]guildSnapshot, 0, len(b.dg.State.Guilds))
	for _, g := range b.dg.State.Guilds {
		snap := guildSnapshot{
			id:              g.ID,
			name:            g.Name,
			systemChannelID: g.SystemChannelID,
		}
		for _, ch := range g.Channels {
			if ch.Type == discordgo.ChannelTypeGuildText {
				snap.textChannels = append(snap.textChannels, ch.ID)
			}
		}
		snaps = append(snaps, snap)
	}
	return snaps, botID
}

// broadcast picks one channel per guild and delivers text to each,
// preferring the guild's system channel over the first writable text channel.
func (b *Bot) broadcast(text string) console.BroadcastResult {
	snaps, botID := b.guildSnapshots()

	targets := make([]console.BroadcastTarget, 0, len(snaps))
	for _, snap := range snaps {
		targets = append(targets, console.BroadcastTarget{
			GuildID:   snap.id,
			GuildName: snap.name,
			ChannelID: b.broadcastChannel(snap, botID),
		})
	}

	res := console.Broadcast(targets, text, func(channelID, msg string) error {
		_, err := b.dg.ChannelMessageSend(channelID, msg)
		return err
	})

	b.log.Info().Int("sent", res.Sent).Int("failed", res.Failed).Msg("broadcast finished")
	return res
}

func (b *Bot) broadcastChannel(snap guildSnapshot, botID string) string {
	if snap.systemChannelID != "" {
		return snap.systemChannelID
	}
	for _, chID := range snap.textChannels {
		perms, err := b.dg.State.UserChannelPermissions(botID, chID)
		if err != nil {
			continue
		}
		if perms&discordgo.PermissionSendMessages != 0 {
			return chID
		}
	}
	return ""
}
