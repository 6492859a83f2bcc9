package command

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"

	"butler-bot/pkg/cmd"
)

type StatsCommand struct{}

func (c *StatsCommand) Name() string        { return "stats" }
func (c *StatsCommand) Description() string { return "Get bot statistics" }

func (c *StatsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *StatsCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	sc, err := FromInvocation(inv)
	if err != nil {
		return err
	}

	uptime := time.Duration(0)
	if start := sc.Deps.StartTime(); !start.IsZero() {
		uptime = time.Since(start)
	}

	// Guild events mutate State.Guilds on the gateway goroutine.
	sc.Session.State.RLock()
	guildCount := len(sc.Session.State.Guilds)
	userCount := 0
	for _, g := range sc.Session.State.Guilds {
		userCount += g.MemberCount
	}
	sc.Session.State.RUnlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return sc.Reply.Respond(fmt.Sprintf(
		"**Bot Statistics**\n"+
			"Uptime: %s\n"+
			"Servers: %d\n"+
			"Users: %d\n"+
			"Memory Usage: %.2f MB\n"+
			"Go Version: %s\n"+
			"Discordgo Version: %s",
		formatUptime(uptime),
		guildCount,
		userCount,
		float64(mem.Alloc)/1024/1024,
		runtime.Version(),
		discordgo.VERSION,
	))
}

// formatUptime renders a duration as "1d 2h 3m 4s".
func formatUptime(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%dd %dh %dm %ds",
		total/86400, total%86400/3600, total%3600/60, total%60)
}
