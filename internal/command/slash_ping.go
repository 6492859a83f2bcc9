package command

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"butler-bot/pkg/cmd"
)

type PingCommand struct{}

func (c *PingCommand) Name() string        { return "ping" }
func (c *PingCommand) Description() string { return "Check bot latency" }

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

// Run replies immediately, then edits the reply with measured timings so the
// response-time figure includes the first round trip.
func (c *PingCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	sc, err := FromInvocation(inv)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := sc.Reply.Respond("Pinging..."); err != nil {
		return err
	}
	responseTime := time.Since(start)
	gatewayLatency := sc.Session.HeartbeatLatency()

	return sc.Reply.Edit(fmt.Sprintf(
		"**Ping Results**\nBot Response Time: %.2fms\nGateway Latency: %.2fms",
		float64(responseTime.Microseconds())/1000,
		float64(gatewayLatency.Microseconds())/1000,
	))
}

type PongCommand struct{}

func (c *PongCommand) Name() string        { return "pong" }
func (c *PongCommand) Description() string { return "Ping" }

func (c *PongCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PongCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	sc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	return sc.Reply.Respond("Ping")
}
