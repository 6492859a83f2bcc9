package command

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"butler-bot/pkg/cmd"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List available bot commands" }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *HelpCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	sc, err := FromInvocation(inv)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("Registered commands:")
	for _, registered := range sc.Deps.Registry.All() {
		b.WriteString("\n  /" + registered.Name() + " - " + registered.Description())
	}

	return sc.Reply.Respond(b.String())
}
