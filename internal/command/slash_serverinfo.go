package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"butler-bot/pkg/cmd"
)

type ServerInfoCommand struct{}

func (c *ServerInfoCommand) Name() string        { return "serverinfo" }
func (c *ServerInfoCommand) Description() string { return "Get info about the server" }

func (c *ServerInfoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ServerInfoCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	sc, err := FromInvocation(inv)
	if err != nil {
		return err
	}

	guildID := sc.Event.GuildID
	if guildID == "" {
		return &PermissionError{Reason: "this command can only be used in a server"}
	}

	guild, err := sc.Session.State.Guild(guildID)
	if err != nil {
		guild, err = sc.Session.Guild(guildID)
		if err != nil {
			return &NotFoundError{Kind: "guild", Name: guildID}
		}
	}

	var textChannels, voiceChannels, categories int
	for _, ch := range guild.Channels {
		switch ch.Type {
		case discordgo.ChannelTypeGuildText:
			textChannels++
		case discordgo.ChannelTypeGuildVoice:
			voiceChannels++
		case discordgo.ChannelTypeGuildCategory:
			categories++
		}
	}

	created, _ := discordgo.SnowflakeTimestamp(guild.ID)
	info := fmt.Sprintf(
		"**Server Information**\n"+
			"Name: %s\n"+
			"ID: %s\n"+
			"Owner: <@%s>\n"+
			"Created: %s\n"+
			"Member Count: %d\n"+
			"Channels: %d text, %d voice, %d categories\n"+
			"Roles: %d\n"+
			"Boost Level: %d",
		guild.Name, guild.ID, guild.OwnerID,
		created.Format("2006-01-02 15:04"),
		guild.MemberCount,
		textChannels, voiceChannels, categories,
		len(guild.Roles),
		guild.PremiumTier,
	)
	if guild.Icon != "" {
		info += "\nIcon URL: " + guild.IconURL("")
	}

	return sc.Reply.Respond(info)
}
