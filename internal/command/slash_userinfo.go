package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"butler-bot/pkg/cmd"
)

type UserInfoCommand struct{}

func (c *UserInfoCommand) Name() string        { return "userinfo" }
func (c *UserInfoCommand) Description() string { return "Get info about a user" }

func (c *UserInfoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user you want info about (defaults to you)",
				Required:    false,
			},
		},
	}
}

func (c *UserInfoCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	sc, err := FromInvocation(inv)
	if err != nil {
		return err
	}

	user := sc.UserOption("user")
	if user == nil {
		user = sc.User()
	}

	created, _ := discordgo.SnowflakeTimestamp(user.ID)
	info := fmt.Sprintf(
		"**User Information**\nName: %s\nID: %s\nAccount Created: %s\nBot Account: %s",
		user.Username, user.ID,
		created.Format(timeLayout),
		yesNo(user.Bot),
	)

	if member := c.resolveMember(sc, user.ID); member != nil {
		nick := member.Nick
		if nick == "" {
			nick = "None"
		}
		roles := "None"
		if len(member.Roles) > 0 {
			mentions := make([]string, len(member.Roles))
			for i, id := range member.Roles {
				mentions[i] = "<@&" + id + ">"
			}
			roles = strings.Join(mentions, ", ")
		}
		info += fmt.Sprintf(
			"\nNickname: %s\nJoined Server: %s\nRoles: %s",
			nick, member.JoinedAt.Format(timeLayout), roles,
		)
	}

	if user.Avatar != "" {
		info += "\nAvatar URL: " + user.AvatarURL("")
	}

	return sc.Reply.Respond(info)
}

// resolveMember returns guild membership detail when the command was used in
// a guild; nil in DMs or on lookup failure.
func (c *UserInfoCommand) resolveMember(sc *SlashContext, userID string) *discordgo.Member {
	if sc.Event.GuildID == "" {
		return nil
	}
	if member, err := sc.Session.State.Member(sc.Event.GuildID, userID); err == nil {
		return member
	}
	if member, err := sc.Session.GuildMember(sc.Event.GuildID, userID); err == nil {
		return member
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
