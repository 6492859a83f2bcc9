package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"butler-bot/pkg/cmd"
)

const timeLayout = "2006-01-02 15:04:05"

type UTCTimeCommand struct{}

func (c *UTCTimeCommand) Name() string        { return "utctime" }
func (c *UTCTimeCommand) Description() string { return "Get the current UTC time" }

func (c *UTCTimeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *UTCTimeCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	sc, err := FromInvocation(inv)
	if err != nil {
		return err
	}
	return sc.Reply.Respond(fmt.Sprintf(
		"The current time in UTC is: %s", time.Now().UTC().Format(timeLayout)))
}

type LocalTimeCommand struct{}

func (c *LocalTimeCommand) Name() string { return "localtime" }
func (c *LocalTimeCommand) Description() string {
	return "Get the current time in a specific timezone"
}

func (c *LocalTimeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "timezone",
				Description: "The timezone (e.g. 'US/Eastern')",
				Required:    true,
			},
		},
	}
}

func (c *LocalTimeCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	sc, err := FromInvocation(inv)
	if err != nil {
		return err
	}

	tz := sc.StringOption("timezone")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return &NotFoundError{
			Kind: "timezone",
			Name: tz,
			Hint: "use /timezones to see available options",
		}
	}
	return sc.Reply.Respond(fmt.Sprintf(
		"The current time in %s is: %s", tz, time.Now().In(loc).Format(timeLayout)))
}

// commonTimezones is the short list shown by /timezones; the full IANA set
// is accepted by /localtime.
var commonTimezones = []string{
	"US/Eastern", "US/Central", "US/Mountain", "US/Pacific",
	"Europe/London", "Europe/Berlin", "Europe/Moscow",
	"Asia/Tokyo", "Asia/Shanghai", "Asia/Dubai",
	"Australia/Sydney", "Pacific/Auckland",
}

type TimezonesCommand struct{}

func (c *TimezonesCommand) Name() string        { return "timezones" }
func (c *TimezonesCommand) Description() string { return "List available timezone regions" }

func (c *TimezonesCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *TimezonesCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	sc, err := FromInvocation(inv)
	if err != nil {
		return err
	}

	message := "Common timezones:\n" + strings.Join(commonTimezones, "\n") +
		"\n\nFor a full list of timezones, visit: https://en.wikipedia.org/wiki/List_of_tz_database_time_zones"
	return sc.Reply.RespondEphemeral(message)
}
