package command

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"butler-bot/internal/weather"
	"butler-bot/pkg/cmd"
)

type WeatherCommand struct{}

func (c *WeatherCommand) Name() string        { return "weather" }
func (c *WeatherCommand) Description() string { return "Get weather info for a specific city" }

func (c *WeatherCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "city",
				Description: "The name of the city (e.g. 'London')",
				Required:    true,
			},
		},
	}
}

func (c *WeatherCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	sc, err := FromInvocation(inv)
	if err != nil {
		return err
	}

	if !sc.Deps.Weather.Configured() {
		return sc.Reply.RespondEphemeral("Weather API is not configured.")
	}

	city := sc.StringOption("city")
	report, err := sc.Deps.Weather.Lookup(ctx, city)
	if err != nil {
		return classifyWeatherError(err, city)
	}
	return sc.Reply.Respond(report)
}

// classifyWeatherError translates provider errors into the dispatcher's
// taxonomy so users get specific messages while detail goes to the log.
func classifyWeatherError(err error, city string) error {
	var notFound *weather.CityNotFoundError
	switch {
	case errors.As(err, &notFound):
		return &NotFoundError{Kind: "city", Name: city, Hint: "please check the city name"}
	case errors.Is(err, weather.ErrTimeout):
		return &TimeoutError{Service: "weather"}
	default:
		return &ProviderError{Service: "weather", Err: err}
	}
}
