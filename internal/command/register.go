package command

import "butler-bot/pkg/cmd"

// RegisterAll registers every slash command with the shared middleware
// chain. The cooldown gate is applied last so it runs outermost: denied
// invocations never reach the handler or the invocation log.
func RegisterAll(r *cmd.Registry, deps *Deps) error {
	commands := []cmd.Command{
		&HelpCommand{},
		&PingCommand{},
		&PongCommand{},
		&UTCTimeCommand{},
		&LocalTimeCommand{},
		&TimezonesCommand{},
		&WeatherCommand{},
		&ServerInfoCommand{},
		&UserInfoCommand{},
		&StatsCommand{},
	}
	for _, c := range commands {
		if err := r.Register(c, WithCommandLog(), WithCooldown(deps.Cooldowns)); err != nil {
			return err
		}
	}
	return nil
}
