package console

import "time"

// StatusView is a read-only snapshot of the bot's health, assembled on the
// bot side of the bridge.
type StatusView struct {
	Online  bool
	Latency time.Duration
	Guilds  int
	Users   int
	Uptime  time.Duration
}

// GuildView is a read-only summary of one joined guild.
type GuildView struct {
	ID      string
	Name    string
	Owner   string
	Members int
}

// CommandView is a read-only summary of one registered command.
type CommandView struct {
	Name        string
	Description string
}

// BroadcastResult tallies a broadcast across all joined guilds.
type BroadcastResult struct {
	Sent   int
	Failed int
}
