package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	okSign   = color.GreenString("✓")
	errSign  = color.RedString("x")
	infoSign = color.YellowString("i")
)

const intro = "Bot console. Type 'help' for available commands."

// Console is the operator-facing read-evaluate loop. It runs on its own
// goroutine and reaches bot state only through the bridge.
type Console struct {
	bridge *Bridge
	in     io.Reader
	out    io.Writer
	prompt string
}

// New returns a console reading stdin and writing stdout.
func New(bridge *Bridge) *Console {
	return &Console{
		bridge: bridge,
		in:     os.Stdin,
		out:    os.Stdout,
		prompt: color.CyanString("Bot> "),
	}
}

// Run processes operator input until EOF or context cancellation.
func (c *Console) Run(ctx context.Context) {
	fmt.Fprintln(c.out, intro)
	scanner := bufio.NewScanner(c.in)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Fprint(c.out, c.prompt)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}
		c.eval(line)
	}
}

func (c *Console) eval(line string) {
	args, err := splitArgs(line)
	if err != nil {
		c.errorf("%v", err)
		return
	}

	switch args[0] {
	case "help":
		c.printHelp()
	case "status":
		c.doStatus()
	case "guilds":
		c.doGuilds()
	case "commands":
		c.doCommands()
	case "send":
		c.doSend(args[1:])
	case "broadcast":
		c.doBroadcast(args[1:])
	default:
		c.errorf("unknown command %q, type 'help'", args[0])
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, "Available commands:")
	fmt.Fprintln(c.out, "  status                      show bot health")
	fmt.Fprintln(c.out, "  guilds                      list joined guilds")
	fmt.Fprintln(c.out, "  commands                    list registered commands")
	fmt.Fprintln(c.out, "  send <channelId> <message>  send a message to a channel")
	fmt.Fprintln(c.out, "  broadcast <message>         send a message to every guild")
	fmt.Fprintln(c.out, "  exit                        leave the console")
}

func (c *Console) doStatus() {
	value, err := c.bridge.Submit(VerbStatus, nil)
	if err != nil {
		c.errorf("status: %v", err)
		return
	}
	s, ok := value.(StatusView)
	if !ok {
		c.errorf("status: unexpected reply type %T", value)
		return
	}
	if !s.Online {
		fmt.Fprintf(c.out, "[%s] Bot is currently offline\n", infoSign)
		return
	}
	fmt.Fprintf(c.out, "[%s] Bot is online | Latency: %dms | Guilds: %d | Users: %d | Uptime: %s\n",
		okSign, s.Latency.Milliseconds(), s.Guilds, s.Users, formatUptime(s.Uptime))
}

func (c *Console) doGuilds() {
	value, err := c.bridge.Submit(VerbGuilds, nil)
	if err != nil {
		c.errorf("guilds: %v", err)
		return
	}
	guilds, ok := value.([]GuildView)
	if !ok {
		c.errorf("guilds: unexpected reply type %T", value)
		return
	}
	if len(guilds) == 0 {
		fmt.Fprintf(c.out, "[%s] Bot is not in any guilds\n", infoSign)
		return
	}
	fmt.Fprintf(c.out, "Bot is in %d guilds:\n", len(guilds))
	for _, g := range guilds {
		fmt.Fprintf(c.out, "  - %s (ID: %s) | Members: %d | Owner: %s\n", g.Name, g.ID, g.Members, g.Owner)
	}
}

func (c *Console) doCommands() {
	value, err := c.bridge.Submit(VerbCommands, nil)
	if err != nil {
		c.errorf("commands: %v", err)
		return
	}
	cmds, ok := value.([]CommandView)
	if !ok {
		c.errorf("commands: unexpected reply type %T", value)
		return
	}
	if len(cmds) == 0 {
		fmt.Fprintf(c.out, "[%s] No commands are registered\n", infoSign)
		return
	}
	fmt.Fprintln(c.out, "Registered commands:")
	for _, cmd := range cmds {
		fmt.Fprintf(c.out, "  /%s - %s\n", cmd.Name, cmd.Description)
	}
}

func (c *Console) doSend(args []string) {
	if len(args) < 2 {
		c.errorf("usage: send <channelId> <message>")
		return
	}
	channelID := args[0]
	if _, err := strconv.ParseUint(channelID, 10, 64); err != nil {
		c.errorf("channel ID must be a number")
		return
	}
	message := strings.Join(args[1:], " ")

	if _, err := c.bridge.Submit(VerbSend, []string{channelID, message}); err != nil {
		c.errorf("send: %v", err)
		return
	}
	fmt.Fprintf(c.out, "[%s] Message sent to channel %s\n", okSign, channelID)
}

func (c *Console) doBroadcast(args []string) {
	if len(args) == 0 {
		c.errorf("usage: broadcast <message>")
		return
	}
	message := strings.Join(args, " ")

	value, err := c.bridge.Submit(VerbBroadcast, []string{message})
	if err != nil {
		c.errorf("broadcast: %v", err)
		return
	}
	res, ok := value.(BroadcastResult)
	if !ok {
		c.errorf("broadcast: unexpected reply type %T", value)
		return
	}
	fmt.Fprintf(c.out, "[%s] Broadcast complete: %d successful, %d failed\n", okSign, res.Sent, res.Failed)
}

func (c *Console) errorf(format string, args ...any) {
	fmt.Fprintf(c.out, "[%s] %s\n", errSign, fmt.Sprintf(format, args...))
}

// formatUptime renders a duration as "1d 2h 3m 4s".
func formatUptime(d time.Duration) string {
	total := int(d.Seconds())
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	seconds := total % 60
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}
