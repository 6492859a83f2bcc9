package console

// BroadcastTarget names the channel chosen to receive a broadcast in one
// guild. An empty ChannelID means no sendable channel was found there.
type BroadcastTarget struct {
	GuildID   string
	GuildName string
	ChannelID string
}

// Broadcast sends text to every target, counting outcomes. A failure in one
// guild never aborts the rest: guilds without a sendable channel and guilds
// whose send errors are both tallied as failures.
func Broadcast(targets []BroadcastTarget, text string, send func(channelID, text string) error) BroadcastResult {
	var res BroadcastResult
	for _, t := range targets {
		if t.ChannelID == "" {
			res.Failed++
			continue
		}
		if err := send(t.ChannelID, text); err != nil {
			res.Failed++
			continue
		}
		res.Sent++
	}
	return res
}
