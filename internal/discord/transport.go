package discord

import (
	"github.com/bwmarrin/discordgo"

	"butler-bot/internal/session"
)

// interactionTransport delivers session replies through the interaction
// response endpoints.
type interactionTransport struct {
	s *discordgo.Session
	i *discordgo.Interaction
}

func newInteractionTransport(s *discordgo.Session, i *discordgo.Interaction) session.Transport {
	return &interactionTransport{s: s, i: i}
}

func (t *interactionTransport) Respond(content string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return t.s.InteractionRespond(t.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func (t *interactionTransport) Edit(content string) error {
	_, err := t.s.InteractionResponseEdit(t.i, &discordgo.WebhookEdit{
		Content: &content,
	})
	return err
}

func (t *interactionTransport) Followup(content string, ephemeral bool) error {
	params := &discordgo.WebhookParams{Content: content}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	_, err := t.s.FollowupMessageCreate(t.i, true, params)
	return err
}
