package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Discord caps message bodies at 2000 characters.
const discordMessageLimit = 2000

// DiscordNotifier posts monitor alerts to a Discord channel.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordNotifier opens a Discord session for the alert channel.
func NewDiscordNotifier(token, channelID string) (*DiscordNotifier, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %v", err)
	}
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open Discord session: %v", err)
	}
	return &DiscordNotifier{session: session, channelID: channelID}, nil
}

// Notify sends an alert, chunked to fit Discord's message limit.
func (d *DiscordNotifier) Notify(ctx context.Context, message string) error {
	for _, chunk := range SplitMessage(message, discordMessageLimit) {
		if _, err := d.session.ChannelMessageSend(d.channelID, chunk); err != nil {
			return fmt.Errorf("%w: discord send failed: %v", ErrUpstream, err)
		}
	}
	return nil
}

// Close shuts down the Discord session.
func (d *DiscordNotifier) Close() error {
	return d.session.Close()
}
