// Package discord sends capture announcements to a discord channel.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"github.com/leighmacdonald/capwatch/internal/log"
)

var (
	ErrDiscordConfig   = errors.New("discord token not set")
	ErrDiscordCreate   = errors.New("failed to create discord session")
	ErrDiscordOpen     = errors.New("failed to open discord session")
	ErrNotReady        = errors.New("discord session not ready")
	ErrChannelNotFound = errors.New("discord channel not found")
	ErrMessageSend     = errors.New("failed to send discord message")
)

// Bot owns the gateway session used to post messages.
type Bot struct {
	session *discordgo.Session
	isReady atomic.Bool
}

// New creates the session without connecting it.
func New(token string) (*Bot, error) {
	if token == "" {
		return nil, ErrDiscordConfig
	}

	session, errNewSession := discordgo.New("Bot " + token)
	if errNewSession != nil {
		return nil, errors.Join(errNewSession, ErrDiscordCreate)
	}

	bot := &Bot{session: session}

	session.UserAgent = "capwatch (https://github.com/leighmacdonald/capwatch)"
	session.Identify.Intents |= discordgo.IntentsGuilds
	session.Identify.Intents |= discordgo.IntentsGuildMessages
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onConnect)
	session.AddHandler(bot.onDisconnect)

	return bot, nil
}

// Start opens the gateway connection. Messages can be sent once the session reports ready.
func (bot *Bot) Start(_ context.Context) error {
	if errSessionOpen := bot.session.Open(); errSessionOpen != nil {
		return errors.Join(errSessionOpen, ErrDiscordOpen)
	}

	return nil
}

func (bot *Bot) Shutdown() {
	log.Closer(bot.session)
}

func (bot *Bot) onReady(session *discordgo.Session, _ *discordgo.Ready) {
	slog.Info("Discord state changed", slog.String("state", "ready"), slog.String("username",
		fmt.Sprintf("%v#%v", session.State.User.Username, session.State.User.Discriminator)))

	bot.isReady.Store(true)
}

func (bot *Bot) onConnect(_ *discordgo.Session, _ *discordgo.Connect) {
	slog.Info("Discord state changed", slog.String("state", "connected"))
}

func (bot *Bot) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	bot.isReady.Store(false)

	slog.Info("Discord state changed", slog.String("state", "disconnected"))
}

// Send posts msg to channelID. The channel is looked up in the session cache first and
// then fetched over REST.
func (bot *Bot) Send(channelID string, msg *discordgo.MessageSend) error {
	if !bot.isReady.Load() {
		return ErrNotReady
	}

	if _, errState := bot.session.State.Channel(channelID); errState != nil {
		if _, errChannel := bot.session.Channel(channelID); errChannel != nil {
			return errors.Join(errChannel, fmt.Errorf("%w: %s", ErrChannelNotFound, channelID))
		}
	}

	if _, errSend := bot.session.ChannelMessageSendComplex(channelID, msg); errSend != nil {
		return errors.Join(errSend, ErrMessageSend)
	}

	return nil
}
