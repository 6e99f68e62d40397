package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/leighmacdonald/capwatch/internal/capture"
)

type Sender interface {
	Send(channelID string, msg *discordgo.MessageSend) error
}

// CaptureNotifier posts capture announcements to a single channel.
type CaptureNotifier struct {
	sender    Sender
	channelID string
}

func NewCaptureNotifier(sender Sender, channelID string) CaptureNotifier {
	return CaptureNotifier{sender: sender, channelID: channelID}
}

func (n CaptureNotifier) CaptureStarted(_ context.Context, state capture.State, siteURL string) error {
	return n.sender.Send(n.channelID, CaptureStartedMessage(state, siteURL))
}
