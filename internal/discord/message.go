package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/leighmacdonald/capwatch/internal/capture"
	embed "github.com/leighmacdonald/discordgo-embed"
)

const (
	captureDescription = "დაიწყოო!"
	fieldStart         = "⏰ დაწყების დრო"
	fieldWeapon        = "🔫 იარაღი"
	fieldAttacker      = "⚔️ შეტევა"
	fieldDefender      = "🛡️ დაცვა"
	siteButtonLabel    = "გადასვლა საიტზე"
	footerText         = "Capture Bot • Stay alert!"
)

// CaptureStartedMessage builds the announcement embed and the link button pointing at the capture page.
func CaptureStartedMessage(state capture.State, siteURL string) *discordgo.MessageSend {
	attacker := state.Gang1.AttackerStyle()
	defender := state.Gang2.DefenderStyle()

	msg := embed.NewEmbed().
		SetColor(attacker.Colour).
		SetTitle(fmt.Sprintf("%s %s vs %s %s", attacker.Emoji, state.Gang1.Display(), defender.Emoji, state.Gang2.Display())).
		SetDescription(captureDescription).
		SetFooter(footerText)

	msg.AddField(fieldStart, bold(state.Start)).MakeFieldInline()
	msg.AddField(fieldWeapon, bold(state.Weapon)).MakeFieldInline()
	msg.AddField(fieldAttacker, attacker.Emoji+" "+bold(state.Gang1.Display())).MakeFieldInline()
	msg.AddField(fieldDefender, defender.Emoji+" "+bold(state.Gang2.Display())).MakeFieldInline()

	sentOn := state.StartedOn
	if sentOn.IsZero() {
		sentOn = time.Now()
	}

	msg.Timestamp = sentOn.Format(time.RFC3339)

	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{msg.MessageEmbed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label: siteButtonLabel,
						Style: discordgo.LinkButton,
						URL:   siteURL,
					},
				},
			},
		},
	}
}

func bold(value string) string {
	return "**" + value + "**"
}
