// Package gang defines the fixed set of factions that take part in captures along with their
// display attributes.
package gang

import "strings"

// Gang is a lower-cased faction identifier.
type Gang string

const (
	Ballas    Gang = "ballas"
	Marabunta Gang = "marabunta"
	Families  Gang = "families"
	Vagos     Gang = "vagos"
	Bloods    Gang = "bloods"
)

const (
	DefaultAttackerEmoji = "⚔️"
	DefaultDefenderEmoji = "🛡️"
	DefaultColour        = 0x800080
)

// Style is the emoji and accent colour used when displaying a gang.
type Style struct {
	Emoji  string
	Colour int
}

var styles = map[Gang]Style{ //nolint:gochecknoglobals
	Ballas:    {Emoji: "🟪", Colour: 0x800080},
	Families:  {Emoji: "🟢", Colour: 0x2ECC71},
	Marabunta: {Emoji: "🟦", Colour: 0x3498DB},
	Bloods:    {Emoji: "🩸", Colour: 0xE74C3C},
	Vagos:     {Emoji: "🟨", Colour: 0xF1C40F},
}

// Known returns the fixed gang set in a stable order.
func Known() []Gang {
	return []Gang{Ballas, Marabunta, Families, Vagos, Bloods}
}

// New normalises free text input into a Gang. The result is not guaranteed to be a known gang.
func New(value string) Gang {
	return Gang(strings.ToLower(strings.TrimSpace(value)))
}

func (g Gang) String() string {
	return string(g)
}

// Display returns the upper-cased form used in pages and messages.
func (g Gang) Display() string {
	return strings.ToUpper(string(g))
}

func (g Gang) Valid() bool {
	_, found := styles[g]

	return found
}

// AttackerStyle returns the style for g, falling back to the attacker defaults.
func (g Gang) AttackerStyle() Style {
	return g.style(DefaultAttackerEmoji)
}

// DefenderStyle returns the style for g, falling back to the defender defaults.
func (g Gang) DefenderStyle() Style {
	return g.style(DefaultDefenderEmoji)
}

func (g Gang) style(defaultEmoji string) Style {
	if style, found := styles[g]; found {
		return style
	}

	return Style{Emoji: defaultEmoji, Colour: DefaultColour}
}
