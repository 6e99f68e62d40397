// Package page renders the static capture summary pages that chat notifications link to.
package page

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/leighmacdonald/capwatch/internal/gang"
)

var (
	ErrRender = errors.New("failed to render capture page")
	ErrWrite  = errors.New("failed to write capture page")
)

//go:embed page.gohtml
var templateFS embed.FS

var (
	pageTemplate = template.Must(template.ParseFS(templateFS, "page.gohtml")) //nolint:gochecknoglobals
	columns      = []string{"Nickname", "Hits", "Headshots", "Headshot %", "Damage"}   //nolint:gochecknoglobals
)

// Page holds everything shown on a capture page.
type Page struct {
	Gang1  gang.Gang
	Gang2  gang.Gang
	Start  string
	Weapon string
	// Winner is empty until one is declared.
	Winner gang.Gang
}

// Title is shown in both the document title and the page header.
func (p Page) Title() string {
	return fmt.Sprintf("%s vs %s • Capture", p.Gang1.Display(), p.Gang2.Display())
}

type side struct {
	Gang  gang.Gang
	Name  string
	Emoji string
}

type view struct {
	Title    string
	Attacker side
	Defender side
	Winner   *side
	Start    string
	Weapon   string
	Sides    []side
	Columns  []string
}

func newSide(g gang.Gang, style gang.Style) side {
	return side{Gang: g, Name: g.Display(), Emoji: style.Emoji}
}

// Render produces the complete html document for p.
func Render(p Page) ([]byte, error) {
	attacker := newSide(p.Gang1, p.Gang1.AttackerStyle())
	defender := newSide(p.Gang2, p.Gang2.DefenderStyle())

	data := view{
		Title:    p.Title(),
		Attacker: attacker,
		Defender: defender,
		Start:    p.Start,
		Weapon:   p.Weapon,
		Sides:    []side{attacker, defender},
		Columns:  columns,
	}

	if p.Winner != "" {
		winner := newSide(p.Winner, p.Winner.AttackerStyle())
		data.Winner = &winner
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Join(err, ErrRender)
	}

	return buf.Bytes(), nil
}

// FileName derives the stable page file name for a capture. It is computed once when the capture
// starts and reused for every later render of the same capture.
func FileName(startedOn time.Time, gang1 gang.Gang, gang2 gang.Gang) string {
	return fmt.Sprintf("capture-%d-%s-vs-%s.html", startedOn.UnixMilli(), fileSafe(gang1), fileSafe(gang2))
}

func fileSafe(g gang.Gang) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, g.String())
}
