package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# Golf Duel

## Getting around

| Key | Action |
|-----|--------|
| 1-6 | jump to a sidebar entry |
| tab | move focus between sidebar and content |
| ↑/↓ enter | pick a sidebar entry when it has focus |
| ctrl+b | collapse or expand the sidebar |
| t | switch between dark and light |
| ? | toggle this help |
| q | quit |

## Playing a round

Open **New Round**, pick a club, mark players with *space* and press *enter*.
On the scorecard, *←/→* choose the hole and *↑/↓* the player.
Type *1*-*9* for strokes (*0* is ten), *+* and *-* adjust, *backspace* clears.
Press *f* to finish and save, or *x* to abandon without saving.

While a round is open the sidebar still works: the selected page comes back
once the round is finished.

## Managing data

- **Players**: *a* add, *r* rename, *d* delete.
- **Clubs**: *a* add, *←/→* pick a hole, *p* set its par, *d* delete.
- **History**: *enter* shows the scorecard, *d* deletes the round.
`

type helpCache struct {
	width int
	style string
	out   string
}

func (c *helpCache) render(width int, style string) string {
	if c.out != "" && c.width == width && c.style == style {
		return c.out
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(max(20, width-4)))
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	c.width, c.style, c.out = width, style, strings.TrimSpace(out)
	return c.out
}
