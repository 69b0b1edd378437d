package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
	"github.com/ZaydAbdullayev/bubbles/internal/field"
)

// Tick messages carry the generation of the view that armed them. A view
// only accepts, and re-arms, messages from its own generation.
type (
	stepMsg struct {
		gen int
		at  time.Time
	}
	growMsg struct {
		gen int
		at  time.Time
	}
	trimMsg struct {
		gen int
	}
	clearMsg struct {
		gen int
		key string
	}
)

type backRequest struct{}

const (
	headerRows = 2
	footerRows = 1
	// frames per half bounce of a highlighted bubble
	bounceFrames = 3
)

// fieldView renders one mounted field and drives it from tick messages.
type fieldView struct {
	gen    int
	field  *field.Field
	opts   field.Options
	self   string
	focus  int
	frame  int
	width  int
	height int
}

func newFieldView(gen int, f *field.Field, self string, width, height int) fieldView {
	return fieldView{
		gen:    gen,
		field:  f,
		opts:   f.Options(),
		self:   self,
		focus:  -1,
		width:  width,
		height: height,
	}
}

func (v fieldView) Init() tea.Cmd {
	return tea.Batch(v.stepCmd(), v.growCmd(), v.trimCmd())
}

func (v fieldView) stepCmd() tea.Cmd {
	gen := v.gen
	return tea.Tick(v.opts.Tick, func(t time.Time) tea.Msg { return stepMsg{gen: gen, at: t} })
}

func (v fieldView) growCmd() tea.Cmd {
	gen := v.gen
	return tea.Tick(v.opts.Grow, func(t time.Time) tea.Msg { return growMsg{gen: gen, at: t} })
}

func (v fieldView) trimCmd() tea.Cmd {
	gen := v.gen
	return tea.Tick(v.opts.Trim, func(time.Time) tea.Msg { return trimMsg{gen: gen} })
}

func (v fieldView) clearCmd(key string) tea.Cmd {
	gen := v.gen
	return tea.Tick(v.opts.Highlight, func(time.Time) tea.Msg { return clearMsg{gen: gen, key: key} })
}

// owns reports whether a tick message belongs to this view.
func (v fieldView) owns(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case stepMsg:
		return msg.gen == v.gen
	case growMsg:
		return msg.gen == v.gen
	case trimMsg:
		return msg.gen == v.gen
	case clearMsg:
		return msg.gen == v.gen
	}
	return false
}

func (v fieldView) Update(msg tea.Msg) (fieldView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)
	case stepMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		v.field.Step(msg.at)
		v.frame++
		return v, v.stepCmd()
	case growMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		b := v.field.Grow(msg.at)
		log.Printf("field %d: new bubble %s (%s), population %d", v.gen, b.Key, bubble.FormatWallet(b.Wallet), v.field.Len())
		return v, tea.Batch(v.growCmd(), v.clearCmd(b.Key))
	case clearMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		v.field.ClearHighlight(msg.key)
		return v, nil
	case trimMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		if dropped := v.field.Trim(); dropped > 0 {
			log.Printf("field %d: trimmed %d bubbles, population %d", v.gen, dropped, v.field.Len())
			// focus follows its bubble; it clears if that bubble was dropped
			v.focus -= dropped
			if v.focus < 0 {
				v.focus = -1
			}
		}
		return v, v.trimCmd()
	}
	return v, nil
}

func (v fieldView) handleKey(msg tea.KeyMsg) (fieldView, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "backspace":
		return v, func() tea.Msg { return backRequest{} }
	case "tab":
		if n := v.field.Len(); n > 0 {
			v.focus = (v.focus + 1) % n
		}
	case "shift+tab":
		if n := v.field.Len(); n > 0 {
			if v.focus <= 0 {
				v.focus = n - 1
			} else {
				v.focus--
			}
		}
	case "y":
		v.focus = v.indexOf(v.self)
	}
	return v, nil
}

func (v fieldView) indexOf(key string) int {
	for i, b := range v.field.Snapshot() {
		if b.Key == key {
			return i
		}
	}
	return -1
}

func (v fieldView) View() string {
	w, h := v.width, v.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}

	header := v.viewHeader(w)
	canvasH := h - headerRows - footerRows
	if canvasH < 3 {
		canvasH = 3
	}

	bubbles := v.field.Snapshot()
	body := ""
	if len(bubbles) == 0 {
		empty := lipgloss.JoinVertical(lipgloss.Center,
			labelStyle.Render("No bubbles yet..."),
			mutedStyle.Render("Be the first to join!"))
		body = lipgloss.Place(w, canvasH, lipgloss.Center, lipgloss.Center, empty)
	} else {
		body = v.draw(bubbles, w, canvasH).String()
	}

	footer := keyHint("esc", "back", "tab", "inspect", "y", "find me", "q", "quit")
	return header + "\n\n" + body + "\n" + footer
}

func (v fieldView) viewHeader(width int) string {
	back := badgeStyle.Render("‹ Back")
	follow := badgeStyle.Render("𝕏 Follow Us")
	count := badgeStyle.Render(fmt.Sprintf("● %d Bubbles", v.field.Len()))
	right := follow + " " + count

	gap := width - lipgloss.Width(back) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return back + strings.Repeat(" ", gap) + right
}

func (v fieldView) draw(bubbles []bubble.Bubble, w, h int) *Canvas {
	c := NewCanvas(w, h)
	highlight := v.field.Highlighted()

	for i, b := range bubbles {
		x, y := c.Project(b.X, b.Y)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Bold(true)
		glyph := '●'
		if b.Key == v.self {
			glyph = '◉'
		}

		if b.Key == highlight {
			if (v.frame/bounceFrames)%2 == 1 {
				y--
			}
			ring := lipgloss.NewStyle().Foreground(lipgloss.Color(Lighten(b.Color, 0.5)))
			c.Set(x-1, y, '(', ring)
			c.Set(x+1, y, ')', ring)
		}
		c.Set(x, y, glyph, style)

		if i == v.focus {
			label := bubble.FormatWallet(b.Wallet)
			lx := x - len([]rune(label))/2
			if lx < 0 {
				lx = 0
			}
			if max := w - len([]rune(label)); lx > max && max >= 0 {
				lx = max
			}
			ly := y + 1
			if ly >= h {
				ly = y - 1
			}
			c.Text(lx, ly, label, tooltipStyle)
		}
	}
	return c
}
