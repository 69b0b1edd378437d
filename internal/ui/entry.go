package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
)

const (
	focusColors = iota
	focusWallet
	focusJoin
	focusCount
)

const (
	gridColumns     = 2
	maxWalletLength = 64
	walletHint      = "4Xz1ACZ6q...HSjAv or leave empty for random"
)

// joinRequest is emitted when the visitor confirms the entry form.
type joinRequest struct {
	color  string
	wallet string
}

// entryView collects a color and an optional wallet identifier.
type entryView struct {
	colors   []bubble.EntryColor
	cursor   int
	selected int
	wallet   []rune
	focus    int
	warning  string
}

func newEntryView() entryView {
	return entryView{colors: bubble.EntryColors, selected: -1}
}

// preselect marks the given color as chosen, if it is on offer.
func (v *entryView) preselect(color string) {
	for i, c := range v.colors {
		if strings.EqualFold(c.Value, color) || strings.EqualFold(c.Name, color) {
			v.cursor, v.selected = i, i
			return
		}
	}
}

func (v entryView) selectedColor() string {
	if v.selected < 0 || v.selected >= len(v.colors) {
		return ""
	}
	return v.colors[v.selected].Value
}

func (v entryView) Update(msg tea.KeyMsg) (entryView, tea.Cmd) {
	switch msg.String() {
	case "tab":
		v.focus = (v.focus + 1) % focusCount
		return v, nil
	case "shift+tab":
		v.focus = (v.focus + focusCount - 1) % focusCount
		return v, nil
	}

	switch v.focus {
	case focusColors:
		return v.colorKey(msg)
	case focusWallet:
		return v.walletKey(msg)
	case focusJoin:
		switch msg.String() {
		case "enter", " ":
			return v.join()
		case "up", "k":
			v.focus = focusWallet
		}
	}
	return v, nil
}

func (v entryView) colorKey(msg tea.KeyMsg) (entryView, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if v.cursor%gridColumns > 0 {
			v.cursor--
		}
	case "right", "l":
		if v.cursor%gridColumns < gridColumns-1 && v.cursor+1 < len(v.colors) {
			v.cursor++
		}
	case "up", "k":
		if v.cursor-gridColumns >= 0 {
			v.cursor -= gridColumns
		}
	case "down", "j":
		if v.cursor+gridColumns < len(v.colors) {
			v.cursor += gridColumns
		} else {
			v.focus = focusWallet
		}
	case "enter", " ":
		v.selected = v.cursor
		v.warning = ""
	}
	return v, nil
}

func (v entryView) walletKey(msg tea.KeyMsg) (entryView, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyDown:
		v.focus = focusJoin
	case tea.KeyUp:
		v.focus = focusColors
	case tea.KeyBackspace:
		if len(v.wallet) > 0 {
			v.wallet = v.wallet[:len(v.wallet)-1]
		}
	case tea.KeyCtrlU:
		v.wallet = v.wallet[:0]
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if len(v.wallet) >= maxWalletLength {
				break
			}
			if r > ' ' && r != 0x7f {
				v.wallet = append(v.wallet, r)
			}
		}
	}
	return v, nil
}

func (v entryView) join() (entryView, tea.Cmd) {
	color := v.selectedColor()
	if color == "" {
		v.warning = "pick a bubble color first"
		v.focus = focusColors
		return v, nil
	}
	req := joinRequest{color: color, wallet: strings.TrimSpace(string(v.wallet))}
	return v, func() tea.Msg { return req }
}

func (v entryView) View(width, height int) string {
	var b strings.Builder

	b.WriteString(GradientText("BubbleWorld", titleStart, titleEnd) + "\n")
	b.WriteString(subtitleStyle.Render("Choose your bubble and join the floating universe") + "\n\n")

	b.WriteString(labelStyle.Render("Choose Your Bubble Color") + "\n")
	b.WriteString(v.viewGrid() + "\n\n")

	b.WriteString(labelStyle.Render("Wallet Address (Optional)") + "\n")
	b.WriteString(v.viewInput() + "\n\n")

	b.WriteString(v.viewButton() + "\n")
	if v.warning != "" {
		b.WriteString(warnStyle.Render(v.warning) + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("Your bubble will float among others in the shared space") + "\n\n")
	b.WriteString(keyHint("tab", "focus", "←↑↓→", "move", "enter", "select", "ctrl+c", "quit"))

	panel := panelStyle.Render(b.String())
	if width <= 0 || height <= 0 {
		return panel
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

func (v entryView) viewGrid() string {
	var rows []string
	for start := 0; start < len(v.colors); start += gridColumns {
		var cells []string
		for i := start; i < start+gridColumns && i < len(v.colors); i++ {
			cells = append(cells, v.viewSwatch(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v entryView) viewSwatch(i int) string {
	c := v.colors[i]
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Light)).Render("◖") +
		lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dark)).Render("◗")
	name := c.Name
	if i == v.selected {
		name = "✓ " + name
	}

	style := swatchStyle.BorderForeground(idleBorder)
	nameStyle := mutedStyle
	if i == v.selected {
		style = style.BorderForeground(lipgloss.Color(c.Value))
		nameStyle = labelStyle
	}
	if v.focus == focusColors && i == v.cursor {
		style = style.BorderForeground(focusBorder)
		nameStyle = labelStyle
	}
	return style.Render(dot + " " + nameStyle.Render(name))
}

func (v entryView) viewInput() string {
	style := inputStyle.BorderForeground(idleBorder)
	text := mutedStyle.Render(walletHint)
	if len(v.wallet) > 0 {
		text = labelStyle.Render(string(v.wallet))
	}
	if v.focus == focusWallet {
		style = style.BorderForeground(focusBorder)
		if len(v.wallet) == 0 {
			text = labelStyle.Render("_") + mutedStyle.Render(walletHint)
		} else {
			text += labelStyle.Render("_")
		}
	}
	return style.Render(text)
}

func (v entryView) viewButton() string {
	label := "Join the Bubble Universe"
	if v.focus == focusJoin {
		label = "▸ " + label + " ◂"
	}
	if v.selectedColor() == "" {
		return buttonDisabledStyle.Render(label)
	}
	return buttonStyle.Render(label)
}
