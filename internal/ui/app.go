package ui

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
	"github.com/ZaydAbdullayev/bubbles/internal/field"
	"github.com/ZaydAbdullayev/bubbles/internal/store"
)

const (
	stateEntry = iota
	stateField
)

// Options configure the interactive program.
type Options struct {
	Field field.Options
	Seed  int64
	// Store persists the field between visits; nil disables persistence.
	Store *store.Store
	// Color and Wallet prefill the entry screen. A valid Color skips it.
	Color  string
	Wallet string
	Now    func() time.Time
}

// App switches between the entry screen and the bubble field.
type App struct {
	state    int
	entry    entryView
	field    fieldView
	fieldGen int
	gen      *bubble.Generator
	opts     field.Options
	store    *store.Store
	now      func() time.Time
	autoJoin bool
	width    int
	height   int
}

func NewApp(opts Options) App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	entry := newEntryView()
	entry.wallet = []rune(opts.Wallet)
	autoJoin := false
	if opts.Color != "" {
		entry.preselect(opts.Color)
		autoJoin = entry.selectedColor() != ""
	}
	return App{
		state:    stateEntry,
		entry:    entry,
		gen:      bubble.NewGenerator(opts.Seed),
		opts:     opts.Field,
		store:    opts.Store,
		now:      now,
		autoJoin: autoJoin,
	}
}

func (a App) Init() tea.Cmd {
	if a.autoJoin {
		_, cmd := a.entry.join()
		return cmd
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.field.width, a.field.height = msg.Width, msg.Height
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || (msg.String() == "q" && a.canQuit()) {
			a.leaveField()
			return a, tea.Quit
		}
		if a.state == stateEntry {
			var cmd tea.Cmd
			a.entry, cmd = a.entry.Update(msg)
			return a, cmd
		}
		var cmd tea.Cmd
		a.field, cmd = a.field.Update(msg)
		return a, cmd
	case joinRequest:
		return a.enterField(msg)
	case backRequest:
		a.leaveField()
		return a, nil
	case stepMsg, growMsg, trimMsg, clearMsg:
		// ticks from a retired field are dropped without re-arming
		if a.state != stateField || !a.field.owns(msg) {
			return a, nil
		}
		var cmd tea.Cmd
		a.field, cmd = a.field.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) canQuit() bool {
	return a.state == stateField || a.entry.focus != focusWallet
}

func (a App) enterField(req joinRequest) (App, tea.Cmd) {
	if a.state == stateField {
		return a, nil
	}
	now := a.now()
	wallet := req.wallet
	if wallet == "" {
		wallet = a.gen.ShortHexWallet()
	}
	self := a.gen.Generate(now, bubble.WithWallet(wallet), bubble.WithColor(req.color))

	var prior []bubble.Bubble
	if a.store != nil {
		prior = a.store.LoadPrior()
	}

	f := field.New(a.opts, a.gen)
	f.Mount(now, prior, self)

	a.fieldGen++
	a.field = newFieldView(a.fieldGen, f, self.Key, a.width, a.height)
	a.state = stateField
	log.Printf("field %d: mounted with %d bubbles (%d prior), joined as %s", a.fieldGen, f.Len(), len(prior), bubble.FormatWallet(wallet))
	return a, a.field.Init()
}

// leaveField retires the active field: its generation is bumped so pending
// ticks are ignored, and the trimmed collection is saved for the next visit.
func (a *App) leaveField() {
	if a.state != stateField {
		return
	}
	a.state = stateEntry
	a.fieldGen++

	if a.store == nil {
		return
	}
	snap := field.Trim(a.field.field.Snapshot(), a.opts.MaxBubbles)
	if err := a.store.SavePrior(snap); err != nil {
		log.Printf("saving field state: %v", err)
		return
	}
	log.Printf("field %d: saved %d bubbles", a.field.gen, len(snap))
}

func (a App) View() string {
	if a.state == stateField {
		return a.field.View()
	}
	return a.entry.View(a.width, a.height)
}

// Run starts the interactive program on the alternate screen.
func Run(opts Options) error {
	_, err := tea.NewProgram(NewApp(opts), tea.WithAltScreen()).Run()
	return err
}
