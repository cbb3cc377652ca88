package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sportbook-io/sportbook-cli/internal/catalog"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/sportbook-io/sportbook-cli/internal/sched"
	"github.com/sportbook-io/sportbook-cli/internal/tui"
	"github.com/spf13/cobra"
)

var BrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse activities interactively",
	Long: `Open an interactive catalog browser. Type to search, cycle the sport
and location filters with Tab and Shift+Tab, and pick an activity with
Enter to get the matching reserve command.

Searches are sent after a short pause in typing, and a response that
arrives after a newer search has been issued is discarded.
`,
	RunE: runBrowse,
}

// browser is the shared state behind the browse model. The model is
// copied by bubbletea on every update, so the fetch plumbing lives
// behind a pointer.
type browser struct {
	app       *App
	viewer    model.User
	debouncer *sched.Debouncer
	latest    *sched.Latest
	send      func(tea.Msg)
	sports    []string
	locations []string
}

// resultsMsg carries a completed fetch back into the update loop.
type resultsMsg struct {
	ticket     uint64
	activities []model.Activity
}

type browseModel struct {
	b *browser

	search      string
	sportIdx    int
	locationIdx int

	activities []model.Activity
	cursor     int
	loading    bool

	picked *model.Activity
}

func newBrowseModel(b *browser) browseModel {
	return browseModel{b: b, loading: true}
}

func (m browseModel) Init() tea.Cmd {
	m.fetch()
	return nil
}

// fetch issues a catalog query for the current filters. The ticket
// taken before the request lets the update loop drop responses that
// were overtaken by a newer query.
func (m browseModel) fetch() {
	ticket := m.b.latest.Next()
	filters := catalog.Filters{
		Sport:    m.b.sports[m.sportIdx],
		Location: m.b.locations[m.locationIdx],
		Search:   m.search,
	}
	go func() {
		activities := m.b.app.Catalog.List(commandContext(), filters, m.b.viewer)
		m.b.send(resultsMsg{ticket: ticket, activities: activities})
	}()
}

// refetch schedules a fetch after the typing quiet window.
func (m browseModel) refetch() {
	m.b.debouncer.Call(m.fetch)
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsMsg:
		if !m.b.latest.IsLatest(msg.ticket) {
			return m, nil
		}
		m.activities = msg.activities
		m.loading = false
		if m.cursor >= len(m.activities) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.b.debouncer.Stop()
			return m, tea.Quit
		case "enter":
			if len(m.activities) > 0 {
				a := m.activities[m.cursor]
				m.picked = &a
			}
			m.b.debouncer.Stop()
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.activities)-1 {
				m.cursor++
			}
		case "tab":
			m.sportIdx = (m.sportIdx + 1) % len(m.b.sports)
			m.loading = true
			m.refetch()
		case "shift+tab":
			m.locationIdx = (m.locationIdx + 1) % len(m.b.locations)
			m.loading = true
			m.refetch()
		case "backspace":
			if m.search != "" {
				runes := []rune(m.search)
				m.search = string(runes[:len(runes)-1])
				m.loading = true
				m.refetch()
			}
		default:
			if len(msg.Runes) == 1 {
				m.search += string(msg.Runes)
				m.loading = true
				m.refetch()
			}
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Browse activities"))
	b.WriteString("\n\n")

	b.WriteString(tui.PromptStyle.Render("Search:"))
	b.WriteString(" ")
	if m.search == "" {
		b.WriteString(tui.PlaceholderStyle.Render("type to search"))
	} else {
		b.WriteString(tui.InputStyle.Render(m.search))
	}
	b.WriteString(tui.CursorStyle.Render("▌"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Sport: %s  Location: %s\n\n",
		tui.SelectedStyle.Render(m.b.sports[m.sportIdx]),
		tui.SelectedStyle.Render(m.b.locations[m.locationIdx])))

	switch {
	case m.loading:
		b.WriteString(tui.MutedStyle.Render("Searching..."))
		b.WriteString("\n")
	case len(m.activities) == 0:
		b.WriteString(tui.MutedStyle.Render("No activities match."))
		b.WriteString("\n")
	default:
		for i, a := range m.activities {
			line := fmt.Sprintf("#%d %s  %s %s  %s  [%s]",
				a.ID, a.Sport, a.Date.Format("Mon 2 Jan"), joinTimes(a.Times),
				a.Location, a.BookableBy(m.b.viewer).String())
			if i == m.cursor {
				b.WriteString(tui.SelectedStyle.Render("▸ " + line))
			} else {
				b.WriteString(tui.UnselectedStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(tui.MutedStyle.Render("type search • tab sport • shift+tab location • ↑/↓ move • enter pick • esc quit"))
	b.WriteString("\n")

	return b.String()
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !tui.IsTTY() {
		return fmt.Errorf("browse needs an interactive terminal; use: sportbook activities")
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	viewer, err := app.Viewer()
	if err != nil {
		return err
	}

	ctx := commandContext()
	sports := app.Catalog.Sports(ctx)
	locations := app.Catalog.Locations(ctx)
	if len(sports) == 0 || len(locations) == 0 {
		return fmt.Errorf("backend unreachable at %s", app.API.BaseURL())
	}

	b := &browser{
		app:       app,
		viewer:    viewer,
		debouncer: sched.NewDebouncer(sched.TimerScheduler{}, sched.DefaultQuietWindow),
		latest:    &sched.Latest{},
		sports:    sports,
		locations: locations,
	}

	p := tea.NewProgram(newBrowseModel(b), tea.WithAltScreen())
	b.send = p.Send

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("browse error: %w", err)
	}

	result, ok := finalModel.(browseModel)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}
	if result.picked != nil {
		a := *result.picked
		fmt.Println()
		printActivity(a, viewer)
		fmt.Println()
		fmt.Println(tui.RenderInfo(fmt.Sprintf("Book it with: sportbook reserve %d", a.ID)))
	}
	return nil
}
