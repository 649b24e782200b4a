// Package tui implements the interactive vibeui theme browser.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/vibeui/internal/render"
	"github.com/opencode-ai/vibeui/internal/resolve"
	"github.com/opencode-ai/vibeui/internal/theme"
	"github.com/opencode-ai/vibeui/internal/tui/components"
	"github.com/opencode-ai/vibeui/internal/tui/styles"
)

// Config configures the browser.
type Config struct {
	Records  []*theme.Record
	Renderer render.Renderer
	// Palette names the chrome palette, see styles.Themes.
	Palette string
}

// Run launches the browser and blocks until the user quits.
func Run(cfg Config) error {
	program := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type model struct {
	width  int
	height int
	styles styles.Styles

	renderer render.Renderer
	records  []*theme.Record
	visible  []*theme.Record
	cursor   int

	query     string
	searching bool
	pane      paneID
}

const (
	minWidth  = 60
	minHeight = 15
)

type paneID int

const (
	paneSwatch paneID = iota
	paneCSS
	paneSample
)

func nextPane(current paneID) paneID {
	switch current {
	case paneSwatch:
		return paneCSS
	case paneCSS:
		return paneSample
	default:
		return paneSwatch
	}
}

func newModel(cfg Config) model {
	palette, ok := styles.Themes[cfg.Palette]
	if !ok {
		palette = styles.DefaultTheme
	}
	m := model{
		styles:   styles.BuildStyles(palette),
		renderer: cfg.Renderer,
		records:  cfg.Records,
	}
	m.applyFilter()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case "/":
			m.searching = true
		case "tab":
			m.pane = nextPane(m.pane)
		case "c":
			m.pane = paneCSS
		case "esc":
			if m.query != "" {
				m.query = ""
				m.applyFilter()
			}
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
			m.applyFilter()
		}
	case tea.KeySpace:
		m.query += " "
		m.applyFilter()
	case tea.KeyRunes:
		m.query += string(msg.Runes)
		m.applyFilter()
	}
	return m, nil
}

// applyFilter ranks records by intent score for the current query. Short
// queries that yield no keywords fall back to a prefix match on id and name.
func (m *model) applyFilter() {
	m.cursor = 0
	query := strings.TrimSpace(m.query)
	if query == "" {
		m.visible = m.records
		return
	}

	words := resolve.Tokenize(query)
	if len(words) == 0 {
		prefix := strings.ToLower(query)
		m.visible = nil
		for _, rec := range m.records {
			if strings.HasPrefix(rec.ID, prefix) || strings.HasPrefix(strings.ToLower(rec.Name), prefix) {
				m.visible = append(m.visible, rec)
			}
		}
		return
	}

	type scored struct {
		rec   *theme.Record
		score int
	}
	var hits []scored
	for _, rec := range m.records {
		if s := resolve.Score(rec, words); s > 0 {
			hits = append(hits, scored{rec: rec, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	m.visible = make([]*theme.Record, len(hits))
	for i, h := range hits {
		m.visible[i] = h.rec
	}
}

func (m model) selected() *theme.Record {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", strings.Join(m.smallViewLines(), "\n"))
		}
	}

	lines := []string{
		m.styles.Title.Render(fmt.Sprintf("vibeui themes (%d/%d)", len(m.visible), len(m.records))),
		m.searchLine(),
		"",
	}
	lines = append(lines, m.listLines()...)
	lines = append(lines, "")
	lines = append(lines, m.detailLines()...)
	lines = append(lines, "", m.styles.Muted.Render("Shortcuts: q quit | / search | j/k move | tab pane | c css | esc clear"))

	return fmt.Sprintf("%s\n", strings.Join(lines, "\n"))
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press q to quit."),
	}
}

func (m model) searchLine() string {
	switch {
	case m.searching:
		return m.styles.Focus.Render("/" + m.query + "_")
	case m.query != "":
		return m.styles.Muted.Render("filter: " + m.query)
	default:
		return m.styles.Muted.Render("press / to search by name or intent")
	}
}

func (m model) listLines() []string {
	switch {
	case len(m.records) == 0:
		return []string{components.EmptyCatalog().Render(m.styles)}
	case len(m.visible) == 0:
		return []string{components.EmptyFiltered(strings.TrimSpace(m.query)).Render(m.styles)}
	}
	lines := make([]string, 0, len(m.visible))
	for i, rec := range m.visible {
		label := fmt.Sprintf("%-16s %s", rec.ID, m.styles.Muted.Render(strings.Join(rec.Tags, ", ")))
		if i == m.cursor {
			lines = append(lines, m.styles.Selected.Render("> "+rec.ID)+" "+m.styles.Muted.Render(strings.Join(rec.Tags, ", ")))
			continue
		}
		lines = append(lines, "  "+label)
	}
	return lines
}

func (m model) detailLines() []string {
	rec := m.selected()
	if rec == nil {
		return nil
	}

	lines := []string{m.styles.Accent.Render(rec.Name)}
	if rec.Description != "" {
		lines = append(lines, m.styles.Text.Render(rec.Description))
	}
	lines = append(lines, "")

	switch m.pane {
	case paneCSS:
		lines = append(lines, m.renderer.CSS(rec))
	case paneSample:
		lines = append(lines, styles.Sample(rec))
	default:
		lines = append(lines, styles.Swatch(rec, m.styles.Muted))
	}
	return lines
}
