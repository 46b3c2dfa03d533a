package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/storefront/internal/tableview"
)

// emptyText is shown when a table has no rows to draw.
const emptyText = "No data available."

// tableScreen renders a tableview.Controller with bubbles/table.
// Number keys sort by column, f cycles the filter chips, / searches.
type tableScreen[T any] struct {
	ctrl      *tableview.Controller[T]
	table     table.Model
	row       func(T) table.Row
	chips     []string
	chip      int
	search    textinput.Model
	searching bool
}

func newTableScreen[T any](ctrl *tableview.Controller[T], row func(T) table.Row, chips []string) *tableScreen[T] {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search..."
	search.CharLimit = 64

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("255")).
		Background(colorPrimary).
		Bold(true)

	t := table.New(
		table.WithColumns(headers(ctrl.Columns(), ctrl.Snapshot().Sort)),
		table.WithFocused(true),
		table.WithHeight(ctrl.Options().PageSize+1),
	)
	t.SetStyles(s)

	ts := &tableScreen[T]{
		ctrl:   ctrl,
		table:  t,
		row:    row,
		chips:  chips,
		search: search,
	}
	ts.sync()
	return ts
}

// headers builds table columns, marking the sorted one with an arrow.
func headers[T any](cols []tableview.Column[T], spec tableview.SortSpec) []table.Column {
	out := make([]table.Column, len(cols))
	for i, c := range cols {
		title := fmt.Sprintf("%d %s", i+1, c.Label)
		if c.Key == spec.Key {
			if spec.Dir == tableview.Descending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		width := c.Width
		if width <= 0 {
			width = 12
		}
		out[i] = table.Column{Title: title, Width: max(width, len(title))}
	}
	return out
}

// sync copies the controller snapshot into the table widget, keeping the
// cursor row where it still exists.
func (s *tableScreen[T]) sync() { s.syncCursor(s.table.Cursor()) }

// syncTop is sync with the cursor moved to the first row.
func (s *tableScreen[T]) syncTop() { s.syncCursor(0) }

func (s *tableScreen[T]) syncCursor(c int) {
	snap := s.ctrl.Snapshot()
	rows := make([]table.Row, len(snap.Items))
	for i, item := range snap.Items {
		rows[i] = s.row(item)
	}
	s.table.SetColumns(headers(s.ctrl.Columns(), snap.Sort))
	s.table.SetRows(rows)
	// An empty table clamps its cursor to -1; leave it until rows return.
	if len(rows) == 0 {
		return
	}
	s.table.SetCursor(min(max(c, 0), len(rows)-1))
}

// loaded applies a finished load.
func (s *tableScreen[T]) loaded(records []T, err error) {
	s.ctrl.Loaded(records, err)
	s.sync()
}

// setRecords replaces the records without touching the load state.
func (s *tableScreen[T]) setRecords(records []T) {
	s.ctrl.SetRecords(records)
	s.sync()
}

// setLoading marks the table as waiting for data.
func (s *tableScreen[T]) setLoading(loading bool) {
	s.ctrl.SetLoading(loading)
	s.sync()
}

// selected returns the record under the cursor.
func (s *tableScreen[T]) selected() (T, bool) {
	var zero T
	items := s.ctrl.Snapshot().Items
	c := s.table.Cursor()
	if c < 0 || c >= len(items) {
		return zero, false
	}
	return items[c], true
}

// capturing reports whether the search box owns the keyboard.
func (s *tableScreen[T]) capturing() bool { return s.searching }

// handleKey applies a key press. It reports whether the key was used.
func (s *tableScreen[T]) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if s.searching {
		switch {
		case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Enter):
			s.searching = false
			s.search.Blur()
			return true, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		if s.search.Value() != s.ctrl.Snapshot().Query {
			s.ctrl.SetQuery(s.search.Value())
			s.syncTop()
		}
		return true, cmd
	}

	if i, ok := sortColumnKey(msg.String()); ok {
		cols := s.ctrl.Columns()
		if i < len(cols) {
			s.ctrl.SetSort(cols[i].Key)
			s.syncTop()
		}
		return true, nil
	}

	switch {
	case key.Matches(msg, keys.Search):
		s.searching = true
		return true, s.search.Focus()

	case key.Matches(msg, keys.ClearSort):
		s.ctrl.ClearSort()
		s.sync()
		return true, nil

	case key.Matches(msg, keys.NextPage):
		s.ctrl.NextPage()
		s.syncTop()
		return true, nil

	case key.Matches(msg, keys.PrevPage):
		s.ctrl.PrevPage()
		s.syncTop()
		return true, nil

	case key.Matches(msg, keys.NextChip), key.Matches(msg, keys.PrevChip):
		if len(s.chips) == 0 {
			return false, nil
		}
		step := 1
		if key.Matches(msg, keys.PrevChip) {
			step = len(s.chips) - 1
		}
		s.chip = (s.chip + step) % len(s.chips)
		s.ctrl.SetFilter(s.chips[s.chip])
		s.syncTop()
		return true, nil

	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return true, cmd
	}
	return false, nil
}

// view renders chips, search bar, table (or placeholder), and pager.
func (s *tableScreen[T]) view(spin string) string {
	snap := s.ctrl.Snapshot()
	var b strings.Builder

	if len(s.chips) > 0 {
		b.WriteString(renderChips(s.chips, snap.ActiveFilter))
		b.WriteString("\n")
	}
	if s.searching || snap.Query != "" {
		bar := s.search.View()
		if !s.searching {
			bar = "/ " + snap.Query
		}
		count := FilterBarCount.Render(fmt.Sprintf(" %d of %d", snap.FilteredCount, snap.TotalCount))
		b.WriteString(FilterBar.Render(bar) + count)
		b.WriteString("\n")
	}

	switch {
	case snap.Loading:
		b.WriteString(HelpStyle.Render(spin + " Loading..."))
	case snap.Err != nil && snap.TotalCount == 0:
		b.WriteString(ErrorStyle.Render("Could not load: " + snap.Err.Error()))
	case snap.FilteredCount == 0:
		b.WriteString(HelpStyle.Render(emptyText))
	default:
		b.WriteString(s.table.View())
	}
	b.WriteString("\n")
	b.WriteString(renderPager(snap.PageIndex, snap.TotalPages, snap.FilteredCount))
	return b.String()
}

// renderChips draws a row of filter chips with the active one highlighted.
func renderChips(chips []string, active string) string {
	parts := make([]string, len(chips))
	for i, c := range chips {
		if c == active {
			parts[i] = ChipActive.Render("[" + c + "]")
		} else {
			parts[i] = ChipInactive.Render(c)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderPager draws "Page x of y" with paginator dots.
func renderPager(page, total, count int) string {
	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = StatusBarKey.Render("•")
	p.InactiveDot = StatusBarText.Render("•")
	p.TotalPages = max(total, 1)
	p.Page = max(page-1, 0)
	return StatusBarText.Render(fmt.Sprintf(" Page %d of %d ", page, max(total, 1))) +
		p.View() +
		StatusBarText.Render(fmt.Sprintf("  %d items", count))
}
