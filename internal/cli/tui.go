package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/getalts/getalts-go/pkg/getalts"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickerItem is one selectable row: an API code plus its display name
// and an optional annotation (price, stock count).
type pickerItem struct {
	Code string
	Name string
	Note string
}

// pickerModel is the bubbletea model for interactive code selection.
type pickerModel struct {
	Title    string
	Items    []pickerItem
	Cursor   int
	Selected *pickerItem
	Height   int
	Offset   int
}

func newPickerModel(title string, items []pickerItem) pickerModel {
	return pickerModel{
		Title:  title,
		Items:  items,
		Height: 15,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			item := m.Items[m.Cursor]
			m.Selected = &item
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	for i := m.Offset; i < end; i++ {
		item := m.Items[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		line := fmt.Sprintf("%s%-16s %s", cursor, item.Name, listDimStyle.Render(item.Code))
		if item.Note != "" {
			line += "  " + listDimStyle.Render(item.Note)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// pickService runs an interactive service picker.
func pickService() (getalts.Service, error) {
	items := serviceItems(nil)
	item, err := runPicker("Select Service", items)
	if err != nil {
		return "", err
	}
	return getalts.Service(item.Code), nil
}

// pickCountry runs an interactive country picker.
func pickCountry() (getalts.Country, error) {
	items := countryItems()
	item, err := runPicker("Select Country", items)
	if err != nil {
		return "", err
	}
	return getalts.Country(item.Code), nil
}

func runPicker(title string, items []pickerItem) (*pickerItem, error) {
	model := newPickerModel(title, items)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}
	picked, ok := final.(pickerModel)
	if !ok || picked.Selected == nil {
		return nil, fmt.Errorf("nothing selected")
	}
	return picked.Selected, nil
}

// serviceItems lists services sorted by name, annotated with stock
// counts when available.
func serviceItems(counts map[getalts.Service]int) []pickerItem {
	items := make([]pickerItem, 0, len(getalts.Services()))
	for _, svc := range getalts.Services() {
		note := ""
		if counts != nil {
			note = fmt.Sprintf("%d in stock", counts[svc])
		}
		items = append(items, pickerItem{Code: svc.String(), Name: svc.Name(), Note: note})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

// countryItems lists countries sorted by name.
func countryItems() []pickerItem {
	items := make([]pickerItem, 0, len(getalts.Countries()))
	for _, c := range getalts.Countries() {
		items = append(items, pickerItem{Code: c.String(), Name: c.Name()})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}
