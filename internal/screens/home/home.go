package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/report"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screens/signin"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// HomeScreen lists the bank's sections and starts the sign-in flow for
// the chosen one.
type HomeScreen struct {
	bank *bank.Bank
	sink report.Sink
	menu components.Menu
}

var _ router.Screen = (*HomeScreen)(nil)
var _ router.KeyHintProvider = (*HomeScreen)(nil)

// New creates the section list screen.
func New(b *bank.Bank, sink report.Sink) *HomeScreen {
	h := &HomeScreen{bank: b, sink: sink}

	sections := b.Sections()
	items := make([]components.MenuItem, 0, len(sections))
	for _, sec := range sections {
		sec := sec
		items = append(items, components.MenuItem{
			Label:  sec.Tag,
			Detail: fmt.Sprintf("%d questions", sec.Count),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushMsg{
						Screen: signin.New(h.bank, sec.Tag, h.sink),
					}
				}
			},
		})
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Choose a section"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Pick a topic to practice"))
	b.WriteString("\n\n")

	if len(h.menu.Items) == 0 {
		b.WriteString(theme.Dim.Width(width).Align(lipgloss.Center).
			Render("The question bank has no sections."))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
