package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// OptionList renders a lettered multiple-choice list (A, B, C, … by
// position). Once committed, the chosen option is highlighted by
// outcome and the list stops reacting to input.
type OptionList struct {
	Options       []string
	Selected      int
	Committed     bool
	ChosenLetter  string
	ChosenCorrect bool
}

// NewOptionList creates an option list with the cursor on the first
// option.
func NewOptionList(options []string) OptionList {
	return OptionList{Options: options}
}

// Restore puts the list into its committed state, preselecting the
// letter recorded earlier. Used when revisiting an answered question.
func (o OptionList) Restore(letter string, correct bool) OptionList {
	o.Committed = true
	o.ChosenLetter = letter
	o.ChosenCorrect = correct
	return o
}

// Update handles cursor movement. Committing is the screen's decision.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Committed {
		return o, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	}
	return o, nil
}

// Letter returns the choice letter under the cursor.
func (o OptionList) Letter() string {
	return string(rune('A' + o.Selected))
}

// View renders the lettered options.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		letter := string(rune('A' + i))
		prefix := "  "
		if !o.Committed && i == o.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, letter, opt)

		switch {
		case o.Committed && letter == o.ChosenLetter && o.ChosenCorrect:
			s += theme.Correct.Render(line) + "\n"
		case o.Committed && letter == o.ChosenLetter:
			s += theme.Incorrect.Render(line) + "\n"
		case o.Committed:
			s += theme.Dim.Render(line) + "\n"
		case i == o.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
