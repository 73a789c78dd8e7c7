package bank

import (
	"encoding/json"
	"fmt"
	"os"
)

// Question is a single quiz item as loaded from the bank file.
// Everything here is immutable after load; per-session state lives in
// the quiz package.
type Question struct {
	ID            string    `json:"id"`
	Section       string    `json:"section"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correctAnswer"`
	Hint          string    `json:"hint,omitempty"`
	Feedback      Feedback  `json:"feedback"`
	FollowUp      *FollowUp `json:"-"`
}

// Feedback holds the four feedback variants shown after an answer,
// keyed by correctness and whether a hint was requested.
type Feedback struct {
	CorrectHint     string `json:"correct_hint"`
	IncorrectHint   string `json:"incorrect_hint"`
	CorrectNoHint   string `json:"correct_no_hint"`
	IncorrectNoHint string `json:"incorrect_no_hint"`
}

// FollowUp is the optional secondary question shown after a correct
// primary answer. The three fields are present as a group or absent as
// a group; presence of the struct is the only signal.
type FollowUp struct {
	Question string
	Options  []string
	Answer   string
}

// Text returns the feedback variant for the given outcome.
func (f Feedback) Text(correct, usedHint bool) string {
	switch {
	case correct && usedHint:
		return f.CorrectHint
	case correct:
		return f.CorrectNoHint
	case usedHint:
		return f.IncorrectHint
	default:
		return f.IncorrectNoHint
	}
}

// rawQuestion mirrors the wire format, where follow-up fields are flat
// optional siblings rather than a nested group.
type rawQuestion struct {
	ID               string   `json:"id"`
	Section          string   `json:"section"`
	Question         string   `json:"question"`
	Options          []string `json:"options"`
	CorrectAnswer    string   `json:"correctAnswer"`
	Hint             string   `json:"hint"`
	Feedback         Feedback `json:"feedback"`
	FollowUpQuestion string   `json:"followUpQuestion"`
	FollowUpOptions  []string `json:"followUpOptions"`
	FollowUpAnswer   string   `json:"followUpAnswer"`
}

// Bank is an immutable, ordered collection of questions grouped by
// section tag.
type Bank struct {
	questions []Question
}

// SectionInfo describes one section tag for listing purposes.
type SectionInfo struct {
	Tag   string
	Count int
}

// Load reads and validates a question bank from a JSON file.
// Any read, schema, or semantic failure is reported as *DataLoadError.
func Load(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	b, err := Parse(raw)
	if err != nil {
		if dle, ok := err.(*DataLoadError); ok {
			dle.Path = path
			return nil, dle
		}
		return nil, &DataLoadError{Path: path, Err: err}
	}
	return b, nil
}

// Parse decodes and validates a question bank from raw JSON.
func Parse(raw []byte) (*Bank, error) {
	if err := validateBank(raw); err != nil {
		return nil, &DataLoadError{Err: err}
	}

	var rows []rawQuestion
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, &DataLoadError{Err: fmt.Errorf("decode bank: %w", err)}
	}

	questions := make([]Question, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for i, r := range rows {
		q := Question{
			ID:            r.ID,
			Section:       r.Section,
			Question:      r.Question,
			Options:       r.Options,
			CorrectAnswer: r.CorrectAnswer,
			Hint:          r.Hint,
			Feedback:      r.Feedback,
		}
		if r.FollowUpQuestion != "" || len(r.FollowUpOptions) > 0 || r.FollowUpAnswer != "" {
			q.FollowUp = &FollowUp{
				Question: r.FollowUpQuestion,
				Options:  r.FollowUpOptions,
				Answer:   r.FollowUpAnswer,
			}
		}
		if err := checkQuestion(i, q, seen); err != nil {
			return nil, &DataLoadError{Err: err}
		}
		seen[q.ID] = true
		questions = append(questions, q)
	}

	return &Bank{questions: questions}, nil
}

// checkQuestion enforces the semantic invariants the JSON schema cannot
// express: letters must resolve to an option position, follow-up fields
// come as a complete group, ids are unique.
func checkQuestion(i int, q Question, seen map[string]bool) error {
	if seen[q.ID] {
		return fmt.Errorf("question %d: duplicate id %q", i, q.ID)
	}
	if !letterInRange(q.CorrectAnswer, len(q.Options)) {
		return fmt.Errorf("question %d (%s): correctAnswer %q does not match any of %d options",
			i, q.ID, q.CorrectAnswer, len(q.Options))
	}
	if fu := q.FollowUp; fu != nil {
		if fu.Question == "" || len(fu.Options) == 0 || fu.Answer == "" {
			return fmt.Errorf("question %d (%s): follow-up fields must be present together", i, q.ID)
		}
		if !letterInRange(fu.Answer, len(fu.Options)) {
			return fmt.Errorf("question %d (%s): followUpAnswer %q does not match any of %d options",
				i, q.ID, fu.Answer, len(fu.Options))
		}
	}
	return nil
}

// letterInRange reports whether letter is a single choice letter
// addressing one of n options (A = first).
func letterInRange(letter string, n int) bool {
	if len(letter) != 1 {
		return false
	}
	idx := int(letter[0] - 'A')
	return idx >= 0 && idx < n
}

// Len returns the total number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Sections returns the distinct section tags in first-appearance order,
// each with its question count.
func (b *Bank) Sections() []SectionInfo {
	var order []string
	counts := make(map[string]int)
	for _, q := range b.questions {
		if _, ok := counts[q.Section]; !ok {
			order = append(order, q.Section)
		}
		counts[q.Section]++
	}

	infos := make([]SectionInfo, 0, len(order))
	for _, tag := range order {
		infos = append(infos, SectionInfo{Tag: tag, Count: counts[tag]})
	}
	return infos
}

// ForSection returns the questions carrying the given section tag, in
// their original relative order. The returned slice is a copy.
func (b *Bank) ForSection(tag string) []Question {
	var out []Question
	for _, q := range b.questions {
		if q.Section == tag {
			out = append(out, q)
		}
	}
	return out
}
