package prompt

import (
	"fmt"
	"slices"

	"github.com/mark3labs/apigen/internal/project"
)

// Answer is one prepared reply. Choices answers a MultiSelect by option name
// (matched ignoring case); Text answers an Input.
type Answer struct {
	Text    string
	Choices []string
}

// Scripted replays answers in order. When the script runs out every further
// question fails with ErrCancelled.
type Scripted struct {
	answers []Answer
	pos     int
	asked   []string
}

// NewScripted returns a Prompter that replays answers.
func NewScripted(answers ...Answer) *Scripted {
	return &Scripted{answers: answers}
}

// Asked returns the labels of the questions asked so far.
func (s *Scripted) Asked() []string { return s.asked }

func (s *Scripted) next(label string) (Answer, error) {
	s.asked = append(s.asked, label)
	if s.pos >= len(s.answers) {
		return Answer{}, ErrCancelled
	}
	a := s.answers[s.pos]
	s.pos++
	return a, nil
}

func (s *Scripted) MultiSelect(label string, options []string) ([]int, error) {
	a, err := s.next(label)
	if err != nil {
		return nil, err
	}
	picked := make([]int, 0, len(a.Choices))
	for _, c := range a.Choices {
		idx := project.MatchOption(options, c)
		if idx < 0 {
			return nil, fmt.Errorf("answer %q to %q is not one of %v", c, label, options)
		}
		if slices.Contains(picked, idx) {
			continue
		}
		picked = append(picked, idx)
	}
	slices.Sort(picked)
	return picked, nil
}

func (s *Scripted) Input(label, def string) (string, error) {
	a, err := s.next(label)
	if err != nil {
		return "", err
	}
	if a.Text == "" {
		return def, nil
	}
	return a.Text, nil
}
