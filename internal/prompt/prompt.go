// Package prompt defines the interactive questions apigen asks and the
// implementations that answer them: a line-oriented terminal prompter and a
// scripted prompter that replays prepared answers.
package prompt

import "errors"

// ErrCancelled reports that the input stream ended before an answer was given.
var ErrCancelled = errors.New("prompt cancelled: input stream closed")

// Prompter asks the user questions.
//
// MultiSelect returns the indices of the chosen options in option order,
// without duplicates; an empty result is a valid answer, distinct from ErrCancelled. Input returns
// the entered text, or def when the user enters nothing and def is non-empty.
type Prompter interface {
	MultiSelect(label string, options []string) ([]int, error)
	Input(label, def string) (string, error)
}
