package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mark3labs/apigen/internal/project"
)

// Terminal is a line-oriented Prompter. Multi-select options are listed with
// numbers; the user answers with numbers or option names separated by commas
// or spaces, or an empty line for no selection.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal returns a Terminal reading answers from in and writing
// questions to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) MultiSelect(label string, options []string) ([]int, error) {
	for {
		fmt.Fprintf(t.out, "? %s\n", label)
		for i, opt := range options {
			fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
		}
		fmt.Fprint(t.out, "> ")
		line, err := t.readLine()
		if err != nil {
			return nil, err
		}
		picked, bad := parseSelection(line, options)
		if bad == "" {
			return picked, nil
		}
		fmt.Fprintf(t.out, "  %q is not one of the options, try again\n", bad)
	}
}

func (t *Terminal) Input(label, def string) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(t.out, "? %s [%s]: ", label, def)
		} else {
			fmt.Fprintf(t.out, "? %s: ", label)
		}
		line, err := t.readLine()
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		if def != "" {
			return def, nil
		}
	}
}

// readLine returns the next trimmed line. A final line without a newline is
// still an answer; end of input with nothing read is ErrCancelled.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrCancelled
			}
		} else {
			return "", fmt.Errorf("read answer: %w", err)
		}
	}
	return strings.TrimSpace(line), nil
}

// parseSelection resolves numbers and option names to sorted unique indices.
// It returns the first token that matches nothing.
func parseSelection(line string, options []string) ([]int, string) {
	tokens := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	seen := make(map[int]struct{}, len(tokens))
	picked := []int{}
	for _, tok := range tokens {
		idx := -1
		if n, err := strconv.Atoi(tok); err == nil && n >= 1 && n <= len(options) {
			idx = n - 1
		} else {
			idx = project.MatchOption(options, tok)
		}
		if idx < 0 {
			return nil, tok
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		picked = append(picked, idx)
	}
	sort.Ints(picked)
	return picked, ""
}
