package prompt

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mark3labs/apigen/internal/project"
)

// Answers is the on-disk form of a non-interactive run:
//
//	style: REST
//	endpoints:
//	  - path: /users
//	    methods: [GET, POST]
//	schemas:
//	  - name: getUser
//	    kind: query
type Answers struct {
	Style     StringList       `yaml:"style"`
	Endpoints []EndpointAnswer `yaml:"endpoints"`
	Schemas   []SchemaAnswer   `yaml:"schemas"`
}

type EndpointAnswer struct {
	Path    string     `yaml:"path"`
	Methods StringList `yaml:"methods"`
}

type SchemaAnswer struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// StringList accepts either a single scalar or a sequence of scalars.
type StringList []string

func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value == "" {
			*l = nil
			return nil
		}
		*l = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list", value.Line)
	}
}

// LoadAnswers reads and checks an answers file.
func LoadAnswers(path string) (*Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file %q: %w", path, err)
	}
	var a Answers
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse answers file %q: %w", path, err)
	}
	return &a, nil
}

// Script turns the answers into the question-by-question replies the
// collector expects. When several styles are listed the first in prompt
// order (REST, then GraphQL) decides which section is replayed. Schema kinds
// are normalised here; an unknown kind is an error.
func (a *Answers) Script() ([]Answer, error) {
	styles := make([]project.Style, 0, len(a.Style))
	for _, raw := range a.Style {
		s, err := project.ParseStyle(raw)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(styles, s) {
			styles = append(styles, s)
		}
	}
	slices.Sort(styles)
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.String()
	}
	script := []Answer{{Choices: names}}
	if len(styles) == 0 {
		return script, nil
	}
	switch styles[0] {
	case project.StyleREST:
		script = append(script, Answer{Text: strconv.Itoa(len(a.Endpoints))})
		for _, ep := range a.Endpoints {
			script = append(script,
				Answer{Text: ep.Path},
				Answer{Choices: []string(ep.Methods)},
			)
		}
	case project.StyleGraphQL:
		script = append(script, Answer{Text: strconv.Itoa(len(a.Schemas))})
		for i, s := range a.Schemas {
			var choices []string
			if s.Kind != "" {
				kind, err := project.ParseSchemaKind(s.Kind)
				if err != nil {
					return nil, fmt.Errorf("schemas[%d]: %w", i, err)
				}
				choices = []string{string(kind)}
			}
			script = append(script,
				Answer{Text: s.Name},
				Answer{Choices: choices},
			)
		}
	}
	return script, nil
}

// NewScriptedFromFile loads an answers file and returns its replaying Prompter.
func NewScriptedFromFile(path string) (*Scripted, error) {
	a, err := LoadAnswers(path)
	if err != nil {
		return nil, err
	}
	script, err := a.Script()
	if err != nil {
		return nil, fmt.Errorf("answers file %q: %w", path, err)
	}
	return NewScripted(script...), nil
}
