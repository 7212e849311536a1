// Package collect asks the fixed sequence of apigen questions and assembles
// the answers into a project.Model.
package collect

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mark3labs/apigen/internal/project"
	"github.com/mark3labs/apigen/internal/prompt"
)

const (
	DefaultEndpointCount = 2
	DefaultSchemaCount   = 2
)

var (
	ErrNoStyle          = errors.New("no API type selected")
	ErrUnsupportedStyle = errors.New("unsupported API type")
	ErrInvalidModel     = errors.New("invalid configuration")
)

const (
	labelStyle         = "What type of API do you want? (select one or more, the first one is used)"
	labelEndpointCount = "How many REST endpoints do you want to create?"
	labelPath          = "Enter endpoint path (e.g., /users)"
	labelMethods       = "Select HTTP methods for this endpoint"
	labelSchemaCount   = "How many GraphQL schemas (queries/mutations) do you want to create?"
	labelSchemaName    = "Enter schema name (e.g., getUser)"
	labelSchemaKind    = "Select schema type"
)

// Options tunes a Collector.
type Options struct {
	// DefaultEndpoints and DefaultSchemas answer an empty or unparsable
	// count; nil means DefaultEndpointCount and DefaultSchemaCount.
	DefaultEndpoints *int
	DefaultSchemas   *int
	// Endpoints, when non-empty, replaces the REST endpoint questions.
	Endpoints []project.Endpoint
	// Out receives the configuration echo; nil discards it.
	Out    io.Writer
	Logger *slog.Logger
}

// Collector builds a project.Model from a Prompter's answers.
type Collector struct {
	name          string
	prompter      prompt.Prompter
	opts          Options
	endpointCount int
	schemaCount   int
	log           *slog.Logger
}

// New returns a Collector for the named project.
func New(projectName string, p prompt.Prompter, opts Options) *Collector {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Collector{
		name:          projectName,
		prompter:      p,
		opts:          opts,
		endpointCount: DefaultEndpointCount,
		schemaCount:   DefaultSchemaCount,
		log:           logger,
	}
	if opts.DefaultEndpoints != nil {
		c.endpointCount = *opts.DefaultEndpoints
	}
	if opts.DefaultSchemas != nil {
		c.schemaCount = *opts.DefaultSchemas
	}
	return c
}

// Collect runs the questions and returns the validated model, after echoing
// it to the configured output. Any error leaves no model behind.
func (c *Collector) Collect() (*project.Model, error) {
	style, err := c.askStyle()
	if err != nil {
		return nil, err
	}
	m := &project.Model{ProjectName: c.name, Style: style}

	switch style {
	case project.StyleREST:
		eps, err := c.collectEndpoints()
		if err != nil {
			return nil, err
		}
		m.Endpoints = eps
	case project.StyleGraphQL:
		if len(c.opts.Endpoints) > 0 {
			c.log.Warn("ignoring imported REST endpoints for a GraphQL project", "count", len(c.opts.Endpoints))
		}
		fields, err := c.collectSchemas()
		if err != nil {
			return nil, err
		}
		m.Schemas = fields
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStyle, style)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	project.WriteSummary(c.opts.Out, m)
	return m, nil
}

func (c *Collector) askStyle() (project.Style, error) {
	names := make([]string, len(project.Styles))
	for i, s := range project.Styles {
		names[i] = s.String()
	}
	picked, err := c.prompter.MultiSelect(labelStyle, names)
	if err != nil {
		return 0, fmt.Errorf("collect: API type: %w", err)
	}
	if len(picked) == 0 {
		return 0, ErrNoStyle
	}
	if picked[0] < 0 || picked[0] >= len(project.Styles) {
		return 0, fmt.Errorf("%w: option %d", ErrUnsupportedStyle, picked[0])
	}
	if len(picked) > 1 {
		c.log.Debug("several API types selected, using the first", "style", project.Styles[picked[0]])
	}
	return project.Styles[picked[0]], nil
}

func (c *Collector) collectEndpoints() ([]project.Endpoint, error) {
	if len(c.opts.Endpoints) > 0 {
		c.log.Debug("using imported endpoints", "count", len(c.opts.Endpoints))
		return append([]project.Endpoint(nil), c.opts.Endpoints...), nil
	}
	n, err := c.askCount(labelEndpointCount, c.endpointCount)
	if err != nil {
		return nil, err
	}
	methodNames := make([]string, len(project.Methods))
	for i, m := range project.Methods {
		methodNames[i] = string(m)
	}

	var eps []project.Endpoint
	for i := 1; i <= n; i++ {
		fmt.Fprintf(c.opts.Out, "\nConfiguring Endpoint #%d\n", i)
		path, err := c.prompter.Input(labelPath, "")
		if err != nil {
			return nil, fmt.Errorf("collect: endpoint #%d path: %w", i, err)
		}
		path = strings.TrimSpace(path)
		picked, err := c.prompter.MultiSelect(labelMethods, methodNames)
		if err != nil {
			return nil, fmt.Errorf("collect: endpoint #%d methods: %w", i, err)
		}
		if len(picked) == 0 {
			c.log.Debug("no method selected, defaulting to GET", "path", path)
			eps = append(eps, project.Endpoint{Path: path, Method: project.GET})
			continue
		}
		for _, idx := range picked {
			if idx < 0 || idx >= len(project.Methods) {
				return nil, fmt.Errorf("collect: endpoint #%d methods: option %d out of range", i, idx)
			}
			eps = append(eps, project.Endpoint{Path: path, Method: project.Methods[idx]})
		}
	}
	return eps, nil
}

func (c *Collector) collectSchemas() ([]project.SchemaField, error) {
	n, err := c.askCount(labelSchemaCount, c.schemaCount)
	if err != nil {
		return nil, err
	}
	kindNames := make([]string, len(project.SchemaKinds))
	for i, k := range project.SchemaKinds {
		kindNames[i] = string(k)
	}

	var fields []project.SchemaField
	for i := 1; i <= n; i++ {
		fmt.Fprintf(c.opts.Out, "\nConfiguring GraphQL Schema #%d\n", i)
		name, err := c.prompter.Input(labelSchemaName, "")
		if err != nil {
			return nil, fmt.Errorf("collect: schema #%d name: %w", i, err)
		}
		picked, err := c.prompter.MultiSelect(labelSchemaKind, kindNames)
		if err != nil {
			return nil, fmt.Errorf("collect: schema #%d type: %w", i, err)
		}
		kind := project.KindQuery
		if len(picked) > 0 {
			if picked[0] < 0 || picked[0] >= len(project.SchemaKinds) {
				return nil, fmt.Errorf("collect: schema #%d type: option %d out of range", i, picked[0])
			}
			kind = project.SchemaKinds[picked[0]]
		}
		fields = append(fields, project.SchemaField{Name: strings.TrimSpace(name), Kind: kind})
	}
	return fields, nil
}

// askCount coerces anything that is not a non-negative integer to def.
func (c *Collector) askCount(label string, def int) (int, error) {
	raw, err := c.prompter.Input(label, strconv.Itoa(def))
	if err != nil {
		return 0, fmt.Errorf("collect: %s: %w", label, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		c.log.Debug("unparsable count, using default", "input", raw, "default", def)
		return def, nil
	}
	return n, nil
}
