package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/apigen/internal/collect"
	"github.com/mark3labs/apigen/internal/emitter"
	"github.com/mark3labs/apigen/internal/emitter/goemitter"
	"github.com/mark3labs/apigen/internal/emitter/rustemitter"
	"github.com/mark3labs/apigen/internal/openapi"
	"github.com/mark3labs/apigen/internal/project"
	"github.com/mark3labs/apigen/internal/prompt"
)

const (
	LangGo   = "go"
	LangRust = "rust"
)

// ScaffoldConfig captures all inputs of a run after merging defaults,
// config file values, and CLI overrides.
type ScaffoldConfig struct {
	ProjectName      string
	Lang             string
	Out              string
	Answers          string
	FromOpenAPI      string
	ConfigPath       string
	DryRun           bool
	Verbose          bool
	DefaultEndpoints int
	DefaultSchemas   int
}

func defaultScaffoldConfig() ScaffoldConfig {
	return ScaffoldConfig{
		Lang:             LangGo,
		DefaultEndpoints: collect.DefaultEndpointCount,
		DefaultSchemas:   collect.DefaultSchemaCount,
	}
}

// Streams are the terminal handles a run talks to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func streamsOf(cmd *cobra.Command) Streams {
	return Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
}

var scaffoldRunner = runScaffold

func addScaffoldFlags(flags *pflag.FlagSet) {
	flags.String("lang", "", "Target ecosystem of the generated project (go|rust); defaults to go")
	flags.String("out", "", "Output directory (defaults to the project name)")
	flags.String("answers", "", "YAML answers file for a non-interactive run")
	flags.String("from-openapi", "", "Path or URL of an OpenAPI/Swagger document to import REST endpoints from")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")
	flags.Int("default-endpoints", collect.DefaultEndpointCount, "Endpoint count used when the answer is empty or not a number")
	flags.Int("default-schemas", collect.DefaultSchemaCount, "Schema count used when the answer is empty or not a number")
}

func resolveScaffoldConfig(cmd *cobra.Command, args []string) (*ScaffoldConfig, error) {
	cfg := defaultScaffoldConfig()
	cfg.ProjectName = args[0]

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyScaffoldConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyScaffoldFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyScaffoldFlagOverrides(flags *pflag.FlagSet, cfg *ScaffoldConfig) error {
	strs := []struct {
		name string
		dst  *string
	}{
		{"lang", &cfg.Lang},
		{"out", &cfg.Out},
		{"answers", &cfg.Answers},
		{"from-openapi", &cfg.FromOpenAPI},
	}
	for _, s := range strs {
		if !flags.Changed(s.name) {
			continue
		}
		value, err := flags.GetString(s.name)
		if err != nil {
			return err
		}
		*s.dst = strings.TrimSpace(value)
	}
	if flags.Changed("dry-run") {
		value, err := flags.GetBool("dry-run")
		if err != nil {
			return err
		}
		cfg.DryRun = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}
	if flags.Changed("default-endpoints") {
		value, err := flags.GetInt("default-endpoints")
		if err != nil {
			return err
		}
		cfg.DefaultEndpoints = value
	}
	if flags.Changed("default-schemas") {
		value, err := flags.GetInt("default-schemas")
		if err != nil {
			return err
		}
		cfg.DefaultSchemas = value
	}
	return nil
}

func (c *ScaffoldConfig) normalize() {
	c.ProjectName = strings.TrimSpace(c.ProjectName)
	c.Lang = strings.ToLower(strings.TrimSpace(c.Lang))
	if c.Lang == "" {
		c.Lang = LangGo
	}
	c.Out = strings.TrimSpace(c.Out)
	if c.Out == "" {
		c.Out = c.ProjectName
	}
	c.Answers = strings.TrimSpace(c.Answers)
	c.FromOpenAPI = strings.TrimSpace(c.FromOpenAPI)
}

func (c *ScaffoldConfig) validate() error {
	if c.ProjectName == "" {
		return newUsageError("project name must not be empty")
	}
	var nameErr error
	switch c.Lang {
	case LangGo:
		nameErr = goemitter.ValidateProjectName(c.ProjectName)
	case LangRust:
		nameErr = rustemitter.ValidateProjectName(c.ProjectName)
	default:
		return usageErrorf("unsupported --lang %q (allowed: go, rust)", c.Lang)
	}
	if nameErr != nil {
		return usageError{err: nameErr}
	}
	if c.DefaultEndpoints < 0 || c.DefaultSchemas < 0 {
		return newUsageError("default counts must not be negative")
	}
	return nil
}

func runScaffold(ctx context.Context, cfg *ScaffoldConfig, streams Streams) error {
	logger := newLogger(streams.Err, cfg.Verbose)

	var p prompt.Prompter
	if cfg.Answers != "" {
		s, err := prompt.NewScriptedFromFile(cfg.Answers)
		if err != nil {
			return fmt.Errorf("answers file: %w", err)
		}
		logger.Debug("replaying answers file", "path", cfg.Answers)
		p = s
	} else {
		p = prompt.NewTerminal(streams.In, streams.Out)
	}

	var seeded []project.Endpoint
	if cfg.FromOpenAPI != "" {
		eps, err := importEndpoints(ctx, cfg.FromOpenAPI)
		if err != nil {
			return err
		}
		for _, s := range eps.skipped {
			logger.Warn("skipping OpenAPI operation", "path", s.Path, "method", s.Method, "reason", s.Reason)
		}
		if len(eps.endpoints) == 0 {
			logger.Warn("OpenAPI document has no usable operations, falling back to questions", "input", cfg.FromOpenAPI)
		}
		seeded = eps.endpoints
	}

	m, err := collect.New(cfg.ProjectName, p, collect.Options{
		DefaultEndpoints: &cfg.DefaultEndpoints,
		DefaultSchemas:   &cfg.DefaultSchemas,
		Endpoints:        seeded,
		Out:              streams.Out,
		Logger:           logger,
	}).Collect()
	if err != nil {
		return err
	}

	opts := emitter.Options{OutDir: cfg.Out, DryRun: cfg.DryRun, Out: streams.Out, Logger: logger}
	var res *emitter.Result
	switch cfg.Lang {
	case LangGo:
		res, err = goemitter.Emit(ctx, m, opts)
	case LangRust:
		res, err = rustemitter.Emit(ctx, m, opts)
	default:
		return usageErrorf("unsupported --lang %q (allowed: go, rust)", cfg.Lang)
	}
	if err != nil {
		return err
	}

	if cfg.DryRun {
		absOut := cfg.Out
		if ap, err := filepath.Abs(cfg.Out); err == nil {
			absOut = ap
		}
		paths := make([]string, 0, len(res.Planned))
		for _, pf := range res.Planned {
			paths = append(paths, pf.RelPath)
		}
		printPlan(streams.Out, absOut, paths)
	}
	return nil
}

type imported struct {
	endpoints []project.Endpoint
	skipped   []openapi.Skipped
}

func importEndpoints(ctx context.Context, input string) (*imported, error) {
	doc, err := openapi.Load(ctx, input)
	if err != nil {
		var le *openapi.LoadError
		if errors.As(err, &le) {
			var detail string
			if le.Location != "" {
				detail += "\nLocation: " + le.Location
			}
			if le.JSONPointer != "" {
				detail += "\nPointer: " + le.JSONPointer
			}
			return nil, usageErrorf("openapi: %w%s", le, detail)
		}
		return nil, err
	}
	eps, skipped := openapi.Endpoints(doc)
	return &imported{endpoints: eps, skipped: skipped}, nil
}

func printPlan(w io.Writer, outDir string, relPaths []string) {
	fmt.Fprintf(w, "Planned writes to %s (%d files):\n", outDir, len(relPaths))
	for _, p := range relPaths {
		fmt.Fprintf(w, "- %s\n", p)
	}
}

func applyScaffoldConfigFromFile(cfg *ScaffoldConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return usageErrorf("read config file %q: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return usageErrorf("parse config file %q: %w", path, err)
	}

	for key, value := range raw {
		var ferr error
		switch normalizeKey(key) {
		case "lang":
			cfg.Lang, ferr = valueAsString(value)
		case "out":
			cfg.Out, ferr = valueAsString(value)
		case "answers":
			cfg.Answers, ferr = valueAsString(value)
		case "fromopenapi":
			cfg.FromOpenAPI, ferr = valueAsString(value)
		case "dryrun":
			cfg.DryRun, ferr = valueAsBool(value)
		case "verbose":
			cfg.Verbose, ferr = valueAsBool(value)
		case "defaultendpoints":
			cfg.DefaultEndpoints, ferr = valueAsInt(value)
		case "defaultschemas":
			cfg.DefaultSchemas, ferr = valueAsInt(value)
		default:
			return usageErrorf("config file %q: unknown field %q", path, key)
		}
		if ferr != nil {
			return usageErrorf("config field %q: %w", key, ferr)
		}
	}
	return nil
}
