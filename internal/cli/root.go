package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// Version is reported by --version; release builds set it with -ldflags.
var Version = "dev"

// Execute runs the apigen CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apigen [flags] <project-name>",
		Short: "Scaffold a minimal REST or GraphQL server project",
		Long: "apigen asks a short series of questions about the API you want and writes " +
			"a ready-to-build server skeleton (manifest plus src/) into a new directory.",
		Example: strings.TrimSpace(`  apigen demo
  apigen --lang rust --out ./svc demo
  apigen --answers answers.yaml --dry-run demo
  apigen --from-openapi openapi.yaml demo`),
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(c *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageErrorf("expected exactly one <project-name> argument, got %d\n\n%s", len(args), c.UsageString())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveScaffoldConfig(cmd, args)
			if err != nil {
				return err
			}
			return scaffoldRunner(cmd.Context(), cfg, streamsOf(cmd))
		},
	}

	cmd.SetFlagErrorFunc(flagUsageError)

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging output")
	addScaffoldFlags(cmd.Flags())

	i := newInitCmd()
	i.SetFlagErrorFunc(flagUsageError)
	cmd.AddCommand(i)

	return cmd
}

// flagUsageError converts cobra flag errors (like unknown flags) into usage
// errors that carry the command's help text.
func flagUsageError(c *cobra.Command, err error) error {
	return usageErrorf("%w\n\n%s", err, c.UsageString())
}
