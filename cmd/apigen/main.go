// Command apigen scaffolds a minimal REST or GraphQL server project.
//
// Usage:
//
//	apigen [flags] <project-name>
//	apigen init [--out FILE] [--force]
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/apigen/internal/cli"
)

var version = "dev"

func main() {
	cli.Version = version
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
