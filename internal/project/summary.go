package project

import (
	"fmt"
	"io"
)

// WriteSummary prints the human-readable echo of a collected model: the
// style, then either the endpoint list or the schema list.
func WriteSummary(w io.Writer, m *Model) {
	fmt.Fprintf(w, "Selected API type: %s\n", m.Style)
	switch m.Style {
	case StyleREST:
		fmt.Fprintln(w, "Configured Endpoints:")
		for _, ep := range m.Endpoints {
			fmt.Fprintf(w, "- Path: %s, Method: %s\n", ep.Path, ep.Method)
		}
	case StyleGraphQL:
		fmt.Fprintln(w, "Configured GraphQL Schema:")
		for _, f := range m.Schemas {
			fmt.Fprintf(w, "- Name: %s, Type: %s\n", f.Name, f.Kind)
		}
	}
}
