// Package project holds the in-memory description of what apigen generates:
// the selected API style plus the endpoints or schema fields collected from
// the user.
package project

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Style is the API flavour of a generated project.
type Style int

const (
	StyleREST Style = iota
	StyleGraphQL
)

// Styles lists the supported styles in prompt order.
var Styles = []Style{StyleREST, StyleGraphQL}

func (s Style) String() string {
	switch s {
	case StyleREST:
		return "REST"
	case StyleGraphQL:
		return "GraphQL"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	DELETE Method = "DELETE"
)

// Methods lists the HTTP methods offered for an endpoint, in prompt order.
var Methods = []Method{GET, POST, PUT, DELETE}

type SchemaKind string

const (
	KindQuery    SchemaKind = "Query"
	KindMutation SchemaKind = "Mutation"
)

// SchemaKinds lists the GraphQL root types in prompt order.
var SchemaKinds = []SchemaKind{KindQuery, KindMutation}

var (
	ErrUnknownStyle      = errors.New("unknown API style")
	ErrUnknownMethod     = errors.New("unknown HTTP method")
	ErrUnknownSchemaKind = errors.New("unknown schema kind")
)

// Endpoint is one (path, method) pair destined for a generated REST handler.
type Endpoint struct {
	Path   string `validate:"required,urlpath"`
	Method Method `validate:"oneof=GET POST PUT DELETE"`
}

// SchemaField is one (name, kind) pair destined for a generated GraphQL resolver.
type SchemaField struct {
	Name string     `validate:"required,ident"`
	Kind SchemaKind `validate:"oneof=Query Mutation"`
}

// Model is the fully collected description of a project.
//
// For StyleREST Schemas is empty; for StyleGraphQL Endpoints is empty and the
// renderers add GraphQLEndpoint themselves.
type Model struct {
	ProjectName string        `validate:"required"`
	Style       Style         `validate:"gte=0,lte=1"`
	Endpoints   []Endpoint    `validate:"dive"`
	Schemas     []SchemaField `validate:"dive"`
}

// GraphQLEndpoint is the single route every GraphQL project serves.
var GraphQLEndpoint = Endpoint{Path: "/graphql", Method: POST}

// Queries returns the schema fields of kind Query in collection order.
func (m *Model) Queries() []SchemaField { return m.fieldsOf(KindQuery) }

// Mutations returns the schema fields of kind Mutation in collection order.
func (m *Model) Mutations() []SchemaField { return m.fieldsOf(KindMutation) }

func (m *Model) fieldsOf(kind SchemaKind) []SchemaField {
	var out []SchemaField
	for _, f := range m.Schemas {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// folded returns the caseless form of s; a Caser is stateful, so one is
// created per call.
func folded(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// ParseStyle maps free text such as "rest" or "GraphQL" onto a Style.
func ParseStyle(s string) (Style, error) {
	switch folded(s) {
	case "rest":
		return StyleREST, nil
	case "graphql", "gql":
		return StyleGraphQL, nil
	}
	return 0, fmt.Errorf("%w %q (allowed: REST, GraphQL)", ErrUnknownStyle, s)
}

// ParseMethod maps free text onto one of the supported HTTP methods.
func ParseMethod(s string) (Method, error) {
	f := folded(s)
	for _, m := range Methods {
		if folded(string(m)) == f {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q (allowed: GET, POST, PUT, DELETE)", ErrUnknownMethod, s)
}

// ParseSchemaKind normalises free text to Query or Mutation.
func ParseSchemaKind(s string) (SchemaKind, error) {
	switch folded(s) {
	case "query", "q":
		return KindQuery, nil
	case "mutation", "m":
		return KindMutation, nil
	}
	return "", fmt.Errorf("%w %q (allowed: Query, Mutation)", ErrUnknownSchemaKind, s)
}

// MatchOption reports the index of the option equal to s ignoring case, or -1.
func MatchOption(options []string, s string) int {
	f := folded(s)
	for i, opt := range options {
		if folded(opt) == f {
			return i
		}
	}
	return -1
}
