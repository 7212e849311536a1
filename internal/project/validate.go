package project

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Rust strict and reserved keywords. Resolver names become Rust fn names.
var reservedIdents = map[string]struct{}{
	"_": {}, "abstract": {}, "as": {}, "async": {}, "await": {}, "become": {},
	"box": {}, "break": {}, "const": {}, "continue": {}, "crate": {}, "do": {},
	"dyn": {}, "else": {}, "enum": {}, "extern": {}, "false": {}, "final": {},
	"fn": {}, "for": {}, "gen": {}, "if": {}, "impl": {}, "in": {}, "let": {},
	"loop": {}, "macro": {}, "match": {}, "mod": {}, "move": {}, "mut": {},
	"override": {}, "priv": {}, "pub": {}, "ref": {}, "return": {}, "self": {},
	"Self": {}, "static": {}, "struct": {}, "super": {}, "trait": {}, "true": {},
	"try": {}, "type": {}, "typeof": {}, "unsafe": {}, "unsized": {}, "use": {},
	"virtual": {}, "where": {}, "while": {}, "yield": {},
}

// newValidator returns a validator that knows the model's custom tags:
//
//	ident    an identifier usable as a resolver name in every target: not a
//	         Rust keyword and not starting with the GraphQL-reserved "__"
//	urlpath  a "/"-prefixed route without whitespace, quotes or backslashes
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("ident", func(fl validator.FieldLevel) bool {
		return validIdent(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("project: register ident: %v", err))
	}
	if err := v.RegisterValidation("urlpath", func(fl validator.FieldLevel) bool {
		return validPath(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("project: register urlpath: %v", err))
	}
	return v
}

func validIdent(s string) bool {
	if !identRe.MatchString(s) || strings.HasPrefix(s, "__") {
		return false
	}
	_, reserved := reservedIdents[s]
	return !reserved
}

func validPath(p string) bool {
	if !strings.HasPrefix(p, "/") {
		return false
	}
	return !strings.ContainsAny(p, " \t\r\n\"'`\\")
}

// Validate checks the model against its struct tags, the style invariant
// and the uniqueness of resolver names within each root type.
func (m *Model) Validate() error {
	if err := newValidator().Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describeFieldError(fe))
			}
			return fmt.Errorf("invalid project model: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid project model: %w", err)
	}
	switch m.Style {
	case StyleREST:
		if len(m.Schemas) > 0 {
			return errors.New("invalid project model: REST project carries GraphQL schema fields")
		}
	case StyleGraphQL:
		if len(m.Endpoints) > 0 {
			return errors.New("invalid project model: GraphQL project carries REST endpoints")
		}
	}
	seen := make(map[SchemaField]int, len(m.Schemas))
	for i, f := range m.Schemas {
		if first, dup := seen[f]; dup {
			return fmt.Errorf("invalid project model: Model.Schemas[%d] repeats %s %q from Model.Schemas[%d]", i, f.Kind, f.Name, first)
		}
		seen[f] = i
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	ns := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", ns)
	case "ident":
		return fmt.Sprintf("%s %q is not a valid identifier or is a reserved word", ns, fe.Value())
	case "urlpath":
		return fmt.Sprintf("%s %q must start with \"/\" and contain no spaces, quotes or backslashes", ns, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s %q must be one of %s", ns, fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", ns, fe.Tag())
	}
}
