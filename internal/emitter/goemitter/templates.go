package goemitter

import "text/template"

var (
	restMainTmpl    = template.Must(template.New("rest main.go").Parse(restMainTemplate))
	graphqlMainTmpl = template.Must(template.New("graphql main.go").Parse(graphqlMainTemplate))
)

const restMainTemplate = `package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

func main() {
	r := mux.NewRouter()

	// Default route
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "Welcome to REST API!")
	}).Methods(http.MethodGet)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "API is healthy!")
	}).Methods(http.MethodGet)

	// Generated endpoints
{{- range .Endpoints}}
	r.HandleFunc("{{.Path}}", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "Endpoint: {{.Path}}, Method: {{.Method}}")
	}).Methods("{{.Method}}")
{{- end}}

	log.Println("Server starting on http://localhost:8080")
	log.Fatal(http.ListenAndServe("127.0.0.1:8080", r))
}
`

const graphqlMainTemplate = `package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// Query type
var queryFields = graphql.Fields{
{{- range .Queries}}
	"{{.Name}}": &graphql.Field{
		Type: graphql.String,
		Resolve: func(graphql.ResolveParams) (interface{}, error) {
			return "Result of {{.Name}} query", nil
		},
	},
{{- end}}
}

// Mutation type
var mutationFields = graphql.Fields{
{{- range .Mutations}}
	"{{.Name}}": &graphql.Field{
		Type: graphql.String,
		Resolve: func(graphql.ResolveParams) (interface{}, error) {
			return "Result of {{.Name}} mutation", nil
		},
	},
{{- end}}
}

func main() {
	schemaConfig := graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: queryFields}),
	}
	if len(mutationFields) > 0 {
		schemaConfig.Mutation = graphql.NewObject(graphql.ObjectConfig{Name: "Mutation", Fields: mutationFields})
	}
	// No subscription root.
	schema, err := graphql.NewSchema(schemaConfig)
	if err != nil {
		log.Fatalf("build schema: %v", err)
	}

	r := mux.NewRouter()

	// GraphQL endpoint
	r.Handle("{{.Endpoint.Path}}", handler.New(&handler.Config{
		Schema: &schema,
		Pretty: true,
	})).Methods("{{.Endpoint.Method}}")

	// GraphiQL interface for testing (optional)
	r.Handle("/graphiql", handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})).Methods(http.MethodGet, http.MethodPost)

	log.Println("GraphQL server starting on http://localhost:8080")
	log.Fatal(http.ListenAndServe("127.0.0.1:8080", r))
}
`
