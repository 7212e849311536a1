package rustemitter

import "text/template"

var funcs = template.FuncMap{"lower": lower}

var (
	restMainTmpl    = template.Must(template.New("rest main.rs").Funcs(funcs).Parse(restMainTemplate))
	graphqlMainTmpl = template.Must(template.New("graphql main.rs").Funcs(funcs).Parse(graphqlMainTemplate))
)

const restMainTemplate = `#[async_std::main]
async fn main() -> tide::Result<()> {
    let mut app = tide::new();

    // Default route
    app.at("/").get(|_| async { Ok("Welcome to REST API!") });

    // Health check endpoint
    app.at("/health").get(|_| async { Ok("API is healthy!") });

    // Generated endpoints
{{- range .Endpoints}}
    app.at("{{.Path}}").{{lower .Method}}(|_| async { Ok("Endpoint: {{.Path}}, Method: {{.Method}}") });
{{- end}}

    println!("Server starting on http://localhost:8080");
    app.listen("127.0.0.1:8080").await?;
    Ok(())
}
`

const graphqlMainTemplate = `use async_graphql::http::GraphiQLSource;
use async_graphql::{ {{- if not .Mutations}}EmptyMutation, {{end}}EmptySubscription, Object, Schema};
use tide::http::mime;
use tide::{Body, Response, StatusCode};

struct QueryRoot;

#[Object]
#[allow(non_snake_case)]
impl QueryRoot {
{{- range .Queries}}
    async fn {{.Name}}(&self) -> String {
        "Result of {{.Name}} query".to_string()
    }
{{- end}}
}
{{- if .Mutations}}

struct MutationRoot;

#[Object]
#[allow(non_snake_case)]
impl MutationRoot {
{{- range .Mutations}}
    async fn {{.Name}}(&self) -> String {
        "Result of {{.Name}} mutation".to_string()
    }
{{- end}}
}
{{- end}}

#[async_std::main]
async fn main() -> tide::Result<()> {
    // No subscription root.
    let schema = Schema::build(QueryRoot, {{if .Mutations}}MutationRoot{{else}}EmptyMutation{{end}}, EmptySubscription).finish();

    let mut app = tide::new();

    // GraphQL endpoint
    app.at("{{.Endpoint.Path}}").{{lower .Endpoint.Method}}(async_graphql_tide::graphql(schema));

    // GraphiQL interface for testing (optional)
    app.at("/graphiql").get(|_| async {
        let page = GraphiQLSource::build().endpoint("{{.Endpoint.Path}}").finish();
        Ok(Response::builder(StatusCode::Ok)
            .body(Body::from_string(page))
            .content_type(mime::HTML)
            .build())
    });

    println!("GraphQL server starting on http://localhost:8080");
    app.listen("127.0.0.1:8080").await?;
    Ok(())
}
`
