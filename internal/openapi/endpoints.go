package openapi

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mark3labs/apigen/internal/project"
)

// Skipped names an operation Endpoints could not turn into an endpoint.
type Skipped struct {
	Path   string
	Method string
	Reason string
}

// Endpoints returns one endpoint per GET, POST, PUT and DELETE operation in
// doc. Paths are sorted and methods follow that order within a path. Other
// operations are reported as skipped.
func Endpoints(doc *openapi3.T) ([]project.Endpoint, []Skipped) {
	if doc == nil || doc.Paths.Len() == 0 {
		return nil, nil
	}
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for p := range paths {
		keys = append(keys, p)
	}
	sort.Strings(keys)

	var (
		endpoints []project.Endpoint
		skipped   []Skipped
	)
	for _, p := range keys {
		item := paths[p]
		if item == nil {
			continue
		}
		for _, op := range []struct {
			m project.Method
			o *openapi3.Operation
		}{
			{project.GET, item.Get},
			{project.POST, item.Post},
			{project.PUT, item.Put},
			{project.DELETE, item.Delete},
		} {
			if op.o != nil {
				endpoints = append(endpoints, project.Endpoint{Path: p, Method: op.m})
			}
		}
		for _, op := range []struct {
			m string
			o *openapi3.Operation
		}{
			{"PATCH", item.Patch},
			{"HEAD", item.Head},
			{"OPTIONS", item.Options},
			{"TRACE", item.Trace},
		} {
			if op.o != nil {
				skipped = append(skipped, Skipped{Path: p, Method: op.m, Reason: "unsupported method"})
			}
		}
	}
	return endpoints, skipped
}
