// Package openapi exports endpoint descriptors as an OpenAPI 3 document.
package openapi

import (
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/samber/lo"
	"golang.org/x/xerrors"

	"github.com/TuanLDT/apidoc-postman/postman"
)

const jsonContentType = "application/json"

// Build converts the descriptors with the same validation and URL rules as
// postman.Build. Operations sharing a path and method overwrite each other.
func Build(descriptors []postman.EndpointDescriptor, project postman.Project) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       project.DisplayName(),
			Description: project.Description,
			Version:     project.Version,
		},
		Paths: openapi3.Paths{},
	}

	if len(project.URL) > 0 {
		doc.Servers = openapi3.Servers{&openapi3.Server{URL: project.URL}}
	}

	for _, group := range lo.Uniq(lo.Map(descriptors, func(d postman.EndpointDescriptor, _ int) string {
		return d.Group
	})) {
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: group})
	}

	for i, d := range descriptors {
		if err := addOperation(doc, d); err != nil {
			return nil, &postman.EndpointError{Index: i, Title: d.Title, URL: d.URL, Err: err}
		}
	}

	return doc, nil
}

func addOperation(doc *openapi3.T, d postman.EndpointDescriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	tmpl, err := postman.NormalizeURL(d.URL)
	if err != nil {
		return err
	}

	path := tmpl.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	item, ok := doc.Paths[path]
	if !ok {
		item = &openapi3.PathItem{}
		doc.Paths[path] = item
	}

	operation := intoOperation(d, tmpl.Params)

	switch method := strings.ToUpper(d.Method); method {
	case http.MethodPost:
		item.Post = operation
	case http.MethodGet:
		item.Get = operation
	case http.MethodHead:
		item.Head = operation
	case http.MethodPut:
		item.Put = operation
	case http.MethodPatch:
		item.Patch = operation
	case http.MethodDelete:
		item.Delete = operation
	case http.MethodOptions:
		item.Options = operation
	case http.MethodTrace:
		item.Trace = operation
	default:
		return xerrors.Errorf("unsupported http method %q", d.Method)
	}

	return nil
}

func intoOperation(d postman.EndpointDescriptor, pathParams []string) *openapi3.Operation {
	operation := &openapi3.Operation{
		Tags:        []string{d.Group},
		Summary:     d.Title,
		Description: d.Description,
		Parameters:  openapi3.Parameters{},
		Responses:   intoResponses(d.Success),
	}

	declared := lo.KeyBy(d.Parameters, func(f postman.Field) string { return f.Name })

	for _, name := range lo.Uniq(pathParams) {
		schema := openapi3.NewStringSchema()
		var description string
		if f, ok := declared[name]; ok {
			schema = fieldSchema(f)
			description = f.Description
		}

		operation.Parameters = append(operation.Parameters, &openapi3.ParameterRef{
			Value: &openapi3.Parameter{
				In:          openapi3.ParameterInPath,
				Name:        name,
				Description: description,
				Required:    true,
				Schema:      &openapi3.SchemaRef{Value: schema},
			},
		})
	}

	rest := lo.Filter(d.Parameters, func(f postman.Field, _ int) bool {
		return !lo.Contains(pathParams, f.Name)
	})
	if len(rest) == 0 {
		return operation
	}

	if hasBody(d.Method) {
		operation.RequestBody = &openapi3.RequestBodyRef{
			Value: &openapi3.RequestBody{
				Required: lo.SomeBy(rest, func(f postman.Field) bool { return !f.Optional }),
				Content: openapi3.Content{
					jsonContentType: &openapi3.MediaType{
						Schema: &openapi3.SchemaRef{Value: objectSchema(rest)},
					},
				},
			},
		}
		return operation
	}

	for _, f := range rest {
		operation.Parameters = append(operation.Parameters, &openapi3.ParameterRef{
			Value: &openapi3.Parameter{
				In:          openapi3.ParameterInQuery,
				Name:        f.Name,
				Description: f.Description,
				Required:    !f.Optional,
				Schema:      &openapi3.SchemaRef{Value: fieldSchema(f)},
			},
		})
	}

	return operation
}

func hasBody(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func intoResponses(success *postman.Success) openapi3.Responses {
	description := "Success"
	response := &openapi3.Response{Description: &description}

	if success != nil {
		var fields []postman.Field
		if success.Fields != nil {
			for pair := success.Fields.Oldest(); pair != nil; pair = pair.Next() {
				fields = append(fields, pair.Value...)
			}
		}

		if len(fields) > 0 || len(success.Examples) > 0 {
			media := &openapi3.MediaType{}
			if len(fields) > 0 {
				media.Schema = &openapi3.SchemaRef{Value: objectSchema(fields)}
			}
			if len(success.Examples) > 0 {
				if example, ok := parseExample(success.Examples[0].Content); ok {
					media.Example = example
				}
			}
			response.Content = openapi3.Content{jsonContentType: media}
		}
	}

	return openapi3.Responses{
		"200": &openapi3.ResponseRef{Value: response},
	}
}
