package postman

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// EndpointDescriptor is one documented API operation as produced by the doc
// extractor.
type EndpointDescriptor struct {
	Group       string
	Title       string
	URL         string // template with positional parameters, e.g. /v1/users/:id
	Method      string
	Description string
	Parameters  []Field
	Success     *Success
}

type Success struct {
	Fields   *orderedmap.OrderedMap[string, []Field]
	Examples []Example
}

type Example struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Field is a parameter or response field record. Group is the apidoc section
// the record was declared in and is never rendered.
type Field struct {
	Group         string   `json:"group"`
	Type          string   `json:"type"`
	Optional      bool     `json:"optional"`
	Name          string   `json:"field"`
	Description   string   `json:"description"`
	DefaultValue  string   `json:"defaultValue,omitempty"`
	Size          string   `json:"size,omitempty"`
	AllowedValues []string `json:"allowedValues,omitempty"`
}

type Project struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// DisplayName is the title, falling back to the package name.
func (p Project) DisplayName() string {
	if len(p.Title) > 0 {
		return p.Title
	}
	return p.Name
}

func (d EndpointDescriptor) hasFields() bool {
	return d.Success != nil && d.Success.Fields != nil && d.Success.Fields.Len() > 0
}

func (d EndpointDescriptor) hasExamples() bool {
	return d.Success != nil && len(d.Success.Examples) > 0
}

// Validate reports every missing required field of the descriptor at once.
func (d EndpointDescriptor) Validate() error {
	var result *multierror.Error

	for _, required := range []struct {
		name  string
		value string
	}{
		{"group", d.Group},
		{"title", d.Title},
		{"url", d.URL},
		{"method", d.Method},
	} {
		if len(strings.TrimSpace(required.value)) == 0 {
			result = multierror.Append(result, &MissingFieldError{Field: required.name})
		}
	}

	return result.ErrorOrNil()
}
