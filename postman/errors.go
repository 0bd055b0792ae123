package postman

import "fmt"

// MalformedTemplateError is returned when a ':' in a URL template is not
// followed by an identifier.
type MalformedTemplateError struct {
	Template string
	Offset   int
}

func (e *MalformedTemplateError) Error() string {
	return fmt.Sprintf("malformed url template %q: missing parameter name after ':' at offset %d", e.Template, e.Offset)
}

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// EndpointError identifies the endpoint that made a build fail.
type EndpointError struct {
	Index int
	Title string
	URL   string
	Err   error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("endpoint #%d %q (%s): %v", e.Index, e.Title, e.URL, e.Err)
}

func (e *EndpointError) Unwrap() error {
	return e.Err
}
