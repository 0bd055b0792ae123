package openapi

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"

	"github.com/TuanLDT/apidoc-postman/postman"
)

// typeSchema maps an apidoc type name such as "String", "Number[]" or
// "Object" onto a schema.
func typeSchema(name string) *openapi3.Schema {
	name = strings.TrimSpace(name)

	if strings.HasSuffix(name, "[]") {
		out := openapi3.NewArraySchema()
		out.Items = &openapi3.SchemaRef{Value: typeSchema(strings.TrimSuffix(name, "[]"))}
		return out
	}

	// "String{1..32}" carries a size, it is not part of the type
	if i := strings.IndexByte(name, '{'); i > 0 {
		name = name[:i]
	}

	switch strings.ToLower(name) {
	case "bool", "boolean":
		return openapi3.NewBoolSchema()
	case "int", "integer":
		return openapi3.NewIntegerSchema()
	case "number", "float", "double":
		return openapi3.NewFloat64Schema()
	case "object", "json":
		return openapi3.NewObjectSchema()
	case "array":
		return openapi3.NewArraySchema()
	case "date", "datetime":
		out := openapi3.NewStringSchema()
		out.Format = "date-time"
		return out
	case "file":
		out := openapi3.NewStringSchema()
		out.Format = "binary"
		return out
	default:
		return openapi3.NewStringSchema()
	}
}

func fieldSchema(f postman.Field) *openapi3.Schema {
	out := typeSchema(f.Type)
	out.Description = f.Description

	if len(f.DefaultValue) > 0 {
		out.Default = f.DefaultValue
	}
	for _, v := range f.AllowedValues {
		out.Enum = append(out.Enum, strings.Trim(v, `"'`))
	}

	return out
}

// objectSchema nests dotted field names ("data.items") under their parent
// properties, creating intermediate objects when the parent is undeclared.
func objectSchema(fields []postman.Field) *openapi3.Schema {
	root := openapi3.NewObjectSchema()

	for _, f := range fields {
		parts := strings.Split(f.Name, ".")
		parent := root
		for _, part := range parts[:len(parts)-1] {
			parent = childObject(parent, part)
		}

		name := parts[len(parts)-1]
		if existing, ok := parent.Properties[name]; ok && existing.Value != nil && len(existing.Value.Properties) > 0 {
			// children were declared before their parent
			existing.Value.Description = f.Description
		} else {
			parent.Properties[name] = &openapi3.SchemaRef{Value: fieldSchema(f)}
		}
		if !f.Optional {
			parent.Required = append(parent.Required, name)
		}
	}

	return root
}

// childObject returns the object schema properties of name should be added
// to. Arrays of objects get their items used.
func childObject(parent *openapi3.Schema, name string) *openapi3.Schema {
	ref, ok := parent.Properties[name]
	if !ok || ref.Value == nil {
		ref = &openapi3.SchemaRef{Value: openapi3.NewObjectSchema()}
		parent.Properties[name] = ref
	}

	out := ref.Value
	if out.Type == openapi3.TypeArray {
		if out.Items == nil || out.Items.Value == nil || out.Items.Value.Type != openapi3.TypeObject {
			out.Items = &openapi3.SchemaRef{Value: openapi3.NewObjectSchema()}
		}
		out = out.Items.Value
	}
	if out.Properties == nil {
		out.Type = openapi3.TypeObject
		out.Properties = openapi3.Schemas{}
	}

	return out
}

// parseExample extracts the JSON value of an apidoc example, skipping a
// leading status line such as "HTTP/1.1 200 OK".
func parseExample(content string) (interface{}, bool) {
	start := strings.IndexAny(content, "{[")
	if start < 0 {
		return nil, false
	}

	var out interface{}
	if err := json.Unmarshal([]byte(content[start:]), &out); err != nil {
		return nil, false
	}
	return out, true
}
