package openapi

import (
	"errors"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/TuanLDT/apidoc-postman/postman"
)

func descriptors() []postman.EndpointDescriptor {
	success := orderedmap.New[string, []postman.Field]()
	success.Set("Success 200", []postman.Field{
		{Type: "Number", Name: "code"},
		{Type: "Object", Name: "data"},
		{Type: "Number", Name: "data.count", Optional: true},
		{Type: "Object[]", Name: "data.items"},
		{Type: "String", Name: "data.items.name"},
	})

	return []postman.EndpointDescriptor{
		{
			Group:  "Users",
			Title:  "List users",
			URL:    "/v1/users",
			Method: "get",
			Parameters: []postman.Field{
				{Type: "Number", Name: "page", Optional: true, DefaultValue: "0"},
				{Type: "String", Name: "sort", AllowedValues: []string{`"asc"`, `"desc"`}},
			},
			Success: &postman.Success{
				Fields:   success,
				Examples: []postman.Example{{Content: "HTTP/1.1 200 OK\n{\"code\": 200}"}},
			},
		},
		{
			Group:  "Users",
			Title:  "Update user",
			URL:    "/v1/users/:id",
			Method: "put",
			Parameters: []postman.Field{
				{Type: "Number", Name: "id", Description: "User id"},
				{Type: "String", Name: "name"},
				{Type: "String", Name: "email", Optional: true},
			},
		},
		{Group: "Accounts", Title: "Get account", URL: "/v1/accounts/:id", Method: "GET"},
	}
}

func TestBuild(t *testing.T) {
	doc, err := Build(descriptors(), postman.Project{Name: "demo", Version: "1.0.0", URL: "https://api.example.com"})
	require.NoError(t, err)

	assert.Equal(t, "3.0.0", doc.OpenAPI)
	assert.Equal(t, "demo", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://api.example.com", doc.Servers[0].URL)

	require.Len(t, doc.Tags, 2)
	assert.Equal(t, "Users", doc.Tags[0].Name)
	assert.Equal(t, "Accounts", doc.Tags[1].Name)

	assert.Len(t, doc.Paths, 3)
	require.NotNil(t, doc.Paths["/v1/users"])
	require.NotNil(t, doc.Paths["/v1/users/{id}"])
	require.NotNil(t, doc.Paths["/v1/accounts/{id}"])
}

func TestBuildQueryParameters(t *testing.T) {
	doc, err := Build(descriptors(), postman.Project{Name: "demo"})
	require.NoError(t, err)

	op := doc.Paths["/v1/users"].Get
	require.NotNil(t, op)
	assert.Equal(t, []string{"Users"}, op.Tags)
	assert.Equal(t, "List users", op.Summary)
	assert.Nil(t, op.RequestBody)
	require.Len(t, op.Parameters, 2)

	page := op.Parameters[0].Value
	assert.Equal(t, openapi3.ParameterInQuery, page.In)
	assert.Equal(t, "page", page.Name)
	assert.False(t, page.Required)
	assert.Equal(t, openapi3.TypeNumber, page.Schema.Value.Type)
	assert.Equal(t, "0", page.Schema.Value.Default)

	sort := op.Parameters[1].Value
	assert.True(t, sort.Required)
	assert.Equal(t, []interface{}{"asc", "desc"}, sort.Schema.Value.Enum)
}

func TestBuildPathParametersAndBody(t *testing.T) {
	doc, err := Build(descriptors(), postman.Project{Name: "demo"})
	require.NoError(t, err)

	op := doc.Paths["/v1/users/{id}"].Put
	require.NotNil(t, op)
	require.Len(t, op.Parameters, 1)

	id := op.Parameters[0].Value
	assert.Equal(t, openapi3.ParameterInPath, id.In)
	assert.Equal(t, "id", id.Name)
	assert.True(t, id.Required)
	assert.Equal(t, "User id", id.Description)
	assert.Equal(t, openapi3.TypeNumber, id.Schema.Value.Type)

	require.NotNil(t, op.RequestBody)
	body := op.RequestBody.Value
	assert.True(t, body.Required)
	schema := body.Content["application/json"].Schema.Value
	assert.Equal(t, openapi3.TypeObject, schema.Type)
	assert.Len(t, schema.Properties, 2)
	assert.Equal(t, []string{"name"}, schema.Required)

	// undeclared path parameters default to strings
	account := doc.Paths["/v1/accounts/{id}"].Get
	require.Len(t, account.Parameters, 1)
	assert.Equal(t, openapi3.TypeString, account.Parameters[0].Value.Schema.Value.Type)
}

func TestBuildResponses(t *testing.T) {
	doc, err := Build(descriptors(), postman.Project{Name: "demo"})
	require.NoError(t, err)

	ok := doc.Paths["/v1/users"].Get.Responses["200"].Value
	require.NotNil(t, ok)
	assert.Equal(t, "Success", *ok.Description)

	media := ok.Content["application/json"]
	require.NotNil(t, media)
	assert.Equal(t, map[string]interface{}{"code": float64(200)}, media.Example)

	schema := media.Schema.Value
	assert.Equal(t, []string{"code", "data"}, schema.Required)

	data := schema.Properties["data"].Value
	assert.Equal(t, openapi3.TypeObject, data.Type)
	assert.Contains(t, data.Properties, "count")
	assert.Equal(t, []string{"items"}, data.Required)

	items := data.Properties["items"].Value
	assert.Equal(t, openapi3.TypeArray, items.Type)
	assert.Contains(t, items.Items.Value.Properties, "name")

	// no success block still documents a response
	account := doc.Paths["/v1/accounts/{id}"].Get.Responses["200"].Value
	assert.Nil(t, account.Content)
}

func TestBuildErrors(t *testing.T) {
	t.Run("malformed template", func(t *testing.T) {
		_, err := Build([]postman.EndpointDescriptor{{Group: "g", Title: "t", URL: "/x/:", Method: "get"}}, postman.Project{})
		var malformed *postman.MalformedTemplateError
		assert.True(t, errors.As(err, &malformed))
	})

	t.Run("unsupported method", func(t *testing.T) {
		_, err := Build([]postman.EndpointDescriptor{{Group: "g", Title: "t", URL: "/x", Method: "fetch"}}, postman.Project{})
		var endpointErr *postman.EndpointError
		require.True(t, errors.As(err, &endpointErr))
		assert.Equal(t, "t", endpointErr.Title)
	})
}

func TestTypeSchema(t *testing.T) {
	tests := map[string]string{
		"String":        openapi3.TypeString,
		"string{1..32}": openapi3.TypeString,
		"Number":        openapi3.TypeNumber,
		"Integer":       openapi3.TypeInteger,
		"Boolean":       openapi3.TypeBoolean,
		"Object":        openapi3.TypeObject,
		"String[]":      openapi3.TypeArray,
		"Unknown":       openapi3.TypeString,
	}
	for in, expected := range tests {
		assert.Equal(t, expected, typeSchema(in).Type, in)
	}

	assert.Equal(t, openapi3.TypeNumber, typeSchema("Number[]").Items.Value.Type)
	assert.Equal(t, "date-time", typeSchema("Date").Format)
}

func TestMarshalYAML(t *testing.T) {
	doc, err := Build(descriptors(), postman.Project{Name: "demo", Version: "1.0.0"})
	require.NoError(t, err)

	out, err := MarshalYAML(doc)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "3.0.0", decoded["openapi"])
	assert.Contains(t, decoded["paths"], "/v1/users/{id}")
	assert.NotContains(t, string(out), `{"`)
}
