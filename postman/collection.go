package postman

import (
	"strings"

	"github.com/samber/lo"
)

const SchemaV210 = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

type Info struct {
	Name   string `json:"name"`
	Schema string `json:"schema"`
}

// Collection represents a Postman Collection.
type Collection struct {
	Info  Info         `json:"info"`
	Items []*ItemGroup `json:"item"`
}

type ItemGroup struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Items       []*Item `json:"item"`
}

type Item struct {
	Name    string   `json:"name"`
	Request *Request `json:"request"`
}

type Request struct {
	Method      string   `json:"method"`
	Header      []Header `json:"header"`
	URL         *URL     `json:"url"`
	Description string   `json:"description"`
}

type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type URL struct {
	Raw      string   `json:"raw"`
	Protocol string   `json:"protocol"`
	Host     []string `json:"host"`
	Path     []string `json:"path"`
}

// Build turns the descriptors into a collection, one folder per group in
// order of first appearance. It never retains or mutates its inputs and
// returns a nil collection on the first failing endpoint.
func Build(descriptors []EndpointDescriptor, project Project) (*Collection, error) {
	items := make([]*Item, len(descriptors))
	for i, d := range descriptors {
		item, err := newItem(d)
		if err != nil {
			return nil, &EndpointError{Index: i, Title: d.Title, URL: d.URL, Err: err}
		}
		items[i] = item
	}

	order := lo.Uniq(lo.Map(descriptors, func(d EndpointDescriptor, _ int) string {
		return d.Group
	}))
	members := lo.GroupBy(lo.Range(len(descriptors)), func(i int) string {
		return descriptors[i].Group
	})

	return &Collection{
		Info: Info{
			Name:   project.DisplayName(),
			Schema: SchemaV210,
		},
		Items: lo.Map(order, func(name string, _ int) *ItemGroup {
			return &ItemGroup{
				Name:        name,
				Description: "",
				Items: lo.Map(members[name], func(i int, _ int) *Item {
					return items[i]
				}),
			}
		}),
	}, nil
}

func newItem(d EndpointDescriptor) (*Item, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	tmpl, err := NormalizeURL(d.URL)
	if err != nil {
		return nil, err
	}

	return &Item{
		Name: d.Title,
		Request: &Request{
			Method: strings.ToUpper(d.Method),
			Header: []Header{
				{Key: "Content-Type", Value: "application/json"},
				{Key: "Accept", Value: "application/json"},
			},
			URL: &URL{
				Raw:      tmpl.Raw(),
				Protocol: "http",
				Host:     []string{"{{host}}"},
				Path:     tmpl.Segments(),
			},
			Description: RenderDescription(d, tmpl.Path),
		},
	}, nil
}
