// Package apidoc reads the JSON files written by the apidoc doc extractor and
// converts them into postman descriptors.
package apidoc

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/xerrors"

	"github.com/TuanLDT/apidoc-postman/postman"
)

const (
	DataFile    = "api_data.json"
	ProjectFile = "api_project.json"
)

type entry struct {
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Group       string    `json:"group"`
	Description string    `json:"description"`
	Parameter   *fieldSet `json:"parameter"`
	Success     *fieldSet `json:"success"`
}

type fieldSet struct {
	Fields   *orderedmap.OrderedMap[string, []postman.Field] `json:"fields"`
	Examples []postman.Example                               `json:"examples"`
}

// Load reads api_data.json from dir.
func Load(dir string) ([]postman.EndpointDescriptor, error) {
	data, err := os.ReadFile(filepath.Join(dir, DataFile))
	if err != nil {
		return nil, xerrors.Errorf("reading api data: %w", err)
	}
	return Parse(data)
}

// Parse decodes an api_data.json document.
func Parse(data []byte) ([]postman.EndpointDescriptor, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, xerrors.Errorf("decoding api data: %w", err)
	}

	out := make([]postman.EndpointDescriptor, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.descriptor())
	}
	return out, nil
}

func (e entry) descriptor() postman.EndpointDescriptor {
	d := postman.EndpointDescriptor{
		Group:       e.Group,
		Title:       e.Title,
		URL:         e.URL,
		Method:      e.Type,
		Description: e.Description,
	}

	// every parameter section is flattened in declaration order, the section
	// name survives only as the field group
	if e.Parameter != nil && e.Parameter.Fields != nil {
		for pair := e.Parameter.Fields.Oldest(); pair != nil; pair = pair.Next() {
			d.Parameters = append(d.Parameters, pair.Value...)
		}
	}

	if e.Success != nil && (e.Success.Fields != nil || len(e.Success.Examples) > 0) {
		d.Success = &postman.Success{
			Fields:   e.Success.Fields,
			Examples: e.Success.Examples,
		}
	}

	return d
}

// LoadProject reads api_project.json from dir. A missing file is reported
// with ok == false and no error.
func LoadProject(dir string) (project postman.Project, ok bool, err error) {
	data, err := os.ReadFile(filepath.Join(dir, ProjectFile))
	if os.IsNotExist(err) {
		return postman.Project{}, false, nil
	} else if err != nil {
		return postman.Project{}, false, xerrors.Errorf("reading api project: %w", err)
	}

	if err := json.Unmarshal(data, &project); err != nil {
		return postman.Project{}, false, xerrors.Errorf("decoding api project: %w", err)
	}
	return project, true, nil
}
