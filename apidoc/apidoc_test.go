package apidoc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/nsf/jsondiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TuanLDT/apidoc-postman/postman"
)

func TestGolden(t *testing.T) {
	dirs, err := os.ReadDir("testdata")
	require.NoError(t, err)

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		dirname := filepath.Join("testdata", dir.Name())

		t.Run(dir.Name(), func(t *testing.T) {
			t.Parallel()

			expected, err := os.ReadFile(filepath.Join(dirname, "postman.json"))
			require.NoError(t, err)

			descriptors, err := Load(dirname)
			require.NoError(t, err)

			project, ok, err := LoadProject(dirname)
			require.NoError(t, err)
			require.True(t, ok)

			out, err := postman.Build(descriptors, project)
			require.NoError(t, err)

			outjson, err := json.Marshal(out)
			require.NoError(t, err)

			opts := jsondiff.DefaultConsoleOptions()
			diff, msg := jsondiff.Compare(expected, outjson, &opts)
			if diff != jsondiff.FullMatch {
				t.Error(msg)
			}
		})
	}
}

func TestParseFlattensParameterSections(t *testing.T) {
	descriptors, err := Parse([]byte(`[{
		"type": "post", "url": "/n/:id", "title": "t", "group": "g",
		"parameter": {"fields": {
			"Parameter": [{"group": "Parameter", "type": "String", "field": "id"}],
			"Body": [{"group": "Body", "type": "String", "field": "z"}, {"group": "Body", "type": "String", "field": "a"}]
		}}
	}]`))
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	var names []string
	for _, f := range descriptors[0].Parameters {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"id", "z", "a"}, names)
	assert.Nil(t, descriptors[0].Success)
	assert.Equal(t, "post", descriptors[0].Method)
}

func TestParseKeepsResponseSectionOrder(t *testing.T) {
	descriptors, err := Parse([]byte(`[{
		"type": "get", "url": "/x", "title": "t", "group": "g",
		"success": {
			"fields": {"Success 200": [{"field": "b"}], "Error 4xx": [{"field": "a"}], "Alpha": []},
			"examples": [{"title": "ok", "type": "json", "content": "{}"}]
		}
	}]`))
	require.NoError(t, err)

	success := descriptors[0].Success
	require.NotNil(t, success)

	var keys []string
	for pair := success.Fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"Success 200", "Error 4xx", "Alpha"}, keys)
	require.Len(t, success.Examples, 1)
	assert.Equal(t, "{}", success.Examples[0].Content)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadProjectMissing(t *testing.T) {
	project, ok, err := LoadProject(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, postman.Project{}, project)
}
