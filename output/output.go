// Package output writes generated documents into the destination directory.
package output

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

const (
	PostmanFile     = "postman.json"
	OpenAPIJSONFile = "openapi.json"
	OpenAPIYAMLFile = "openapi.yaml"
)

type Writer struct {
	Dest     string
	Simulate bool
	Indent   bool
	Log      *zap.SugaredLogger
}

// Encode marshals v, indented with two spaces when the writer asks for it.
func (w *Writer) Encode(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, xerrors.Errorf("encoding document: %w", err)
	}
	if !w.Indent {
		return data, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, xerrors.Errorf("indenting document: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write stores data as name under the destination directory, creating it when
// needed. In simulation mode nothing touches the disk.
func (w *Writer) Write(name string, data []byte) (string, error) {
	path := filepath.Join(w.Dest, name)

	w.log().Debugw("create dir", "dir", w.Dest)
	if !w.Simulate {
		if err := os.MkdirAll(w.Dest, 0o755); err != nil {
			return "", xerrors.Errorf("creating %s: %w", w.Dest, err)
		}
	}

	w.log().Debugw("write file", "file", path, "bytes", len(data))
	if !w.Simulate {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", xerrors.Errorf("writing %s: %w", path, err)
		}
	}

	return path, nil
}

func (w *Writer) log() *zap.SugaredLogger {
	if w.Log == nil {
		return zap.NewNop().Sugar()
	}
	return w.Log
}
