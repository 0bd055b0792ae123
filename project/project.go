// Package project resolves the collection metadata from the files that sit
// next to the documented sources.
package project

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/xerrors"

	"github.com/TuanLDT/apidoc-postman/apidoc"
	"github.com/TuanLDT/apidoc-postman/postman"
)

const defaultVersion = "0.0.0"

type Options struct {
	// Src holds package.json and apidoc.json.
	Src string
	// Input is the doc extractor output, it may hold api_project.json.
	Input string
	// Overrides win over every file.
	Overrides postman.Project
	// NoGit disables filling the blanks from the git checkout.
	NoGit bool
}

type packageJSON struct {
	postman.Project
	Apidoc *postman.Project `json:"apidoc"`
}

// Resolve computes the project metadata. api_project.json, when present, is
// authoritative; otherwise package.json is layered under apidoc.json.
func Resolve(opts Options) (postman.Project, error) {
	src, err := expand(opts.Src)
	if err != nil {
		return postman.Project{}, err
	}
	input, err := expand(opts.Input)
	if err != nil {
		return postman.Project{}, err
	}

	out, ok, err := apidoc.LoadProject(input)
	if err != nil {
		return postman.Project{}, err
	}

	if !ok {
		var pkg packageJSON
		if _, err := readJSON(src, "package.json", &pkg); err != nil {
			return postman.Project{}, err
		}
		if pkg.Apidoc != nil {
			out = *pkg.Apidoc
		}
		out = defaults(out, postman.Project{
			Name:        pkg.Name,
			Version:     pkg.Version,
			Description: pkg.Description,
		})

		var doc postman.Project
		if _, err := readJSON(src, "apidoc.json", &doc); err != nil {
			return postman.Project{}, err
		}
		out = override(out, doc)
	}

	out = override(out, opts.Overrides)

	if !opts.NoGit {
		if info, ok := lookupGit(src); ok {
			out = defaults(out, info.project())
		}
	}

	return defaults(out, postman.Project{Version: defaultVersion}), nil
}

// readJSON looks for filename in dir first and in the working directory
// second. A file found in neither place leaves v untouched.
func readJSON(dir, filename string, v interface{}) (bool, error) {
	candidates := []string{filepath.Join(dir, filename)}
	if dir != "." {
		candidates = append(candidates, filename)
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return false, xerrors.Errorf("reading %s: %w", candidate, err)
		}

		if err := json.Unmarshal(data, v); err != nil {
			return false, xerrors.Errorf("can not read %s, please check the format (e.g. missing comma): %w", filename, err)
		}
		return true, nil
	}

	return false, nil
}

func expand(dir string) (string, error) {
	if len(dir) == 0 {
		return ".", nil
	}
	dir, err := homedir.Expand(dir)
	if err != nil {
		return "", xerrors.Errorf("expanding %s: %w", dir, err)
	}
	return filepath.Clean(dir), nil
}

// override copies every non-empty field of src onto dst.
func override(dst, src postman.Project) postman.Project {
	set := func(d *string, s string) {
		if len(s) > 0 {
			*d = s
		}
	}
	set(&dst.Name, src.Name)
	set(&dst.Title, src.Title)
	set(&dst.Version, src.Version)
	set(&dst.Description, src.Description)
	set(&dst.URL, src.URL)
	return dst
}

// defaults fills the empty fields of dst from src.
func defaults(dst, src postman.Project) postman.Project {
	return override(src, dst)
}
