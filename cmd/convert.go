package cmd

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/mitchellh/go-homedir"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/TuanLDT/apidoc-postman/apidoc"
	"github.com/TuanLDT/apidoc-postman/openapi"
	"github.com/TuanLDT/apidoc-postman/output"
	"github.com/TuanLDT/apidoc-postman/postman"
	"github.com/TuanLDT/apidoc-postman/project"
)

const (
	formatPostman     = "postman"
	formatOpenAPI     = "openapi"
	formatOpenAPIYAML = "openapi-yaml"
	formatAll         = "all"
)

var formats = []string{formatPostman, formatOpenAPI, formatOpenAPIYAML, formatAll}

type generated struct {
	endpoints  int
	collection *postman.Collection
	openapi    *openapi3.T
}

// generate runs the whole pipeline in memory: load, resolve, build.
func (a *app) generate(withOpenAPI bool) (*generated, error) {
	input, err := homedir.Expand(a.cfg.Input)
	if err != nil {
		return nil, xerrors.Errorf("expanding input: %w", err)
	}

	a.log.Debugw("read api data", "dir", input)
	descriptors, err := apidoc.Load(input)
	if err != nil {
		return nil, err
	}

	p, err := project.Resolve(project.Options{
		Src:   a.cfg.Src,
		Input: input,
		Overrides: postman.Project{
			Name:    a.cfg.Name,
			Title:   a.cfg.Title,
			Version: a.cfg.Version,
		},
		NoGit: a.cfg.NoGit,
	})
	if err != nil {
		return nil, err
	}
	a.log.Debugw("project", "name", p.Name, "title", p.Title, "version", p.Version)

	out := &generated{endpoints: len(descriptors)}

	out.collection, err = postman.Build(descriptors, p)
	if err != nil {
		return nil, xerrors.Errorf("building postman collection: %w", err)
	}

	if withOpenAPI {
		out.openapi, err = openapi.Build(descriptors, p)
		if err != nil {
			return nil, xerrors.Errorf("building openapi document: %w", err)
		}
	}

	return out, nil
}

func (a *app) convert(cmd *cobra.Command, _ []string) error {
	if !lo.Contains(formats, a.cfg.Format) {
		return xerrors.Errorf("unknown format %q, expected one of %v", a.cfg.Format, formats)
	}

	docs, err := a.generate(a.cfg.Format != formatPostman)
	if err != nil {
		return err
	}
	if docs.endpoints == 0 {
		a.log.Info("Nothing to do.")
		return nil
	}

	dest, err := homedir.Expand(a.cfg.Output)
	if err != nil {
		return xerrors.Errorf("expanding output: %w", err)
	}

	w := &output.Writer{
		Dest:     dest,
		Simulate: a.cfg.Simulate,
		Indent:   a.cfg.Indent,
		Log:      a.log,
	}

	files, err := encode(w, docs, a.cfg.Format)
	if err != nil {
		return err
	}

	if a.cfg.Parse {
		for _, f := range files {
			if _, err := cmd.OutOrStdout().Write(f.data); err != nil {
				return xerrors.Errorf("printing %s: %w", f.name, err)
			}
		}
		return nil
	}

	if a.cfg.Simulate {
		a.log.Warn("!!! Simulation !!! No file or dir will be copied or created.")
	}

	for _, f := range files {
		path, err := w.Write(f.name, f.data)
		if err != nil {
			return err
		}
		a.log.Infow("wrote", "file", path, "groups", len(docs.collection.Items), "endpoints", docs.endpoints)
	}

	a.log.Info("Done.")
	return nil
}

type file struct {
	name string
	data []byte
}

func encode(w *output.Writer, docs *generated, format string) ([]file, error) {
	var files []file

	if format == formatPostman || format == formatAll {
		data, err := w.Encode(docs.collection)
		if err != nil {
			return nil, err
		}
		files = append(files, file{output.PostmanFile, data})
	}

	if format == formatOpenAPI || format == formatAll {
		data, err := w.Encode(docs.openapi)
		if err != nil {
			return nil, err
		}
		files = append(files, file{output.OpenAPIJSONFile, data})
	}

	if format == formatOpenAPIYAML || format == formatAll {
		data, err := openapi.MarshalYAML(docs.openapi)
		if err != nil {
			return nil, err
		}
		files = append(files, file{output.OpenAPIYAMLFile, data})
	}

	return files, nil
}
