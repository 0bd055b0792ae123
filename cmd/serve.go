package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/TuanLDT/apidoc-postman/openapi"
	"github.com/TuanLDT/apidoc-postman/output"
	"github.com/TuanLDT/apidoc-postman/server"
)

func newServeCommand(a *app) *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated documents over HTTP",
		Long: `Generate the Postman collection and the OpenAPI document in memory and
serve them on /postman.json, /openapi.json and /openapi.yaml so they can be
imported by link.`,
		Args: cobra.NoArgs,
		RunE: a.wrap(a.serve),
	}

	serve.Flags().String("addr", ":8080", "listen address")

	return serve
}

func (a *app) serve(cmd *cobra.Command, _ []string) error {
	docs, err := a.generate(true)
	if err != nil {
		return err
	}

	documents, err := a.documents(docs)
	if err != nil {
		return err
	}

	if !a.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, a.cfg.Addr, server.New(documents, a.log), a.log)
}

func (a *app) documents(docs *generated) (server.Documents, error) {
	w := &output.Writer{Indent: a.cfg.Indent}

	var out server.Documents
	var err error

	if out.Postman, err = w.Encode(docs.collection); err != nil {
		return out, err
	}
	if out.OpenAPIJSON, err = w.Encode(docs.openapi); err != nil {
		return out, err
	}
	if out.OpenAPIYAML, err = openapi.MarshalYAML(docs.openapi); err != nil {
		return out, err
	}

	return out, nil
}
