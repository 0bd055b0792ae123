// Package server publishes generated documents over HTTP so that Postman can
// import them by link.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

const shutdownTimeout = 5 * time.Second

// Documents are encoded once and served as-is.
type Documents struct {
	Postman     []byte
	OpenAPIJSON []byte
	OpenAPIYAML []byte
}

func New(docs Documents, log *zap.SugaredLogger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/postman.json", serve(docs.Postman, "application/json"))
	router.GET("/openapi.json", serve(docs.OpenAPIJSON, "application/json"))
	router.GET("/openapi.yaml", serve(docs.OpenAPIYAML, "application/yaml"))

	return router
}

func serve(data []byte, contentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(data) == 0 {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}

func requestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debugw("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Run serves router on addr until ctx is cancelled.
func Run(ctx context.Context, addr string, router http.Handler, log *zap.SugaredLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Infow("serving documents", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return xerrors.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Infow("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return xerrors.Errorf("shutting down: %w", err)
	}
	return nil
}
