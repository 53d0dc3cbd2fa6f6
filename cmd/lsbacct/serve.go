package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lsftools/lsbacct/pkg/api"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

type serveArguments struct {
	addr        string
	port        int
	maxBodySize int64
}

func serveCommand(args *arguments) *cli.Command {
	var params serveArguments

	return &cli.Command{
		Name:  "serve",
		Usage: "Run HTTP API server to decode posted log",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Aliases:     []string{"a"},
				Value:       "127.0.0.1",
				Usage:       "Bind address",
				Destination: &params.addr,
			},
			&cli.IntFlag{
				Name:        "port",
				Aliases:     []string{"p"},
				Value:       10080,
				Usage:       "Bind port number",
				Destination: &params.port,
			},
			&cli.Int64Flag{
				Name:        "max-body-size",
				Value:       api.DefaultMaxBodySize,
				Usage:       "Max size of posted log in bytes",
				Destination: &params.maxBodySize,
			},
		},
		Action: func(c *cli.Context) error {
			return serveAction(c.Context, args, params)
		},
	}
}

func serveAction(ctx context.Context, args *arguments, params serveArguments) error {
	r := gin.Default()
	v1 := r.Group("/api/v1")
	api.SetupRoute(v1, api.Arguments{
		Registry:    args.registry,
		MaxBodySize: params.maxBodySize,
	})

	bindAddr := fmt.Sprintf("%s:%d", params.addr, params.port)
	server := &http.Server{Addr: bindAddr, Handler: r}

	logger.WithField("addr", bindAddr).Info("Start API server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "Server error")

	case <-ctx.Done():
		logger.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
