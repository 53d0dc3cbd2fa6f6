package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lsftools/lsbacct/internal"
	"github.com/lsftools/lsbacct/pkg/schema"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

var logger = internal.Logger

type arguments struct {
	LogLevel   string
	ConfigPath string
	Region     string
	SentryDSN  string

	registry *schema.Registry
	out      io.Writer
}

func newApp(args *arguments) *cli.App {
	return &cli.App{
		Name:  "lsbacct",
		Usage: "Decoder of LSF lsb.acct accounting log",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Aliases:     []string{"l"},
				Usage:       "Log level [TRACE|DEBUG|INFO|WARN|ERROR]",
				Value:       "INFO",
				EnvVars:     []string{"LOG_LEVEL"},
				Destination: &args.LogLevel,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "YAML file of additional version tables",
				EnvVars:     []string{"LSBACCT_CONFIG"},
				Destination: &args.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "region",
				Aliases:     []string{"r"},
				Usage:       "AWS region of s3:// source",
				EnvVars:     []string{"AWS_REGION"},
				Destination: &args.Region,
			},
			&cli.StringFlag{
				Name:        "sentry-dsn",
				Usage:       "Sentry DSN to report fatal errors",
				EnvVars:     []string{"SENTRY_DSN"},
				Destination: &args.SentryDSN,
			},
		},
		Before: func(c *cli.Context) error {
			internal.SetLogLevel(args.LogLevel)

			if err := internal.InitErrorHandler(args.SentryDSN, ""); err != nil {
				return errors.Wrap(err, "Fail to initialize sentry")
			}

			reg, err := schema.Load(args.ConfigPath)
			if err != nil {
				return err
			}
			args.registry = reg
			return nil
		},
		Commands: []*cli.Command{
			listCommand(args),
			dumpCommand(args),
			exportCommand(args),
			usageCommand(args),
			formatsCommand(args),
			serveCommand(args),
		},
	}
}

func main() {
	args := arguments{out: os.Stdout}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp(&args).RunContext(ctx, os.Args)
	stop()

	if err != nil {
		internal.HandleError(err)
		internal.FlushError()
		os.Exit(1)
	}
}
