package main

import (
	"context"
	"io"

	"github.com/lsftools/lsbacct/internal"
	"github.com/lsftools/lsbacct/internal/source"
	"github.com/lsftools/lsbacct/pkg/logfile"
	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

type readOptions struct {
	keepGoing bool
	follow    bool
}

func keepGoingFlag(dst *bool) cli.Flag {
	return &cli.BoolFlag{
		Name:        "keep-going",
		Aliases:     []string{"k"},
		Usage:       "Log broken records and continue",
		Destination: dst,
	}
}

// sources returns positional arguments. Stdin is used if nothing is given.
func sources(c *cli.Context) []string {
	if c.NArg() == 0 {
		return []string{source.Stdin}
	}
	return c.Args().Slice()
}

type recordHandler func(rec *models.Record) error

// eachRecord decodes all records of srcs in order and calls fn for each.
func eachRecord(ctx context.Context, args *arguments, srcs []string, opts readOptions, fn recordHandler) error {
	prof := internal.NewProfile()
	defer prof.Report("Decode summary")

	for _, src := range srcs {
		if err := readSource(ctx, args, src, opts, prof, fn); err != nil {
			return err
		}
	}

	return nil
}

func readSource(ctx context.Context, args *arguments, src string, opts readOptions, prof *internal.Profile, fn recordHandler) error {
	r, err := source.Open(ctx, src, source.Options{
		Region: args.Region,
		Follow: opts.follow,
	})
	if err != nil {
		return err
	}
	defer r.Close()

	logger.WithField("source", src).Debug("Start reading")
	reader := logfile.NewReader(r, args.registry)

	for {
		prof.Start("decode")
		rec, err := reader.Next()
		prof.Stop("decode")

		if err == io.EOF {
			return nil
		}
		if err != nil {
			var recErr *logfile.RecordError
			if !errors.As(err, &recErr) {
				return err
			}

			prof.Count(logfile.ErrorKind(recErr))
			if !opts.keepGoing {
				return errors.Wrapf(err, "Fail to decode %s", src)
			}
			logger.WithError(err).WithField("source", src).Warn("Skip broken record")
			continue
		}

		prof.Count("records")
		if err := fn(rec); err != nil {
			return err
		}
	}
}
