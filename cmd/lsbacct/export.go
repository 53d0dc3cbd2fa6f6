package main

import (
	"github.com/lsftools/lsbacct/internal/sink"
	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

type exportArguments struct {
	kind   string
	output string
	readOptions
}

func exportCommand(args *arguments) *cli.Command {
	var exportArgs exportArguments

	return &cli.Command{
		Name:      "export",
		Usage:     "Convert records to json, msgpack, parquet or sqlite",
		ArgsUsage: "[SRC...]",
		Action: func(c *cli.Context) error {
			return exportAction(c, args, exportArgs)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "kind",
				Aliases:     []string{"t"},
				Usage:       "Output kind [json|msgpack|parquet|sqlite]",
				Value:       string(sink.KindJSON),
				Destination: &exportArgs.kind,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output file or directory, '-' means stdout",
				Value:       "-",
				Destination: &exportArgs.output,
			},
			keepGoingFlag(&exportArgs.keepGoing),
		},
	}
}

func exportAction(c *cli.Context, args *arguments, exportArgs exportArguments) (err error) {
	out, err := sink.New(sink.Kind(exportArgs.kind), exportArgs.output)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "Fail to close output")
		}
	}()

	var count int
	err = eachRecord(c.Context, args, sources(c), exportArgs.readOptions, func(rec *models.Record) error {
		count++
		return out.Write(rec)
	})

	logger.WithFields(map[string]interface{}{
		"kind":    exportArgs.kind,
		"output":  exportArgs.output,
		"records": count,
	}).Info("Exported records")

	return err
}
