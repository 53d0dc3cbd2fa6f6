package main

import (
	"encoding/json"
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/lsftools/lsbacct/internal/query"
	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

type dumpArguments struct {
	format string
	query  string
	readOptions
}

func dumpCommand(args *arguments) *cli.Command {
	var dumpArgs dumpArguments

	return &cli.Command{
		Name:      "dump",
		Usage:     "Print all fields of each record",
		ArgsUsage: "[SRC...]",
		Action: func(c *cli.Context) error {
			return dumpAction(c, args, dumpArgs)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "Output format [long|json|pp]",
				Value:       "long",
				Destination: &dumpArgs.format,
			},
			&cli.StringFlag{
				Name:        "query",
				Aliases:     []string{"q"},
				Usage:       "jq query applied to JSON of each record",
				Destination: &dumpArgs.query,
			},
			keepGoingFlag(&dumpArgs.keepGoing),
		},
	}
}

type printer func(v interface{}) error

func newPrinter(args *arguments, format string) (printer, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(args.out)
		return enc.Encode, nil

	case "pp":
		pp.ColoringEnabled = false
		return func(v interface{}) error {
			if rec, ok := v.(*models.Record); ok {
				v = rec.Map()
			}
			_, err := pp.Fprintln(args.out, v)
			return err
		}, nil

	case "long":
		return func(v interface{}) error {
			var err error
			if rec, ok := v.(*models.Record); ok {
				_, err = fmt.Fprintf(args.out, "--- line %d\n%s\n", rec.Line, rec.FormatLong())
			} else {
				_, err = fmt.Fprintf(args.out, "%v\n", v)
			}
			return err
		}, nil
	}

	return nil, errors.Errorf("Unsupported dump format: %s", format)
}

func dumpAction(c *cli.Context, args *arguments, dumpArgs dumpArguments) error {
	output, err := newPrinter(args, dumpArgs.format)
	if err != nil {
		return err
	}

	var q *query.Query
	if dumpArgs.query != "" {
		if q, err = query.Parse(dumpArgs.query); err != nil {
			return err
		}
	}

	return eachRecord(c.Context, args, sources(c), dumpArgs.readOptions, func(rec *models.Record) error {
		if q == nil {
			return output(rec)
		}

		values, err := q.Apply(rec)
		if err != nil {
			return err
		}
		for _, v := range values {
			if err := output(v); err != nil {
				return err
			}
		}
		return nil
	})
}
