package main

import (
	"fmt"

	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

type listArguments struct {
	field string
	readOptions
}

func listCommand(args *arguments) *cli.Command {
	var listArgs listArguments

	return &cli.Command{
		Name:      "list",
		Usage:     "Print line number and one field of each record",
		ArgsUsage: "[SRC...]",
		Action: func(c *cli.Context) error {
			return listAction(c, args, listArgs)
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "field",
				Aliases:     []string{"f"},
				Usage:       "Field name to print",
				Value:       "userName",
				Destination: &listArgs.field,
			},
			&cli.BoolFlag{
				Name:        "follow",
				Usage:       "Wait for appended records like tail -f",
				Destination: &listArgs.follow,
			},
			keepGoingFlag(&listArgs.keepGoing),
		},
	}
}

func listAction(c *cli.Context, args *arguments, listArgs listArguments) error {
	if !hasField(args, listArgs.field) {
		return errors.Wrap(models.ErrUnknownField, listArgs.field)
	}

	return eachRecord(c.Context, args, sources(c), listArgs.readOptions, func(rec *models.Record) error {
		v, ok := rec.Get(listArgs.field)
		if !ok {
			logger.WithFields(map[string]interface{}{
				"line":  rec.Line,
				"field": listArgs.field,
			}).Debug("Field is not set, skipped")
			return nil
		}
		_, err := fmt.Fprintf(args.out, "%d %v\n", rec.Line, v)
		return err
	})
}

// hasField returns true if any registered format has the field.
func hasField(args *arguments, name string) bool {
	for _, eventType := range args.registry.EventTypes() {
		format, _ := args.registry.Lookup(eventType)
		if _, ok := format.Lookup(name); ok {
			return true
		}
	}
	return false
}
