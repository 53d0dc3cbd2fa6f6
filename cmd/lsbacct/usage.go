package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/lsftools/lsbacct/pkg/usage"
	cli "github.com/urfave/cli/v2"
)

type usageArguments struct {
	resolution time.Duration
	json       bool
	readOptions
}

func usageCommand(args *arguments) *cli.Command {
	var usageArgs usageArguments

	return &cli.Command{
		Name:      "usage",
		Usage:     "Aggregate number of execution hosts per user and time bucket",
		ArgsUsage: "[SRC...]",
		Action: func(c *cli.Context) error {
			return usageAction(c, args, usageArgs)
		},
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "resolution",
				Aliases:     []string{"R"},
				Usage:       "Width of time bucket",
				Value:       time.Minute,
				Destination: &usageArgs.resolution,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "Print series as JSON",
				Destination: &usageArgs.json,
			},
			keepGoingFlag(&usageArgs.keepGoing),
		},
	}
}

func usageAction(c *cli.Context, args *arguments, usageArgs usageArguments) error {
	agg, err := usage.NewAggregator(usageArgs.resolution)
	if err != nil {
		return err
	}

	if err := eachRecord(c.Context, args, sources(c), usageArgs.readOptions, func(rec *models.Record) error {
		return agg.Add(rec)
	}); err != nil {
		return err
	}

	series := agg.Series()
	if usageArgs.json {
		return json.NewEncoder(args.out).Encode(series)
	}

	for _, s := range series {
		for _, p := range s.Points {
			if _, err := fmt.Fprintf(args.out, "%s %d %d\n", s.User, p.Time.Unix(), p.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
