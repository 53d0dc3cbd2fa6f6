package main

import (
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v2"
)

func formatsCommand(args *arguments) *cli.Command {
	var verbose bool

	return &cli.Command{
		Name:  "formats",
		Usage: "Show registered event types and versions",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "Show field list",
				Destination: &verbose,
			},
		},
		Action: func(c *cli.Context) error {
			return formatsAction(args, verbose)
		},
	}
}

func formatsAction(args *arguments, verbose bool) error {
	for _, eventType := range args.registry.EventTypes() {
		format, _ := args.registry.Lookup(eventType)

		var versions []string
		for _, v := range format.Versions() {
			last, _ := format.LastField(v)
			versions = append(versions, v+":"+last)
		}
		fmt.Fprintf(args.out, "%s %d fields, versions %s\n", eventType, format.Len(), strings.Join(versions, " "))

		if verbose {
			for _, f := range format.Fields() {
				fmt.Fprintf(args.out, "  %s\n", f.String())
			}
		}
	}
	return nil
}
