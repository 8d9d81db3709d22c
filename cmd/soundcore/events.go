package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/soundcore/core/audio"
	"github.com/dmitrymomot/soundcore/core/playback"
)

type catalogEntry struct {
	Capability string   `json:"capability"`
	Events     []string `json:"events"`
}

func catalog() []catalogEntry {
	return []catalogEntry{
		{Capability: playback.Capability.Name(), Events: playback.EventNames()},
		{Capability: audio.Capability.Name(), Events: audio.EventNames()},
	}
}

// Events prints the event names each capability declares.
func Events() *cli.Command {
	return &cli.Command{
		Name:     "events",
		Usage:    "lists the events every capability declares",
		Category: "inspect",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "prints the catalog as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			out := c.App.Writer

			if c.Bool("json") {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(catalog())
			}

			for _, entry := range catalog() {
				fmt.Fprintf(out, "%s:\n", entry.Capability)
				for _, name := range entry.Events {
					fmt.Fprintf(out, "  %s\n", name)
				}
			}
			return nil
		},
	}
}
