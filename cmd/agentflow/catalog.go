package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dukex/agentflow/pkg/catalog"
	"github.com/dukex/agentflow/pkg/cmd"
	"github.com/dukex/agentflow/pkg/filter"
	"github.com/dukex/agentflow/pkg/log"
	"github.com/urfave/cli/v3"
)

var (
	errMissingPath  = errors.New("catalog path is required")
	errOutputFormat = errors.New("output must be table or json")
)

func searchFlags() []cli.Flag {
	return []cli.Flag{
		catalogFlag(),
		&cli.StringFlag{
			Name:    "query",
			Aliases: []string{"q"},
			Usage:   "Case-insensitive text to search for",
		},
		&cli.StringFlag{
			Name:    "category",
			Aliases: []string{"c"},
			Usage:   "Category to filter by (all for every category)",
			Value:   filter.AllCategories,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format (table, json)",
			Value:   "table",
		},
	}
}

func loadCatalog(command *cli.Command) (*catalog.Catalog, error) {
	return cmd.NewCatalog(command.String("catalog"), log.WithModule("catalog"))
}

func criteria(command *cli.Command) filter.Criteria {
	return filter.Criteria{Query: command.String("query"), Category: command.String("category")}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

func AgentsCommand() *cli.Command {
	return &cli.Command{
		Name:    "agents",
		Aliases: []string{"a"},
		Usage:   "Search the agents of a catalog",
		Flags:   searchFlags(),
		Action: func(_ context.Context, command *cli.Command) error {
			c, err := loadCatalog(command)
			if err != nil {
				return err
			}

			agents := c.SearchAgents(criteria(command))
			w := command.Root().Writer

			switch command.String("output") {
			case "json":
				return writeJSON(w, agents)
			case "table":
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tCATEGORY\tRUNS\tLAST RUN")

				for _, agent := range agents {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
						agent.ID, agent.Name, agent.Status, agent.Category, agent.Runs, agent.LastRun)
				}

				return tw.Flush()
			default:
				return errOutputFormat
			}
		},
	}
}

func TemplatesCommand() *cli.Command {
	return &cli.Command{
		Name:    "templates",
		Aliases: []string{"t"},
		Usage:   "Search the templates of a catalog, tags included",
		Flags:   searchFlags(),
		Action: func(_ context.Context, command *cli.Command) error {
			c, err := loadCatalog(command)
			if err != nil {
				return err
			}

			templates := c.SearchTemplates(criteria(command))
			w := command.Root().Writer

			switch command.String("output") {
			case "json":
				return writeJSON(w, templates)
			case "table":
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDIFFICULTY\tTIME\tTAGS")

				for _, template := range templates {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
						template.ID, template.Name, template.Category, template.Difficulty,
						template.EstimatedTime, strings.Join(template.Tags, ","))
				}

				return tw.Flush()
			default:
				return errOutputFormat
			}
		},
	}
}

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate a catalog fixture against the catalog schema",
		ArgsUsage: "<path>",
		Action: func(_ context.Context, command *cli.Command) error {
			path := command.Args().First()
			if path == "" {
				return errMissingPath
			}

			c, err := catalog.Load(path)
			if err != nil {
				return err
			}

			stats := c.Stats()

			_, err = fmt.Fprintf(command.Root().Writer, "%s: ok (%d agents, %d templates, %d workflow steps)\n",
				path, stats.TotalAgents, len(c.Templates()), len(c.WorkflowSteps()))

			return err
		},
	}
}

func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write a catalog as a fixture, the built-in one by default",
		Flags: []cli.Flag{
			catalogFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Fixture format (yaml, json)",
				Value:   string(catalog.FormatYAML),
			},
		},
		Action: func(_ context.Context, command *cli.Command) error {
			c, err := loadCatalog(command)
			if err != nil {
				return err
			}

			return c.Export(command.Root().Writer, catalog.Format(command.String("format")))
		},
	}
}
