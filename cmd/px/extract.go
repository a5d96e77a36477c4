package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sonnes/parashu/core"
	"github.com/sonnes/parashu/export"
	"github.com/sonnes/parashu/filter"
	"github.com/urfave/cli/v3"
)

// maxCandidates caps the disambiguation listing on an out-of-range --index.
const maxCandidates = 20

func extractCmd() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract a single conversation from a chat-export JSON file",
		ArgsUsage: "<export.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Path to write the extracted conversation JSON",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "by-title",
				Usage: "Case-insensitive substring of the conversation title",
			},
			&cli.StringFlag{
				Name:  "by-id",
				Usage: "Exact conversation id to extract",
			},
			&cli.StringFlag{
				Name:  "by-snippet",
				Usage: "Substring or regex to search within message content",
			},
			&cli.StringFlag{
				Name:  "after",
				Usage: "Only conversations starting on/after YYYY-MM-DD",
			},
			&cli.StringFlag{
				Name:  "before",
				Usage: "Only conversations starting on/before YYYY-MM-DD",
			},
			&cli.IntFlag{
				Name:  "index",
				Usage: "Which match to choose when several remain (0-based)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			input := cmd.Args().First()
			if input == "" {
				return fmt.Errorf("path to an export file is required")
			}

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read export: %w", err)
			}

			records, err := export.Load(data)
			if err != nil {
				return err
			}

			f, err := buildFilter(cmd)
			if err != nil {
				return err
			}

			var matches []candidate
			for pos, rec := range records {
				if f.Matches(rec) {
					matches = append(matches, candidate{Position: pos, Record: rec})
				}
			}

			if len(matches) == 0 {
				err := &core.NotFoundError{What: "no conversations matched the given filters"}
				return cli.Exit(err, 2)
			}

			index := int(cmd.Int("index"))
			if index < 0 || index >= len(matches) {
				printCandidates(os.Stderr, matches)
				return cli.Exit(&core.SelectionError{Index: index, Matches: len(matches)}, 3)
			}

			chosen := matches[index]
			var buf bytes.Buffer
			if err := json.Indent(&buf, []byte(chosen.Record.Raw()), "", "  "); err != nil {
				return fmt.Errorf("reserialize conversation: %w", err)
			}
			buf.WriteByte('\n')

			if err := os.WriteFile(cmd.String("output"), buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			printExtractSummary(os.Stderr, chosen, cmd.String("output"))
			return nil
		},
	}
}

// candidate pairs a matched record with its position in the export.
type candidate struct {
	Position int
	Record   export.Record
}

func (c candidate) startString() string {
	if t, ok := c.Record.StartTime(); ok {
		return t.Format(time.RFC3339)
	}
	return "(unknown time)"
}

func buildFilter(cmd *cli.Command) (*filter.Filter, error) {
	f := &filter.Filter{
		Title: cmd.String("by-title"),
		ID:    cmd.String("by-id"),
	}
	if p := cmd.String("by-snippet"); p != "" {
		f.Snippet = filter.NewSnippetMatcher(p)
	}

	var err error
	if f.After, err = parseDay(cmd.String("after")); err != nil {
		return nil, err
	}
	if f.Before, err = parseDay(cmd.String("before")); err != nil {
		return nil, err
	}
	return f, nil
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: expected YYYY-MM-DD", s)
	}
	return &t, nil
}
