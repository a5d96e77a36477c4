package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sonnes/parashu/boundary"
	"github.com/sonnes/parashu/config"
	"github.com/sonnes/parashu/core"
	"github.com/sonnes/parashu/manifest"
	"github.com/sonnes/parashu/slicer"
	"github.com/urfave/cli/v3"
)

// defaultSliceTemplate names range-sliced files by sequence number.
const defaultSliceTemplate = "convo_{date}_{time}_{id}_{slice}_{n}.json"

func sliceCmd() *cli.Command {
	return &cli.Command{
		Name:  "slice",
		Usage: "Cut a conversation into slices by explicit ranges or split boundaries",
		Description: `Ranges by index:        --range 0:36:morning_review
Ranges by message id:   --range id:abc:id:def:deep_dive
Split-at boundaries:    --split-at 36 --split-at 83 --slice-names intro review`,
		Flags: append(commonSliceFlags(),
			&cli.StringSliceFlag{
				Name:  "range",
				Usage: "start:end[:name] where start/end are an index or id:<msgid> (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "split-at",
				Usage: "Boundary (index or id:<msgid>) to cut sequential slices at (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "slice-names",
				Usage: "Positional names for sequential slices built from --split-at",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Resolve(config.DefaultSearchPaths())

			c, source, err := loadConversation(cmd.String("input"))
			if err != nil {
				return err
			}

			var ranges []core.Range
			for _, spec := range cmd.StringSlice("range") {
				r, err := boundary.ParseRange(spec, c.Messages)
				if err != nil {
					return err
				}
				ranges = append(ranges, r)
			}

			if len(ranges) == 0 && len(cmd.StringSlice("split-at")) > 0 {
				ranges, err = boundary.FromSplitAt(cmd.StringSlice("split-at"), c.Messages,
					cmd.StringSlice("slice-names"), cfg.DefaultSliceName)
				if err != nil {
					return err
				}
			}

			if len(ranges) == 0 {
				ranges = []core.Range{{Start: 0, End: len(c.Messages), Name: "whole"}}
			}

			opts := slicer.Options{
				Template:        templateFor(cmd, cfg, defaultSliceTemplate),
				SlugMaxLen:      cfg.SlugMaxLen,
				IncludeChecksum: cfg.IncludeSHA256,
				DefaultName:     cfg.DefaultSliceName,
				Tags:            tagsFor(cmd, cfg),
				AutoTitle:       cmd.Bool("auto-title"),
				SourceFile:      source,
			}

			artifacts, m, err := slicer.Assemble(c, ranges, opts)
			if err != nil {
				return err
			}

			dryRun := cmd.Bool("dry-run")
			if !dryRun {
				if err := writeArtifacts(cmd.String("outdir"), artifacts, m); err != nil {
					return err
				}
			}

			printSliceSummary(os.Stdout, artifacts, cmd.String("outdir"), opts.IncludeChecksum, dryRun)
			return nil
		},
	}
}

// commonSliceFlags are shared by the slice and split commands.
func commonSliceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "Path to a single-conversation JSON file",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "outdir",
			Aliases:  []string{"o"},
			Usage:    "Output directory for slice files and index.json",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "filename-template",
			Usage: "Output name template; tokens: {date} {time} {id} {slice} {n} {slug}",
		},
		&cli.StringSliceFlag{
			Name:  "tag",
			Usage: "Tag to include in each slice's metadata (repeatable)",
		},
		&cli.BoolFlag{
			Name:  "auto-title",
			Usage: "Derive a human title from the first non-empty user line of each slice",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Don't write files, just print the plan",
		},
	}
}

func templateFor(cmd *cli.Command, cfg config.Config, fallback string) string {
	if t := cmd.String("filename-template"); t != "" {
		return t
	}
	if cfg.FilenameTemplate != "" {
		return cfg.FilenameTemplate
	}
	return fallback
}

func tagsFor(cmd *cli.Command, cfg config.Config) []string {
	if cmd.IsSet("tag") {
		return cmd.StringSlice("tag")
	}
	return cfg.DefaultTags
}

func writeArtifacts(outdir string, artifacts []slicer.Artifact, m *manifest.Manifest) error {
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, a := range artifacts {
		if err := os.WriteFile(filepath.Join(outdir, a.File), a.Data, 0o644); err != nil {
			return fmt.Errorf("write slice %s: %w", a.File, err)
		}
	}
	return m.WriteFile(filepath.Join(outdir, "index.json"))
}
