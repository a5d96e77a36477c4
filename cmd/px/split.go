package main

import (
	"context"
	"os"

	"github.com/sonnes/parashu/config"
	"github.com/sonnes/parashu/marker"
	"github.com/sonnes/parashu/slicer"
	"github.com/urfave/cli/v3"
)

// defaultSplitTemplate names marker-split files by the human-title slug.
const defaultSplitTemplate = "convo_{date}_{time}_{id}_{slice}_{slug}.json"

func splitCmd() *cli.Command {
	return &cli.Command{
		Name:  "split",
		Usage: "Split a conversation into themed slices using inline [[SPLIT]] markers",
		Description: `Markers in any message content:
  [[SPLIT HERE]]     split and drop the marker message
  [[SPLIT: name]]    split and name the next slice`,
		Flags: append(commonSliceFlags(),
			&cli.StringFlag{
				Name:  "default-slice-name",
				Usage: "Base name for unnamed slices",
			},
			&cli.IntFlag{
				Name:  "slug-maxlen",
				Usage: "Max length for the slugified title",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Resolve(config.DefaultSearchPaths())
			if v := cmd.String("default-slice-name"); v != "" {
				cfg.DefaultSliceName = v
			}
			if v := int(cmd.Int("slug-maxlen")); v > 0 {
				cfg.SlugMaxLen = v
			}

			c, source, err := loadConversation(cmd.String("input"))
			if err != nil {
				return err
			}

			marks := marker.Find(c.Messages)
			ranges := marker.Ranges(len(c.Messages), marks, cfg.DefaultSliceName)

			opts := slicer.Options{
				Template:        templateFor(cmd, cfg, defaultSplitTemplate),
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
