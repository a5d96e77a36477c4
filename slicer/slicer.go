// Package slicer assembles slice artifacts from resolved ranges: it builds
// each slice payload, serializes it deterministically, computes its digest,
// renders its filename, and aggregates the run manifest. Every artifact is
// derived from its slice alone, with no cross-slice state.
package slicer

import (
	"github.com/charmbracelet/log"
	"github.com/sonnes/parashu/core"
	"github.com/sonnes/parashu/manifest"
)

// Options control artifact assembly. Zero values for Template and
// SlugMaxLen are not valid; callers fill them from config.
type Options struct {
	// Template renders output filenames. Recognized tokens:
	// {date} {time} {id} {slice} {n} {slug}.
	Template string

	SlugMaxLen      int
	IncludeChecksum bool

	// DefaultName replaces empty range names.
	DefaultName string

	Tags      []string
	AutoTitle bool

	// SourceFile is recorded in the manifest.
	SourceFile string
}

// Artifact is one assembled slice ready for the writing layer.
type Artifact struct {
	Slice    core.Slice
	File     string
	Data     []byte
	Checksum string
}

// Assemble builds one artifact per range, in order, plus the run manifest.
// Ranges are defaulted, clamped, and name-disambiguated first; ranges that
// collapse after clamping are dropped with a warning, not an error.
func Assemble(c *core.Conversation, ranges []core.Range, opts Options) ([]Artifact, *manifest.Manifest, error) {
	for i := range ranges {
		if ranges[i].Name == "" {
			ranges[i].Name = opts.DefaultName
		}
	}

	kept, dropped := core.Clamp(ranges, len(c.Messages))
	for _, r := range dropped {
		log.Warn("dropping empty range after clamping",
			"name", r.Name, "start", r.Start, "end", r.End)
	}
	kept = core.DisambiguateNames(kept)

	m := manifest.New(opts.SourceFile, c)
	artifacts := make([]Artifact, 0, len(kept))

	for i, r := range kept {
		a, err := build(c, r, i+1, opts)
		if err != nil {
			return nil, nil, err
		}

		entry := core.ManifestEntry{
			File:               a.File,
			SliceName:          a.Slice.SliceName,
			Sequence:           a.Slice.Sequence,
			ApproxMessageRange: a.Slice.RangeIndices,
			HumanTitle:         a.Slice.HumanTitle,
		}
		if opts.IncludeChecksum {
			entry.Checksum = a.Checksum
		}
		m.Append(entry)
		artifacts = append(artifacts, a)
	}

	return artifacts, m, nil
}

// build assembles a single artifact for one clamped range.
func build(c *core.Conversation, r core.Range, sequence int, opts Options) (Artifact, error) {
	s := core.NewSlice(c, r, sequence, opts.Tags)
	if opts.AutoTitle {
		s.HumanTitle = core.DeriveTitle(s.Messages)
	}

	slug := s.HumanTitle
	if slug == "" {
		slug = s.SliceName
	}

	file, err := RenderFilename(opts.Template, map[string]string{
		"date":  c.Date,
		"time":  c.Time,
		"id":    c.ID,
		"slice": Slugify(s.SliceName, opts.SlugMaxLen),
		"n":     itoa(sequence),
		"slug":  Slugify(slug, opts.SlugMaxLen),
	})
	if err != nil {
		return Artifact{}, err
	}

	data, err := s.Serialize()
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Slice:    s,
		File:     file,
		Data:     data,
		Checksum: core.Checksum(data),
	}, nil
}
