package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/dsc-roads/roadgeom"
)

const (
	// Flags.
	flagConfig     = "config"
	flagDebug      = "debug"
	flagCurve      = "curve"
	flagStart      = "start"
	flagHeading    = "heading"
	flagEnd        = "end"
	flagHeadingEnd = "heading-end"
	flagStep       = "step"
	flagOffsets    = "offsets"
)

// maxCrossSections bounds the output of a single sample command.
const maxCrossSections = 1_000_000

// segmentFlags returns the start pose and end point flags shared by all
// commands. Flags keep parsed state, so every app gets fresh ones.
func segmentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64SliceFlag{
			Name:     flagStart,
			Usage:    "start point `X,Y[,Z]`",
			Required: true,
		},
		&cli.Float64Flag{
			Name:  flagHeading,
			Usage: "start heading in radians",
		},
		&cli.Float64SliceFlag{
			Name:     flagEnd,
			Usage:    "end point `X,Y[,Z]`",
			Required: true,
		},
		&cli.Float64Flag{
			Name:  flagHeadingEnd,
			Usage: "end heading in radians, suggested from the end point if unset",
		},
	}
}

func newApp() *cli.App {
	var logger *zap.Logger

	return &cli.App{
		Name:  "roadgeom",
		Usage: "fit and sample road segments",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load geometry configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  flagCurve,
				Value: string(roadgeom.FamilyArc),
				Usage: "curve family: arc, clothoid or straight",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if !c.Bool(flagDebug) {
				logger = zap.NewNop()
				return nil
			}
			var err error
			logger, err = zap.NewDevelopment()
			return err
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				_ = logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "fit",
				Usage: "print the parameters of a segment",
				Flags: segmentFlags(),
				Action: func(c *cli.Context) error {
					sg, err := fitSegment(c, logger)
					if err != nil {
						return err
					}
					return writeJSON(c, sg.Params)
				},
			},
			{
				Name:  "sample",
				Usage: "print cross-sections sampled along a segment",
				Flags: append([]cli.Flag{
					&cli.Float64Flag{
						Name:  flagStep,
						Value: 1,
						Usage: "arc length between cross-sections",
					},
					&cli.Float64SliceFlag{
						Name:  flagOffsets,
						Value: cli.NewFloat64Slice(0),
						Usage: "lateral offsets `T1,T2,...`, positive to the left",
					},
				}, segmentFlags()...),
				Action: func(c *cli.Context) error {
					sg, err := fitSegment(c, logger)
					if err != nil {
						return err
					}
					return writeSamples(c, sg)
				},
			},
		},
	}
}

// loadConfig reads the geometry configuration file, if any, and applies the
// command-line overrides.
func loadConfig(c *cli.Context, logger *zap.Logger) (roadgeom.Config, error) {
	cfg := roadgeom.Config{Family: roadgeom.FamilyArc}
	if path := c.String(flagConfig); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "error reading config")
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "error parsing config %s", path)
		}
	}
	if c.IsSet(flagCurve) || cfg.Family == "" {
		f, err := roadgeom.ParseFamily(c.String(flagCurve))
		if err != nil {
			return cfg, err
		}
		cfg.Family = f
	}
	cfg.Logger = logger
	return cfg, nil
}

func fitSegment(c *cli.Context, logger *zap.Logger) (roadgeom.Segment, error) {
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return roadgeom.Segment{}, err
	}
	g, err := roadgeom.New(cfg)
	if err != nil {
		return roadgeom.Segment{}, err
	}

	start, err := vectorFlag(c, flagStart)
	if err != nil {
		return roadgeom.Segment{}, err
	}
	end, err := vectorFlag(c, flagEnd)
	if err != nil {
		return roadgeom.Segment{}, err
	}
	if err := g.ValidateInput(start, end); err != nil {
		return roadgeom.Segment{}, err
	}

	heading := c.Float64(flagHeading)
	headingEnd := c.Float64(flagHeadingEnd)
	if !c.IsSet(flagHeadingEnd) {
		headingEnd = g.SuggestHeadingEnd(start, heading, end)
		logger.Debug("suggested end heading", zap.Float64("heading_end", headingEnd))
	}

	sg := g.Update(start, heading, end, headingEnd)
	if sg.Empty() {
		logger.Info("segment has zero length", zap.Any("params", sg.Params))
	}
	return sg, nil
}

// vectorFromSlice turns the two or three components of a point flag into a
// vector.
func vectorFromSlice(v []float64) (r3.Vector, error) {
	switch len(v) {
	case 2:
		return r3.Vector{X: v[0], Y: v[1]}, nil
	case 3:
		return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return r3.Vector{}, errors.Errorf("expected 2 or 3 coordinates, got %d", len(v))
	}
}

func vectorFlag(c *cli.Context, name string) (r3.Vector, error) {
	v, err := vectorFromSlice(c.Float64Slice(name))
	if err != nil {
		return v, errors.Wrapf(err, "error parsing %s flag", name)
	}
	return v, nil
}

func writeJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// crossSection is one line of sample output.
type crossSection struct {
	S         float64     `json:"s"`
	Curvature float64     `json:"curvature"`
	Points    []r3.Vector `json:"points"`
}

func writeSamples(c *cli.Context, sg roadgeom.Segment) error {
	step := c.Float64(flagStep)
	if step <= 0 || math.IsNaN(step) {
		return errors.Errorf("step must be positive, got %g", step)
	}
	if n := sg.Params.Length / step; n > maxCrossSections {
		return errors.Errorf("step %g yields %.0f cross-sections, at most %d allowed", step, n, maxCrossSections)
	}
	offsets := c.Float64Slice(flagOffsets)

	enc := json.NewEncoder(c.App.Writer)
	for s := range sg.Stations(step) {
		pts, curvature := sg.SampleGlobal(s, offsets)
		cs := crossSection{S: s, Curvature: curvature, Points: slices.Collect(pts)}
		if err := enc.Encode(cs); err != nil {
			return errors.Wrap(err, "error writing sample")
		}
	}
	if sg.Empty() {
		fmt.Fprintln(c.App.ErrWriter, "segment has zero length, nothing sampled")
	}
	return nil
}
