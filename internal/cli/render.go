package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/repeatmap/pkg/config"
	"github.com/matzehuels/repeatmap/pkg/options"
	"github.com/matzehuels/repeatmap/pkg/palette"
	"github.com/matzehuels/repeatmap/pkg/pipeline"
	"github.com/matzehuels/repeatmap/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string         // output file (single format) or base path
	formats     string         // comma-separated output formats
	inputFormat string         // json, toml or gff; empty guesses from the extension
	name        string         // diagram title
	width       float64        // page width in pixels
	height      float64        // page height, or track aspect ratio when < 1
	scale       float64        // PNG pixel density
	strand      string         // strand for repeats without one
	gffTypes    []string       // GFF feature types to import
	lengths     map[string]int // explicit track lengths for GFF input
	noCache     bool
	refresh     bool

	// drawing overrides
	fragments     int
	start, end    int
	noGreytrack   bool
	trackHeight   float64
	color         string
	border        string
	noLabels      bool
	labelPosition string
	labelSize     float64
	labelAngle    float64
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the repeats of a document or GFF file",
		Long: `Render draws every track of a repeat-map document as a horizontal band with
its repeats as colored features.

Input is a JSON or TOML repeat-map document, or a GFF annotation file with
one track per sequence. Output formats are svg, png, pdf and json.`,
		Example: `  repeatmap render repeats.json
  repeatmap render hits.gff --length chr1=248956422 -f svg,png -o chr1
  repeatmap render repeats.toml --fragments 3 --color "#4682b4"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts, cmd.Flags())
		},
	}

	bindRenderFlags(cmd.Flags(), &opts)
	return cmd
}

// bindRenderFlags registers the render flags on f.
func bindRenderFlags(f *pflag.FlagSet, opts *renderOpts) {
	f.StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	f.StringVar(&opts.inputFormat, "input-format", "", "input format: json, toml, gff (default from extension)")
	f.StringVar(&opts.name, "name", "", "diagram title")
	f.Float64Var(&opts.width, "width", pipeline.DefaultWidth, "page width in pixels")
	f.Float64Var(&opts.height, "height", pipeline.DefaultHeightOrAspect, "page height, or height per track as a fraction of the width when below 1")
	f.Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	f.StringVar(&opts.strand, "strand", pipeline.DefaultStrand, "strand of repeats that carry none: +, - or .")
	f.StringSliceVar(&opts.gffTypes, "gff-type", nil, "GFF feature types to import (default all)")
	f.StringToIntVar(&opts.lengths, "length", nil, "track length for GFF input, as id=length")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")

	f.IntVar(&opts.fragments, "fragments", 1, "split each track into this many rows")
	f.IntVar(&opts.start, "start", 0, "first position drawn")
	f.IntVar(&opts.end, "end", 0, "last position drawn (default longest track)")
	f.BoolVar(&opts.noGreytrack, "no-greytrack", false, "do not draw the grey track background")
	f.Float64Var(&opts.trackHeight, "track-height", 1, "relative track height")
	f.StringVar(&opts.color, "color", "", "fill every repeat with this color (default rainbow)")
	f.StringVar(&opts.border, "border", "", "repeat border color")
	f.BoolVar(&opts.noLabels, "no-labels", false, "hide repeat labels")
	f.StringVar(&opts.labelPosition, "label-position", "", "label position: start, middle or end")
	f.Float64Var(&opts.labelSize, "label-size", 0, "label font size")
	f.Float64Var(&opts.labelAngle, "label-angle", 0, "label rotation in degrees")
}

// runRender runs the pipeline on input and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts, flags *pflag.FlagSet) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	popts, err := opts.pipelineOptions(cfg, flags)
	if err != nil {
		return err
	}
	popts.Input = input

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", plural(len(popts.Formats), "format")))

	printSuccess("Rendered %s", StyleHighlight.Render(displayName(result.Document.Name, input)))
	printStats(result.Stats.Tracks, result.Stats.Repeats, result.CacheInfo.RenderHit)

	for _, format := range popts.Formats {
		path := outputPath(opts.output, input, format, len(popts.Formats))
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// pipelineOptions layers changed flags over the config file over built-in
// defaults.
func (o *renderOpts) pipelineOptions(cfg *config.Config, flags *pflag.FlagSet) (pipeline.Options, error) {
	changed := func(name string) bool { return flags != nil && flags.Changed(name) }

	popts := pipeline.Options{
		InputFormat:    o.inputFormat,
		GFFTypes:       o.gffTypes,
		Lengths:        o.lengths,
		Name:           o.name,
		Width:          pick(changed("width"), o.width, cfg.Render.Width),
		HeightOrAspect: pick(changed("height"), o.height, cfg.Render.Height),
		Scale:          pick(changed("scale"), o.scale, cfg.Render.Scale),
		Strand:         pick(changed("strand"), o.strand, cfg.Render.Strand),
		Refresh:        o.refresh,
	}

	var formats []string
	switch {
	case o.formats != "":
		formats = parseFormats(o.formats)
	case len(cfg.Render.Formats) > 0:
		formats = cfg.Render.Formats
	default:
		formats = pipeline.DefaultFormats
	}
	normalized, err := pipeline.NormalizeFormats(formats)
	if err != nil {
		return popts, err
	}
	popts.Formats = normalized

	feature, err := o.featureOverrides(changed)
	if err != nil {
		return popts, err
	}
	popts.Feature = cfg.Feature.Merge(feature)
	popts.Track = cfg.Track.Merge(o.trackOverrides(changed))
	popts.Page = cfg.Page.Merge(o.pageOverrides(changed))
	return popts, nil
}

func (o *renderOpts) featureOverrides(changed func(string) bool) (options.FeatureOverrides, error) {
	var f options.FeatureOverrides
	if changed("color") {
		c, err := palette.Parse(o.color)
		if err != nil {
			return f, err
		}
		f.Color = options.Ptr(options.NewColor(c))
	}
	if changed("border") {
		c, err := palette.Parse(o.border)
		if err != nil {
			return f, err
		}
		f.Border = options.Ptr(options.NewColor(c))
	}
	if changed("no-labels") {
		f.Label = options.Ptr(!o.noLabels)
	}
	if changed("label-position") {
		f.LabelPosition = options.Ptr(o.labelPosition)
	}
	if changed("label-size") {
		f.LabelSize = options.Ptr(o.labelSize)
	}
	if changed("label-angle") {
		f.LabelAngle = options.Ptr(o.labelAngle)
	}
	return f, nil
}

func (o *renderOpts) trackOverrides(changed func(string) bool) options.TrackOverrides {
	var t options.TrackOverrides
	if changed("no-greytrack") {
		t.Greytrack = options.Ptr(!o.noGreytrack)
	}
	if changed("track-height") {
		t.Height = options.Ptr(o.trackHeight)
	}
	return t
}

func (o *renderOpts) pageOverrides(changed func(string) bool) options.PageOverrides {
	var p options.PageOverrides
	if changed("fragments") {
		p.Fragments = options.Ptr(o.fragments)
	}
	if changed("start") {
		p.Start = options.Ptr(o.start)
	}
	if changed("end") {
		p.End = options.Ptr(o.end)
	}
	return p
}

// pick returns flag when the flag was set or the config value is zero.
func pick[T comparable](set bool, flag, cfg T) T {
	var zero T
	if set || cfg == zero {
		return flag
	}
	return cfg
}

// parseFormats parses the --format flag into a slice of output formats.
func parseFormats(s string) []string {
	if s == "" {
		return slices.Clone(pipeline.DefaultFormats)
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}
	return parts
}

// basePath derives the base output path from the output and input paths.
// A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(render.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where format is written. A single format goes to
// output verbatim when it is given.
func outputPath(output, input, format string, count int) string {
	if count == 1 && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func displayName(name, input string) string {
	if name != "" {
		return name
	}
	return filepath.Base(input)
}
