package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/repeatmap/pkg/cache"
	"github.com/matzehuels/repeatmap/pkg/config"
	"github.com/matzehuels/repeatmap/pkg/errors"
	"github.com/matzehuels/repeatmap/pkg/logo"
)

// logoOpts holds the command-line flags for the logo command.
type logoOpts struct {
	output  string
	format  string
	pfam    string
	colors  string
	url     string
	pfamURL string
	noCache bool
}

// logoCommand creates the logo command.
func (c *CLI) logoCommand() *cobra.Command {
	var opts logoOpts

	cmd := &cobra.Command{
		Use:   "logo [hmm]",
		Short: "Fetch the logo of a profile HMM",
		Long: `Logo uploads a profile HMM to a Skylign-compatible service and downloads
the resulting logo as a PNG image or as JSON logo data.

The HMM is a file path, inline HMMER text, or a Pfam family given with --pfam.`,
		Example: `  repeatmap logo PF00400.hmm -o wd40.png
  repeatmap logo --pfam PF00400 -f json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			if (input == "") == (opts.pfam == "") {
				return errors.New(errors.ErrCodeInvalidInput, "give either an HMM or --pfam")
			}
			return c.runLogo(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default logo.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", logo.FormatPNG, "output format: png or json")
	cmd.Flags().StringVar(&opts.pfam, "pfam", "", "Pfam family to fetch the HMM of, e.g. PF00400")
	cmd.Flags().StringVar(&opts.colors, "colors", "", "logo color scheme (default "+logo.DefaultColors+")")
	cmd.Flags().StringVar(&opts.url, "url", "", "logo service URL (default "+logo.DefaultBaseURL+")")
	cmd.Flags().StringVar(&opts.pfamURL, "pfam-url", "", "Pfam URL (default "+logo.DefaultPfamURL+")")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLogo(ctx context.Context, input string, opts *logoOpts) error {
	logger := loggerFromContext(ctx)

	format := strings.ToLower(opts.format)
	if format != logo.FormatPNG && format != logo.FormatJSON {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported logo format %q (must be 'png' or 'json')", opts.format)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	cc, err := c.openCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer cc.Close()

	copts, err := opts.clientOptions(cfg, cc, c)
	if err != nil {
		return err
	}
	client := logo.NewClient(copts...)

	var (
		hmm      []byte
		filename string
	)
	if opts.pfam != "" {
		spin := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching Pfam %s...", opts.pfam))
		spin.Start()
		hmm, err = client.Pfam(ctx, opts.pfam)
		if err != nil {
			spin.StopWithError("Pfam download failed")
			return err
		}
		spin.Stop()
		filename = opts.pfam + ".hmm"
	} else {
		hmm, filename, err = logo.ReadHMM(input)
		if err != nil {
			return err
		}
	}
	logger.Debug("read HMM", "file", filename, "bytes", len(hmm))

	submit := logo.SubmitOptions{Filename: filename, Colors: opts.colors}
	if submit.Colors == "" {
		submit.Colors = cfg.Logo.Colors
	}

	spin := newSpinnerWithContext(ctx, "Building logo...")
	spin.Start()
	prog := newProgress(logger)
	data, err := client.Logo(ctx, hmm, submit, format)
	if err != nil {
		spin.StopWithError("Logo request failed")
		return err
	}
	spin.Stop()
	prog.done("Fetched logo")

	path := opts.output
	if path == "" {
		path = "logo." + format
	}
	if err := writeOutput(path, data); err != nil {
		return err
	}
	printSuccess("Logo for %s", StyleHighlight.Render(filename))
	printFile(path)
	return nil
}

// clientOptions layers flags over the config file.
func (o *logoOpts) clientOptions(cfg *config.Config, cc cache.Cache, c *CLI) ([]logo.Option, error) {
	opts := []logo.Option{
		logo.WithCache(cache.Instrument(cc), nil),
		logo.WithLogger(c.Logger),
	}
	if u := firstNonEmpty(o.url, cfg.Logo.URL); u != "" {
		if err := errors.ValidateURL(u); err != nil {
			return nil, err
		}
		opts = append(opts, logo.WithBaseURL(u))
	}
	if u := firstNonEmpty(o.pfamURL, cfg.Logo.PfamURL); u != "" {
		if err := errors.ValidateURL(u); err != nil {
			return nil, err
		}
		opts = append(opts, logo.WithPfamURL(u))
	}
	return opts, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
