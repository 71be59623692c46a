package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/repeatmap/pkg/errors"
	rmio "github.com/matzehuels/repeatmap/pkg/io"
)

// Import reads the document named by opts. A document already set on
// opts is returned as is. The format comes from opts.InputFormat or the
// file extension; GFF input honors opts.Lengths and opts.GFFTypes.
func Import(ctx context.Context, opts Options) (*rmio.Document, error) {
	if opts.Document != nil {
		return opts.Document, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := strings.ToLower(opts.InputFormat)
	if format == "" {
		f, err := rmio.FormatFromPath(opts.Input)
		if err != nil {
			return nil, err
		}
		format = f
	}

	f, err := os.Open(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", opts.Input)
		}
		return nil, err
	}
	defer f.Close()

	var doc *rmio.Document
	switch format {
	case "gff", "gff3", "gtf":
		doc, err = rmio.ReadGFF(f, rmio.GFFOptions{Lengths: opts.Lengths, Types: opts.GFFTypes})
	default:
		doc, err = rmio.Import(f, format)
	}
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(opts.Input), filepath.Ext(opts.Input))
	}
	return doc, nil
}
