package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/repeatmap/pkg/diagram"
	rmio "github.com/matzehuels/repeatmap/pkg/io"
	"github.com/matzehuels/repeatmap/pkg/render"
	"github.com/matzehuels/repeatmap/pkg/render/linear"
)

// Build turns a document into a drawing on the linear backend. The
// document's own option sections are the diagram defaults; the overrides in
// opts apply on top for this build only.
func Build(ctx context.Context, doc *rmio.Document, opts Options) (*render.Drawing, error) {
	d, err := doc.Diagram(opts.DefaultStrandValue())
	if err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = doc.Name
	}
	drawing, err := d.Build(name, diagram.BuildOptions{
		Size:    opts.Size(),
		Feature: opts.Feature,
		Track:   opts.Track,
		Page:    opts.Page,
		Backend: linear.Factory(linear.WithScale(opts.Scale), linear.WithContext(ctx)),
	})
	if err != nil {
		return nil, fmt.Errorf("build %q: %w", name, err)
	}
	return drawing, nil
}
