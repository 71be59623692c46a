package pipeline

import (
	"fmt"

	"github.com/matzehuels/repeatmap/pkg/render"
)

// Render encodes a drawing in each format.
func Render(d *render.Drawing, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := d.Bytes(format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
