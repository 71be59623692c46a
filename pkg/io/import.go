package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

// ReadJSON decodes a JSON document from r.
//
// The input must be an object with a "tracks" array and optionally a
// "repeats" array and "feature", "track" and "page" option objects; see the
// package documentation for the full layout. Unknown fields are rejected.
//
// ReadJSON checks that track identifiers are well formed and that every
// repeat references a declared track. Repeat coordinates themselves are
// checked when the document is turned into a diagram. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadTOML decodes a TOML document from r. Keys follow the JSON layout.
func ReadTOML(r io.Reader) (*Document, error) {
	var doc Document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode TOML document")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown key %q", undecoded[0].String())
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Import reads a document from r in the given input format: "json", "toml"
// or "gff". GFF input uses default [GFFOptions].
func Import(r io.Reader, format string) (*Document, error) {
	switch strings.ToLower(format) {
	case "json":
		return ReadJSON(r)
	case "toml":
		return ReadTOML(r)
	case "gff", "gff3", "gtf":
		return ReadGFF(r, GFFOptions{})
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", format)
}

// FormatFromPath infers an input format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "json", "toml":
		return ext, nil
	case "gff", "gff3", "gtf":
		return "gff", nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer input format from %q", path)
}

// ImportFile reads the document at path, choosing the decoder by extension.
// The document name defaults to the file's base name.
func ImportFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Import(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}
