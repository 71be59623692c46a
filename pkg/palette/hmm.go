package palette

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

// Boundary states of a profile HMM. They flank the model and are drawn grey.
const (
	StateN = "N"
	StateC = "C"
)

const (
	gradientDegrees     = 240.0 // blue
	insertionSaturation = 0.3
	matchSaturation     = 1.0
	boundaryValue       = 0.5
)

// HMM is the state layout of a profile hidden Markov model.
type HMM interface {
	// EffectiveLength is the number of categorical (non-boundary) columns.
	EffectiveLength() int
	InsertionStates() []string
	MatchStates() []string
}

// Model is a plain HMM state layout.
type Model struct {
	Length    int
	Insertion []string
	Match     []string
}

func (m Model) EffectiveLength() int      { return m.Length }
func (m Model) InsertionStates() []string { return m.Insertion }
func (m Model) MatchStates() []string     { return m.Match }

// GradientHue returns the hue of state i among n categorical states, sweeping
// from blue at i=0 to red at i=n-1. A single state is red.
func GradientHue(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(float64(n-i-1)*gradientDegrees) / 360 / float64(n-1)
}

// StateColors assigns a color to every state of h. Insertion states are pale,
// match states fully saturated, both following the same gradient.
func StateColors(h HMM) map[string]colorful.Color {
	n := h.EffectiveLength()
	grey := HSV(0, 0, boundaryValue)
	colors := map[string]colorful.Color{StateN: grey, StateC: grey}
	for i, state := range h.InsertionStates() {
		colors[state] = HSV(GradientHue(i, n), insertionSaturation, 1)
	}
	for i, state := range h.MatchStates() {
		colors[state] = HSV(GradientHue(i, n), matchSaturation, 1)
	}
	return colors
}

// StateHTML is StateColors with every color formatted by [HTML].
func StateHTML(h HMM) map[string]string {
	colors := StateColors(h)
	out := make(map[string]string, len(colors))
	for state, c := range colors {
		out[state] = HTML(c)
	}
	return out
}

// AnnotateOptions controls [AnnotateHTML].
type AnnotateOptions struct {
	Width int      // spans per line; 0 disables wrapping
	Trim  []string // states to leave out, e.g. N and C
	Style string   // extra CSS appended to every span
}

// AnnotateHTML renders seq as monospace spans whose background is the color
// of the HMM state each residue was assigned to. path holds one state per
// residue, typically a Viterbi path.
func AnnotateHTML(colors map[string]string, seq string, path []string, opts AnnotateOptions) (string, error) {
	residues := []rune(seq)
	if len(residues) != len(path) {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"state path has %d states for %d residues", len(path), len(residues))
	}
	if opts.Width < 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "width must be non-negative, got %d", opts.Width)
	}

	trim := make(map[string]bool, len(opts.Trim))
	for _, s := range opts.Trim {
		trim[s] = true
	}

	var b strings.Builder
	written := 0
	for i, state := range path {
		if trim[state] {
			continue
		}
		color, ok := colors[state]
		if !ok {
			return "", errors.New(errors.ErrCodeInvalidInput, "no color for state %q", state)
		}
		if opts.Width > 0 && written > 0 && written%opts.Width == 0 {
			b.WriteString("<br/>")
		}
		b.WriteString("<span style='font-family:monospace;background: ")
		b.WriteString(color)
		b.WriteByte(';')
		b.WriteString(opts.Style)
		b.WriteString("'>")
		b.WriteString(htmlEscape(residues[i]))
		b.WriteString("</span>")
		written++
	}
	return b.String(), nil
}

func htmlEscape(r rune) string {
	switch r {
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '&':
		return "&amp;"
	case '\'':
		return "&#39;"
	case '"':
		return "&#34;"
	}
	return string(r)
}
