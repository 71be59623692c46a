package linear

import (
	"bytes"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

var (
	regularOnce sync.Once
	regular     *truetype.Font
	regularErr  error
)

func regularFont() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

type painter struct {
	dc    *gg.Context
	font  *truetype.Font
	faces map[float64]font.Face
}

func renderPNG(s *scene, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", scale)
	}
	f, err := regularFont()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
	}

	w := int(math.Ceil(s.width * scale))
	h := int(math.Ceil(s.height * scale))
	p := &painter{dc: gg.NewContext(w, h), font: f, faces: make(map[float64]font.Face)}
	p.dc.Scale(scale, scale)
	for _, sh := range s.shapes {
		sh.paint(p)
	}

	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (p *painter) face(size float64) font.Face {
	if f, ok := p.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(p.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	p.faces[size] = f
	return f
}

func (p *painter) setColor(hex string, alpha float64) {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{}
	}
	p.dc.SetRGBA(c.R, c.G, c.B, alpha)
}

func (r rect) paint(p *painter) {
	dc := p.dc
	dc.DrawRectangle(r.x, r.y, r.w, r.h)
	if r.fill != "" {
		alpha := r.opacity
		if alpha <= 0 {
			alpha = 1
		}
		p.setColor(r.fill, alpha)
		dc.FillPreserve()
	}
	if r.stroke != "" {
		p.setColor(r.stroke, 1)
		dc.SetLineWidth(r.strokeWidth)
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

func (l line) paint(p *painter) {
	p.setColor(l.color, 1)
	p.dc.SetLineWidth(l.width)
	p.dc.DrawLine(l.x1, l.y1, l.x2, l.y2)
	p.dc.Stroke()
}

func (t text) paint(p *painter) {
	dc := p.dc
	dc.Push()
	defer dc.Pop()
	dc.SetFontFace(p.face(t.size))
	p.setColor(t.color, 1)
	if t.angle != 0 {
		dc.RotateAbout(gg.Radians(-t.angle), t.x, t.y)
	}
	dc.DrawStringAnchored(t.value, t.x, t.y, pngAnchor(t.anchor), 0)
}

func pngAnchor(a string) float64 {
	switch a {
	case "middle":
		return 0.5
	case "end":
		return 1
	}
	return 0
}
