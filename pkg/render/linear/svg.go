package linear

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const svgStyle = `
    .repeat { transition: stroke-width 0.2s ease; }
    .repeat:hover { stroke-width: 3; }
    text { font-family: sans-serif; }`

type shape interface {
	writeSVG(buf *bytes.Buffer)
	paint(p *painter)
}

func renderSVG(s *scene) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	if s.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(s.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgStyle)
	for _, sh := range s.shapes {
		sh.writeSVG(&buf)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r rect) writeSVG(buf *bytes.Buffer) {
	fill := r.fill
	if fill == "" {
		fill = "none"
	}
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"`, r.x, r.y, r.w, r.h, fill)
	if r.class != "" {
		fmt.Fprintf(buf, ` class="%s"`, r.class)
	}
	if r.opacity > 0 && r.opacity < 1 {
		fmt.Fprintf(buf, ` fill-opacity="%.2f"`, r.opacity)
	}
	if r.stroke != "" {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%.1f"`, r.stroke, r.strokeWidth)
	}
	buf.WriteString("/>\n")
}

func (l line) writeSVG(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		l.x1, l.y1, l.x2, l.y2, l.color, l.width)
}

func (t text) writeSVG(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="%s" fill="%s"`,
		t.x, t.y, t.size, svgAnchor(t.anchor), t.color)
	if t.angle != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%.1f %.2f %.2f)"`, -t.angle, t.x, t.y)
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(t.value))
}

func svgAnchor(a string) string {
	switch a {
	case "middle":
		return "middle"
	case "end":
		return "end"
	}
	return "start"
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
