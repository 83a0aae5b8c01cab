package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/qnet/internal/graph"
	"github.com/san-kum/qnet/internal/render"
)

// SVGSurface is a render.Surface that emits SVG elements. Gradients are
// declared once per draw call and referenced by id.
type SVGSurface struct {
	width, height int
	defs          strings.Builder
	body          strings.Builder
	nextID        int
}

func NewSVGSurface(width, height int) *SVGSurface {
	return &SVGSurface{width: width, height: height}
}

func (s *SVGSurface) Size() (int, int) { return s.width, s.height }
func (s *SVGSurface) Err() error       { return nil }

func (s *SVGSurface) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

func (s *SVGSurface) FillRect(x, y, w, h float64, c render.RGBA) {
	fmt.Fprintf(&s.body, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.3f"/>
`, x, y, w, h, hex(c), c.A)
}

func (s *SVGSurface) StrokeLine(a, b graph.Vec2, ca, cb render.RGBA, st render.Stroke) {
	id := s.id("edge")
	fmt.Fprintf(&s.defs, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f">
<stop offset="0" stop-color="%s" stop-opacity="%.3f"/>
<stop offset="1" stop-color="%s" stop-opacity="%.3f"/>
</linearGradient>
`, id, a.X, a.Y, b.X, b.Y, hex(ca), ca.A, hex(cb), cb.A)

	dash := ""
	if len(st.Dash) > 0 {
		parts := make([]string, len(st.Dash))
		for i, d := range st.Dash {
			parts[i] = fmt.Sprintf("%g", d)
		}
		dash = fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
	fmt.Fprintf(&s.body, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="url(#%s)" stroke-width="%.2f"%s/>
`, a.X, a.Y, b.X, b.Y, id, st.Width, dash)
}

func (s *SVGSurface) FillDisc(center graph.Vec2, radius float64, inner, outer render.RGBA) {
	if radius <= 0 {
		return
	}
	id := s.id("glow")
	fmt.Fprintf(&s.defs, `<radialGradient id="%s">
<stop offset="0" stop-color="%s" stop-opacity="%.3f"/>
<stop offset="1" stop-color="%s" stop-opacity="%.3f"/>
</radialGradient>
`, id, hex(inner), inner.A, hex(outer), outer.A)
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="url(#%s)"/>
`, center.X, center.Y, radius, id)
}

func (s *SVGSurface) FillText(text string, at graph.Vec2, c render.RGBA) {
	fmt.Fprintf(&s.body, `<text x="%.1f" y="%.1f" text-anchor="middle" font-family="monospace" font-size="12" fill="%s" fill-opacity="%.3f">%s</text>
`, at.X, at.Y, hex(c), c.A, escape(text))
}

// WriteTo writes the complete document.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
`, s.width, s.height, s.width, s.height)
	if s.defs.Len() > 0 {
		sb.WriteString("<defs>\n")
		sb.WriteString(s.defs.String())
		sb.WriteString("</defs>\n")
	}
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// WriteSVG draws one frame of e with st as a standalone SVG document.
func WriteSVG(w io.Writer, e *graph.Epoch, st render.Style) error {
	s := NewSVGSurface(int(e.Bounds.Width), int(e.Bounds.Height))
	if err := render.RenderFrame(s, e, st); err != nil {
		return err
	}
	_, err := s.WriteTo(w)
	return err
}

func hex(c render.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
