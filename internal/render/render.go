package render

import "github.com/san-kum/qnet/internal/graph"

// RenderFrame runs fade, connections and entities in that order and returns
// the surface's sticky error.
func RenderFrame(s Surface, e *graph.Epoch, st Style) error {
	Fade(s, st)
	DrawConnections(s, e, st)
	DrawEntities(s, e, st)
	return s.Err()
}

func Fade(s Surface, st Style) {
	w, h := s.Size()
	s.FillRect(0, 0, float64(w), float64(h), Black.WithAlpha(st.Fade))
}

func DrawConnections(s Surface, e *graph.Epoch, st Style) {
	stroke := Stroke{Width: st.EdgeWidth, Dash: st.EdgeDash}
	for _, c := range e.Connections {
		a, b := e.Entities[c.Source].Pos, e.Entities[c.Target].Pos
		from, to := st.EdgeFrom, st.EdgeTo
		if st.Weighted {
			from = from.WithAlpha(from.A * c.Strength)
			to = to.WithAlpha(to.A * c.Strength)
			stroke.Width = st.EdgeWidth * c.Strength
		}
		s.StrokeLine(a, b, from, to, stroke)
	}
}

func DrawEntities(s Surface, e *graph.Epoch, st Style) {
	for _, ent := range e.Entities {
		inner := st.entityColor(ent)
		s.FillDisc(ent.Pos, st.entityRadius(ent), inner, inner.WithAlpha(0))
		if st.Labels {
			at := graph.Vec2{X: ent.Pos.X, Y: ent.Pos.Y + st.LabelOffset}
			s.FillText(ent.Kind.String(), at, st.LabelColor)
		}
	}
}
