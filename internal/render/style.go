package render

import "github.com/san-kum/qnet/internal/graph"

const DefaultFade = 0.1

type Style struct {
	Fade float64

	EdgeFrom  RGBA
	EdgeTo    RGBA
	EdgeWidth float64
	EdgeDash  []float64

	// Weighted entities and edges scale alpha, width and radius by strength.
	Weighted   bool
	NodeRadius float64
	NodeColor  RGBA
	KindColors map[graph.Kind]RGBA

	Labels      bool
	LabelOffset float64
	LabelColor  RGBA
}

var (
	Sky    = RGBA{56, 189, 248, 1}
	Violet = RGBA{168, 85, 247, 1}
	Purple = RGBA{139, 92, 246, 1}
	Pink   = RGBA{236, 72, 153, 1}
	Cyan   = RGBA{34, 211, 238, 1}
	White  = RGBA{255, 255, 255, 1}
	Black  = RGBA{0, 0, 0, 1}
)

func NetworkStyle() Style {
	return Style{
		Fade:       DefaultFade,
		EdgeFrom:   Sky,
		EdgeTo:     Violet,
		EdgeWidth:  2,
		Weighted:   true,
		NodeRadius: 20,
		NodeColor:  Sky.WithAlpha(0.8),
	}
}

func ChipStyle() Style {
	return Style{
		Fade:       DefaultFade,
		EdgeFrom:   Purple.WithAlpha(0.5),
		EdgeTo:     Pink.WithAlpha(0.5),
		EdgeWidth:  2,
		EdgeDash:   []float64{5, 5},
		NodeRadius: 30,
		KindColors: map[graph.Kind]RGBA{
			graph.Primary: Purple.WithAlpha(0.8),
			graph.Memory:  Pink.WithAlpha(0.8),
			graph.IO:      Cyan.WithAlpha(0.8),
		},
		Labels:      true,
		LabelOffset: 45,
		LabelColor:  White,
	}
}

func StyleFor(v graph.Variant) Style {
	if v == graph.Chip {
		return ChipStyle()
	}
	return NetworkStyle()
}

func (st Style) entityColor(e graph.Entity) RGBA {
	if c, ok := st.KindColors[e.Kind]; ok {
		return c
	}
	return st.NodeColor
}

func (st Style) entityRadius(e graph.Entity) float64 {
	if st.Weighted {
		return e.Strength * st.NodeRadius
	}
	return st.NodeRadius
}
