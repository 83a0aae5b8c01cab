package dashboard

import "github.com/san-kum/qnet/internal/graph"

// View is one entry of the view switcher.
type View struct {
	Name    string
	Title   string
	Enabled bool
}

var Views = []View{
	{Name: string(graph.Network), Title: "Network View", Enabled: true},
	{Name: string(graph.Chip), Title: "AlphaChip View", Enabled: true},
	{Name: "starlink", Title: "Starlink"},
	{Name: "deepspace", Title: "Deep Space"},
}

// Next returns the enabled view after current, wrapping around. Unknown
// names start from the first view.
func Next(current string) View {
	start := -1
	for i, v := range Views {
		if v.Name == current {
			start = i
			break
		}
	}
	for i := 1; i <= len(Views); i++ {
		v := Views[(start+i+len(Views))%len(Views)]
		if v.Enabled {
			return v
		}
	}
	return Views[0]
}

func Lookup(name string) (View, bool) {
	for _, v := range Views {
		if v.Name == name {
			return v, true
		}
	}
	return View{}, false
}
