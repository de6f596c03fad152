package registry

// Display metadata exposed to the rendering side. The core does not draw;
// it only hands out stable colors so two sessions render alike.

// RouteLineColor is the polyline color for every route.
const RouteLineColor = "#dc2626"

// folderPaletteHues assigns hues by folder ordinal: blue, green, red,
// brown, purple, orange, turquoise, pink, mustard, cyan-blue.
var folderPaletteHues = []int{210, 125, 5, 28, 275, 35, 175, 330, 55, 200}

// defaultFolderHue is the fallback for labels outside the current set.
const defaultFolderHue = 210

// FolderHues maps every current folder label, plus the unlabeled folder, to
// a hue. Assignment follows display order (unlabeled first, then locale
// order); when folders outnumber the palette, later cycles shift the hue so
// repeats are not exact clones.
func (g *Registry) FolderHues() map[string]int {
	ordered := append([]string{""}, g.Folders()...)
	hues := make(map[string]int, len(ordered))
	for i, f := range ordered {
		base := folderPaletteHues[i%len(folderPaletteHues)]
		cycle := i / len(folderPaletteHues)
		hues[f] = (base + cycle*12) % 360
	}
	return hues
}

// FolderHue returns the hue for one folder label.
func (g *Registry) FolderHue(folder string) int {
	if hue, ok := g.FolderHues()[folder]; ok {
		return hue
	}
	return defaultFolderHue
}
