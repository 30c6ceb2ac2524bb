package plotview

import "image/color"

// Palette is the ordered set of colors attributes fall back to when the
// host's config leaves the color unset.
type Palette []RGBA

// DefaultPalette is a set of line colors with enough mutual contrast to keep
// overlapping attributes tellable apart on a dark background.
var DefaultPalette = Palette{
	Hex("#e41a1c"),
	Hex("#377eb8"),
	Hex("#4daf4a"),
	Hex("#984ea3"),
	Hex("#ff7f00"),
	Hex("#ffff33"),
	Hex("#a65628"),
	Hex("#f781bf"),
	Hex("#999999"),
	Hex("#ffffff"),
}

// Pick returns the least-used palette color given how many times each color
// is already in use. Ties go to the earliest palette entry, so as long as
// the palette isn't exhausted every attribute gets a distinct color in
// declaration order.
func (p Palette) Pick(used map[color.NRGBA]int) RGBA {
	if len(p) == 0 {
		return RGBA{R: 1, G: 1, B: 1, A: 1}
	}
	best := 0
	bestCount := used[p[0].NRGBA()]
	for i := 1; i < len(p); i++ {
		if c := used[p[i].NRGBA()]; c < bestCount {
			best = i
			bestCount = c
		}
	}
	return p[best]
}

// assignColors fills in palette colors for configs whose color is unset (a
// zero, fully transparent RGBA), counting explicit colors as used so the
// fallback avoids them.
func assignColors(p Palette, configs []AttributeConfig) []AttributeConfig {
	used := make(map[color.NRGBA]int)
	for _, cfg := range configs {
		if cfg.Color != (RGBA{}) {
			used[cfg.Color.NRGBA()]++
		}
	}
	out := make([]AttributeConfig, len(configs))
	for i, cfg := range configs {
		if cfg.Color == (RGBA{}) {
			cfg.Color = p.Pick(used)
			used[cfg.Color.NRGBA()]++
		}
		out[i] = cfg
	}
	return out
}
