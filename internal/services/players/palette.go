package players

import "github.com/mcoot/codechallenge-go/internal/model"

// FallbackColor is shared by every name seen after the palette runs out
var FallbackColor = model.RGB(128, 128, 128)

// defaultPalette is handed out from the end backwards
var defaultPalette = []model.Color{
	model.RGB(0, 0, 0),
	model.RGB(128, 128, 128),
	model.RGB(0, 0, 128),
	model.RGB(255, 215, 180),
	model.RGB(128, 128, 0),
	model.RGB(170, 255, 195),
	model.RGB(128, 0, 0),
	model.RGB(255, 250, 200),
	model.RGB(170, 110, 40),
	model.RGB(220, 190, 255),
	model.RGB(0, 128, 128),
	model.RGB(250, 190, 212),
	model.RGB(210, 245, 60),
	model.RGB(240, 50, 230),
	model.RGB(70, 240, 240),
	model.RGB(145, 30, 180),
	model.RGB(245, 130, 48),
	model.RGB(0, 130, 200),
	model.RGB(255, 225, 25),
	model.RGB(60, 180, 75),
	model.RGB(230, 25, 75),
}

// Palette assigns each first-seen name a color and remembers it for the
// life of the process
type Palette struct {
	free  []model.Color
	taken map[string]model.Color
}

// NewPalette creates a palette over the default colors
func NewPalette() *Palette {
	return NewPaletteWith(defaultPalette)
}

// NewPaletteWith creates a palette over the given colors
func NewPaletteWith(colors []model.Color) *Palette {
	free := make([]model.Color, len(colors))
	copy(free, colors)
	return &Palette{
		free:  free,
		taken: make(map[string]model.Color),
	}
}

// Assign returns name's color, taking a free one on first sight
func (p *Palette) Assign(name string) model.Color {
	if c, ok := p.taken[name]; ok {
		return c
	}
	c := FallbackColor
	if n := len(p.free); n > 0 {
		c = p.free[n-1]
		p.free = p.free[:n-1]
	}
	p.taken[name] = c
	return c
}

// Free returns how many colors are still unassigned
func (p *Palette) Free() int {
	return len(p.free)
}
