package overlay

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"ut2004trainer/config"
)

var (
	colorBg     = color.RGBA{20, 25, 30, 255}
	colorPanel  = color.RGBA{25, 30, 38, 255}
	colorBorder = color.RGBA{50, 58, 70, 255}
	colorGreen  = color.RGBA{50, 200, 80, 255}
	colorRed    = color.RGBA{255, 60, 60, 255}
)

const lineHeight = 18

func (o *Overlay) Draw(screen *ebiten.Image) {
	screen.Fill(colorBg)

	x, y := float32(10), float32(10)
	w, h := float32(config.SCREEN_WIDTH-20), float32(config.SCREEN_HEIGHT-20)
	vector.DrawFilledRect(screen, x, y, w, h, colorPanel, false)
	vector.StrokeRect(screen, x, y, w, h, 1, colorBorder, false)

	// module state marker
	marker := colorGreen
	if o.status.Base == 0 {
		marker = colorRed
	}
	vector.DrawFilledRect(screen, x, y, 4, h, marker, false)

	for i, line := range o.lines {
		ebitenutil.DebugPrintAt(screen, line, int(x)+14, int(y)+8+i*lineHeight)
	}
}
