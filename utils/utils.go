package utils

import (
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Height in pixels of a line of debug text, as drawn by [TextImage]().
const LineHeight = 16

// Approximate width in pixels of a debug text glyph.
const GlyphWidth = 6

// Syntax sugar for [ebiten.Image.SubImage]() passing explicit
// coordinates instead of [image.Rectangle] and returning [*ebiten.Image]
// instead of [image.Image].
func SubImage(source *ebiten.Image, minX, minY, maxX, maxY int) *ebiten.Image {
	return source.SubImage(Rect(minX, minY, maxX, maxY)).(*ebiten.Image)
}

// Alias for [image.Rect]().
func Rect(minX, minY, maxX, maxY int) image.Rectangle {
	return image.Rect(minX, minY, maxX, maxY)
}

// Returns [color.RGBA]{r, g, b, 255}.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// TextSize returns the size in pixels that [TextImage]() would use for
// the given text, with padding on every side.
func TextSize(text string, padding int) (width, height int) {
	lines := strings.Split(text, "\n")
	columns := 0
	for _, line := range lines {
		columns = max(columns, len([]rune(line)))
	}
	return columns*GlyphWidth + padding*2, len(lines)*LineHeight + padding*2
}

// Creates an image with the given multi-line text drawn on top of a
// solid background. Useful for panels attached as overlays. Example:
//
//	panel := utils.TextImage("Segmentation fault (core dumped)", 8, utils.RGB(12, 12, 12))
func TextImage(text string, padding int, background color.Color) *ebiten.Image {
	width, height := TextSize(text, padding)
	img := ebiten.NewImage(width, height)
	img.Fill(background)
	ebitenutil.DebugPrintAt(img, text, padding, padding)
	return img
}
