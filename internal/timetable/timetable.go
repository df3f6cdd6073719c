// Package timetable renders the weekly plan as a fixed-layout grid image:
// seven day columns by three meal-slot rows, with a footer block listing
// the prep-ahead meals. It consumes aggregation output and holds no
// business logic of its own.
package timetable

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"weekly-meal-planner/internal/plan"
	"weekly-meal-planner/internal/shopping"
)

const (
	imgWidth  = 1160
	imgHeight = 760

	startX     = 40
	startY     = 90
	gridHeight = 480
	cellPad    = 10
)

var (
	bgColor         = color.White
	fontColor       = color.Black
	difficultyColor = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
	headerColor     = color.RGBA{R: 0xF0, G: 0xF2, B: 0xF6, A: 0xFF}
	lineColor       = color.RGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF}
)

// Render draws the timetable for a summary's resolved mains and prep list
// and returns it encoded as PNG.
func Render(sum *shopping.Summary) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(bgColor), image.Point{}, draw.Src)

	face := basicfont.Face7x13

	days := plan.Days()
	slots := plan.Slots()

	colWidth := float64(imgWidth-2*startX) / (float64(len(days)) + 0.5)
	rowHeight := float64(gridHeight) / float64(len(slots)+1)

	drawTextCentered(img, face, "Weekly Meal Plan", imgWidth/2, startY/2, fontColor)

	// Header row: day names.
	for i, day := range days {
		x := startX + colWidth*(float64(i)+0.5)
		fillRect(img, int(x), startY, int(x+colWidth), startY+int(rowHeight), headerColor)
		drawTextCentered(img, face, string(day), int(x+colWidth/2), startY+int(rowHeight)/2, fontColor)
	}

	// Header column: slot names.
	for j, slot := range slots {
		y := float64(startY) + rowHeight*float64(j+1)
		fillRect(img, startX, int(y), startX+int(colWidth*0.5), int(y+rowHeight), headerColor)
		drawTextCentered(img, face, string(slot), startX+int(colWidth*0.25), int(y+rowHeight/2), fontColor)
	}

	gridBottom := startY + int(rowHeight)*(len(slots)+1)
	for i := 0; i <= len(days); i++ {
		x := int(float64(startX) + colWidth*(float64(i)+0.5))
		fillRect(img, x, startY, x+1, gridBottom, lineColor)
	}
	for j := 0; j <= len(slots)+1; j++ {
		y := startY + int(rowHeight)*j
		fillRect(img, startX, y, imgWidth-startX, y+1, lineColor)
	}

	// Cell contents: wrapped meal name plus its difficulty label.
	lineHeight := face.Metrics().Height.Ceil() + 4
	for i, day := range days {
		for j, slot := range slots {
			cell, ok := sum.Cells[day][slot]
			if !ok {
				continue
			}
			x := int(float64(startX)+colWidth*(float64(i)+0.5)) + cellPad
			y := startY + int(rowHeight)*(j+1) + cellPad + face.Metrics().Ascent.Ceil()
			maxWidth := int(colWidth) - 2*cellPad
			for _, line := range wrapText(face, cell.Name, maxWidth) {
				drawText(img, face, line, x, y, fontColor)
				y += lineHeight
			}
			drawText(img, face, fmt.Sprintf("(%s)", cell.Difficulty), x, y+2, difficultyColor)
		}
	}

	// Prep-ahead footer.
	if len(sum.PrepAhead) > 0 {
		y := gridBottom + 40
		drawText(img, face, "Meal Prep Notes", startX, y, fontColor)
		notes := "The following meals can be prepared in advance: " + strings.Join(sum.PrepAhead, ", ")
		y += lineHeight + 8
		for _, line := range wrapText(face, notes, imgWidth-2*startX) {
			drawText(img, face, line, startX, y, fontColor)
			y += lineHeight
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode timetable image: %w", err)
	}
	return buf.Bytes(), nil
}

// wrapText splits text into lines no wider than maxWidth as measured with
// the given face. A single word wider than the limit gets its own line.
func wrapText(face font.Face, text string, maxWidth int) []string {
	var lines []string
	words := strings.Fields(text)
	for len(words) > 0 {
		line := words[0]
		words = words[1:]
		for len(words) > 0 {
			candidate := line + " " + words[0]
			if font.MeasureString(face, candidate).Ceil() > maxWidth {
				break
			}
			line = candidate
			words = words[1:]
		}
		lines = append(lines, line)
	}
	return lines
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, draw.Src)
}

func drawText(img *image.RGBA, face font.Face, text string, x, y int, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// drawTextCentered draws text centered horizontally on x and vertically on y.
func drawTextCentered(img *image.RGBA, face font.Face, text string, x, y int, c color.Color) {
	w := font.MeasureString(face, text).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	drawText(img, face, text, x-w/2, y+(ascent-descent)/2, c)
}
