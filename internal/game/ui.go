package game

import (
	"fmt"

	"arplace/internal/perception"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors - indigo dark theme
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 235)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent      = rl.NewColor(108, 99, 255, 255)
	colorAccentLight = rl.NewColor(167, 139, 250, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
)

// Options panel in the top-left corner.
var panelBounds = rl.Rectangle{X: 10, Y: 10, Width: 270, Height: 170}

func mouseInPanel(m rl.Vector2) bool {
	return rl.CheckCollisionPointRec(m, panelBounds)
}

func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

func (g *Game) DrawUI() {
	x := int32(panelBounds.X)
	y := int32(panelBounds.Y)
	rl.DrawRectangleRec(panelBounds, colorBgPanel)
	rl.DrawRectangleLinesEx(panelBounds, 1, colorAccent)
	rl.DrawText("Placement", x+10, y+8, 18, colorTextPrimary)

	row := func(i int) rl.Rectangle {
		return rl.Rectangle{X: panelBounds.X + 10, Y: panelBounds.Y + 36 + float32(i)*26, Width: 18, Height: 18}
	}

	g.Options.InfinitePlane = gui.CheckBox(row(0), "Extend planes", g.Options.InfinitePlane)

	horizontal := gui.CheckBox(row(1), "Horizontal", g.Options.Allowed.Contains(perception.Horizontal))
	g.SetAlignment(perception.Horizontal, horizontal)

	vertical := gui.CheckBox(row(2), "Vertical", g.Options.Allowed.Contains(perception.Vertical))
	g.SetAlignment(perception.Vertical, vertical)

	sliderBounds := row(3)
	sliderBounds.X += 80
	sliderBounds.Width = 120
	rl.DrawText("Tolerance", x+10, int32(sliderBounds.Y)+2, 15, colorTextSecondary)
	g.Picker.HeightTolerance = gui.Slider(sliderBounds, "", fmt.Sprintf("%.2f", g.Picker.HeightTolerance), g.Picker.HeightTolerance, 0, 0.5)

	rl.DrawText("Drag to move, Del to remove", x+10, y+144, 14, colorTextMuted)

	screenH := int32(rl.GetScreenHeight())
	rl.DrawText(g.statusLine(), 10, screenH-48, 16, colorTextSecondary)
	if g.status != "" {
		rl.DrawText(g.status, 10, screenH-26, 16, colorAccentLight)
	}
	rl.DrawText("Arrows to look, WASD to walk", int32(rl.GetScreenWidth())-250, 10, 16, colorTextMuted)
	rl.DrawFPS(int32(rl.GetScreenWidth())-90, 34)
}
