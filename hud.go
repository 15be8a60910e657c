package main

import (
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/sandpit/sandbox"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const hudHelp = "drag: pour  WASD: pan  Q/E/wheel: zoom  space: reset  C: copy seed  H: hide"

// HUD is the top-left statistics panel with a Reset button.
type HUD struct {
	ui    *ebitenui.UI
	panel *widget.Container
	stats *widget.Text
}

func NewHUD(onReset func()) *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressedImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: colornames.White}

	stats := widget.NewText(
		widget.TextOpts.Text("", &face, colornames.White),
	)
	help := widget.NewText(
		widget.TextOpts.Text(hudHelp, &face, colornames.Lightgrey),
	)
	resetBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressedImg}),
		widget.ButtonOpts.Text("Reset", &face, btnTextColor),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onReset()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(stats)
	panel.AddChild(help)
	panel.AddChild(resetBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &HUD{
		ui:    &ebitenui.UI{Container: root},
		panel: panel,
		stats: stats,
	}
}

func (h *HUD) SetStats(st sandbox.Stats) {
	label := st.String()
	if st.ResetPending {
		label += "  resetting..."
	}
	h.stats.Label = label
}

// Contains reports whether the screen point is over the panel.
func (h *HUD) Contains(x, y int) bool {
	return image.Pt(x, y).In(h.panel.GetWidget().Rect)
}

func (h *HUD) Update() {
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}
