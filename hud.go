package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/colliders/common"
	"golang.org/x/image/font/basicfont"
)

// hudState holds the labels refreshed every frame.
type hudState struct {
	scene *widget.Text
	mode  *widget.Text
	stats *widget.Text
}

func (h *hudState) refresh(g *Game) {
	cfg := g.settings.Get()
	h.scene.Label = fmt.Sprintf("Scene: %s", g.sim.Scene().Name)

	state := "running"
	if cfg.Paused {
		state = "paused"
	}
	h.mode.Label = fmt.Sprintf("Mode: %s  Debug: %v  (%s)", g.sim.Mode(), cfg.Debug, state)

	st := g.sim.Stats()
	h.stats.Label = fmt.Sprintf("Hosts %d  Tests %d  Contacts %d  Stops %d", st.Hosts, st.Tests, st.Contacts, st.Stops)
}

// NewHUD builds the top-right status panel with buttons mirroring the
// keyboard toggles.
func NewHUD(g *Game) (*ebitenui.UI, *hudState) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 170})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressedImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	label := func() *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text("", &face, white),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
		)
	}
	state := &hudState{scene: label(), mode: label(), stats: label()}

	button := func(text string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressedImg}),
			widget.ButtonOpts.Text(text, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	buttons.AddChild(button("Debug", g.toggleDebug))
	buttons.AddChild(button("Mode", g.toggleMode))
	buttons.AddChild(button("Pause", g.togglePause))
	buttons.AddChild(button("Copy", g.copyReport))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/4, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(state.scene)
	panel.AddChild(state.mode)
	panel.AddChild(state.stats)
	panel.AddChild(buttons)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}, state
}
