package scene

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/pawbs/common"
)

var (
	white     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelFill = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	btnIdle   = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	btnHover  = color.NRGBA{R: 0x4a, G: 0x4a, B: 0x4a, A: 0xff}
)

func basicFace() ebtext.Face {
	return ebtext.NewGoXFace(basicfont.Face7x13)
}

type menuButton struct {
	label   string
	onClick func()
}

// newMenuUI builds a centered panel with a title and a column of buttons.
func newMenuUI(title string, buttons ...menuButton) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(panelFill)
	idleImg := imageui.NewNineSliceColor(btnIdle)
	hoverImg := imageui.NewNineSliceColor(btnHover)

	face := basicFace()
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, &face, white),
		widget.TextOpts.WidgetOpts(center),
	))

	for _, b := range buttons {
		onClick := b.onClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idleImg, Hover: hoverImg, Pressed: idleImg}),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func newStartMenuUI(title string, onStart, onQuit func()) *ebitenui.UI {
	return newMenuUI(title,
		menuButton{label: "Start", onClick: onStart},
		menuButton{label: "Quit", onClick: onQuit},
	)
}

func newDeathMenuUI(onContinue, onQuit func()) *ebitenui.UI {
	return newMenuUI("You died",
		menuButton{label: "Continue", onClick: onContinue},
		menuButton{label: "Quit", onClick: onQuit},
	)
}
