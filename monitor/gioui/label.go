package gioui

import (
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
)

type LabelStyle struct {
	Text       string
	Color      color.NRGBA
	ShadeColor color.NRGBA
	Alignment  layout.Direction
	Font       font.Font
	FontSize   unit.Sp
	Shaper     *text.Shaper
}

func colorMaterial(ops *op.Ops, c color.NRGBA) op.CallOp {
	m := op.Record(ops)
	paint.ColorOp{Color: c}.Add(ops)
	return m.Stop()
}

func (l LabelStyle) Layout(gtx layout.Context) layout.Dimensions {
	return l.Alignment.Layout(gtx, func(gtx C) D {
		gtx.Constraints.Min = image.Point{}
		offs := op.Offset(image.Pt(2, 2)).Push(gtx.Ops)
		widget.Label{
			Alignment: text.Start,
			MaxLines:  1,
		}.Layout(gtx, l.Shaper, l.Font, l.FontSize, l.Text, colorMaterial(gtx.Ops, l.ShadeColor))
		offs.Pop()
		dims := widget.Label{
			Alignment: text.Start,
			MaxLines:  1,
		}.Layout(gtx, l.Shaper, l.Font, l.FontSize, l.Text, colorMaterial(gtx.Ops, l.Color))
		return layout.Dimensions{
			Size:     dims.Size,
			Baseline: dims.Baseline,
		}
	})
}

func Label(str string, color color.NRGBA, size unit.Sp, alignment layout.Direction, shaper *text.Shaper) layout.Widget {
	return LabelStyle{Text: str, Color: color, ShadeColor: black, Font: labelDefaultFont, FontSize: size, Alignment: alignment, Shaper: shaper}.Layout
}
