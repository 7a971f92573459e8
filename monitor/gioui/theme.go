package gioui

import (
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/unit"
)

var fontCollection []text.FontFace = gofont.Collection()

var black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}

var highEmphasisTextColor = color.NRGBA{R: 222, G: 222, B: 222, A: 222}
var mediumEmphasisTextColor = color.NRGBA{R: 153, G: 153, B: 153, A: 153}

var backgroundColor = color.NRGBA{R: 18, G: 18, B: 18, A: 255}
var dividerColor = color.NRGBA{R: 55, G: 55, B: 61, A: 255}

var earlyColor = color.NRGBA{R: 128, G: 222, B: 234, A: 255}
var lateColor = color.NRGBA{R: 252, G: 186, B: 3, A: 255}
var playingColor = color.NRGBA{R: 206, G: 147, B: 216, A: 255}

var labelDefaultFont = fontCollection[6].Font
var labelDefaultFontSize = unit.Sp(28)
var positionFontSize = unit.Sp(18)
var iconSize = unit.Dp(24)
var dividerWidth = unit.Dp(2)
