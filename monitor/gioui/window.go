// Package gioui is the editor window of the plugin: it shows the latest
// timing readout and nothing else.
package gioui

import (
	"image"
	"log/slog"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"github.com/pocketaudio/pocket/monitor"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type (
	// Window runs on its own goroutine (Main); everything touching its
	// state goes through the Exec queue.
	Window struct {
		title       string
		preferences Preferences
		shaper      *text.Shaper
		divider     component.DividerStyle
		playIcon    *widget.Icon
		stopIcon    *widget.Icon

		readout monitor.Readout
		quitted bool

		exec        chan func()
		closeWindow chan struct{}
		finished    chan struct{}
	}

	C = layout.Context
	D = layout.Dimensions
)

func NewWindow(title string) *Window {
	th := material.NewTheme()
	th.Fg = mediumEmphasisTextColor
	w := &Window{
		title:       title,
		preferences: MakePreferences(),
		shaper:      text.NewShaper(text.WithCollection(fontCollection)),
		divider:     component.Divider(th),
		playIcon:    mustIcon(icons.AVPlayArrow),
		stopIcon:    mustIcon(icons.AVStop),
		readout:     monitor.Format(0, -1, monitor.DefaultThreshold),
		exec:        make(chan func(), 64),
		closeWindow: make(chan struct{}, 1),
		finished:    make(chan struct{}),
	}
	if err := w.preferences.YmlError; err != nil {
		slog.Warn("could not read preferences.yml, using defaults", "err", err)
	}
	return w
}

func mustIcon(data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		panic(err)
	}
	return icon
}

// Exec returns the queue of functions run on the window goroutine.
func (w *Window) Exec() chan<- func() {
	return w.exec
}

// Show makes the window display r. It never blocks: if the queue is full
// the readout is dropped.
func (w *Window) Show(r monitor.Readout) bool {
	return monitor.TrySend(w.exec, func() { w.readout = r })
}

// Close asks the window to close for good.
func (w *Window) Close() {
	monitor.TrySend(w.closeWindow, struct{}{})
}

// WaitClosed waits until Main has returned, or the timeout has elapsed.
// It reports whether Main returned.
func (w *Window) WaitClosed(timeout time.Duration) bool {
	select {
	case <-w.finished:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Main opens the window and serves it until Close is called or, outside
// plugins, the user closes it.
func (w *Window) Main() {
	var ops op.Ops
	for !w.quitted {
		win := w.newWindow()
		acks := make(chan struct{})
		events := make(chan event.Event)
		go func() {
			for {
				ev := win.Event()
				events <- ev
				<-acks
				if _, ok := ev.(app.DestroyEvent); ok {
					return
				}
			}
		}()
	F:
		for {
			select {
			case f := <-w.exec:
				f()
				win.Invalidate()
			case <-w.closeWindow:
				w.quitted = true
				win.Perform(system.ActionClose)
			case e := <-events:
				switch e := e.(type) {
				case app.DestroyEvent:
					if canQuit {
						w.quitted = true
					}
					acks <- struct{}{}
					break F // this window is done, we need to create a new one
				case app.FrameEvent:
					gtx := app.NewContext(&ops, e)
					w.Layout(gtx)
					e.Frame(gtx.Ops)
				}
				acks <- struct{}{}
			}
		}
	}
	close(w.finished)
}

func (w *Window) newWindow() *app.Window {
	win := new(app.Window)
	win.Option(app.Title(w.title), app.Size(w.preferences.WindowSize()))
	return win
}

func (w *Window) Layout(gtx C) D {
	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, backgroundColor)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, w.layoutDeviation),
		layout.Rigid(w.divider.Layout),
		layout.Flexed(1, w.layoutPosition),
	)
}

func (w *Window) layoutDeviation(gtx C) D {
	size := w.preferences.FontSize()
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Flexed(1, Label(w.readout.Early, earlyColor, size, layout.E, w.shaper)),
		layout.Rigid(func(gtx C) D {
			r := image.Rect(0, 0, gtx.Dp(dividerWidth), gtx.Constraints.Max.Y)
			paint.FillShape(gtx.Ops, dividerColor, clip.Rect(r).Op())
			return D{Size: r.Max}
		}),
		layout.Flexed(1, Label(w.readout.Late, lateColor, size, layout.W, w.shaper)),
	)
}

func (w *Window) layoutPosition(gtx C) D {
	icon, color := w.stopIcon, mediumEmphasisTextColor
	if w.readout.Playing {
		icon, color = w.playIcon, playingColor
	}
	return layout.Center.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				gtx.Constraints.Min.X = gtx.Dp(iconSize)
				gtx.Constraints.Max.X = gtx.Dp(iconSize)
				return icon.Layout(gtx, color)
			}),
			layout.Rigid(layout.Spacer{Width: iconSize / 2}.Layout),
			layout.Rigid(Label(w.readout.Position, highEmphasisTextColor, positionFontSize, layout.W, w.shaper)),
		)
	})
}
