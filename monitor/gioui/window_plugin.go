//go:build plugin

package gioui

// the host decides when the editor goes away: a window closed by the user is
// opened again and only Close ends Main
const canQuit = false
