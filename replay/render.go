package replay

import (
	_ "embed"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/pocketaudio/pocket/monitor"
)

//go:embed templates/report.txt
var defaultTemplate string

var notes = []string{
	"C-",
	"C#",
	"D-",
	"D#",
	"E-",
	"F-",
	"F#",
	"G-",
	"G#",
	"A-",
	"A#",
	"B-",
}

// NoteName returns the tracker style name of a MIDI key, C-4 being 60.
func NoteName(key byte) string {
	octave := int(key)/12 - 1
	if octave < 0 {
		return notes[key%12] + "Z"
	}
	return fmt.Sprintf("%s%d", notes[key%12], octave)
}

func formatDeviation(ms, threshold float64) string {
	r := monitor.Format(ms, 0, threshold)
	switch {
	case r.Early != "":
		return "early " + r.Early
	case r.Late != "":
		return "late " + r.Late
	}
	return "on the beat"
}

func deviationFunc(threshold float64) func(float64) string {
	return func(ms float64) string { return formatDeviation(ms, threshold) }
}

// Template parses text as a report template. The sprig functions are
// available, as are noteName and deviation. An empty text gives the
// built-in template.
func Template(text string) (*template.Template, error) {
	if text == "" {
		text = defaultTemplate
	}
	tmpl, err := template.New("report").Funcs(sprig.TxtFuncMap()).Funcs(template.FuncMap{
		"noteName":  NoteName,
		"deviation": deviationFunc(monitor.DefaultThreshold),
	}).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("could not parse report template: %w", err)
	}
	return tmpl, nil
}

// Render writes the report using the template text, or the built-in
// template if text is empty.
func (r *Report) Render(w io.Writer, text string) error {
	tmpl, err := Template(text)
	if err != nil {
		return err
	}
	tmpl.Funcs(template.FuncMap{"deviation": deviationFunc(r.Tolerance())})
	if err := tmpl.Execute(w, r); err != nil {
		return fmt.Errorf("could not render report: %w", err)
	}
	return nil
}
