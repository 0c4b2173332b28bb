package sound

import (
	"bytes"
	"fmt"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotWave renders the waveform as a JPEG image.
func (a *Analyzer) PlotWave(name string) ([]byte, error) {
	window := 50 * time.Millisecond
	resampled := a.Resample(window)
	return createPlot(name, resampled, -1, 1, window.Seconds())
}

// PlotRMS renders the RMS level curve as a JPEG image.
func (a *Analyzer) PlotRMS(name string) ([]byte, error) {
	window := 50 * time.Millisecond
	rms := a.RMS(window)
	return createPlot(name, rms, 0, 1, window.Seconds())
}

func createPlot(name string, data []float64, min, max float64, window float64) ([]byte, error) {
	p := plot.New()

	p.Y.Min = min
	p.Y.Max = max

	d := time.Duration(float64(len(data))*window*0.5) * time.Second
	p.Title.Text = fmt.Sprintf("%s %s", name, d)
	p.X.Label.Text = "time"
	p.Y.Label.Text = "level"

	pts := make(plotter.XYs, len(data))
	for i, v := range data {
		pts[i].X = float64(i) * window
		pts[i].Y = v
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("sound: couldn't create line plotter: %w", err)
	}
	l.LineStyle.Width = vg.Points(1)
	p.Add(l)

	c, err := p.WriterTo(4*vg.Inch, 4*vg.Inch, "jpeg")
	if err != nil {
		return nil, fmt.Errorf("sound: couldn't create plot: %w", err)
	}
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("sound: couldn't write plot: %w", err)
	}
	return buf.Bytes(), nil
}
