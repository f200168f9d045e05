// Package render draws charts.Figure values as PNG images using gonum/plot.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/justestif/spotify-mood-explorer/internal/charts"
)

// ErrNoPanels is returned when a figure has nothing to draw.
var ErrNoPanels = errors.New("figure has no panels")

const (
	defaultDPI   = 100
	barWidth     = 20 // points
	pointRadius  = 3  // points
	panelPadding = 8  // points
)

// PNG renders figures to PNG.
type PNG struct {
	DPI int // defaults to 100
}

// ContentType is the MIME type of the rendered output.
func (PNG) ContentType() string {
	return "image/png"
}

// Render draws fig and writes the encoded image to w.
func (r PNG) Render(fig charts.Figure, w io.Writer) error {
	if len(fig.Panels) == 0 {
		return ErrNoPanels
	}

	dpi := r.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}

	plots := make([][]*plot.Plot, len(fig.Panels))
	for i, panel := range fig.Panels {
		p, err := buildPlot(panel)
		if err != nil {
			return fmt.Errorf("building panel %q: %w", panel.Title, err)
		}
		plots[i] = []*plot.Plot{p}
	}

	width := vg.Length(fig.Width) * vg.Inch
	height := vg.Length(fig.Height) * vg.Inch
	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadTop:    panelPadding,
		PadBottom: panelPadding,
		PadLeft:   panelPadding,
		PadRight:  panelPadding,
		PadY:      panelPadding * 2,
	}

	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Bytes renders fig into memory.
func (r PNG) Bytes(fig charts.Figure) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(fig, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildPlot(panel charts.Panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel

	if panel.Grid {
		p.Add(plotter.NewGrid())
	}

	if len(panel.Bars) > 0 {
		if err := addBars(p, panel); err != nil {
			return nil, err
		}
	}

	if len(panel.Series) > 0 {
		if err := addSeries(p, panel); err != nil {
			return nil, err
		}
	}

	if panel.XTickRotation != 0 {
		p.X.Tick.Label.Rotation = panel.XTickRotation * math.Pi / 180
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	return p, nil
}

func addBars(p *plot.Plot, panel charts.Panel) error {
	values := make(plotter.Values, len(panel.Bars))
	labels := make([]string, len(panel.Bars))
	for i, b := range panel.Bars {
		values[i] = b.Value
		labels[i] = b.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
	if err != nil {
		return fmt.Errorf("creating bar chart: %w", err)
	}
	bars.LineStyle.Width = 0
	if panel.BarColor != nil {
		bars.Color = panel.BarColor
	}

	p.Add(bars)
	p.NominalX(labels...)
	p.Y.Min = 0
	return nil
}

func addSeries(p *plot.Plot, panel charts.Panel) error {
	if panel.LegendTitle != "" {
		p.Legend.Add(panel.LegendTitle)
	}
	p.Legend.Top = true

	for _, s := range panel.Series {
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X = pt.X
			xys[i].Y = pt.Y
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("creating scatter %q: %w", s.Name, err)
		}
		scatter.GlyphStyle.Color = s.Color
		scatter.GlyphStyle.Radius = vg.Points(pointRadius)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(scatter)
		p.Legend.Add(s.Name, scatter)
	}
	return nil
}
