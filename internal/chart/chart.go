package chart

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/DoyleJ11/lol-gold-dashboard/internal/history"
)

const (
	bandStep  = 1000
	bandLimit = 10000
	bandMaxX  = 120 // minutes
)

type Options struct {
	Font       color.Color
	Background color.Color
	Width      vg.Length
	Height     vg.Length
}

func DefaultOptions() Options {
	return Options{
		Font:       colornames.White,
		Background: colornames.Black,
		Width:      6.4 * vg.Inch,
		Height:     4.8 * vg.Inch,
	}
}

// ParseColor accepts #rgb / #rrggbb hex, SVG color names and the
// single-letter shorthands (k, w, r, g, b, y).
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if c, ok := shorthand[s]; ok {
		return c, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}

var shorthand = map[string]color.Color{
	"k": colornames.Black,
	"w": colornames.White,
	"r": colornames.Red,
	"g": colornames.Green,
	"b": colornames.Blue,
	"y": colornames.Gold,
}

func parseHex(h string) (color.Color, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return nil, fmt.Errorf("bad hex color %q", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad hex color %q: %w", h, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Render draws the differential history as a PNG. Horizontal bands every
// 1000 gold are tinted with the color of the team that leads on that side of
// the zero line; inverted means CHAOS is the left team.
func Render(w io.Writer, samples []history.Sample, domain history.Domain, inverted bool, opts Options) error {
	p := plot.New()
	p.BackgroundColor = opts.Background
	p.X.Label.Text = "Minute"
	p.Y.Label.Text = "Gold Difference"
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.LineStyle.Color = opts.Font
		ax.Label.TextStyle.Color = opts.Font
		ax.Tick.Label.Color = opts.Font
		ax.Tick.LineStyle.Color = opts.Font
	}

	leftColor, rightColor := color.Color(colornames.Blue), color.Color(colornames.Red)
	if inverted {
		leftColor, rightColor = rightColor, leftColor
	}

	for y := -bandLimit; y < bandLimit; y += bandStep {
		band, err := plotter.NewLine(plotter.XYs{{X: 0, Y: float64(y)}, {X: bandMaxX, Y: float64(y)}})
		if err != nil {
			return err
		}
		switch {
		case y < 0:
			band.LineStyle = draw.LineStyle{Color: leftColor, Width: vg.Points(0.5)}
		case y > 0:
			band.LineStyle = draw.LineStyle{Color: rightColor, Width: vg.Points(0.5)}
		default:
			band.LineStyle = draw.LineStyle{Color: colornames.Black, Width: vg.Points(1)}
		}
		p.Add(band)
	}

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i] = plotter.XY{X: s.ElapsedMinutes, Y: float64(s.Differential)}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("history line: %w", err)
	}
	line.LineStyle = draw.LineStyle{Color: colornames.Gold, Width: vg.Points(2.5)}
	p.Add(line)

	// Add widens the axes to the data; pin them afterwards.
	p.X.Min, p.X.Max = domain.MinX, domain.MaxX
	p.Y.Min, p.Y.Max = domain.MinY, domain.MaxY

	wt, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
