package genieplot

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Mode selects how overlaid histograms are scaled.
type Mode int

const (
	// Absolute scales each histogram by its configuration's normalization,
	// giving predicted event counts.
	Absolute Mode = iota
	// Area scales each histogram to unit integral.
	Area
)

func (m Mode) String() string {
	if m == Area {
		return "Area Normalised"
	}
	return "Absolute Normalisation"
}

// Series is one configuration's histogram in an overlay.
type Series struct {
	Label string
	Hist  *hbook.H1D
	Scale float64
}

// OverlayOptions configures Overlay.
type OverlayOptions struct {
	Title     string
	XLabel    string
	YLabel    string
	Mode      Mode
	ErrorBars bool
	LogY      bool
	XTicks    plot.Ticker // PreciseTicks if nil
}

// SeriesColor is the line colour of the i-th configuration.
func SeriesColor(i int) color.Color {
	switch i {
	case 0:
		return color.RGBA{A: 255}
	case 1:
		return color.RGBA{R: 255, A: 255}
	case 2:
		return color.RGBA{G: 200, A: 255}
	case 3:
		return color.RGBA{B: 255, A: 255}
	case 4:
		return color.RGBA{G: 200, B: 200, A: 255}
	}
	return plotutil.Color(i)
}

// Overlay scales the histograms in place, according to opts.Mode, and draws
// them on one plot with a legend entry each.
func Overlay(series []Series, opts OverlayOptions) (*hplot.Plot, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("overlay %q: no histograms", opts.Title)
	}

	p := hplot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	if opts.XTicks != nil {
		p.X.Tick.Marker = opts.XTicks
	}
	p.Legend.Top = true

	maxY, minY := 0.0, math.Inf(1)
	for i, s := range series {
		switch opts.Mode {
		case Absolute:
			s.Hist.Scale(s.Scale)
		case Area:
			integral := s.Hist.Integral(s.Hist.XMin(), s.Hist.XMax())
			if integral == 0 {
				slog.Warn("empty histogram left unscaled", "plot", opts.Title, "series", s.Label)
			} else {
				s.Hist.Scale(1 / integral)
			}
		}
		maxY = max(maxY, histMax(s.Hist))
		minY = min(minY, histMinPositive(s.Hist))

		h := hplot.NewH1D(s.Hist,
			hplot.WithHInfo(hplot.HInfoNone),
			hplot.WithYErrBars(opts.ErrorBars),
			hplot.WithLogY(opts.LogY),
		)
		h.FillColor = nil
		h.LineStyle.Color = SeriesColor(i)
		if h.YErrs != nil {
			h.YErrs.LineStyle.Color = SeriesColor(i)
		}
		p.Add(h)
		p.Legend.Add(s.Label, h)
	}

	if opts.LogY {
		if maxY <= 0 {
			return nil, fmt.Errorf("overlay %q: nothing to draw on a log axis", opts.Title)
		}
		p.Y.Min = 0.5 * minY
		p.Y.Max = 2 * maxY
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	} else {
		p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
		if maxY > 0 {
			p.Y.Min = 0
			p.Y.Max = 1.1 * maxY
		}
	}
	return p, nil
}

// SavePlot writes a plot in the format given by the file extension.
func SavePlot(p *hplot.Plot, path string) error {
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// histMinPositive returns the smallest positive bin content, or +Inf.
func histMinPositive(h *hbook.H1D) float64 {
	m := math.Inf(1)
	for i := 0; i < h.Len(); i++ {
		if _, y := h.XY(i); y > 0 {
			m = min(m, y)
		}
	}
	return m
}

func histMax(h *hbook.H1D) float64 {
	m := 0.0
	for i := 0; i < h.Len(); i++ {
		_, y := h.XY(i)
		m = max(m, y)
	}
	return m
}
