package genieplot

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// LogGrid presents the bin contents of a 2D histogram on a log10 scale.
// Empty bins are NaN and left undrawn.
type LogGrid struct {
	grid plotter.GridXYZ
}

func NewLogGrid(h *hbook.H2D) LogGrid {
	return LogGrid{grid: h.GridXYZ()}
}

func (g LogGrid) Dims() (int, int) {
	return g.grid.Dims()
}

func (g LogGrid) Z(i, j int) float64 {
	n := g.grid.Z(i, j)
	if n <= 0 {
		return math.NaN()
	}
	return math.Log10(n)
}

func (g LogGrid) X(i int) float64 {
	return g.grid.X(i)
}

func (g LogGrid) Y(j int) float64 {
	return g.grid.Y(j)
}

// Max returns the largest finite Z of the grid, or 0 for an empty one.
func (g LogGrid) Max() float64 {
	m := 0.0
	nx, ny := g.Dims()
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if z := g.Z(i, j); !math.IsNaN(z) {
				m = math.Max(m, z)
			}
		}
	}
	return m
}

// HeatMap describes a 2D histogram drawn with a colour bar.
type HeatMap struct {
	Title  string
	XLabel string
	YLabel string
	Hist   *hbook.H2D
}

// Save draws the heat map and its colour bar into a PNG file. The colour
// scale runs over log10 of the bin contents.
func (m HeatMap) Save(path string) error {
	grid := NewLogGrid(m.Hist)

	zMax := grid.Max()
	if zMax <= 0 {
		zMax = 1
	}

	p := plot.New()
	p.Title.Text = m.Title
	p.X.Label.Text = m.XLabel
	p.Y.Label.Text = m.YLabel
	p.X.Tick.Marker = IntegerTicks{}
	p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dcPlot := draw.Crop(dc, 0, -70, 0, 0)
	dcBar := draw.Crop(dc, 620, 0, 0, 0)

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(0)
	colorMap.SetMax(zMax)
	heatMap := plotter.NewHeatMap(grid, colorMap.Palette(1000))
	heatMap.Min = 0
	heatMap.Max = zMax
	heatMap.NaN = color.Transparent
	p.Add(heatMap)
	p.Draw(dcPlot)

	bar := plot.New()
	bar.Title.Text = "log10"
	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	bar.Add(colorBar)
	bar.HideX()
	bar.Y.Padding = 0
	bar.Draw(dcBar)

	w, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err = png.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return w.Close()
}

// ProtonEnergyHist books the N_p versus summed hadronic kinetic energy
// histogram of the events passing t.
func ProtonEnergyHist(events []Event, t Topology) *hbook.H2D {
	h := hbook.NewH2D(12, 0, 12, 50, 0, 2.5)
	for i := range events {
		e := &events[i]
		if t.Match != nil && !t.Match(e) {
			continue
		}
		h.Fill(float64(e.NProton), e.SumKE, 1)
	}
	return h
}
