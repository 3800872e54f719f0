package bands

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func basicBandsPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "k"
	p.Y.Label.Text = "E"
	p.Add(plotter.NewGrid())
	return p
}

// Save renders the currently selected bands along the k-path and writes the
// figure to filename. The format follows the extension (.png, .svg, .pdf, as
// supported by gonum/plot). Reading the artifacts through the engine means a
// stale selection is recomputed first and a fresh one is reused as is.
func (p *Plot) Save(filename string) error {
	spec, err := p.Spectrum()
	if err != nil {
		return err
	}
	sel, err := p.SelectedBands()
	if err != nil {
		return err
	}
	title, err := p.Get("title")
	if err != nil {
		return err
	}

	plt := basicBandsPlot(title.MustStr())
	for bi, band := range sel.Bands {
		pts := make(plotter.XYs, len(spec.Ks))
		for ik, k := range spec.Ks {
			pts[ik].X = k
			pts[ik].Y = band[ik]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(bi)
		plt.Add(line)
		plt.Legend.Add(fmt.Sprintf("band %d", sel.Indices[bi]), line)
	}
	return plt.Save(14*vg.Centimeter, 10*vg.Centimeter, filename)
}
