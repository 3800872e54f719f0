package grid

import (
	"fmt"
	"math"

	"github.com/jrvillar/esviz"
	"github.com/jrvillar/esviz/settings"
)

//Artifact names of the grid plot.
const (
	ArtPlane = "plane"
	ArtImage = "image"
)

// Plot extracts 2-D planes from a grid under settings control. The plane
// artifact depends on how the grid is sliced (axis, index, reduction); the
// image artifact only on the value transform, so toggling between e.g. raw
// and squared values never re-slices the grid.
type Plot struct {
	g      *Grid
	engine *settings.Engine
}

// NewPlot builds the plot object for g. The grid itself is treated as fixed;
// plot a new grid with a new object.
func NewPlot(g *Grid) (*Plot, error) {
	schema := settings.Schema{
		{Name: "axis", Default: esviz.IntValue(2),
			Validate: settings.IntValidator(0, 2),
			Help:     "Cell vector perpendicular to the extracted plane."},
		{Name: "index", Default: esviz.IntValue(0),
			Validate: settings.IntValidator(0, maxShape(g)-1),
			Help:     "Plane position along the axis. Ignored unless reduce is cross."},
		{Name: "reduce", Default: esviz.EnumValue("cross"),
			Validate: settings.ChoicesValidator([]string{"cross", "sum", "average"}),
			Help:     "How the third dimension is collapsed."},
		{Name: "transform", Default: esviz.EnumValue("none"),
			Validate: settings.ChoicesValidator([]string{"none", "abs", "squared"}),
			Help:     "Transform applied pointwise to the extracted plane."},
	}
	e, err := settings.New(schema)
	if err != nil {
		return nil, err
	}
	p := &Plot{g: g, engine: e}
	if err := e.Declare(ArtPlane, []string{"axis", "index", "reduce"}, nil, p.producePlane); err != nil {
		return nil, err
	}
	if err := e.Declare(ArtImage, []string{"transform"}, []string{ArtPlane}, p.produceImage); err != nil {
		return nil, err
	}
	return p, nil
}

func maxShape(g *Grid) int {
	s := g.Shape()
	m := s[0]
	if s[1] > m {
		m = s[1]
	}
	if s[2] > m {
		m = s[2]
	}
	return m
}

func (p *Plot) producePlane(in settings.Inputs) (interface{}, error) {
	axis := in.Params["axis"].MustInt()
	switch in.Params["reduce"].MustStr() {
	case "sum":
		return p.g.Sum(axis)
	case "average":
		return p.g.Average(axis)
	default:
		idx := in.Params["index"].MustInt()
		if idx >= p.g.Shape()[axis] {
			return nil, fmt.Errorf("grid: index %d out of range along axis %d", idx, axis)
		}
		return p.g.CrossSection(idx, axis)
	}
}

func (p *Plot) produceImage(in settings.Inputs) (interface{}, error) {
	plane := in.From[ArtPlane].([][]float64)
	var f func(float64) float64
	switch in.Params["transform"].MustStr() {
	case "abs":
		f = math.Abs
	case "squared":
		f = func(v float64) float64 { return v * v }
	default:
		f = func(v float64) float64 { return v }
	}
	out := make([][]float64, len(plane))
	for i, row := range plane {
		o := make([]float64, len(row))
		for j, v := range row {
			o[j] = f(v)
		}
		out[i] = o
	}
	return out, nil
}

// UpdateSettings applies a batch of parameter changes.
func (p *Plot) UpdateSettings(m map[string]esviz.Value) error {
	return p.engine.Update(m)
}

// Set updates a single parameter.
func (p *Plot) Set(name string, v esviz.Value) error {
	return p.engine.Set(name, v)
}

// Get returns a parameter's current value.
func (p *Plot) Get(name string) (esviz.Value, error) {
	return p.engine.Get(name)
}

// Plane returns the extracted (untransformed) plane.
func (p *Plot) Plane() ([][]float64, error) {
	v, err := p.engine.Read(ArtPlane)
	if err != nil {
		return nil, err
	}
	return v.([][]float64), nil
}

// Image returns the plane with the pointwise transform applied.
func (p *Plot) Image() ([][]float64, error) {
	v, err := p.engine.Read(ArtImage)
	if err != nil {
		return nil, err
	}
	return v.([][]float64), nil
}

// Settings exposes the underlying engine, mainly for session save/restore.
func (p *Plot) Settings() *settings.Engine { return p.engine }
