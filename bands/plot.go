/*
Package bands provides the band-structure plot object: a tight-binding chain
Hamiltonian plus a settings engine wiring its eigenstates, band selection and
wavefunction together so that parameter updates only redo the work they have
to. Changing the band index re-derives the wavefunction from the cached
eigenstates; changing the k-sampling or the spin channel re-diagonalizes.
*/
package bands

import (
	"fmt"

	"github.com/jrvillar/esviz"
	"github.com/jrvillar/esviz/settings"
	"gonum.org/v1/gonum/mat"
)

//Artifact and parameter names. String keys are the settings engine's
//currency, so typos here would only surface at runtime; keep them in one
//place.
const (
	ArtEigenstates   = "eigenstates"
	ArtSelectedBands = "selected_bands"
	ArtWavefunction  = "wavefunction"
)

// Spectrum is the eigenstates artifact: band energies and eigenvectors along
// the k-path, for one spin channel.
type Spectrum struct {
	Ks      []float64
	Eigvals [][]float64 //indexed [ik][band], ascending in energy
	Vectors []*mat.Dense //one eigenvector matrix per k-point
}

// Selection is the selected_bands artifact: which bands survived the energy
// window or index range, and their energies along the path.
type Selection struct {
	Indices []int
	Bands   [][]float64 //indexed [selected band][ik]
}

// Plot is a band-structure plot object. All its state lives in the embedded
// settings engine; the Hamiltonian is treated as fixed for the lifetime of
// the plot.
type Plot struct {
	h      *Hamiltonian
	engine *settings.Engine
}

// NewPlot builds the plot object for h, with the full parameter schema and
// artifact graph declared. Defaults: 101 k-points from 0 to 0.5, spin channel
// 0, no energy window, no band range, band 0 for the wavefunction.
func NewPlot(h *Hamiltonian) (*Plot, error) {
	schema := settings.Schema{
		{Name: "npts", Default: esviz.IntValue(101),
			Validate: settings.IntValidator(2, 100000),
			Help:     "Number of k-points sampled between 0 and kmax."},
		{Name: "kmax", Default: esviz.FloatValue(0.5),
			Validate: settings.FloatValidator(0, 1),
			Help:     "End of the k-path, in reduced units."},
		{Name: "spin", Default: esviz.IntValue(0),
			Validate: settings.IntValidator(0, h.Spin().Spins()-1),
			Help:     "Spin channel to diagonalize."},
		{Name: "Erange", Default: esviz.NilValue(),
			Validate: settings.RangeValidator(true),
			Help:     "Energy window for band selection. Takes precedence over bands_range."},
		{Name: "bands_range", Default: esviz.NilValue(),
			Validate: settings.RangeValidator(true),
			Help:     "Band index range for selection. Only honored when Erange is unset."},
		{Name: "band_index", Default: esviz.IntValue(0),
			Validate: settings.IntValidator(0, h.Norb()-1),
			Help:     "Band whose wavefunction coefficients are extracted."},
		{Name: "title", Default: esviz.StringValue("Band structure"),
			Validate: settings.KindValidator(esviz.String, false),
			Help:     "Plot title."},
	}
	e, err := settings.New(schema)
	if err != nil {
		return nil, err
	}
	p := &Plot{h: h, engine: e}

	err = e.Declare(ArtEigenstates, []string{"npts", "kmax", "spin"}, nil, p.produceEigenstates)
	if err != nil {
		return nil, err
	}
	err = e.Declare(ArtSelectedBands, []string{"Erange", "bands_range"}, []string{ArtEigenstates}, p.produceSelection)
	if err != nil {
		return nil, err
	}
	err = e.Declare(ArtWavefunction, []string{"band_index"}, []string{ArtEigenstates}, p.produceWavefunction)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Plot) produceEigenstates(in settings.Inputs) (interface{}, error) {
	npts := in.Params["npts"].MustInt()
	kmax := in.Params["kmax"].MustFloat()
	spin := in.Params["spin"].MustInt()
	s := &Spectrum{
		Ks:      make([]float64, npts),
		Eigvals: make([][]float64, npts),
		Vectors: make([]*mat.Dense, npts),
	}
	for i := 0; i < npts; i++ {
		k := kmax * float64(i) / float64(npts-1)
		vals, vecs, err := p.h.Eigenstate(k, spin)
		if err != nil {
			return nil, err
		}
		s.Ks[i] = k
		s.Eigvals[i] = vals
		s.Vectors[i] = vecs
	}
	return s, nil
}

func (p *Plot) produceSelection(in settings.Inputs) (interface{}, error) {
	spec := in.From[ArtEigenstates].(*Spectrum)
	nbands := p.h.Norb()
	erange := in.Params["Erange"]
	brange := in.Params["bands_range"]

	var indices []int
	switch {
	case !erange.IsNil():
		//the energy window wins when both are set
		w := erange.MustRange()
		for b := 0; b < nbands; b++ {
			if bandTouchesWindow(spec, b, w) {
				indices = append(indices, b)
			}
		}
	case !brange.IsNil():
		r := brange.MustRange()
		lo, hi := int(r[0]), int(r[1])
		if lo < 0 {
			lo = 0
		}
		if hi > nbands-1 {
			hi = nbands - 1
		}
		for b := lo; b <= hi; b++ {
			indices = append(indices, b)
		}
	default:
		for b := 0; b < nbands; b++ {
			indices = append(indices, b)
		}
	}

	sel := &Selection{Indices: indices, Bands: make([][]float64, len(indices))}
	for si, b := range indices {
		band := make([]float64, len(spec.Ks))
		for ik := range spec.Ks {
			band[ik] = spec.Eigvals[ik][b]
		}
		sel.Bands[si] = band
	}
	return sel, nil
}

func bandTouchesWindow(spec *Spectrum, b int, w [2]float64) bool {
	for ik := range spec.Ks {
		e := spec.Eigvals[ik][b]
		if e >= w[0] && e <= w[1] {
			return true
		}
	}
	return false
}

func (p *Plot) produceWavefunction(in settings.Inputs) (interface{}, error) {
	spec := in.From[ArtEigenstates].(*Spectrum)
	band := in.Params["band_index"].MustInt()
	//coefficients at the first k-point of the path (the gamma point for the
	//default path)
	vecs := spec.Vectors[0]
	n, _ := vecs.Dims()
	coeffs := make([]float64, n)
	for i := 0; i < n; i++ {
		coeffs[i] = vecs.At(i, band)
	}
	return coeffs, nil
}

// UpdateSettings applies a batch of parameter changes; see
// settings.Engine.Update for the batching and invalidation rules.
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

// Help returns the introspection record of a parameter.
func (p *Plot) Help(name string) (settings.Info, error) {
	return p.engine.Info(name)
}

// Spectrum returns the (possibly freshly diagonalized) eigenstates.
func (p *Plot) Spectrum() (*Spectrum, error) {
	v, err := p.engine.Read(ArtEigenstates)
	if err != nil {
		return nil, err
	}
	return v.(*Spectrum), nil
}

// SelectedBands returns the bands surviving the Erange/bands_range selection.
func (p *Plot) SelectedBands() (*Selection, error) {
	v, err := p.engine.Read(ArtSelectedBands)
	if err != nil {
		return nil, err
	}
	return v.(*Selection), nil
}

// Wavefunction returns the eigenvector coefficients of the band selected by
// band_index.
func (p *Plot) Wavefunction() ([]float64, error) {
	v, err := p.engine.Read(ArtWavefunction)
	if err != nil {
		return nil, err
	}
	return v.([]float64), nil
}

// Settings exposes the underlying engine, mainly for session save/restore.
func (p *Plot) Settings() *settings.Engine { return p.engine }

func (p *Plot) String() string {
	return fmt.Sprintf("bands.Plot{%d orbitals, %v}", p.h.Norb(), p.h.Spin())
}
