package bands

/*These tests exercise the band-structure plot object end to end: the
 * tight-binding chain, the settings-driven recomputation chain and the
 * figure rendering.*/

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/jrvillar/esviz"
)

//TestChainEigenvalues checks the single-orbital chain against the analytic
//dispersion E(k) = e0 + 2t cos(2 pi k).
func TestChainEigenvalues(t *testing.T) {
	h, err := NewChain([]float64{0.5}, -1)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []float64{0, 0.25, 0.5} {
		vals, err := h.Eigenvalues(k, 0)
		if err != nil {
			t.Fatal(err)
		}
		want := 0.5 + 2*(-1)*math.Cos(2*math.Pi*k)
		if math.Abs(vals[0]-want) > 1e-12 {
			t.Errorf("k=%g: got %g, want %g", k, vals[0], want)
		}
	}
}

//TestPolarizedChannels checks that the two collinear channels come out split
//by the exchange energy.
func TestPolarizedChannels(t *testing.T) {
	h, err := NewChain([]float64{0}, -1)
	if err != nil {
		t.Fatal(err)
	}
	h.SetSpin(esviz.Polarized, 0.8)
	down, err := h.Eigenvalues(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	up, err := h.Eigenvalues(0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if split := up[0] - down[0]; math.Abs(split-0.8) > 1e-12 {
		t.Errorf("exchange splitting: got %g, want 0.8", split)
	}
}

func twoBandPlot(t *testing.T) *Plot {
	t.Helper()
	h, err := NewChain([]float64{-1, 1}, -0.25)
	if err != nil {
		t.Fatal(err)
	}
	h.SetInterOrbital(0.1)
	p, err := NewPlot(h)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

//TestBandIndexDoesNotRediagonalize reproduces the documented behavior:
//changing the band index only re-derives the wavefunction from the cached
//eigenstates, while changing the k-sampling re-diagonalizes everything.
func TestBandIndexDoesNotRediagonalize(t *testing.T) {
	p := twoBandPlot(t)
	if _, err := p.Wavefunction(); err != nil {
		t.Fatal(err)
	}
	if c := p.engine.Calls(ArtEigenstates); c != 1 {
		t.Fatalf("eigenstates producer ran %d times, want 1", c)
	}

	if err := p.Set("band_index", esviz.IntValue(1)); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Wavefunction(); err != nil {
		t.Fatal(err)
	}
	if c := p.engine.Calls(ArtEigenstates); c != 1 {
		t.Errorf("changing band_index re-diagonalized (eigenstates ran %d times)", c)
	}
	if c := p.engine.Calls(ArtWavefunction); c != 2 {
		t.Errorf("wavefunction producer ran %d times, want 2", c)
	}

	if err := p.Set("npts", esviz.IntValue(21)); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Wavefunction(); err != nil {
		t.Fatal(err)
	}
	if c := p.engine.Calls(ArtEigenstates); c != 2 {
		t.Errorf("changing npts must re-diagonalize (eigenstates ran %d times)", c)
	}
}

//TestSelectionPrecedence checks the Erange-wins rule of selected_bands.
func TestSelectionPrecedence(t *testing.T) {
	p := twoBandPlot(t)

	//The two bands sit around -1 and +1. A window catching only the lower
	//one must win over a bands_range naming both.
	err := p.UpdateSettings(map[string]esviz.Value{
		"Erange":      esviz.RangeValue(-4, 0),
		"bands_range": esviz.RangeValue(0, 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	sel, err := p.SelectedBands()
	if err != nil {
		t.Fatal(err)
	}
	if len(sel.Indices) != 1 || sel.Indices[0] != 0 {
		t.Fatalf("with Erange set, got indices %v, want [0]", sel.Indices)
	}

	//Only once Erange is unset does bands_range take over.
	if err := p.Set("Erange", esviz.NilValue()); err != nil {
		t.Fatal(err)
	}
	sel, err = p.SelectedBands()
	if err != nil {
		t.Fatal(err)
	}
	if len(sel.Indices) != 2 {
		t.Fatalf("with Erange unset, got indices %v, want both bands", sel.Indices)
	}
}

//TestWavefunctionNormalization makes sure the extracted coefficients are a
//normalized eigenvector.
func TestWavefunctionNormalization(t *testing.T) {
	p := twoBandPlot(t)
	coeffs, err := p.Wavefunction()
	if err != nil {
		t.Fatal(err)
	}
	var norm float64
	for _, c := range coeffs {
		norm += c * c
	}
	if math.Abs(norm-1) > 1e-10 {
		t.Errorf("wavefunction norm %g, want 1", norm)
	}
}

//TestSave renders a small figure to a temporary directory.
func TestSave(t *testing.T) {
	p := twoBandPlot(t)
	if err := p.Set("npts", esviz.IntValue(11)); err != nil {
		t.Fatal(err)
	}
	if err := p.Set("title", esviz.StringValue("Two-band chain")); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(filepath.Join(t.TempDir(), "bands.png")); err != nil {
		t.Error(err)
	}
}
