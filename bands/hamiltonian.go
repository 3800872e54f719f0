package bands

import (
	"fmt"
	"math"

	"github.com/jrvillar/esviz"
	"gonum.org/v1/gonum/mat"
)

const twoPi = 2 * math.Pi

// Hamiltonian is a one-dimensional tight-binding chain with a given number of
// orbitals per unit cell: on-site energies, a nearest-neighbor hopping between
// cells and an optional coupling between consecutive orbitals within the cell.
// It is deliberately small; it exists so plot objects have something real to
// diagonalize, not as a solver.
type Hamiltonian struct {
	onsite   []float64
	hop      float64
	inter    float64
	spin     esviz.SpinKind
	exchange float64 //energy splitting between the two collinear channels
}

// NewChain builds a chain Hamiltonian with the given on-site energies (one per
// orbital) and inter-cell hopping. The spin configuration starts unpolarized.
func NewChain(onsite []float64, hop float64) (*Hamiltonian, error) {
	if len(onsite) == 0 {
		return nil, fmt.Errorf("bands: a chain needs at least one orbital")
	}
	c := make([]float64, len(onsite))
	copy(c, onsite)
	return &Hamiltonian{onsite: c, hop: hop}, nil
}

// SetInterOrbital couples consecutive orbitals within the unit cell with
// hopping t.
func (h *Hamiltonian) SetInterOrbital(t float64) {
	h.inter = t
}

// SetSpin sets the spin configuration. For a collinear polarized chain,
// exchange is the full splitting between the up and down channels; it is
// ignored for the other kinds.
func (h *Hamiltonian) SetSpin(kind esviz.SpinKind, exchange float64) {
	h.spin = kind
	h.exchange = exchange
}

// Norb returns the number of orbitals (bands per spin channel).
func (h *Hamiltonian) Norb() int { return len(h.onsite) }

// Spin returns the spin configuration.
func (h *Hamiltonian) Spin() esviz.SpinKind { return h.spin }

// Hk builds the Bloch Hamiltonian at reduced k-point k for the given spin
// channel. The matrix is real symmetric, so gonum's EigenSym applies. It
// panics on an out-of-range spin channel; validating the channel is the
// settings layer's job.
func (h *Hamiltonian) Hk(k float64, spin int) *mat.SymDense {
	if spin < 0 || spin >= h.spin.Spins() {
		panic(fmt.Sprintf("bands: spin channel %d out of range for %v", spin, h.spin))
	}
	n := len(h.onsite)
	shift := 0.0
	if h.spin == esviz.Polarized {
		//channel 0 down-shifted, channel 1 up-shifted
		shift = h.exchange * (float64(spin) - 0.5)
	}
	disp := 2 * h.hop * math.Cos(twoPi*k)
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, i, h.onsite[i]+disp+shift)
		if i+1 < n {
			m.SetSym(i, i+1, h.inter)
		}
	}
	return m
}

// Eigenvalues diagonalizes Hk and returns the band energies in ascending
// order.
func (h *Hamiltonian) Eigenvalues(k float64, spin int) ([]float64, error) {
	var eig mat.EigenSym
	if !eig.Factorize(h.Hk(k, spin), false) {
		return nil, fmt.Errorf("bands: eigendecomposition failed at k=%g", k)
	}
	return eig.Values(nil), nil
}

// Eigenstate diagonalizes Hk and returns the band energies together with the
// eigenvector matrix (one column per band, same ordering as the energies).
func (h *Hamiltonian) Eigenstate(k float64, spin int) ([]float64, *mat.Dense, error) {
	var eig mat.EigenSym
	if !eig.Factorize(h.Hk(k, spin), true) {
		return nil, nil, fmt.Errorf("bands: eigendecomposition failed at k=%g", k)
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	return eig.Values(nil), &vecs, nil
}
