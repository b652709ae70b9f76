package spectrum

// Point is the solved eigenmode structure at a single momentum: branch
// energies in ascending order and the photon fraction (squared overlap of
// the eigenvector with the bare photon mode) of each branch.
type Point struct {
	K        float64
	Energies []float64
	Photon   []float64
}

// Config controls a dispersion sweep.
type Config struct {
	KMin    float64 // 1/µm
	KMax    float64 // 1/µm
	Points  int
	Workers int // 0 means GOMAXPROCS
}

// Result holds a full sweep. Branches and Photon are indexed
// [branch][point], Bare is indexed [mode][point] with the photon mode
// first, matching System.BareEnergies.
type Result struct {
	Ks       []float64
	Branches [][]float64
	Photon   [][]float64
	Bare     [][]float64
	Labels   []string
}

// NumBranches returns the Hamiltonian dimension of the sweep.
func (r *Result) NumBranches() int { return len(r.Branches) }

// At reassembles the Point for grid index i.
func (r *Result) At(i int) Point {
	p := Point{
		K:        r.Ks[i],
		Energies: make([]float64, len(r.Branches)),
		Photon:   make([]float64, len(r.Photon)),
	}
	for j := range r.Branches {
		p.Energies[j] = r.Branches[j][i]
		p.Photon[j] = r.Photon[j][i]
	}
	return p
}
