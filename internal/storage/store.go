package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/quanta-lab/polarisim/internal/export"
	"github.com/quanta-lab/polarisim/internal/spectrum"
)

// Store persists sweep runs under a data directory, one subdirectory per
// run with metadata.json and branches.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string    `json:"id"`
	Material     string    `json:"material"`
	Timestamp    time.Time `json:"timestamp"`
	CavityEnergy float64   `json:"cavity_energy"`
	Coupling     float64   `json:"coupling_scale"`
	KMin         float64   `json:"k_min"`
	KMax         float64   `json:"k_max"`
	Points       int       `json:"points"`
	Labels       []string  `json:"labels"`
	RabiSplit    float64   `json:"rabi_split"`
}

// Save writes a run and returns its generated id.
func (s *Store) Save(meta RunMetadata, res *spectrum.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Material, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.KMin = res.Ks[0]
	meta.KMax = res.Ks[len(res.Ks)-1]
	meta.Points = len(res.Ks)
	meta.Labels = res.Labels

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "branches.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := export.WriteCSV(csvFile, res); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadResult reads the branch data of a saved run back into a Result.
// Bare-mode curves are not persisted; the returned result carries only
// the dressed branches and photon fractions.
func (s *Store) LoadResult(runID string) (*spectrum.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "branches.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("run %s has no data", runID)
	}

	// header: k, E0..E{n-1}, photon0..photon{n-1}
	n := (len(records[0]) - 1) / 2
	res := &spectrum.Result{
		Ks:       make([]float64, 0, len(records)-1),
		Branches: make([][]float64, n),
		Photon:   make([][]float64, n),
		Labels:   meta.Labels,
	}
	for j := 0; j < n; j++ {
		res.Branches[j] = make([]float64, 0, len(records)-1)
		res.Photon[j] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != 1+2*n {
			return nil, fmt.Errorf("run %s: malformed row of %d fields", runID, len(record))
		}
		k, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, err
		}
		res.Ks = append(res.Ks, k)
		for j := 0; j < n; j++ {
			e, err := strconv.ParseFloat(record[1+j], 64)
			if err != nil {
				return nil, err
			}
			p, err := strconv.ParseFloat(record[1+n+j], 64)
			if err != nil {
				return nil, err
			}
			res.Branches[j] = append(res.Branches[j], e)
			res.Photon[j] = append(res.Photon[j], p)
		}
	}
	return res, nil
}
