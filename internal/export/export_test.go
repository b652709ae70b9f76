package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quanta-lab/polarisim/internal/spectrum"
	"github.com/quanta-lab/polarisim/internal/viz"
)

func testResult() *spectrum.Result {
	return &spectrum.Result{
		Ks:       []float64{0, 1, 2},
		Branches: [][]float64{{1.48, 1.481, 1.483}, {1.495, 1.496, 1.499}},
		Photon:   [][]float64{{0.9, 0.8, 0.6}, {0.1, 0.2, 0.4}},
		Bare:     [][]float64{{1.49, 1.491, 1.494}, {1.485, 1.485, 1.485}},
		Labels:   []string{"C", "X1"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testResult()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	if records[0][0] != "k" || records[0][1] != "E0" || records[0][3] != "photon0" {
		t.Errorf("unexpected header: %v", records[0])
	}
	for _, row := range records[1:] {
		if len(row) != 5 {
			t.Errorf("expected 5 fields, got %d", len(row))
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, "gaas-qw", 1.49, testResult()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc["material"] != "gaas-qw" {
		t.Errorf("unexpected material: %v", doc["material"])
	}
	if _, ok := doc["branches"]; !ok {
		t.Error("missing branches")
	}
	if _, ok := doc["crossings"]; !ok {
		t.Error("missing crossings")
	}
}

func TestDispersionSVG(t *testing.T) {
	svg := DispersionSVG(testResult(), 400, 300)

	if !strings.HasPrefix(svg, `<?xml`) || !strings.Contains(svg, "<svg") {
		t.Error("not an svg document")
	}
	// one dashed path per bare mode plus one solid path per branch
	if got := strings.Count(svg, "<path"); got != 4 {
		t.Errorf("expected 4 paths, got %d", got)
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("bare modes should be dashed")
	}
}

func TestCanvasSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(3, 5)
	c.Set(7, 7)

	svg := CanvasSVG(c, 4)
	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("not an svg document")
	}
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("expected one circle per lit sub-pixel, got %d", got)
	}
	// 4x2 cells at scale 4 span 32x32 units
	if !strings.Contains(svg, `viewBox="0 0 32 32"`) {
		t.Errorf("unexpected viewBox:\n%s", svg)
	}

	if CanvasSVG(nil, 4) != "" {
		t.Error("nil canvas should render nothing")
	}
}

func TestCanvasSVGMatchesDispersion(t *testing.T) {
	c := viz.DispersionCanvas(testResult(), 20, 8, false, -1)

	lit := 0
	for y := 0; y < 8*4; y++ {
		for x := 0; x < 20*2; x++ {
			if c.Lit(x, y) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("dispersion canvas is empty")
	}
	if got := strings.Count(CanvasSVG(c, 4), "<circle"); got != lit {
		t.Errorf("svg has %d dots, canvas has %d lit sub-pixels", got, lit)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(testResult(), "test", path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty png written")
	}
}
