package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/quanta-lab/polarisim/internal/spectrum"
)

// WriteCSV writes the sweep as one row per momentum: k, branch energies
// (ascending), then the photon fraction of each branch.
func WriteCSV(w io.Writer, res *spectrum.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	n := res.NumBranches()
	header := []string{"k"}
	for j := 0; j < n; j++ {
		header = append(header, fmt.Sprintf("E%d", j))
	}
	for j := 0; j < n; j++ {
		header = append(header, fmt.Sprintf("photon%d", j))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range res.Ks {
		row := []string{strconv.FormatFloat(res.Ks[i], 'f', 6, 64)}
		for j := 0; j < n; j++ {
			row = append(row, strconv.FormatFloat(res.Branches[j][i], 'f', 8, 64))
		}
		for j := 0; j < n; j++ {
			row = append(row, strconv.FormatFloat(res.Photon[j][i], 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
