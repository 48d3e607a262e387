package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/gravbox/internal/metrics"
)

type ExportData struct {
	Run     RunMetadata `json:"run"`
	Columns []string    `json:"columns"`
	Times   []float64   `json:"times"`
	Rows    [][]float64 `json:"rows"`
}

// WriteTraceCSV writes a header of time plus the trace columns, then one
// row per sample. A nil trace writes only the header.
func WriteTraceCSV(out io.Writer, tr *metrics.Trace) error {
	w := csv.NewWriter(out)

	header := append([]string{"time"}, metrics.TraceColumns...)
	if err := w.Write(header); err != nil {
		return err
	}

	if tr != nil {
		for i := range tr.Times {
			row := []string{strconv.FormatFloat(tr.Times[i], 'f', 6, 64)}
			for _, val := range tr.Rows[i] {
				row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// ExportCSV copies a stored run's telemetry to out.
func (s *Store) ExportCSV(runID string, out io.Writer) error {
	tr, _, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}
	return WriteTraceCSV(out, tr)
}

// ExportJSON writes a stored run's metadata and telemetry as one document.
func (s *Store) ExportJSON(runID string, out io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	tr, columns, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:     *meta,
		Columns: columns,
		Times:   tr.Times,
		Rows:    tr.Rows,
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
