package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/viz"
)

type ExportData struct {
	Seed       int64              `json:"seed"`
	Life       int                `json:"life"`
	Multiplier int                `json:"multiplier"`
	Rows       int                `json:"rows"`
	Cols       int                `json:"cols"`
	Ticks      uint64             `json:"ticks"`
	Trunks     int                `json:"trunks"`
	Shoots     int                `json:"shoots"`
	Branches   int                `json:"branches"`
	Metrics    map[string]float64 `json:"metrics"`
	Lines      []string           `json:"lines"`
}

func NewExportData(cfg sim.Config, result *sim.Result, canvas *viz.Canvas) ExportData {
	data := ExportData{
		Seed:       cfg.Seed,
		Life:       cfg.Params.Life,
		Multiplier: cfg.Params.Multiplier,
		Rows:       cfg.Bounds.Rows,
		Cols:       cfg.Bounds.Cols,
	}
	if result != nil {
		data.Ticks = result.Ticks
		data.Trunks = result.Trunks
		data.Shoots = result.Shoots
		data.Branches = result.Branches
		data.Metrics = result.Metrics
	}
	if canvas != nil {
		data.Lines = canvas.Lines(nil)
	}
	return data
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}

func ExportJSONStdout(data ExportData) error {
	return WriteJSON(os.Stdout, data)
}
