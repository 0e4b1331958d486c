// Package capture persists recorded sketch runs to disk: one directory
// per run with a metadata.json and a CSV of every drawable primitive,
// keyed by frame index.
package capture

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/sketchlab/internal/sketch"
)

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
	ID        string             `json:"id"`
	Sketch    string             `json:"sketch"`
	Timestamp time.Time          `json:"timestamp"`
	Quality   string             `json:"quality"`
	Frames    int                `json:"frames"`
	Params    map[string]float64 `json:"params"`
}

// Save writes a run directory and returns its ID.
func (s *Store) Save(sketchName string, quality sketch.Quality, params map[string]float64, frames []sketch.Frame) (string, error) {
	runID := fmt.Sprintf("%s_%d", sketchName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Sketch:    sketchName,
		Timestamp: time.Now(),
		Quality:   quality.String(),
		Frames:    len(frames),
		Params:    params,
	}
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

	csvFile, err := os.Create(filepath.Join(runDir, "primitives.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"frame", "kind", "x1", "y1", "x2", "y2", "aux"}); err != nil {
		return "", err
	}
	for i, f := range frames {
		if err := writeFrame(w, i, f); err != nil {
			return "", err
		}
	}
	return runID, w.Error()
}

func writeFrame(w *csv.Writer, idx int, f sketch.Frame) error {
	frame := strconv.Itoa(idx)
	row := func(kind string, x1, y1, x2, y2, aux float64) error {
		return w.Write([]string{
			frame, kind,
			formatF(x1), formatF(y1), formatF(x2), formatF(y2), formatF(aux),
		})
	}

	for _, e := range f.Edges {
		if err := row("edge", e.X1, e.Y1, e.X2, e.Y2, e.Weight); err != nil {
			return err
		}
	}
	for li, line := range f.Lines {
		for i := 1; i < len(line); i++ {
			a, b := line[i-1], line[i]
			if err := row("trail"+strconv.Itoa(li), a.X, a.Y, b.X, b.Y, b.Depth); err != nil {
				return err
			}
		}
	}
	for level, segs := range f.Contours {
		kind := "contour" + strconv.Itoa(level)
		for _, s := range segs {
			if err := row(kind, s.X1, s.Y1, s.X2, s.Y2, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatF(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// List reads the metadata of every stored run, newest last.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	runs := make([]RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, e.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}
