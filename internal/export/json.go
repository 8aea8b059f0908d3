package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/fixedstep/internal/sim"
	"github.com/san-kum/fixedstep/internal/storage"
)

// Run is the full record of a saved run: its metadata and every frame.
type Run struct {
	storage.RunMetadata
	Frames []sim.Frame `json:"frames"`
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// LoadRun reads a saved run back from st.
func LoadRun(st *storage.Store, runID string) (*Run, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, err
	}
	frames, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, err
	}
	return &Run{RunMetadata: *meta, Frames: frames}, nil
}
