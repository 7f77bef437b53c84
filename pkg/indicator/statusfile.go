package indicator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is what the status file contains. External tray applets watch
// this file to render the actual icon.
type Snapshot struct {
	State     string    `json:"state"`
	Color     string    `json:"color"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusFile publishes the indicator state as a JSON file. Writes are
// atomic (temp file + rename) so readers never see a partial snapshot.
type StatusFile struct {
	path   string
	state  State
	detail string
}

// NewStatusFile returns an indicator writing to the given path.
func NewStatusFile(path string) *StatusFile {
	return &StatusFile{path: path}
}

func (s *StatusFile) SetState(state State) {
	s.state = state
	s.write()
}

func (s *StatusFile) SetDetail(detail string) {
	s.detail = detail
	s.write()
}

// Remove deletes the status file, for shutdown cleanup.
func (s *StatusFile) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *StatusFile) write() {
	// Rendering is best effort: a failed write must not disturb the engine.
	_ = s.writeSnapshot(&Snapshot{
		State:     s.state.String(),
		Color:     s.state.Color(),
		Detail:    s.detail,
		Timestamp: time.Now(),
	})
}

func (s *StatusFile) writeSnapshot(snap *Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "status-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	tmp = nil

	return os.Rename(tmpPath, s.path)
}

// ReadSnapshot loads the current status file contents, for the status
// command and for tests.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
