package save

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata"
	"gopkg.in/yaml.v3"
)

const checkpointKey = "checkpoint"

// ErrNoCheckpoint is returned by Load when nothing has been saved.
var ErrNoCheckpoint = errors.New("no checkpoint saved")

// Checkpoint is the last checkpoint the player touched.
type Checkpoint struct {
	MapPath string  `yaml:"map_path"`
	X       float64 `yaml:"position_x"`
	Y       float64 `yaml:"position_y"`
}

// Backend stores raw items by key. gdata.Manager satisfies it.
type Backend interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store reads and writes the checkpoint as YAML.
type Store struct {
	backend Backend
	logger  *log.Logger
}

// NewStore wraps backend.
func NewStore(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{backend: backend, logger: logger.WithPrefix("save")}
}

// Open creates a Store in the per-user data directory for appName.
func Open(appName string, logger *log.Logger) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("save: open %s: %w", appName, err)
	}
	return NewStore(m, logger), nil
}

// Load returns the saved checkpoint, or ErrNoCheckpoint.
func (s *Store) Load() (Checkpoint, error) {
	if s == nil || s.backend == nil {
		return Checkpoint{}, ErrNoCheckpoint
	}
	data, err := s.backend.LoadItem(checkpointKey)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("save: load: %w", err)
	}
	if len(data) == 0 {
		return Checkpoint{}, ErrNoCheckpoint
	}
	var cp Checkpoint
	if err := yaml.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, fmt.Errorf("save: decode: %w", err)
	}
	if cp.MapPath == "" {
		return Checkpoint{}, ErrNoCheckpoint
	}
	return cp, nil
}

// Save overwrites the stored checkpoint.
func (s *Store) Save(cp Checkpoint) error {
	if s == nil || s.backend == nil {
		return nil
	}
	data, err := yaml.Marshal(cp)
	if err != nil {
		return fmt.Errorf("save: encode: %w", err)
	}
	if err := s.backend.SaveItem(checkpointKey, data); err != nil {
		return fmt.Errorf("save: write: %w", err)
	}
	s.logger.Info("checkpoint saved", "map", cp.MapPath, "x", cp.X, "y", cp.Y)
	return nil
}

// Clear forgets the stored checkpoint.
func (s *Store) Clear() error {
	if s == nil || s.backend == nil {
		return nil
	}
	if err := s.backend.SaveItem(checkpointKey, nil); err != nil {
		return fmt.Errorf("save: clear: %w", err)
	}
	return nil
}
