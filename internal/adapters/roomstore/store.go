package roomstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
)

// Store persists the set of joined rooms as a small JSON document, so rooms
// joined at runtime survive a restart.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

type directory struct {
	Rooms []string `json:"rooms"`
}

// Load reads the persisted room addresses. A store file that does not exist
// yet yields an empty list.
func (s *Store) Load() ([]string, error) {
	buf, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading room store %w", err)
	}

	var dir directory
	if err := json.Unmarshal(buf, &dir); err != nil {
		return nil, fmt.Errorf("error decoding room store %w", err)
	}

	return dir.Rooms, nil
}

// Save writes the room addresses, replacing the previous set. The write goes
// through a temp file and rename so a crash never leaves a torn store.
func (s *Store) Save(rooms []string) error {
	buf, err := json.MarshalIndent(directory{Rooms: rooms}, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding room store %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o600); err != nil {
		return fmt.Errorf("error writing room store %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("error replacing room store %w", err)
	}

	log.Debug().Int("rooms", len(rooms)).Str("path", s.path).Msg("persisted room list")

	return nil
}
