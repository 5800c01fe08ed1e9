package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"macadam/internal/assetid"
	"macadam/internal/fileutil"
)

// Entry records the outcome of the previous sync for one asset name. An
// entry is always replaced as a whole; no field is ever updated in
// isolation.
type Entry struct {
	Hash     string     `toml:"hash"`
	Packable bool       `toml:"packable"`
	ID       assetid.ID `toml:"id"`
}

// Manifest is the persisted record of the previous sync pass, keyed by
// asset name.
type Manifest struct {
	Inputs map[string]Entry `toml:"inputs"`
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{Inputs: make(map[string]Entry)}
}

// Load reads the manifest at path. A missing file yields an empty manifest:
// every input will be classified as changed on the first sync.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	m := New()
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Inputs == nil {
		m.Inputs = make(map[string]Entry)
	}
	return m, nil
}

// Save writes the manifest to path atomically. Readers never observe a
// partially written manifest.
func (m *Manifest) Save(path string) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := fileutil.AtomicWrite(path, data, 0o644); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}
	return nil
}

// Lookup returns the entry recorded for name, if any.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	entry, ok := m.Inputs[name]
	return entry, ok
}

// Set replaces the entry for name as a whole.
func (m *Manifest) Set(name string, entry Entry) {
	m.Inputs[name] = entry
}

// Len reports the number of recorded entries.
func (m *Manifest) Len() int { return len(m.Inputs) }
