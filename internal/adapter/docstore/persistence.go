package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const fileName = "users.json"

// document is the on-disk shape of a record.
type document struct {
	ID         uuid.UUID `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Age        int       `json:"age"`
	Occupation string    `json:"occupation"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Persistence writes collection snapshots to a JSON file in DataDir.
type Persistence struct {
	DataDir string

	mu       sync.Mutex
	lastSeq  uint64
	hasSaved bool
}

// NewPersistence creates the data directory if needed.
func NewPersistence(dir string) (*Persistence, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("docstore: create data dir: %w", err)
	}
	return &Persistence{DataDir: dir}, nil
}

func (p *Persistence) path() string {
	return filepath.Join(p.DataDir, fileName)
}

// Save atomically replaces the data file with docs. Snapshots are taken
// under the store lock but written concurrently, so seq orders them and an
// older snapshot never overwrites a newer one.
func (p *Persistence) Save(seq uint64, docs []document) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.hasSaved && seq <= p.lastSeq {
		return nil
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("docstore: encode snapshot: %w", err)
	}

	tmp := p.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("docstore: write snapshot: %w", err)
	}
	if err := os.Rename(tmp, p.path()); err != nil {
		return fmt.Errorf("docstore: replace snapshot: %w", err)
	}

	p.lastSeq = seq
	p.hasSaved = true
	return nil
}

// Load reads the last snapshot. A missing file yields an empty collection.
func (p *Persistence) Load() ([]document, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(p.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("docstore: read snapshot: %w", err)
	}

	var docs []document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("docstore: decode snapshot: %w", err)
	}
	return docs, nil
}
