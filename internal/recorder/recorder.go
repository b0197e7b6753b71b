package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Recorder saves raw allgamedata documents as records/<session>/<n>.json so a
// game can be replayed later with the file source.
type Recorder struct {
	mu   sync.Mutex
	dir  string
	next int
}

// New opens a fresh numbered session directory under root.
func New(root string) (*Recorder, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create records dir: %w", err)
	}
	last, err := highestNumber(root, true)
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(root, strconv.Itoa(last+1)))
}

// Open appends to an existing (or new) session directory.
func Open(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	last, err := highestNumber(dir, false)
	if err != nil {
		return nil, err
	}
	return &Recorder{dir: dir, next: last + 1}, nil
}

func (r *Recorder) Dir() string { return r.dir }

func (r *Recorder) Save(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := filepath.Join(r.dir, strconv.Itoa(r.next)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	r.next++
	return nil
}

// highestNumber finds the largest numeric entry name in dir, comparing
// numerically so 10 sorts after 9.
func highestNumber(dir string, dirs bool) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", dir, err)
	}
	highest := 0
	for _, e := range entries {
		if e.IsDir() != dirs {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		highest = max(highest, n)
	}
	return highest, nil
}
