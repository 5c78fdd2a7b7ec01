package kvstore

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// Snapshot is a full JSON export of the physical store: the profile document
// and every scoped or legacy entry.
type Snapshot struct {
	ExportedAt string            `json:"exportedAt"`
	Entries    map[string]string `json:"entries"`
}

// Export writes every entry of a backend as a snapshot.
func Export(w io.Writer, b Backend) error {
	keys, err := b.Keys()
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	sort.Strings(keys)

	snap := Snapshot{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    make(map[string]string, len(keys)),
	}
	for _, k := range keys {
		v, err := b.Get(k)
		if err != nil {
			return fmt.Errorf("read %q: %w", k, err)
		}
		snap.Entries[k] = v
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Import merges a snapshot into a backend. With clear set, every existing
// entry is removed first.
func Import(b Backend, r io.Reader, clear bool) (int, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return 0, fmt.Errorf("decode snapshot: %w", err)
	}

	if clear {
		keys, err := b.Keys()
		if err != nil {
			return 0, fmt.Errorf("list keys: %w", err)
		}
		for _, k := range keys {
			if err := b.Remove(k); err != nil {
				return 0, fmt.Errorf("remove %q: %w", k, err)
			}
		}
	}

	keys := make([]string, 0, len(snap.Entries))
	for k := range snap.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := b.Set(k, snap.Entries[k]); err != nil {
			return 0, fmt.Errorf("write %q: %w", k, err)
		}
	}
	return len(snap.Entries), nil
}
