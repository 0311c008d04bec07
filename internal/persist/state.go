package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/notestore"
)

// Rehydrate loads the persisted snapshot into the store. A missing slot
// is not an error (first run). A corrupt payload leaves the store at its
// defaults and reports the error; callers log it and continue, since
// rehydration failure must never be fatal to startup.
func Rehydrate(p Provider, st *notestore.Store) error {
	data, err := p.Load()
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("persist: decode snapshot: %w", err)
	}
	st.Restore(snap)
	return nil
}

// SaveState serializes the store snapshot into the slot.
func SaveState(p Provider, st *notestore.Store) error {
	data, err := json.Marshal(st.Snapshot())
	if err != nil {
		return fmt.Errorf("persist: encode snapshot: %w", err)
	}
	return p.Save(data)
}
