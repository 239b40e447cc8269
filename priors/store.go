// Package priors persists an empirical per-position move distribution
// (an opening book learned from prior search runs) in a BadgerDB store, for
// use as the kernel's empiricalDistrib input.
package priors

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Entry is one position's recorded outcome: a move distribution plus how
// many samples it was built from, so callers can decide how much to trust
// it (few samples should carry a low empiricalWeight).
type Entry struct {
	Distribution []float64 `json:"distribution"`
	Samples      int64     `json:"samples"`
}

// Store wraps a BadgerDB instance keyed by position hash.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) a BadgerDB store at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("priors: opening store at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(positionHash uint64) []byte {
	return []byte(fmt.Sprintf("pos:%016x", positionHash))
}

// Lookup returns the recorded entry for a position hash, and false if none
// exists yet.
func (s *Store) Lookup(positionHash uint64) (Entry, bool, error) {
	var entry Entry
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(positionHash))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return Entry{}, false, fmt.Errorf("priors: looking up position: %w", err)
	}
	return entry, found, nil
}

// Record merges a fresh move-count observation into whatever entry already
// exists for the position, averaging the two distributions weighted by
// sample count rather than overwriting.
func (s *Store) Record(positionHash uint64, distribution []float64, samples int64) error {
	existing, found, err := s.Lookup(positionHash)
	if err != nil {
		return err
	}

	merged := Entry{Distribution: distribution, Samples: samples}
	if found && len(existing.Distribution) == len(distribution) {
		total := existing.Samples + samples
		if total > 0 {
			blended := make([]float64, len(distribution))
			for i := range distribution {
				blended[i] = (existing.Distribution[i]*float64(existing.Samples) + distribution[i]*float64(samples)) / float64(total)
			}
			merged = Entry{Distribution: blended, Samples: total}
		}
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("priors: encoding entry: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(positionHash), data)
	})
}

// EmpiricalWeight derives an empiricalWeight suitable for
// kernel.ComputeTopChildScores from a sample count: it ramps linearly from 0
// to maxWeight as samples grow to confidenceSamples and stays at maxWeight
// beyond that, so a freshly-seen
// position doesn't override the policy network's prior on a single
// observation.
func EmpiricalWeight(samples int64, confidenceSamples int64, maxWeight float64) float64 {
	if confidenceSamples <= 0 || samples <= 0 {
		return 0
	}
	frac := float64(samples) / float64(confidenceSamples)
	if frac > 1 {
		frac = 1
	}
	return frac * maxWeight
}
