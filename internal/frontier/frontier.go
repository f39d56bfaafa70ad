// Package frontier implements the durable, crash-safe URL frontier: the
// single source of truth for which URLs have been discovered and which
// have been fetched.
//
// Responsibilities:
//   - Frontier: LIFO in-memory queue backed by a bbolt key-value file;
//     Add/Next/MarkComplete/Close per the engine's admission contract
package frontier

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/rohmanhakim/docs-crawler/internal/normalize"
	"github.com/rohmanhakim/docs-crawler/internal/policy"
	"github.com/rohmanhakim/docs-crawler/pkg/fileutil"
	"github.com/rohmanhakim/docs-crawler/pkg/hashutil"
	bolt "go.etcd.io/bbolt"
)

var recordsBucket = []byte("records")

// Frontier is the durable, crash-safe store of every URL the crawl has
// ever admitted. All mutations take a single lock; the queue itself is a
// plain LIFO stack, a deliberate depth-first bias carried over from the
// reference implementation.
type Frontier struct {
	mu       sync.Mutex
	db       *bolt.DB
	stack    []string // canonical URLs, push/pop from the tail
	seen     Set[string]
	hashAlgo hashutil.HashAlgo
}

// Open opens (or creates) the frontier database at path. If restart is
// true, any existing database is discarded and the frontier is reseeded
// from seedURLs. Otherwise every record with completed=false that still
// passes the acceptance policy is re-enqueued; if the store turns out to
// be empty, seedURLs are added instead.
func Open(path string, restart bool, hashAlgo hashutil.HashAlgo, seedURLs []string) (*Frontier, error) {
	if restart {
		_ = removeFile(path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fileutil.EnsureDir(dir); err != nil {
			return nil, &StoreError{Message: "failed to create frontier directory", Cause: err}
		}
	}

	db, err := bolt.Open(path, 0644, nil)
	if err != nil {
		return nil, &StoreError{Message: "failed to open frontier database", Cause: err}
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(recordsBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, &StoreError{Message: "failed to initialize frontier bucket", Cause: err}
	}

	f := &Frontier{
		db:       db,
		seen:     NewSet[string](),
		hashAlgo: hashAlgo,
	}

	empty, err := f.resumeFromStore()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if empty {
		for _, raw := range seedURLs {
			if err := f.Add(raw, nil); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
	}

	return f, nil
}

// resumeFromStore replays every incomplete, still-accepted record into the
// in-memory stack and reports whether the store held no records at all.
func (f *Frontier) resumeFromStore() (empty bool, err error) {
	empty = true

	err = f.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(recordsBucket)
		return b.ForEach(func(key, value []byte) error {
			empty = false

			var rec Record
			if unmarshalErr := json.Unmarshal(value, &rec); unmarshalErr != nil {
				return nil
			}

			f.seen.Add(string(key))
			if rec.Completed {
				return nil
			}

			parsed, parseErr := url.Parse(rec.URL)
			if parseErr != nil {
				return nil
			}
			if accepted, _ := policy.Accept(*parsed); !accepted {
				return nil
			}

			f.stack = append(f.stack, rec.URL)
			return nil
		})
	})

	return empty, err
}

// Add normalizes raw (resolved against base when provided), and if its
// identifier has never been seen, persists a new incomplete record and
// pushes the canonical URL onto the in-memory queue. Add is idempotent:
// re-adding an already-known URL is a no-op.
func (f *Frontier) Add(raw string, base *url.URL) error {
	canonical, err := normalize.Normalize(raw, base)
	if err != nil {
		return err
	}

	id, err := normalize.Identifier(canonical, f.hashAlgo)
	if err != nil {
		return &StoreError{Message: "failed to derive url identifier", Cause: err}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.Contains(id) {
		return nil
	}

	rec := Record{URL: canonical.String(), Completed: false}
	if err := f.put(id, rec); err != nil {
		return err
	}

	f.seen.Add(id)
	f.stack = append(f.stack, rec.URL)
	return nil
}

// Next atomically pops one URL from the in-memory queue. ok is false when
// the queue is empty; callers treat that as a signal to check whether the
// crawl is done.
func (f *Frontier) Next() (next string, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.stack) == 0 {
		return "", false
	}

	last := len(f.stack) - 1
	next = f.stack[last]
	f.stack = f.stack[:last]
	return next, true
}

// MarkComplete flags canonicalURL as fetched and persists the change. It
// logs nothing itself; a URL that was never added is reported to the
// caller as an error so the engine can log it with context.
func (f *Frontier) MarkComplete(canonicalURL string) error {
	parsed, err := url.Parse(canonicalURL)
	if err != nil {
		return &StoreError{Message: "failed to parse url for completion", Cause: err}
	}
	id, err := normalize.Identifier(*parsed, f.hashAlgo)
	if err != nil {
		return &StoreError{Message: "failed to derive url identifier", Cause: err}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.seen.Contains(id) {
		return &StoreError{Message: fmt.Sprintf("url never added to frontier: %s", canonicalURL)}
	}

	return f.put(id, Record{URL: canonicalURL, Completed: true})
}

// put writes rec under id and forces an fsync before returning, so every
// frontier write is immediately durable.
func (f *Frontier) put(id string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return &StoreError{Message: "failed to marshal frontier record", Cause: err}
	}

	err = f.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).Put([]byte(id), data)
	})
	if err != nil {
		return &StoreError{Message: "failed to persist frontier record", Cause: err, Retryable: true}
	}
	return nil
}

// Close flushes and releases the underlying database file.
func (f *Frontier) Close() error {
	return f.db.Close()
}
