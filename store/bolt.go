package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"
)

// Collection names one of the ledger's record collections. Each collection is
// its own bolt file, so writers to different collections never block each other.
type Collection string

const (
	Subscriptions Collection = "subscriptions"
	Payments      Collection = "payments"
	Questions     Collection = "questions"
)

var collections = []Collection{Subscriptions, Payments, Questions}

var bucketRecords = []byte("records")

var ErrUnknownCollection = errors.New("unknown collection")

// StorageError wraps a storage-medium failure. It is fatal to the operation
// that hit it and is never swallowed.
type StorageError struct {
	Op         string
	Collection Collection
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store owns the at-rest representation of all record collections. Records are
// kept as JSON values under big-endian sequence keys, so bolt's key order is
// insertion order and a read transaction sees a point-in-time snapshot.
type Store struct {
	dbs map[Collection]*bolt.DB
}

// Open opens (creating if needed) one bolt file per collection under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{dbs: make(map[Collection]*bolt.DB, len(collections))}
	for _, c := range collections {
		db, err := bolt.Open(filepath.Join(dir, string(c)+".db"), 0600, &bolt.Options{Timeout: 1 * time.Second})
		if err != nil {
			_ = s.Close()
			return nil, &StorageError{Op: "open", Collection: c, Err: err}
		}
		err = db.Update(func(tx *bolt.Tx) error {
			_, e := tx.CreateBucketIfNotExists(bucketRecords)
			return e
		})
		if err != nil {
			_ = db.Close()
			_ = s.Close()
			return nil, &StorageError{Op: "open", Collection: c, Err: err}
		}
		s.dbs[c] = db
	}
	return s, nil
}

func (s *Store) Close() error {
	var first error
	for _, db := range s.dbs {
		if err := db.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (s *Store) db(c Collection) (*bolt.DB, error) {
	db, ok := s.dbs[c]
	if !ok {
		return nil, &StorageError{Op: "lookup", Collection: c, Err: ErrUnknownCollection}
	}
	return db, nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// List returns all records of the collection in insertion order.
func List[T any](s *Store, c Collection) ([]T, error) {
	db, err := s.db(c)
	if err != nil {
		return nil, err
	}
	var out []T
	err = db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRecords).ForEach(func(_, v []byte) error {
			var rec T
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			out = append(out, rec)
			return nil
		})
	})
	if err != nil {
		return nil, &StorageError{Op: "list", Collection: c, Err: err}
	}
	return out, nil
}

// Append commits rec to the end of the collection.
func Append[T any](s *Store, c Collection, rec T) error {
	db, err := s.db(c)
	if err != nil {
		return err
	}
	buf, err := json.Marshal(rec)
	if err != nil {
		return &StorageError{Op: "append", Collection: c, Err: err}
	}
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(seq), buf)
	})
	if err != nil {
		return &StorageError{Op: "append", Collection: c, Err: err}
	}
	return nil
}

// UpdateMatching applies mut to every record matching pred, inside one write
// transaction, and reports how many records were mutated.
func UpdateMatching[T any](s *Store, c Collection, pred func(T) bool, mut func(*T)) (int, error) {
	return update(s, c, pred, mut, 0)
}

// UpdateFirst applies mut to the oldest record matching pred, or to none.
func UpdateFirst[T any](s *Store, c Collection, pred func(T) bool, mut func(*T)) (bool, error) {
	n, err := update(s, c, pred, mut, 1)
	return n > 0, err
}

func update[T any](s *Store, c Collection, pred func(T) bool, mut func(*T), limit int) (int, error) {
	db, err := s.db(c)
	if err != nil {
		return 0, err
	}
	count := 0
	err = db.Update(func(tx *bolt.Tx) error {
		count = 0
		b := tx.Bucket(bucketRecords)

		type change struct{ k, v []byte }
		var changes []change

		cur := b.Cursor()
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			if limit > 0 && count >= limit {
				break
			}
			var rec T
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			if !pred(rec) {
				continue
			}
			mut(&rec)
			nv, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			// keys returned by the cursor are only valid for the life of
			// the iteration step, so copy before deferring the Put
			kk := make([]byte, len(k))
			copy(kk, k)
			changes = append(changes, change{k: kk, v: nv})
			count++
		}
		for _, ch := range changes {
			if err := b.Put(ch.k, ch.v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, &StorageError{Op: "update", Collection: c, Err: err}
	}
	return count, nil
}
