// Package jsonfile implements record stores that keep a whole collection in
// memory and persist it as one indented JSON document per record type.
//
// A store is owned by a single caller: there is no locking and no detection
// of external modification of the backing file.
package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// Record is a value with an integer identity. Zero means "not yet assigned".
type Record[T any] interface {
	RecordID() int64
	WithRecordID(id int64) T
	// Clone returns a copy sharing no mutable state with the receiver.
	Clone() T
}

// Store is a file-backed collection of records.
type Store[T Record[T]] struct {
	name     string
	path     string
	notFound error
	prepare  func(T) T
	records  []T
}

// Option configures a Store.
type Option[T Record[T]] func(*Store[T])

// WithNotFound sets the error returned by FindByID when no record matches.
func WithNotFound[T Record[T]](err error) Option[T] {
	return func(s *Store[T]) { s.notFound = err }
}

// WithPrepare registers a transformation applied to every record passed to
// Upsert before it is stored.
func WithPrepare[T Record[T]](fn func(T) T) Option[T] {
	return func(s *Store[T]) { s.prepare = fn }
}

// ErrNotFound is the default FindByID error.
var ErrNotFound = errors.New("record not found")

// New creates an empty store named name backed by the file at path. Call
// Load to read existing data.
func New[T Record[T]](name, path string, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		name:     name,
		path:     path,
		notFound: ErrNotFound,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store[T]) Path() string { return s.path }

// Load replaces the in-memory collection with the file contents. A missing
// file yields an empty collection; an unreadable or malformed file is an
// error and leaves the collection untouched.
func (s *Store[T]) Load(ctx context.Context) error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.records = nil
		zctx.From(ctx).Debug("Store file missing, starting empty",
			zap.String("store", s.name),
			zap.String("path", s.path),
		)
		return nil
	}
	if err != nil {
		return &Error{Store: s.name, Op: "load", Err: err}
	}

	records, err := decode[T](data)
	if err != nil {
		return &Error{Store: s.name, Op: "load", Err: errors.Wrapf(err, "parse %s", s.path)}
	}
	s.records = records

	zctx.From(ctx).Debug("Store loaded",
		zap.String("store", s.name),
		zap.String("path", s.path),
		zap.Int("records", len(records)),
	)
	return nil
}

// Save writes the whole collection to the backing file, creating its
// directory when needed. The file is replaced atomically.
func (s *Store[T]) Save(ctx context.Context) error {
	data, err := encode(s.records)
	if err != nil {
		return &Error{Store: s.name, Op: "save", Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &Error{Store: s.name, Op: "save", Err: errors.Wrap(err, "create data directory")}
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return &Error{Store: s.name, Op: "save", Err: err}
	}

	zctx.From(ctx).Debug("Store saved",
		zap.String("store", s.name),
		zap.String("path", s.path),
		zap.Int("records", len(s.records)),
	)
	return nil
}

// FindAll returns a copy of every record in storage order.
func (s *Store[T]) FindAll() []T {
	out := make([]T, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// FindByID returns a copy of the record with the given id.
func (s *Store[T]) FindByID(id int64) (T, error) {
	if i := s.indexOf(id); i >= 0 {
		return s.records[i].Clone(), nil
	}
	var zero T
	return zero, errors.Wrapf(s.notFound, "%s %d", s.name, id)
}

// Upsert stores rec and persists the collection. A record without an id is
// appended with max(existing ids)+1; a record with an id replaces the record
// holding that id, or is appended when there is none. The stored record is
// returned. When persisting fails the in-memory collection is rolled back.
func (s *Store[T]) Upsert(ctx context.Context, rec T) (T, error) {
	if s.prepare != nil {
		rec = s.prepare(rec)
	}
	rec = rec.Clone()

	prev := slices.Clone(s.records)
	switch i := s.indexOf(rec.RecordID()); {
	case rec.RecordID() == 0:
		rec = rec.WithRecordID(s.nextID())
		s.records = append(s.records, rec)
	case i >= 0:
		s.records[i] = rec
	default:
		s.records = append(s.records, rec)
	}

	if err := s.Save(ctx); err != nil {
		s.records = prev
		var zero T
		return zero, err
	}
	return rec.Clone(), nil
}

// Delete removes every record with the given id and persists the collection.
// Deleting an unknown id is not an error.
func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	prev := slices.Clone(s.records)
	s.records = slices.DeleteFunc(s.records, func(r T) bool {
		return r.RecordID() == id
	})

	if err := s.Save(ctx); err != nil {
		s.records = prev
		return err
	}
	return nil
}

func (s *Store[T]) indexOf(id int64) int {
	if id == 0 {
		return -1
	}
	return slices.IndexFunc(s.records, func(r T) bool {
		return r.RecordID() == id
	})
}

func (s *Store[T]) nextID() int64 {
	var maxID int64
	for _, r := range s.records {
		maxID = max(maxID, r.RecordID())
	}
	return maxID + 1
}
