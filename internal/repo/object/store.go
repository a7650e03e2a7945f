// Package object is the content-addressed blob store. Blobs live as loose
// files named by their hex digest directly inside the repository directory.
package object

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/util"
)

var ErrObjectNotFound = errors.New("object not found")

// Status indicates the state of an object on disk.
type Status int

const (
	OK Status = iota
	Missing
	Damaged
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Missing:
		return "Missing"
	default:
		return "Damaged"
	}
}

// Check is one verification result.
type Check struct {
	ID     string
	Status Status
	Err    error
}

// Store handles blob storage. Reads and writes go through blobs, which is
// the raw FS or a CompressedFS over it.
type Store struct {
	raw   fs.FS
	blobs fs.FS
	dir   string
	code  uint64
	idLen int
}

// NewStore opens the blob store rooted at dir using multihash code.
func NewStore(fsys fs.FS, dir string, code uint64, compress bool) (*Store, error) {
	n, err := DigestLen(code)
	if err != nil {
		return nil, fmt.Errorf("failed to check hash function: %w", err)
	}
	s := &Store{raw: fsys, blobs: fsys, dir: dir, code: code, idLen: n}
	if compress {
		s.blobs = fs.NewCompressedFS(fsys)
	}
	return s, nil
}

// Code returns the multihash code used for IDs.
func (s *Store) Code() uint64 { return s.code }

// ValidID reports whether id has the shape of an ID from this store's hash function.
func (s *Store) ValidID(id string) bool { return IsID(id, s.idLen) }

// Path returns the file holding id.
func (s *Store) Path(id string) string { return filepath.Join(s.dir, id) }

// Digest returns the blob ID data would be stored under.
func (s *Store) Digest(data []byte) (string, error) {
	return Digest(s.code, KindBlob, data)
}

// Put stores data and returns its ID. Existing objects are not rewritten.
func (s *Store) Put(data []byte) (string, error) {
	id, err := s.Digest(data)
	if err != nil {
		return "", err
	}
	if s.Has(id) {
		return id, nil
	}
	if err := util.WriteFileAtomic(s.blobs, s.Path(id), data); err != nil {
		return "", fmt.Errorf("failed to write object %s: %w", id, err)
	}
	return id, nil
}

// Get returns the bytes stored under id.
func (s *Store) Get(id string) ([]byte, error) {
	if !IsID(id, s.idLen) {
		return nil, fmt.Errorf("%w: %q", ErrObjectNotFound, id)
	}
	data, err := s.blobs.ReadFile(s.Path(id))
	if err != nil {
		if s.raw.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
		}
		return nil, fmt.Errorf("failed to read object %s: %w", id, err)
	}
	return data, nil
}

// Has reports whether id is stored.
func (s *Store) Has(id string) bool {
	return IsID(id, s.idLen) && s.raw.Exists(s.Path(id))
}

// List returns all stored blob IDs, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := s.raw.ReadDir(s.dir)
	if err != nil {
		if s.raw.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if !e.IsDir() && IsID(e.Name(), s.idLen) {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// VerifyObject re-hashes one object.
func (s *Store) VerifyObject(id string) (Status, error) {
	if !s.Has(id) {
		return Missing, nil
	}
	data, err := s.blobs.ReadFile(s.Path(id))
	if err != nil {
		return Damaged, err
	}
	actual, err := s.Digest(data)
	if err != nil {
		return Damaged, err
	}
	if actual != id {
		return Damaged, fmt.Errorf("content hashes to %s", actual)
	}
	return OK, nil
}

// Verify checks a set of object IDs concurrently and streams the results.
func (s *Store) Verify(ids []string, workers int) <-chan Check {
	out := make(chan Check, 128)
	go func() {
		defer close(out)
		if workers <= 0 {
			workers = util.WorkerCount()
		}
		tasks := make(chan string, len(ids))
		for _, id := range ids {
			tasks <- id
		}
		close(tasks)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for id := range tasks {
					status, err := s.VerifyObject(id)
					out <- Check{ID: id, Status: status, Err: err}
				}
			}()
		}
		wg.Wait()
	}()
	return out
}
