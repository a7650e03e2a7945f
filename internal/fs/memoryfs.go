package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

var errNotEmpty = errors.New("directory not empty")

// MemoryFS is a pure in-memory filesystem for tests.
type MemoryFS struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]struct{}
	seq   int
}

func NewMemoryFS() *MemoryFS {
	f := &MemoryFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
	f.dirs["/"] = struct{}{}
	f.dirs["."] = struct{}{}
	return f
}

// clean normalizes p to a slash path.
func clean(p string) string {
	if p == "" {
		return "."
	}
	return path.Clean(filepath.ToSlash(p))
}

func notExist(op, p string) error {
	return &iofs.PathError{Op: op, Path: p, Err: iofs.ErrNotExist}
}

// children returns the direct child names of dir.
func (f *MemoryFS) children(dir string) []string {
	seen := map[string]struct{}{}
	collect := func(p string) {
		if p == dir || path.Dir(p) != dir {
			return
		}
		seen[path.Base(p)] = struct{}{}
	}
	for p := range f.files {
		collect(p)
	}
	for p := range f.dirs {
		collect(p)
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (f *MemoryFS) Open(p string) (io.ReadSeekCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p = clean(p)
	data, ok := f.files[p]
	if !ok {
		return nil, notExist("open", p)
	}
	return &memReadSeekCloser{Reader: bytes.NewReader(data)}, nil
}

type memReadSeekCloser struct {
	*bytes.Reader
}

func (m *memReadSeekCloser) Close() error { return nil }

func (f *MemoryFS) ReadFile(p string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p = clean(p)
	data, ok := f.files[p]
	if !ok {
		return nil, notExist("read", p)
	}
	return append([]byte(nil), data...), nil
}

func (f *MemoryFS) WriteFile(p string, data []byte, perm os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeLocked(clean(p), data)
}

func (f *MemoryFS) writeLocked(p string, data []byte) error {
	if _, ok := f.dirs[p]; ok {
		return fmt.Errorf("write %q: is a directory", p)
	}
	if _, ok := f.dirs[path.Dir(p)]; !ok {
		return notExist("write", path.Dir(p))
	}
	f.files[p] = append([]byte(nil), data...)
	return nil
}

func (f *MemoryFS) MkdirAll(p string, perm os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p = clean(p)
	for {
		if _, ok := f.files[p]; ok {
			return fmt.Errorf("mkdir %q: not a directory", p)
		}
		f.dirs[p] = struct{}{}
		parent := path.Dir(p)
		if parent == p {
			return nil
		}
		p = parent
	}
}

// Remove deletes a file or an empty directory.
func (f *MemoryFS) Remove(p string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p = clean(p)
	if _, ok := f.files[p]; ok {
		delete(f.files, p)
		return nil
	}
	if _, ok := f.dirs[p]; ok {
		if len(f.children(p)) > 0 {
			return &iofs.PathError{Op: "remove", Path: p, Err: errNotEmpty}
		}
		delete(f.dirs, p)
		return nil
	}
	return notExist("remove", p)
}

// Rename moves a file, or a directory with everything below it.
func (f *MemoryFS) Rename(oldPath, newPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	oldPath, newPath = clean(oldPath), clean(newPath)

	if data, ok := f.files[oldPath]; ok {
		if err := f.writeLocked(newPath, data); err != nil {
			return err
		}
		delete(f.files, oldPath)
		return nil
	}
	if _, ok := f.dirs[oldPath]; !ok {
		return notExist("rename", oldPath)
	}

	prefix := oldPath + "/"
	move := func(p string) string { return newPath + "/" + strings.TrimPrefix(p, prefix) }
	for p, data := range f.files {
		if strings.HasPrefix(p, prefix) {
			f.files[move(p)] = data
			delete(f.files, p)
		}
	}
	for p := range f.dirs {
		if strings.HasPrefix(p, prefix) {
			f.dirs[move(p)] = struct{}{}
			delete(f.dirs, p)
		}
	}
	delete(f.dirs, oldPath)
	f.dirs[newPath] = struct{}{}
	return nil
}

func (f *MemoryFS) Stat(p string) (os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statLocked(clean(p))
}

func (f *MemoryFS) statLocked(p string) (os.FileInfo, error) {
	if data, ok := f.files[p]; ok {
		return &memFileInfo{name: path.Base(p), size: int64(len(data)), mode: 0o644}, nil
	}
	if _, ok := f.dirs[p]; ok {
		return &memFileInfo{name: path.Base(p), mode: iofs.ModeDir | 0o755, dir: true}, nil
	}
	return nil, notExist("stat", p)
}

// ReadDir lists direct children sorted by name, like os.ReadDir.
func (f *MemoryFS) ReadDir(p string) ([]os.DirEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p = clean(p)
	if _, ok := f.dirs[p]; !ok {
		return nil, notExist("readdir", p)
	}
	var entries []os.DirEntry
	for _, name := range f.children(p) {
		info, err := f.statLocked(path.Join(p, name))
		if err != nil {
			return nil, err
		}
		entries = append(entries, iofs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (f *MemoryFS) CreateTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dir = clean(dir)
	if _, ok := f.dirs[dir]; !ok {
		return nil, "", notExist("createtemp", dir)
	}
	f.seq++
	name := path.Join(dir, fmt.Sprintf("%s%d", strings.ReplaceAll(pattern, "*", ""), f.seq))
	f.files[name] = nil
	return &memTempFile{fs: f, name: name}, name, nil
}

type memTempFile struct {
	fs   *MemoryFS
	name string
	buf  bytes.Buffer
}

func (t *memTempFile) Write(p []byte) (int, error) { return t.buf.Write(p) }

func (t *memTempFile) Close() error {
	t.fs.mu.Lock()
	defer t.fs.mu.Unlock()
	t.fs.files[t.name] = append([]byte(nil), t.buf.Bytes()...)
	return nil
}

func (f *MemoryFS) IsNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist)
}

func (f *MemoryFS) Exists(p string) bool {
	_, err := f.Stat(p)
	return err == nil
}

func (f *MemoryFS) IsDir(p string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.dirs[clean(p)]
	return ok
}

type memFileInfo struct {
	name string
	size int64
	mode os.FileMode
	dir  bool
}

func (i *memFileInfo) Name() string       { return i.name }
func (i *memFileInfo) Size() int64        { return i.size }
func (i *memFileInfo) Mode() os.FileMode  { return i.mode }
func (i *memFileInfo) ModTime() time.Time { return time.Time{} }
func (i *memFileInfo) IsDir() bool        { return i.dir }
func (i *memFileInfo) Sys() any           { return nil }
