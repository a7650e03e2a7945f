package fs

import (
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// Hooks used for testing (overridable)
var (
	open       = openMapped
	readFile   = os.ReadFile
	writeFile  = os.WriteFile
	stat       = os.Stat
	readDir    = os.ReadDir
	remove     = os.Remove
	rename     = os.Rename
	createTemp = os.CreateTemp
	mkdirAll   = os.MkdirAll
	isNotExist = os.IsNotExist
)

// mappedFile exposes a read-only memory map as a seekable stream.
type mappedFile struct {
	*io.SectionReader
	r *mmap.ReaderAt
}

func (m *mappedFile) Close() error { return m.r.Close() }

func openMapped(path string) (io.ReadSeekCloser, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &mappedFile{SectionReader: io.NewSectionReader(r, 0, int64(r.Len())), r: r}, nil
}

// getters and setters for test override
func GetOpen() func(string) (io.ReadSeekCloser, error)  { return open }
func SetOpen(f func(string) (io.ReadSeekCloser, error)) { open = f }
func GetReadFile() func(string) ([]byte, error)         { return readFile }
func SetReadFile(f func(string) ([]byte, error))        { readFile = f }
func GetStat() func(string) (os.FileInfo, error)        { return stat }
func SetStat(f func(string) (os.FileInfo, error))       { stat = f }
