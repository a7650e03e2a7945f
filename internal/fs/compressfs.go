package fs

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// CompressedFS wraps another FS and gzips file contents on write.
// Directory operations pass through unchanged.
type CompressedFS struct {
	underlying FS
}

func NewCompressedFS(base FS) *CompressedFS {
	return &CompressedFS{underlying: base}
}

func (c *CompressedFS) Open(path string) (io.ReadSeekCloser, error) {
	data, err := c.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &memReadSeekCloser{Reader: bytes.NewReader(data)}, nil
}

func (c *CompressedFS) ReadFile(path string) ([]byte, error) {
	rc, err := c.underlying.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	gz, err := gzip.NewReader(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream %q: %w", path, err)
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %q: %w", path, err)
	}
	return data, nil
}

func (c *CompressedFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return c.underlying.WriteFile(path, buf.Bytes(), perm)
}

func (c *CompressedFS) CreateTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	wc, name, err := c.underlying.CreateTempFile(dir, pattern)
	if err != nil {
		return nil, "", err
	}
	return &gzipTempFile{Writer: gzip.NewWriter(wc), dst: wc}, name, nil
}

type gzipTempFile struct {
	*gzip.Writer
	dst io.WriteCloser
}

func (g *gzipTempFile) Close() error {
	if err := g.Writer.Close(); err != nil {
		g.dst.Close()
		return err
	}
	return g.dst.Close()
}

func (c *CompressedFS) MkdirAll(path string, perm os.FileMode) error {
	return c.underlying.MkdirAll(path, perm)
}
func (c *CompressedFS) Remove(path string) error { return c.underlying.Remove(path) }
func (c *CompressedFS) Rename(oldPath, newPath string) error {
	return c.underlying.Rename(oldPath, newPath)
}
func (c *CompressedFS) Stat(path string) (os.FileInfo, error) { return c.underlying.Stat(path) }
func (c *CompressedFS) ReadDir(path string) ([]os.DirEntry, error) {
	return c.underlying.ReadDir(path)
}
func (c *CompressedFS) IsNotExist(err error) bool { return c.underlying.IsNotExist(err) }
func (c *CompressedFS) Exists(path string) bool   { return c.underlying.Exists(path) }
func (c *CompressedFS) IsDir(path string) bool    { return c.underlying.IsDir(path) }
