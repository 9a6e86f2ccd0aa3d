package export

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"
)

// Sink receives rendered frames in plan order.
type Sink interface {
	Put(name string, data []byte) error
	Close() error
}

// ZipSink streams frames into a zip archive written to w.
type ZipSink struct {
	zw       *zip.Writer
	modified time.Time
	count    int
}

func NewZipSink(w io.Writer) *ZipSink {
	zw := zip.NewWriter(w)
	// PNG data is already compressed; favour speed.
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})
	return &ZipSink{zw: zw, modified: time.Now()}
}

func (s *ZipSink) Put(name string, data []byte) error {
	f, err := s.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: s.modified,
	})
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return err
	}
	s.count++
	return nil
}

// Count is the number of frames written so far.
func (s *ZipSink) Count() int { return s.count }

func (s *ZipSink) Close() error {
	return s.zw.Close()
}

// DirectorySink writes each frame to its own file, replacing existing files atomically.
type DirectorySink struct {
	dir string
}

func NewDirectorySink(dir string) (*DirectorySink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create screenshots directory: %w", err)
	}
	return &DirectorySink{dir: dir}, nil
}

func (s *DirectorySink) Put(name string, data []byte) error {
	target := filepath.Join(s.dir, filepath.Base(name))
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func (s *DirectorySink) Close() error { return nil }
