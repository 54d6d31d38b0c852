package video

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoding.
	_ "image/png"  // Register PNG decoding.
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.jacobcolvin.com/tintplay/colorfx"
)

// ImageExtensions are the file extensions [OpenDir] treats as frames.
var ImageExtensions = []string{".png", ".jpg", ".jpeg"}

type dirSource struct {
	dir    string
	names  []string
	next   int
	closed bool
}

// OpenDir opens a directory of still images as a [Source]. Frames are the
// image files sorted by name and are decoded lazily on each read.
func OpenDir(dir string) (Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading directory: %w", ErrOpen, err)
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(e.Name()))
		if slices.Contains(ImageExtensions, ext) {
			names = append(names, e.Name())
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %w: no image files in %s", ErrOpen, ErrNoVideoStream, dir)
	}

	slices.Sort(names)

	return &dirSource{dir: dir, names: names}, nil
}

func (s *dirSource) ReadFrame() (colorfx.Frame, error) {
	if s.closed {
		return colorfx.Frame{}, ErrClosed
	}

	if s.next >= len(s.names) {
		return colorfx.Frame{}, io.EOF
	}

	name := s.names[s.next]

	img, err := decodeImage(filepath.Join(s.dir, name))
	if err != nil {
		return colorfx.Frame{}, fmt.Errorf("decoding %s: %w", name, err)
	}

	s.next++

	return colorfx.FromImage(img), nil
}

func (s *dirSource) Position() int { return s.next - 1 }

func (s *dirSource) FrameCount() int { return len(s.names) }

func (s *dirSource) Seek(frame int) error {
	if s.closed {
		return ErrClosed
	}

	s.next = clampFrame(frame, len(s.names))

	return nil
}

func (s *dirSource) Close() error {
	s.closed = true

	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // Frame paths come from a user-selected directory.
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(f)

	closeErr := f.Close()
	if err != nil {
		return nil, err
	}

	if closeErr != nil {
		return nil, fmt.Errorf("closing %s: %w", path, closeErr)
	}

	return img, nil
}
