package video

import (
	"context"
	"errors"

	"go.jacobcolvin.com/tintplay/colorfx"
)

// Sentinel errors returned by sources.
var (
	ErrOpen           = errors.New("open video")
	ErrNoVideoStream  = errors.New("no video stream")
	ErrFFmpegNotFound = errors.New("ffmpeg not found in PATH")
	ErrClosed         = errors.New("source closed")
	ErrNoFrameRate    = errors.New("frame rate unknown")
)

// Source is an open, decodable video.
//
// Position is the index of the most recently decoded frame, or -1 before the
// first read. After Seek(n) the next ReadFrame returns frame n. ReadFrame
// returns [io.EOF] at the end of the stream.
type Source interface {
	ReadFrame() (colorfx.Frame, error)
	Position() int
	Seek(frame int) error
	FrameCount() int
	Close() error
}

// Opener opens a [Source] from a path.
type Opener interface {
	Open(ctx context.Context, path string) (Source, error)
}

// OpenerFunc adapts a function to an [Opener].
type OpenerFunc func(ctx context.Context, path string) (Source, error)

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, path string) (Source, error) {
	return f(ctx, path)
}

// clampFrame limits frame to [0, count-1]. A count of zero means unknown and
// only the lower bound applies.
func clampFrame(frame, count int) int {
	if count > 0 && frame >= count {
		frame = count - 1
	}

	if frame < 0 {
		frame = 0
	}

	return frame
}
