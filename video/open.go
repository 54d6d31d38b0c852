package video

import (
	"context"
	"fmt"
	"os"
)

type opener struct {
	ffmpeg *FFmpeg
}

// NewOpener returns an [Opener] that plays directories with [OpenDir] and
// everything else with ff.
func NewOpener(ff *FFmpeg) Opener {
	return &opener{ffmpeg: ff}
}

func (o *opener) Open(ctx context.Context, path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	if info.IsDir() {
		return OpenDir(path)
	}

	return o.ffmpeg.Open(ctx, path)
}
