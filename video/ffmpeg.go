package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"go.jacobcolvin.com/tintplay/colorfx"
)

// FFmpeg opens video files by piping raw frames out of an ffmpeg child
// process. The zero value uses "ffmpeg" and "ffprobe" from PATH, native frame
// size, and RGB output.
type FFmpeg struct {
	// Binary and ProbeBinary override the executables.
	Binary      string
	ProbeBinary string
	// Width and Height scale and pad frames to a fixed size. Zero keeps the
	// stream's native size.
	Width  int
	Height int
	// Order is the pixel format requested from ffmpeg.
	Order colorfx.Order
}

func (f *FFmpeg) binary() string {
	if f.Binary != "" {
		return f.Binary
	}

	return "ffmpeg"
}

func (f *FFmpeg) probeBinary() string {
	if f.ProbeBinary != "" {
		return f.ProbeBinary
	}

	return "ffprobe"
}

func (f *FFmpeg) order() colorfx.Order {
	if f.Order != "" {
		return f.Order
	}

	return colorfx.RGB
}

// Open probes path and starts decoding it from the first frame.
func (f *FFmpeg) Open(ctx context.Context, path string) (Source, error) {
	bin, err := exec.LookPath(f.binary())
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrOpen, ErrFFmpegNotFound, err)
	}

	md, err := f.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	if md.Width <= 0 || md.Height <= 0 {
		return nil, fmt.Errorf("%w: %w: %s", ErrOpen, ErrNoVideoStream, path)
	}

	s := &ffmpegSource{
		ctx:   ctx,
		bin:   bin,
		path:  path,
		meta:  md,
		order: f.order(),
		pixW:  md.Width,
		pixH:  md.Height,
		scale: f.Width > 0 && f.Height > 0,
	}

	if s.scale {
		s.pixW, s.pixH = f.Width, f.Height
	}

	err = s.start(0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	return s, nil
}

// ffmpegSource manages an ffmpeg rawvideo pipe. Seeking restarts the process
// at the target timestamp.
type ffmpegSource struct {
	ctx    context.Context
	cmd    *exec.Cmd
	stdout io.ReadCloser
	cancel context.CancelFunc
	bin    string
	path   string
	order  colorfx.Order
	meta   Metadata
	pixW   int
	pixH   int
	next   int
	scale  bool
	closed bool
}

// args builds the ffmpeg command line to decode from frame.
func (s *ffmpegSource) args(frame int) []string {
	args := []string{"-v", "error", "-nostdin"}

	if frame > 0 {
		ts := float64(frame) / s.meta.FrameRate
		args = append(args, "-ss", strconv.FormatFloat(ts, 'f', 6, 64))
	}

	args = append(args, "-i", s.path, "-an")

	if s.scale {
		args = append(args, "-vf", fmt.Sprintf(
			"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
			s.pixW, s.pixH, s.pixW, s.pixH,
		))
	}

	return append(args,
		"-pix_fmt", string(s.order),
		"-f", "rawvideo",
		"pipe:1",
	)
}

func (s *ffmpegSource) start(frame int) error {
	ctx, cancel := context.WithCancel(s.ctx)

	//nolint:gosec // The input path is chosen by the user.
	cmd := exec.CommandContext(ctx, s.bin, s.args(frame)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()

		return fmt.Errorf("creating stdout pipe: %w", err)
	}

	err = cmd.Start()
	if err != nil {
		cancel()

		return fmt.Errorf("starting ffmpeg: %w", err)
	}

	s.cmd = cmd
	s.stdout = stdout
	s.cancel = cancel
	s.next = frame

	return nil
}

// stop cancels the ffmpeg process and waits for it to exit.
func (s *ffmpegSource) stop() {
	if s.cmd == nil {
		return
	}

	s.cancel()
	//nolint:errcheck // Error is expected after context cancellation.
	s.cmd.Wait()

	s.cmd = nil
}

func (s *ffmpegSource) ReadFrame() (colorfx.Frame, error) {
	if s.closed {
		return colorfx.Frame{}, ErrClosed
	}

	buf := make([]byte, s.pixW*s.pixH*s.order.BytesPerPixel())

	_, err := io.ReadFull(s.stdout, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return colorfx.Frame{}, io.EOF
	}

	if err != nil {
		return colorfx.Frame{}, fmt.Errorf("reading frame %d: %w", s.next, err)
	}

	s.next++

	return colorfx.Frame{
		Order:  s.order,
		Pix:    buf,
		Width:  s.pixW,
		Height: s.pixH,
	}, nil
}

func (s *ffmpegSource) Position() int { return s.next - 1 }

func (s *ffmpegSource) FrameCount() int { return s.meta.FrameCount }

func (s *ffmpegSource) Seek(frame int) error {
	if s.closed {
		return ErrClosed
	}

	frame = clampFrame(frame, s.meta.FrameCount)

	// ffmpeg seeks by time, which needs the rate. Playback continues from
	// the current frame.
	if frame > 0 && s.meta.FrameRate <= 0 {
		return fmt.Errorf("seek to frame %d: %w", frame, ErrNoFrameRate)
	}

	s.stop()

	return s.start(frame)
}

func (s *ffmpegSource) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	s.stop()

	return nil
}
