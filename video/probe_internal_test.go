package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/tintplay/colorfx"
)

func TestParseRate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in   string
		want float64
	}{
		"integer rational": {in: "30/1", want: 30},
		"ntsc":             {in: "30000/1001", want: 29.97002997},
		"plain number":     {in: "25", want: 25},
		"zero denominator": {in: "0/0", want: 0},
		"garbage":          {in: "abc", want: 0},
		"empty":            {in: "", want: 0},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, tc.want, parseRate(tc.in), 1e-6)
		})
	}
}

func TestParseProbe(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in      string
		want    Metadata
		wantErr error
	}{
		"counted packets": {
			in: `{"streams":[{"width":320,"height":240,"r_frame_rate":"30/1",` +
				`"avg_frame_rate":"30/1","nb_frames":"N/A","nb_read_packets":"10"}]}`,
			want: Metadata{Width: 320, Height: 240, FrameCount: 10, FrameRate: 30},
		},
		"falls back to nb_frames and r_frame_rate": {
			in: `{"streams":[{"width":64,"height":48,"r_frame_rate":"25/1",` +
				`"avg_frame_rate":"0/0","nb_frames":"250"}]}`,
			want: Metadata{Width: 64, Height: 48, FrameCount: 250, FrameRate: 25},
		},
		"no streams": {
			in:      `{"streams":[]}`,
			wantErr: ErrNoVideoStream,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := parseProbe([]byte(tc.in))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		_, err := parseProbe([]byte("not json"))
		require.Error(t, err)
	})
}

func TestFFmpegArgs(t *testing.T) {
	t.Parallel()

	s := &ffmpegSource{
		path:  "in.mp4",
		order: colorfx.BGR,
		meta:  Metadata{FrameRate: 25},
		pixW:  640,
		pixH:  480,
		scale: true,
	}

	assert.Equal(t, []string{
		"-v", "error", "-nostdin",
		"-i", "in.mp4", "-an",
		"-vf", "scale=640:480:force_original_aspect_ratio=decrease,pad=640:480:(ow-iw)/2:(oh-ih)/2",
		"-pix_fmt", "bgr24",
		"-f", "rawvideo",
		"pipe:1",
	}, s.args(0))

	s.scale = false

	assert.Equal(t, []string{
		"-v", "error", "-nostdin",
		"-ss", "2.000000",
		"-i", "in.mp4", "-an",
		"-pix_fmt", "bgr24",
		"-f", "rawvideo",
		"pipe:1",
	}, s.args(50))
}

func TestSeekWithoutFrameRate(t *testing.T) {
	t.Parallel()

	s := &ffmpegSource{
		path:  "in.mp4",
		order: colorfx.RGB,
		meta:  Metadata{FrameCount: 100},
		next:  7,
	}

	err := s.Seek(40)
	require.ErrorIs(t, err, ErrNoFrameRate)
	assert.Equal(t, 6, s.Position(), "a refused seek keeps the current position")

	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Seek(40), ErrClosed)
}

func TestClampFrame(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, clampFrame(-3, 10))
	assert.Equal(t, 9, clampFrame(42, 10))
	assert.Equal(t, 5, clampFrame(5, 10))
	assert.Equal(t, 42, clampFrame(42, 0))
}

func TestFFmpegDefaults(t *testing.T) {
	t.Parallel()

	var ff FFmpeg

	assert.Equal(t, "ffmpeg", ff.binary())
	assert.Equal(t, "ffprobe", ff.probeBinary())
	assert.Equal(t, colorfx.RGB, ff.order())
}
