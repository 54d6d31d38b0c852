package video

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Metadata describes the first video stream of a file.
type Metadata struct {
	Width      int
	Height     int
	FrameCount int
	FrameRate  float64
}

type probeOutput struct {
	Streams []struct {
		RFrameRate    string `json:"r_frame_rate"`
		AvgFrameRate  string `json:"avg_frame_rate"`
		NbFrames      string `json:"nb_frames"`
		NbReadPackets string `json:"nb_read_packets"`
		Width         int    `json:"width"`
		Height        int    `json:"height"`
	} `json:"streams"`
}

// Probe runs ffprobe on path and returns the metadata of its first video
// stream.
func (f *FFmpeg) Probe(ctx context.Context, path string) (Metadata, error) {
	bin, err := exec.LookPath(f.probeBinary())
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %w", ErrFFmpegNotFound, err)
	}

	//nolint:gosec // path is chosen by the user.
	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-select_streams", "v:0",
		"-count_packets",
		"-show_entries", "stream=width,height,r_frame_rate,avg_frame_rate,nb_frames,nb_read_packets",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return Metadata{}, fmt.Errorf("running ffprobe: %w", err)
	}

	return parseProbe(out)
}

func parseProbe(out []byte) (Metadata, error) {
	var po probeOutput

	err := json.Unmarshal(out, &po)
	if err != nil {
		return Metadata{}, fmt.Errorf("parsing ffprobe output: %w", err)
	}

	if len(po.Streams) == 0 {
		return Metadata{}, ErrNoVideoStream
	}

	s := po.Streams[0]

	md := Metadata{
		Width:     s.Width,
		Height:    s.Height,
		FrameRate: parseRate(s.AvgFrameRate),
	}

	if md.FrameRate == 0 {
		md.FrameRate = parseRate(s.RFrameRate)
	}

	// Packet counts are exact; container frame counts are often missing.
	for _, v := range []string{s.NbReadPackets, s.NbFrames} {
		n, convErr := strconv.Atoi(v)
		if convErr == nil && n > 0 {
			md.FrameCount = n

			break
		}
	}

	return md, nil
}

// parseRate parses an ffprobe rational such as "30000/1001". It returns 0 for
// anything unparsable.
func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		den = "1"
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}

	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}

	return n / d
}
