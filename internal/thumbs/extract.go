package thumbs

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"

	"video-streamer/internal/logging"

	"github.com/disintegration/imaging"
)

// extractVideoFrame asks ffmpeg for a single decoded frame, targeting one
// second into the clip. Clips shorter than the seek target make the first
// attempt fail, so a second attempt reads from the start instead.
func (g *Generator) extractVideoFrame(ctx context.Context, path string) (image.Image, error) {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}

	img, firstErr := g.runFFmpeg(ctx, ffmpeg,
		"-ss", "00:00:01",
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	if firstErr == nil {
		return img, nil
	}
	logging.Debug("ffmpeg seek attempt failed for %s: %v", path, firstErr)

	img, err = g.runFFmpeg(ctx, ffmpeg,
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w", err)
	}
	return img, nil
}

// decodeImage opens an image file in-process, falling back to ffmpeg for
// formats the Go decoders reject.
func (g *Generator) decodeImage(ctx context.Context, path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	logging.Debug("In-process decode failed for %s: %v, trying ffmpeg", path, err)

	ffmpeg, lookErr := exec.LookPath("ffmpeg")
	if lookErr != nil {
		return nil, fmt.Errorf("decode failed (%v) and ffmpeg not found: %w", err, lookErr)
	}
	img, err = g.runFFmpeg(ctx, ffmpeg,
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg image decode failed: %w", err)
	}
	return img, nil
}

// runFFmpeg executes one ffmpeg invocation under the generator's timeout
// and decodes the PNG it pipes to stdout.
func (g *Generator) runFFmpeg(ctx context.Context, bin string, args ...string) (image.Image, error) {
	runCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("timed out after %v", g.timeout)
		}
		return nil, fmt.Errorf("%v, stderr: %s", err, lastLine(stderr.Bytes()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("produced no output")
	}

	img, _, err := image.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("undecodable output: %w", err)
	}
	return img, nil
}

func lastLine(b []byte) []byte {
	b = bytes.TrimRight(b, "\n")
	if i := bytes.LastIndexByte(b, '\n'); i >= 0 {
		return b[i+1:]
	}
	return b
}
