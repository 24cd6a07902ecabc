// Package mp3verify checks that an encoded file contains MPEG audio frames.
package mp3verify

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tcolgate/mp3"
)

// ErrNoFrames reports a file without a single decodable MPEG audio frame.
var ErrNoFrames = errors.New("no mpeg audio frames")

// Summary describes the frames found in a file.
type Summary struct {
	Frames   int
	Duration time.Duration
	Skipped  int
}

// File scans path frame by frame. A truncated trailing frame is tolerated as
// long as at least one complete frame precedes it.
func File(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()
	return Reader(bufio.NewReader(f))
}

// Reader scans r frame by frame.
func Reader(r io.Reader) (Summary, error) {
	var (
		summary Summary
		frame   mp3.Frame
		skipped int
	)
	decoder := mp3.NewDecoder(r)
	for {
		err := decoder.Decode(&frame, &skipped)
		summary.Skipped += skipped
		if err != nil {
			if summary.Frames == 0 {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					return summary, ErrNoFrames
				}
				return summary, fmt.Errorf("%w: %w", ErrNoFrames, err)
			}
			return summary, nil
		}
		summary.Frames++
		summary.Duration += frame.Duration()
	}
}
