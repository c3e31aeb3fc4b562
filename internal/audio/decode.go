package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/hajimehoshi/go-mp3"
)

// Output format: signed 16-bit little-endian stereo.
const (
	SampleRate   = 44100
	ChannelCount = 2
	frameSize    = ChannelCount * 2
)

// ErrUnsupportedFormat is returned for assets that are neither MP3 nor raw PCM.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decode turns an asset into PCM in the output format. The format is picked
// from the file extension: .mp3 is decoded, .pcm is taken as-is.
func Decode(name string, data []byte) ([]byte, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".mp3":
		dec, err := mp3.NewDecoder(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		if dec.SampleRate() != SampleRate {
			return nil, fmt.Errorf("decode %s: sample rate %d, want %d", name, dec.SampleRate(), SampleRate)
		}
		pcm, err := io.ReadAll(dec)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return trimFrames(pcm), nil
	case ".pcm", ".raw":
		return trimFrames(bytes.Clone(data)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// trimFrames drops a trailing partial frame.
func trimFrames(pcm []byte) []byte {
	return pcm[:len(pcm)-len(pcm)%frameSize]
}

// soundReader plays data once.
type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// loopReader repeats data forever. Empty data reads as silence.
type loopReader struct {
	data []byte
	pos  int
}

func (r *loopReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		clear(p)
		return len(p), nil
	}
	n := 0
	for n < len(p) {
		c := copy(p[n:], r.data[r.pos:])
		n += c
		r.pos += c
		if r.pos >= len(r.data) {
			r.pos = 0
		}
	}
	return n, nil
}
