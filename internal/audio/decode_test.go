package audio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestDecodePCM(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	pcm, err := Decode("sounds/hit.PCM", data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(pcm, data[:8]) {
		t.Fatalf("Decode() = %v, want the first two whole frames", pcm)
	}
	pcm[0] = 99
	if data[0] != 1 {
		t.Fatal("Decode aliased the asset buffer")
	}
}

func TestDecodeUnsupported(t *testing.T) {
	if _, err := Decode("music.ogg", []byte{0}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Decode(.ogg) = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeInvalidMP3(t *testing.T) {
	if _, err := Decode("music.mp3", []byte("definitely not mpeg")); err == nil {
		t.Fatal("Decode accepted an invalid mp3")
	}
}

func TestSoundReader(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3, 4, 5}}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4, 5}) {
		t.Fatalf("ReadAll() = %v", got)
	}
	if n, err := r.Read(make([]byte, 4)); n != 0 || err != io.EOF {
		t.Fatalf("Read after end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestLoopReaderWraps(t *testing.T) {
	r := &loopReader{data: []byte{1, 2, 3}}
	buf := make([]byte, 8)
	n, err := r.Read(buf)
	if err != nil || n != 8 {
		t.Fatalf("Read = (%d, %v), want (8, nil)", n, err)
	}
	want := []byte{1, 2, 3, 1, 2, 3, 1, 2}
	if !bytes.Equal(buf, want) {
		t.Fatalf("Read() = %v, want %v", buf, want)
	}

	n, _ = r.Read(buf[:2])
	if n != 2 || buf[0] != 3 || buf[1] != 1 {
		t.Fatalf("second Read = %v, want continuation [3 1]", buf[:2])
	}
}

func TestLoopReaderEmptyIsSilence(t *testing.T) {
	r := &loopReader{}
	buf := []byte{9, 9, 9, 9}
	n, err := r.Read(buf)
	if err != nil || n != 4 {
		t.Fatalf("Read = (%d, %v), want (4, nil)", n, err)
	}
	if !bytes.Equal(buf, []byte{0, 0, 0, 0}) {
		t.Fatalf("Read() = %v, want silence", buf)
	}
}
