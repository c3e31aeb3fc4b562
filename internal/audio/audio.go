// Package audio plays the two sound slots scripts can fill: a looping
// background track and a one-shot action sound.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/fedor-rusak/chickpea-android/internal/glue"
	"github.com/fedor-rusak/chickpea-android/internal/logging"
)

// Sound slot tags accepted by CacheSound.
const (
	TagBackground = "background"
	TagAction     = "action"
)

const (
	backgroundVolume = 0.5
	actionVolume     = 0.8
)

// oto allows one context per process.
var (
	contextOnce  sync.Once
	sharedCtx    *oto.Context
	sharedReady  chan struct{}
	contextError error
)

func otoContext() (*oto.Context, chan struct{}, error) {
	contextOnce.Do(func() {
		sharedCtx, sharedReady, contextError = oto.NewContext(SampleRate, ChannelCount, oto.FormatSignedInt16LE)
	})
	return sharedCtx, sharedReady, contextError
}

// Player owns the background and action slots.
type Player struct {
	assets glue.AssetSource
	logger *slog.Logger

	ctx   *oto.Context
	ready chan struct{}

	mu         sync.Mutex
	background oto.Player
	loop       []byte
	action     []byte
	wantLoop   bool
	closed     bool
}

// New opens the audio device. The device becomes usable asynchronously;
// requests made before that are applied once it is ready.
func New(assets glue.AssetSource, logger *slog.Logger) (*Player, error) {
	ctx, ready, err := otoContext()
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	p := &Player{
		assets: assets,
		logger: logging.Component(logger, "audio"),
		ctx:    ctx,
		ready:  ready,
	}
	go func() {
		<-ready
		p.mu.Lock()
		defer p.mu.Unlock()
		p.logger.Debug("audio device ready")
		p.applyLocked()
	}()
	return p, nil
}

func (p *Player) isReady() bool {
	select {
	case <-p.ready:
		return true
	default:
		return false
	}
}

// CacheSound decodes path into the slot named by tag.
func (p *Player) CacheSound(tag, path string) error {
	data, err := p.assets.ReadBinary(path)
	if err != nil {
		return fmt.Errorf("cache sound %s: %w", tag, err)
	}
	pcm, err := Decode(path, data)
	if err != nil {
		return fmt.Errorf("cache sound %s: %w", tag, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	switch tag {
	case TagBackground:
		p.loop = pcm
		if p.background != nil {
			p.background.Close()
			p.background = nil
		}
		p.applyLocked()
	case TagAction:
		p.action = pcm
	default:
		return fmt.Errorf("cache sound: unknown tag %q", tag)
	}
	p.logger.Info("sound cached", "tag", tag, "path", path, "bytes", len(pcm))
	return nil
}

// SetBackgroundPlaying starts or pauses the background loop.
func (p *Player) SetBackgroundPlaying(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wantLoop = on
	p.applyLocked()
}

func (p *Player) applyLocked() {
	if p.closed || !p.isReady() {
		return
	}
	if !p.wantLoop {
		if p.background != nil && p.background.IsPlaying() {
			p.background.Pause()
		}
		return
	}
	if len(p.loop) == 0 {
		return
	}
	if p.background == nil {
		p.background = p.ctx.NewPlayer(&loopReader{data: p.loop})
		p.background.SetVolume(backgroundVolume)
	}
	if !p.background.IsPlaying() {
		p.background.Play()
	}
}

// PlayAction plays the action sound from the start.
func (p *Player) PlayAction() {
	p.mu.Lock()
	data := p.action
	ok := !p.closed && p.isReady() && len(data) > 0
	p.mu.Unlock()
	if !ok {
		return
	}
	go func() {
		player := p.ctx.NewPlayer(&soundReader{data: data})
		player.SetVolume(actionVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// Close stops the background loop. The shared device stays open.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.background != nil {
		err := p.background.Close()
		p.background = nil
		return err
	}
	return nil
}
