//go:build !ci

package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// Options configures a Manager.
type Options struct {
	Muted bool
	Dir   string
}

// Manager plays short cues from decoded in-memory buffers. Init may run in
// the background while the UI already calls Play.
type Manager struct {
	mu      sync.RWMutex
	buffers map[Cue]*beep.Buffer
	enabled bool
	opts    Options
}

func NewManager(opts Options) *Manager {
	return &Manager{
		buffers: make(map[Cue]*beep.Buffer),
		opts:    opts,
	}
}

// Init opens the speaker and loads every cue file. A muted manager never
// touches the audio device.
func (m *Manager) Init() error {
	if m.opts.Muted {
		return nil
	}
	sampleRate := beep.SampleRate(44100)
	// Smaller buffer for lower latency
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	buffers := make(map[Cue]*beep.Buffer)
	err := m.loadSoundFiles(buffers, sampleRate)
	m.setBuffers(buffers)
	return err
}

// setBuffers publishes decoded cues and turns playback on.
func (m *Manager) setBuffers(buffers map[Cue]*beep.Buffer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buffers = buffers
	m.enabled = true
}

// Enabled reports whether cues will be heard.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

func (m *Manager) loadSoundFiles(buffers map[Cue]*beep.Buffer, sampleRate beep.SampleRate) error {
	files, err := os.ReadDir(m.opts.Dir)
	if err != nil {
		// A missing directory just means no sounds
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		// Skip files that fail to decode
		_ = m.loadSoundFile(buffers, name, ext, sampleRate)
	}
	return nil
}

func (m *Manager) loadSoundFile(buffers map[Cue]*beep.Buffer, name, ext string, sampleRate beep.SampleRate) error {
	f, err := os.Open(filepath.Clean(filepath.Join(m.opts.Dir, name)))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  sampleRate,
		NumChannels: 2,
		Precision:   4,
	})
	buffer.Append(resampled)

	buffers[Cue(strings.TrimSuffix(name, filepath.Ext(name)))] = buffer
	return nil
}

// Play starts a cue without blocking. Unknown cues are ignored.
func (m *Manager) Play(cue Cue) {
	if cue == "" {
		return
	}
	m.mu.RLock()
	buffer, ok := m.buffers[cue]
	enabled := m.enabled
	m.mu.RUnlock()
	if !enabled || !ok {
		return
	}
	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = false
}
