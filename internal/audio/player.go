package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/reflex/internal/model"
)

// DefaultSampleRate is the output rate used for the speaker.
const DefaultSampleRate beep.SampleRate = 44100

// Backend is the audio output device.
type Backend interface {
	Init(sr beep.SampleRate) error
	Play(s beep.Streamer)
}

// SpeakerBackend plays through the system speaker.
type SpeakerBackend struct{}

// Init opens the speaker with a 50ms buffer.
func (SpeakerBackend) Init(sr beep.SampleRate) error {
	return speaker.Init(sr, sr.N(50*time.Millisecond))
}

// Play queues s on the speaker mixer.
func (SpeakerBackend) Play(s beep.Streamer) {
	speaker.Play(s)
}

// Player emits feedback tones. The backend is opened on first use; if it
// cannot be opened, tones are dropped silently. A Player is owned by the
// application and is not safe for concurrent use.
type Player struct {
	backend    Backend
	sampleRate beep.SampleRate
	ready      bool
	initErr    error

	muted  bool
	volume float64
	pack   model.SoundPack
}

// NewPlayer returns a Player using backend and the given settings.
func NewPlayer(backend Backend, settings model.Settings) *Player {
	if backend == nil {
		backend = SpeakerBackend{}
	}
	p := &Player{backend: backend, sampleRate: DefaultSampleRate}
	p.Apply(settings)
	return p
}

// SetSampleRate changes the output rate. It has no effect once the backend is open.
func (p *Player) SetSampleRate(sr beep.SampleRate) {
	if p.ready || sr <= 0 {
		return
	}
	p.sampleRate = sr
}

// Resume opens the backend if it is not open yet. Calling it again after
// success is a no-op; after a failure it retries.
func (p *Player) Resume() error {
	if p.ready {
		return nil
	}
	if err := p.backend.Init(p.sampleRate); err != nil {
		p.initErr = err
		return err
	}
	p.ready = true
	p.initErr = nil
	return nil
}

// Play emits the tone for ev using the current pack and volume.
func (p *Player) Play(ev Event) {
	if p == nil || p.muted {
		return
	}
	if !p.ready {
		// Every tone retries the backend; only the first failure is logged.
		first := p.initErr == nil
		if err := p.Resume(); err != nil {
			if first {
				log.Debug().Err(err).Msg("audio unavailable; will retry on next tone")
			}
			return
		}
	}
	tone := ToneFor(ev, p.pack, p.volume)
	p.backend.Play(tone.Streamer(p.sampleRate))
}

// Apply replaces volume and sound pack.
func (p *Player) Apply(settings model.Settings) {
	if p == nil {
		return
	}
	p.volume = clampVolume(settings.Volume)
	p.pack = settings.SoundPack
	if !p.pack.Valid() {
		p.pack = model.SoundPackClassic
	}
}

// SetMuted toggles global mute.
func (p *Player) SetMuted(muted bool) {
	if p == nil {
		return
	}
	p.muted = muted
}

// Muted reports whether tones are suppressed. A nil Player is always muted.
func (p *Player) Muted() bool {
	if p == nil {
		return true
	}
	return p.muted
}

// Settings returns the active volume and pack.
func (p *Player) Settings() model.Settings {
	if p == nil {
		return model.DefaultSettings()
	}
	return model.Settings{Volume: p.volume, SoundPack: p.pack}
}
