// Package audio synthesizes short feedback tones.
package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"

	"github.com/verte-zerg/reflex/internal/model"
)

// Event identifies a feedback sound.
type Event int

const (
	EventTick Event = iota
	EventStart
	EventSuccess
	EventError
)

func (e Event) String() string {
	switch e {
	case EventTick:
		return "tick"
	case EventStart:
		return "start"
	case EventSuccess:
		return "success"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Waveform is the oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveTriangle
	WaveSawtooth
)

// silenceLevel is the gain the envelope decays to by the end of a tone.
const silenceLevel = 0.0001

// Tone describes a single synthesized sound.
type Tone struct {
	Wave     Waveform
	Freq     float64 // Hz
	EndFreq  float64 // Hz, 0 for a steady pitch
	Duration time.Duration
	Peak     float64 // starting amplitude after master volume
}

type toneDef struct {
	wave     Waveform
	freq     float64
	endFreq  float64
	duration time.Duration
	gain     float64
}

var packs = map[model.SoundPack]map[Event]toneDef{
	model.SoundPackClassic: {
		EventTick:    {WaveSine, 800, 0, 50 * time.Millisecond, 0.1},
		EventStart:   {WaveSine, 400, 800, 200 * time.Millisecond, 0.2},
		EventSuccess: {WaveSine, 880, 440, 300 * time.Millisecond, 0.2},
		EventError:   {WaveSquare, 150, 0, 200 * time.Millisecond, 0.1},
	},
	model.SoundPackArcade: {
		EventTick:    {WaveSquare, 1200, 0, 30 * time.Millisecond, 0.05},
		EventStart:   {WaveSquare, 300, 600, 300 * time.Millisecond, 0.1},
		EventSuccess: {WaveTriangle, 880, 1320, 400 * time.Millisecond, 0.15},
		EventError:   {WaveSawtooth, 100, 50, 300 * time.Millisecond, 0.08},
	},
	model.SoundPackTech: {
		EventTick:    {WaveSine, 2000, 0, 10 * time.Millisecond, 0.08},
		EventStart:   {WaveSine, 1000, 1500, 100 * time.Millisecond, 0.1},
		EventSuccess: {WaveSine, 1500, 1800, 200 * time.Millisecond, 0.12},
		EventError:   {WaveSquare, 400, 200, 100 * time.Millisecond, 0.05},
	},
}

// ToneFor returns the tone a pack plays for an event at the given master volume.
// Unknown packs use the Classic table.
func ToneFor(ev Event, pack model.SoundPack, volume float64) Tone {
	table, ok := packs[pack]
	if !ok {
		table = packs[model.SoundPackClassic]
	}
	def := table[ev]
	return Tone{
		Wave:     def.wave,
		Freq:     def.freq,
		EndFreq:  def.endFreq,
		Duration: def.duration,
		Peak:     def.gain * clampVolume(volume),
	}
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Streamer renders the tone as a stereo beep.Streamer. Pitch glides and the
// envelope decays exponentially, reaching silence at Duration.
func (t Tone) Streamer(sr beep.SampleRate) beep.Streamer {
	total := sr.N(t.Duration)
	pos := 0
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			progress := float64(pos) / float64(total)
			v := t.amplitude(progress) * wave(t.Wave, phase)
			samples[i][0] = v
			samples[i][1] = v
			phase += 2 * math.Pi * t.frequency(progress) / float64(sr)
			phase = math.Mod(phase, 2*math.Pi)
			pos++
		}
		return len(samples), true
	})
}

func (t Tone) frequency(progress float64) float64 {
	if t.EndFreq <= 0 || t.Freq <= 0 {
		return t.Freq
	}
	return t.Freq * math.Pow(t.EndFreq/t.Freq, progress)
}

func (t Tone) amplitude(progress float64) float64 {
	if t.Peak <= silenceLevel {
		return t.Peak * (1 - progress)
	}
	return t.Peak * math.Pow(silenceLevel/t.Peak, progress)
}

func wave(w Waveform, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < math.Pi {
			return 1
		}
		return -1
	case WaveTriangle:
		return 2 / math.Pi * math.Asin(math.Sin(phase))
	case WaveSawtooth:
		return phase/math.Pi - 1
	default:
		return math.Sin(phase)
	}
}
