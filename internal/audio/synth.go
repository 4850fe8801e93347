package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// sweep glides a square-ish tone from one frequency to another while
// fading out linearly.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	total    int
	pos      int
	phase    float64
	gain     float64
}

func newSweep(rate beep.SampleRate, from, to float64, d time.Duration, gain float64) *sweep {
	return &sweep{rate: rate, from: from, to: to, total: rate.N(d), gain: gain}
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		t := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*t
		// Soft square: sine pushed through tanh.
		v := math.Tanh(3*math.Sin(2*math.Pi*s.phase)) * s.gain * (1 - t)
		samples[i][0], samples[i][1] = v, v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noiseBurst is white noise with an exponential decay, used for explosions.
type noiseBurst struct {
	rng   *rand.Rand
	total int
	pos   int
	decay float64 // Per-sample multiplier
	level float64
	prev  float64
}

func newNoiseBurst(rate beep.SampleRate, d time.Duration, gain float64, seed int64) *noiseBurst {
	total := rate.N(d)
	return &noiseBurst{
		rng:   rand.New(rand.NewSource(seed)),
		total: total,
		// Reach about -60dB at the end of the burst.
		decay: math.Pow(0.001, 1/float64(max(total, 1))),
		level: gain,
	}
}

func (n *noiseBurst) Stream(samples [][2]float64) (int, bool) {
	if n.pos >= n.total {
		return 0, false
	}
	for i := range samples {
		if n.pos >= n.total {
			return i, true
		}
		// One-pole low-pass keeps the rumble and drops the hiss.
		n.prev = 0.8*n.prev + 0.2*(n.rng.Float64()*2-1)
		v := n.prev * n.level * 1.5
		samples[i][0], samples[i][1] = v, v
		n.level *= n.decay
		n.pos++
	}
	return len(samples), true
}

func (n *noiseBurst) Err() error { return nil }

// arpeggio loops a short note pattern forever. It never ends on its own.
type arpeggio struct {
	rate    beep.SampleRate
	notes   []float64
	noteLen int
	pos     int
	phase   float64
	bass    float64
	gain    float64
}

func newArpeggio(rate beep.SampleRate, notes []float64, noteLen time.Duration, gain float64) *arpeggio {
	return &arpeggio{rate: rate, notes: notes, noteLen: max(rate.N(noteLen), 1), gain: gain}
}

func (a *arpeggio) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		note := (a.pos / a.noteLen) % len(a.notes)
		inNote := float64(a.pos%a.noteLen) / float64(a.noteLen)
		freq := a.notes[note]
		env := math.Min(inNote*20, 1) * (1 - inNote*0.7)

		lead := math.Sin(2*math.Pi*a.phase) * env
		low := math.Sin(2*math.Pi*a.bass) * 0.6
		v := (lead*0.7 + low*0.3) * a.gain
		samples[i][0], samples[i][1] = v, v

		a.phase += freq / float64(a.rate)
		a.phase -= math.Floor(a.phase)
		a.bass += a.notes[0] / 2 / float64(a.rate)
		a.bass -= math.Floor(a.bass)
		a.pos++
	}
	return len(samples), true
}

func (a *arpeggio) Err() error { return nil }

// chime plays the given frequencies one after another as sine tones.
func chime(rate beep.SampleRate, step time.Duration, freqs ...float64) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		tone, err := generators.SineTone(rate, f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(rate.N(step), tone))
	}
	return beep.Seq(parts...), nil
}
