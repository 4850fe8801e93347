package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// drain streams s to completion and returns the sample count.
func drain(t *testing.T, s beep.Streamer, limit int) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d: channels differ", total+i)
			}
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestSweepLength(t *testing.T) {
	s := newSweep(sampleRate, 1000, 200, 100*time.Millisecond, 0.5)

	total, peak := drain(t, s, sampleRate.N(time.Second))

	if want := sampleRate.N(100 * time.Millisecond); total != want {
		t.Errorf("sweep produced %d samples, want %d", total, want)
	}
	if peak == 0 || peak > 0.5 {
		t.Errorf("sweep peak = %f, want within (0, 0.5]", peak)
	}
	if n, ok := s.Stream(make([][2]float64, 10)); n != 0 || ok {
		t.Errorf("drained sweep returned (%d, %v), want (0, false)", n, ok)
	}
}

func TestNoiseBurstDecays(t *testing.T) {
	d := 200 * time.Millisecond
	n := newNoiseBurst(sampleRate, d, 0.6, 1)

	var out []float64
	buf := make([][2]float64, 256)
	for {
		k, ok := n.Stream(buf)
		for i := 0; i < k; i++ {
			out = append(out, math.Abs(buf[i][0]))
		}
		if !ok {
			break
		}
	}

	if len(out) != sampleRate.N(d) {
		t.Fatalf("burst produced %d samples, want %d", len(out), sampleRate.N(d))
	}
	peak := func(xs []float64) float64 {
		m := 0.0
		for _, x := range xs {
			m = math.Max(m, x)
		}
		return m
	}
	head := peak(out[:len(out)/10])
	tail := peak(out[len(out)*3/4:])
	if head > 1 {
		t.Errorf("burst clips: peak %f", head)
	}
	if tail >= head {
		t.Errorf("burst did not decay: head peak %f, tail peak %f", head, tail)
	}
}

func TestArpeggioNeverEnds(t *testing.T) {
	a := newArpeggio(sampleRate, musicNotes, 50*time.Millisecond, 0.2)

	total, peak := drain(t, a, sampleRate.N(2*time.Second))

	if total < sampleRate.N(2*time.Second) {
		t.Errorf("music stopped after %d samples", total)
	}
	if peak > 0.2 {
		t.Errorf("music peak %f exceeds gain", peak)
	}
}

func TestChime(t *testing.T) {
	s, err := chime(sampleRate, 10*time.Millisecond, 440, 880)
	if err != nil {
		t.Fatalf("chime: %v", err)
	}
	total, _ := drain(t, s, sampleRate.N(time.Second))
	if want := 2 * sampleRate.N(10*time.Millisecond); total != want {
		t.Errorf("chime produced %d samples, want %d", total, want)
	}

	if _, err := chime(sampleRate, 10*time.Millisecond, float64(sampleRate)); err == nil {
		t.Error("chime above Nyquist should fail")
	}
}

func TestDisabledEngine(t *testing.T) {
	e := Disabled()

	if e.Enabled() {
		t.Fatal("Disabled() engine reports enabled")
	}
	// None of these may touch the speaker.
	e.Play(CueLaser)
	e.Play(CueExplosion)
	e.StartMusic()
	e.StopMusic()
	e.Close()

	e.SetVolume(1.7)
	if e.Volume() != 1 {
		t.Errorf("Volume() = %f, want clamped to 1", e.Volume())
	}
	e.SetVolume(-1)
	if e.Volume() != 0 {
		t.Errorf("Volume() = %f, want clamped to 0", e.Volume())
	}
	e.ToggleMute()
	if !e.Muted() {
		t.Error("ToggleMute did not mute")
	}
}

func TestVolumeEffectGain(t *testing.T) {
	e := Disabled()
	tests := []struct {
		volume     float64
		muted      bool
		wantSilent bool
		wantVolume float64
	}{
		{1, false, false, 0},
		{0.5, false, false, -1},
		{0, false, true, 0},
		{0.5, true, true, 0},
	}
	for _, tt := range tests {
		e.volume, e.muted = tt.volume, tt.muted
		var v effects.Volume
		e.setGain(&v)
		if v.Silent != tt.wantSilent || v.Volume != tt.wantVolume {
			t.Errorf("volume %v muted %v: got silent=%v volume=%v, want %v/%v",
				tt.volume, tt.muted, v.Silent, v.Volume, tt.wantSilent, tt.wantVolume)
		}
	}
}

func TestCueStreams(t *testing.T) {
	e := Disabled()
	for _, c := range []Cue{CueLaser, CueExplosion, CueLevelUp, CueGameOver} {
		s, err := e.cue(c)
		if err != nil {
			t.Errorf("cue %v: %v", c, err)
			continue
		}
		if total, _ := drain(t, s, sampleRate.N(5*time.Second)); total == 0 {
			t.Errorf("cue %v is silent", c)
		}
	}
	if _, err := e.cue(Cue(99)); err == nil {
		t.Error("unknown cue returned no error")
	}
}
