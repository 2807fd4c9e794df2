// Package chime plays short tones on marquee lifecycle events, like the
// beeper on a physical sign controller.
package chime

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/marquee"
)

const sampleRate = beep.SampleRate(44100)

// Cue is one tone: a sine at Freq Hz for Duration.
type Cue struct {
	Freq     float64
	Duration time.Duration
}

// cues maps lifecycle events to tones. Events without a cue are silent.
var cues = map[marquee.EventType]Cue{
	marquee.EventTextCommitted: {Freq: 880, Duration: 60 * time.Millisecond},
	marquee.EventStageRecycled: {Freq: 440, Duration: 30 * time.Millisecond},
	marquee.EventGlyphSkipped:  {Freq: 120, Duration: 120 * time.Millisecond},
}

// CueFor returns the tone played for an event type.
func CueFor(t marquee.EventType) (Cue, bool) {
	c, ok := cues[t]
	return c, ok
}

// Chime is an EntityStore that turns lifecycle events into tones. Until
// Init succeeds it only counts the cues it would play.
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	cued        int
}

// New creates a silent chime.
func New() *Chime {
	return &Chime{mixer: &beep.Mixer{}}
}

// Init opens the audio device. A failure is not fatal; the chime stays
// silent.
func (c *Chime) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Close stops every queued tone.
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}

// Cued returns how many tones were requested.
func (c *Chime) Cued() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cued
}

// EmitEvent implements marquee.EntityStore.
func (c *Chime) EmitEvent(ev marquee.Event) {
	cue, ok := cues[ev.Type]
	if !ok {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cued++
	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Add(Tone(cue))
	speaker.Unlock()
}

// Tone returns a finite streamer for cue.
func Tone(cue Cue) beep.Streamer {
	return beep.Take(sampleRate.N(cue.Duration), NewToneGenerator(sampleRate, cue.Freq))
}

// ToneGenerator generates a sine with a short attack so tones do not click.
type ToneGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewToneGenerator creates a sine generator at freq Hz.
func NewToneGenerator(sr beep.SampleRate, freq float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Min(t/0.005, 1.0)
		sample := 0.2 * envelope * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
