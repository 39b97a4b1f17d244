package main

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	sampleRate     = 44100
	contactToneHz  = 880
	stopToneHz     = 440
	toneDuration   = 0.06
	toneVolume     = 0.25
	sfxCooldownTks = 8
)

var audioContext = audio.NewContext(sampleRate)

// contactSounds plays a short tone when contacts start and a lower one when a
// host stops its sweep.
type contactSounds struct {
	contact  *audio.Player
	stop     *audio.Player
	lastHits int
	lastStop int
	cooldown int
}

func newContactSounds() *contactSounds {
	return &contactSounds{
		contact: audioContext.NewPlayerFromBytes(tone(contactToneHz, toneDuration)),
		stop:    audioContext.NewPlayerFromBytes(tone(stopToneHz, toneDuration)),
	}
}

// observe compares this tick's counts with the last one and plays at most one
// tone per cooldown window.
func (s *contactSounds) observe(contacts, stops int, muted bool) {
	if s == nil {
		return
	}
	risingHits := contacts > s.lastHits
	risingStops := stops > s.lastStop
	s.lastHits, s.lastStop = contacts, stops

	if s.cooldown > 0 {
		s.cooldown--
		return
	}
	if muted {
		return
	}
	switch {
	case risingStops:
		play(s.stop)
	case risingHits:
		play(s.contact)
	default:
		return
	}
	s.cooldown = sfxCooldownTks
}

func play(p *audio.Player) {
	if p == nil || p.IsPlaying() {
		return
	}
	p.SetVolume(toneVolume)
	_ = p.Rewind()
	p.Play()
}

// tone renders a sine burst with a linear fade out as 16-bit little endian
// stereo PCM.
func tone(freq, seconds float64) []byte {
	n := int(sampleRate * seconds)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		fade := 1 - float64(i)/float64(n)
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/sampleRate) * fade * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
