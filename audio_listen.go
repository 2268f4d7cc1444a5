package main

import "sync"

// listenRingSize bounds the queued samples. At the default 20 TPS and one
// step per tick it holds a few seconds of simulated signal.
const listenRingSize = 64

// listenAudioStream plays the listening cell's amplitude history as stereo
// 16-bit PCM. Each simulation step pushes one sample; Read stretches the queue over
// the audio rate by linear interpolation between consecutive samples and
// holds the last one when the queue runs dry.
type listenAudioStream struct {
	mu sync.Mutex

	ring [listenRingSize]float32
	head int
	size int

	last float32 // sample the interpolation starts from
	pos  float64 // progress from last toward ring[head], in [0, 1)
	step float64 // samples consumed per output frame
	dc   float32
}

// newListenAudioStream expects stepsPerSecond simulation steps per second of
// playback.
func newListenAudioStream(stepsPerSecond float64) *listenAudioStream {
	s := &listenAudioStream{}
	s.SetStepRate(stepsPerSecond)
	return s
}

// SetStepRate changes how many pushed samples are played per second.
func (s *listenAudioStream) SetStepRate(stepsPerSecond float64) {
	if stepsPerSecond <= 0 {
		stepsPerSecond = 1
	}
	s.mu.Lock()
	s.step = stepsPerSecond / audioSampleRate
	s.mu.Unlock()
}

// SetSample queues a normalized amplitude, clamped to [-1, 1]. When the ring
// is full the oldest sample is dropped.
func (s *listenAudioStream) SetSample(v float32) {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// AC coupling against a slowly drifting mean.
	const alpha = 0.001
	s.dc += alpha * (v - s.dc)
	v -= s.dc

	if s.size == listenRingSize {
		s.head = (s.head + 1) % listenRingSize
		s.size--
	}
	s.ring[(s.head+s.size)%listenRingSize] = v
	s.size++
}

// Queued reports how many pushed samples have not been reached yet.
func (s *listenAudioStream) Queued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// next returns the value of one output frame and advances the cursor.
func (s *listenAudioStream) next() float32 {
	if s.size == 0 {
		return s.last
	}
	target := s.ring[s.head]
	v := s.last + (target-s.last)*float32(s.pos)
	s.pos += s.step
	for s.pos >= 1 && s.size > 0 {
		s.last = s.ring[s.head]
		s.head = (s.head + 1) % listenRingSize
		s.size--
		s.pos--
	}
	if s.size == 0 {
		s.pos = 0
	}
	return v
}

func (s *listenAudioStream) Read(p []byte) (int, error) {
	frameBytes := len(p) - len(p)%4
	if frameBytes == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < frameBytes; i += 4 {
		v := int16(s.next() * 32767)
		p[i] = byte(v)
		p[i+1] = byte(v >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}
	return frameBytes, nil
}

func (s *listenAudioStream) Close() error {
	return nil
}
