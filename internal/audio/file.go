package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// decodeChunk is the number of frames pulled from the decoder per Stream call.
const decodeChunk = 4096

// FileSource replays a decoded recording as a Source. The playhead only
// moves when Advance is called, so a replay runs at whatever pace the
// caller ticks it.
type FileSource struct {
	mu         sync.Mutex
	samples    []float32
	sampleRate int
	playhead   int
	closed     bool
}

// OpenFile decodes a WAV file into a FileSource.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open %s: %w", path, err)
	}
	defer f.Close()

	return DecodeWAV(f)
}

// DecodeWAV reads a whole WAV stream and downmixes it to mono.
func DecodeWAV(r io.Reader) (*FileSource, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot decode wav: %w", err)
	}

	samples := make([]float32, 0, max(streamer.Len(), 0))
	buf := make([][2]float64, decodeChunk)
	for {
		n, ok := streamer.Stream(buf)
		for _, frame := range buf[:n] {
			if format.NumChannels > 1 {
				samples = append(samples, float32((frame[0]+frame[1])/2))
			} else {
				samples = append(samples, float32(frame[0]))
			}
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("audio: cannot decode wav: %w", err)
	}

	return NewFileSource(samples, int(format.SampleRate)), nil
}

// NewFileSource wraps already-decoded mono samples.
func NewFileSource(samples []float32, sampleRate int) *FileSource {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &FileSource{samples: samples, sampleRate: sampleRate}
}

// Advance moves the playhead forward by d worth of samples and reports
// whether any audio remains.
func (s *FileSource) Advance(d time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := int(d.Seconds() * float64(s.sampleRate))
	s.playhead = min(s.playhead+step, len(s.samples))
	return s.playhead < len(s.samples)
}

// Position returns the playhead as elapsed audio time.
func (s *FileSource) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sampleDuration(s.playhead)
}

// Duration returns the length of the recording.
func (s *FileSource) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sampleDuration(len(s.samples))
}

func (s *FileSource) sampleDuration(n int) time.Duration {
	return time.Duration(n) * time.Second / time.Duration(s.sampleRate)
}

// Window implements Source. It copies the samples that end at the playhead.
func (s *FileSource) Window(dst []float32) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		clear(dst)
		return 0
	}

	n := min(len(dst), s.playhead)
	pad := len(dst) - n
	clear(dst[:pad])
	copy(dst[pad:], s.samples[s.playhead-n:s.playhead])
	return n
}

// SampleRate implements Source.
func (s *FileSource) SampleRate() int {
	return s.sampleRate
}

// Close implements Source.
func (s *FileSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Opener returns an Opener that hands out this source once. Later opens,
// and opens after Close, fail with ErrClosed.
func (s *FileSource) Opener() Opener {
	var once sync.Once
	return OpenerFunc(func(_ context.Context, _ CaptureConfig) (Source, error) {
		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return nil, ErrClosed
		}

		var src Source
		once.Do(func() { src = s })
		if src == nil {
			return nil, ErrClosed
		}
		return src, nil
	})
}

// samplesStreamer feeds mono float32 samples to beep as stereo frames.
type samplesStreamer struct {
	samples []float32
	pos     int
}

func (s *samplesStreamer) Stream(frames [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	for i := range frames {
		if s.pos >= len(s.samples) {
			break
		}
		v := float64(s.samples[s.pos])
		frames[i][0] = v
		frames[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *samplesStreamer) Err() error {
	return nil
}

// EncodeWAV writes mono 16-bit PCM samples to w.
func EncodeWAV(w io.WriteSeeker, samples []float32, sampleRate int) error {
	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(w, &samplesStreamer{samples: samples}, format); err != nil {
		return fmt.Errorf("audio: cannot encode wav: %w", err)
	}
	return nil
}
