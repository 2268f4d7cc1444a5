package wave

import (
	"math"
	"math/rand"
	"time"
)

// Rand is the randomness consumed by source churn and seeding. *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a time-seeded generator, or a deterministic one when seed
// is non-zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// samplePointInDisk draws a point uniformly inside the disk using
// r = sqrt(U)*radius, theta = U*2pi.
func samplePointInDisk(rng Rand, cx, cy, radius float64) (float64, float64) {
	r := math.Sqrt(rng.Float64()) * radius
	theta := rng.Float64() * 2 * math.Pi
	return cx + r*math.Cos(theta), cy + r*math.Sin(theta)
}

// PointsInDisk samples n points uniformly inside a disk.
func PointsInDisk(rng Rand, cx, cy, radius float64, n int) [][2]float64 {
	points := make([][2]float64, n)
	for i := range points {
		x, y := samplePointInDisk(rng, cx, cy, radius)
		points[i] = [2]float64{x, y}
	}
	return points
}

// SourcesFromPoints creates one source per point with a random phase and the
// given amplitude and angular frequency.
func SourcesFromPoints(rng Rand, points [][2]float64, amplitude, frequency float64) []Source {
	sources := make([]Source, len(points))
	for i, p := range points {
		sources[i] = Source{
			X:         p[0],
			Y:         p[1],
			Phase:     rng.Float64() * 2 * math.Pi,
			Amplitude: amplitude,
			Frequency: frequency,
		}
	}
	return sources
}
