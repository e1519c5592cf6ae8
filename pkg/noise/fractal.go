package noise

import "github.com/taigrr/geodx/pkg/math3d"

// Fractal sums several octaves of Noise3 (fractal Brownian motion).
type Fractal struct {
	Octaves       int     // Number of layers
	BaseFrequency float64 // Frequency of the first octave
	Lacunarity    float64 // Frequency multiplier per octave
	Persistence   float64 // Amplitude multiplier per octave
}

// TerrainOctaves samples at 0.01, 0.02, 0.04 and 0.08 with weights
// 1, 0.5, 0.25 and 0.125, tuned for a planet of radius ~500.
var TerrainOctaves = Fractal{
	Octaves:       4,
	BaseFrequency: 0.01,
	Lacunarity:    2,
	Persistence:   0.5,
}

// Sample returns the weighted octave sum at p normalised by the total
// weight, so the result stays in [0, 1).
func (f Fractal) Sample(p math3d.Vec3, seed uint32) float64 {
	var total, weights float64
	frequency := f.BaseFrequency
	amplitude := 1.0

	for range f.Octaves {
		total += Noise3(p.Scale(frequency), seed) * amplitude
		weights += amplitude
		amplitude *= f.Persistence
		frequency *= f.Lacunarity
	}

	if weights == 0 {
		return 0
	}
	return total / weights
}
