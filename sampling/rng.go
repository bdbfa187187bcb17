// Package sampling implements the path tracer's Monte Carlo sampling
// primitives: the per-pixel RNG, cosine-hemisphere and concentric-disk
// sampling, uniform triangle sampling, sun-cone sampling, and the
// environment map's two-level CDF build/sample/pdf.
package sampling

// RNG is a small-state, per-pixel pseudorandom generator. The exact hash
// is not part of any contract (spec §4.4 explicitly leaves it
// implementation-defined); what matters is that each pixel gets an
// independent stream and successive draws within one path don't repeat.
// The state advances with a 32-bit LCG; each draw is scrambled through
// Wellons' "triple32" integer hash before being mapped to [0,1).
type RNG struct {
	state uint32
}

// NewRNG seeds a generator from a pixel index and the current sample count,
// matching spec §4.4: hash(x + y*width) ^ hash(sampleCount).
func NewRNG(pixelIndex uint32, sampleCount uint32) RNG {
	seed := hash32(pixelIndex) ^ hash32(sampleCount)
	if seed == 0 {
		seed = 0x9e3779b9
	}
	return RNG{state: seed}
}

// hash32 is Wellons' triple32 bit-mixer: https://nullprogram.com/blog/2018/07/31/
func hash32(x uint32) uint32 {
	x ^= x >> 17
	x *= 0xed5ad4bb
	x ^= x >> 11
	x *= 0xac4c1b51
	x ^= x >> 15
	x *= 0x31848bab
	x ^= x >> 14
	return x
}

// Float32 returns a uniform pseudorandom value in [0, 1).
func (r *RNG) Float32() float32 {
	r.state = r.state*747796405 + 2891336453 // 32-bit LCG step
	mixed := hash32(r.state)
	return float32(mixed) / 4294967296.0 // / 2^32
}

// Float32Pair is a convenience for the common case of needing two
// independent draws (e.g. a hemisphere or disk sample).
func (r *RNG) Float32Pair() (float32, float32) {
	return r.Float32(), r.Float32()
}
