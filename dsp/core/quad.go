package core

// Quad holds one value per feedback-network lane. All operations are
// elementwise and allocation-free.
type Quad [4]float64

// Splat returns a Quad with every lane set to v.
func Splat(v float64) Quad {
	return Quad{v, v, v, v}
}

// Add returns q + o.
func (q Quad) Add(o Quad) Quad {
	return Quad{q[0] + o[0], q[1] + o[1], q[2] + o[2], q[3] + o[3]}
}

// Sub returns q - o.
func (q Quad) Sub(o Quad) Quad {
	return Quad{q[0] - o[0], q[1] - o[1], q[2] - o[2], q[3] - o[3]}
}

// Mul returns the lane-wise product.
func (q Quad) Mul(o Quad) Quad {
	return Quad{q[0] * o[0], q[1] * o[1], q[2] * o[2], q[3] * o[3]}
}

// Scale multiplies every lane by s.
func (q Quad) Scale(s float64) Quad {
	return Quad{q[0] * s, q[1] * s, q[2] * s, q[3] * s}
}

// Sum returns the sum of all lanes.
func (q Quad) Sum() float64 {
	return q[0] + q[1] + q[2] + q[3]
}

// Dot returns the inner product of q and o.
func (q Quad) Dot(o Quad) float64 {
	return q[0]*o[0] + q[1]*o[1] + q[2]*o[2] + q[3]*o[3]
}

// MaxAbs returns the largest lane magnitude.
func (q Quad) MaxAbs() float64 {
	peak := 0.0
	for _, v := range q {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	return peak
}

// FlushDenormals applies FlushDenormals to every lane.
func (q Quad) FlushDenormals() Quad {
	return Quad{FlushDenormals(q[0]), FlushDenormals(q[1]), FlushDenormals(q[2]), FlushDenormals(q[3])}
}

// Matrix4 is a row-major 4x4 matrix acting on a Quad.
type Matrix4 [4]Quad

// Apply returns m·q.
func (m *Matrix4) Apply(q Quad) Quad {
	return Quad{m[0].Dot(q), m[1].Dot(q), m[2].Dot(q), m[3].Dot(q)}
}
