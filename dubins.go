package main

import "math"

// Curvature-constrained local paths for the rigid-body space. A Dubins path
// between two (x, y, heading) configurations is the shortest sequence of at
// most three arc/straight segments a forward-only vehicle with minimum
// turning radius rho can drive.

type dubinsSegment int

const (
	segLeft dubinsSegment = iota
	segStraight
	segRight
)

// The six candidate words, in the canonical order LSL, LSR, RSL, RSR, RLR, LRL.
var dubinsWords = [6][3]dubinsSegment{
	{segLeft, segStraight, segLeft},
	{segLeft, segStraight, segRight},
	{segRight, segStraight, segLeft},
	{segRight, segStraight, segRight},
	{segRight, segLeft, segRight},
	{segLeft, segRight, segLeft},
}

// DubinsPath is a solved curvature-constrained local path. Segment lengths
// are stored normalized by rho.
type DubinsPath struct {
	start [3]float64
	seg   [3]float64
	rho   float64
	word  int
}

func mod2pi(theta float64) float64 {
	m := math.Mod(theta, 2*math.Pi)
	if m < 0 {
		m += 2 * math.Pi
	}
	return m
}

// normalizeAngle maps an angle into [-π, π).
func normalizeAngle(theta float64) float64 {
	m := mod2pi(theta)
	if m >= math.Pi {
		m -= 2 * math.Pi
	}
	return m
}

// dubinsInputs holds the transformed two-configuration problem shared by all
// six word constructors.
type dubinsInputs struct {
	alpha, beta, d float64
	sa, sb, ca, cb float64
	cab, dsq       float64
}

func newDubinsInputs(q0, q1 [3]float64, rho float64) dubinsInputs {
	dx, dy := q1[0]-q0[0], q1[1]-q0[1]
	d := math.Hypot(dx, dy) / rho

	theta := 0.0
	if d > 0 {
		theta = mod2pi(math.Atan2(dy, dx))
	}
	alpha, beta := mod2pi(q0[2]-theta), mod2pi(q1[2]-theta)

	return dubinsInputs{
		alpha: alpha, beta: beta, d: d,
		sa: math.Sin(alpha), sb: math.Sin(beta),
		ca: math.Cos(alpha), cb: math.Cos(beta),
		cab: math.Cos(alpha - beta), dsq: d * d,
	}
}

// buildWord computes normalized segment lengths for one word, reporting
// whether that word admits a solution for these inputs.
func buildWord(in dubinsInputs, word int) ([3]float64, bool) {
	switch word {
	case 0: // LSL
		tmp := in.d + in.sa - in.sb
		psq := 2 + in.dsq - 2*in.cab + 2*in.d*(in.sa-in.sb)
		if psq < 0 {
			return [3]float64{}, false
		}
		t := math.Atan2(in.cb-in.ca, tmp)
		return [3]float64{mod2pi(t - in.alpha), math.Sqrt(psq), mod2pi(in.beta - t)}, true
	case 1: // LSR
		psq := -2 + in.dsq + 2*in.cab + 2*in.d*(in.sa+in.sb)
		if psq < 0 {
			return [3]float64{}, false
		}
		t := math.Atan2(-in.ca-in.cb, in.d+in.sa+in.sb) - math.Atan2(-2, math.Sqrt(psq))
		return [3]float64{mod2pi(t - in.alpha), math.Sqrt(psq), mod2pi(t - in.beta)}, true
	case 2: // RSL
		psq := -2 + in.dsq + 2*in.cab - 2*in.d*(in.sa+in.sb)
		if psq < 0 {
			return [3]float64{}, false
		}
		t := math.Atan2(in.ca+in.cb, in.d-in.sa-in.sb) - math.Atan2(2, math.Sqrt(psq))
		return [3]float64{mod2pi(in.alpha - t), math.Sqrt(psq), mod2pi(in.beta - t)}, true
	case 3: // RSR
		tmp := in.d - in.sa + in.sb
		psq := 2 + in.dsq - 2*in.cab + 2*in.d*(in.sb-in.sa)
		if psq < 0 {
			return [3]float64{}, false
		}
		t := math.Atan2(in.ca-in.cb, tmp)
		return [3]float64{mod2pi(in.alpha - t), math.Sqrt(psq), mod2pi(t - in.beta)}, true
	case 4: // RLR
		tmp := (6 - in.dsq + 2*in.cab + 2*in.d*(in.sa-in.sb)) / 8
		if math.Abs(tmp) > 1 {
			return [3]float64{}, false
		}
		phi := math.Atan2(in.ca-in.cb, in.d-in.sa+in.sb)
		p := mod2pi(2*math.Pi - math.Acos(tmp))
		t := mod2pi(in.alpha - phi + mod2pi(p/2))
		return [3]float64{t, p, mod2pi(in.alpha - in.beta - t + mod2pi(p))}, true
	case 5: // LRL
		tmp := (6 - in.dsq + 2*in.cab + 2*in.d*(in.sb-in.sa)) / 8
		if math.Abs(tmp) > 1 {
			return [3]float64{}, false
		}
		phi := math.Atan2(in.ca-in.cb, in.d+in.sa-in.sb)
		p := mod2pi(2*math.Pi - math.Acos(tmp))
		t := mod2pi(-in.alpha - phi + mod2pi(p/2))
		return [3]float64{t, p, mod2pi(mod2pi(in.beta) - in.alpha - t + mod2pi(p))}, true
	}
	return [3]float64{}, false
}

// ShortestDubinsPath solves for the cheapest of the six words between two
// (x, y, heading) configurations at minimum turning radius rho. The second
// return is false only for degenerate inputs (rho <= 0 or no word admits a
// solution, which cannot happen for distinct configurations).
func ShortestDubinsPath(a, b Config, rho float64) (DubinsPath, bool) {
	if rho <= 0 {
		return DubinsPath{}, false
	}
	q0 := [3]float64{a[0], a[1], a[2]}
	q1 := [3]float64{b[0], b[1], b[2]}
	in := newDubinsInputs(q0, q1, rho)

	best := DubinsPath{start: q0, rho: rho, word: -1}
	bestCost := math.Inf(1)
	for word := 0; word < 6; word++ {
		seg, ok := buildWord(in, word)
		if !ok {
			continue
		}
		cost := seg[0] + seg[1] + seg[2]
		if cost < bestCost {
			bestCost = cost
			best.seg = seg
			best.word = word
		}
	}
	if best.word == -1 {
		return DubinsPath{}, false
	}
	return best, true
}

// Length returns the world-unit length of the path.
func (p DubinsPath) Length() float64 {
	return (p.seg[0] + p.seg[1] + p.seg[2]) * p.rho
}

// propagate advances a normalized pose by t along one segment type.
func propagate(t float64, q [3]float64, seg dubinsSegment) [3]float64 {
	st, ct := math.Sin(q[2]), math.Cos(q[2])
	var out [3]float64
	switch seg {
	case segLeft:
		out[0] = math.Sin(q[2]+t) - st
		out[1] = -math.Cos(q[2]+t) + ct
		out[2] = t
	case segRight:
		out[0] = -math.Sin(q[2]-t) + st
		out[1] = math.Cos(q[2]-t) - ct
		out[2] = -t
	case segStraight:
		out[0] = ct * t
		out[1] = st * t
	}
	out[0] += q[0]
	out[1] += q[1]
	out[2] += q[2]
	return out
}

// At returns the configuration at arc length t along the path, with t
// clamped to [0, Length].
func (p DubinsPath) At(t float64) Config {
	length := p.Length()
	if t < 0 {
		t = 0
	}
	if t > length {
		t = length
	}
	tp := t / p.rho
	word := dubinsWords[p.word]

	qi := [3]float64{0, 0, p.start[2]}
	q1 := propagate(p.seg[0], qi, word[0])
	q2 := propagate(p.seg[1], q1, word[1])

	var q [3]float64
	switch {
	case tp < p.seg[0]:
		q = propagate(tp, qi, word[0])
	case tp < p.seg[0]+p.seg[1]:
		q = propagate(tp-p.seg[0], q1, word[1])
	default:
		q = propagate(tp-p.seg[0]-p.seg[1], q2, word[2])
	}

	return Config{
		q[0]*p.rho + p.start[0],
		q[1]*p.rho + p.start[1],
		normalizeAngle(q[2]),
	}
}
