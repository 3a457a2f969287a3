package atlas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

type RegionClass int

const (
	RegionEmpty RegionClass = iota
	RegionFineTuned
	RegionRobust
)

func (c RegionClass) String() string {
	switch c {
	case RegionEmpty:
		return "empty"
	case RegionFineTuned:
		return "fine-tuned"
	case RegionRobust:
		return "robust"
	default:
		return "unknown"
	}
}

// Region is the robust-region summary for a sweep result: the θ points
// hitting the target count, whether they form an open neighbourhood
// rather than a measure-zero sliver, and the gap-margin statistics over
// the members.
type Region struct {
	Target   int
	Members  []int // flat lattice indices with status OK and N_bound == target
	Interior []int // members whose full index ball stays inside the region
	Class    RegionClass

	VolumeFraction      float64
	MarginMin           float64
	MarginMean          float64
	MarginStd           float64
	MaxBoundaryDistance int
}

// Region classifies the sweep result. A member is interior when every
// lattice point within radius index steps along every swept axis exists
// and is itself a member with margin at or above marginThreshold; the
// region is robust when at least one interior point exists.
func (r *Result) Region(radius int, marginThreshold float64) *Region {
	if radius < 1 {
		radius = 1
	}
	lat := Lattice{Axes: r.Axes}

	member := make([]bool, len(r.Points))
	reg := &Region{Target: r.Target, MarginMin: math.Inf(1)}
	var margins []float64
	for flat, p := range r.Points {
		if p.Status == StatusOK && p.NBound == r.Target {
			member[flat] = true
			reg.Members = append(reg.Members, flat)
			margins = append(margins, p.Margin)
			reg.MarginMin = math.Min(reg.MarginMin, p.Margin)
		}
	}

	if len(reg.Members) == 0 {
		reg.Class = RegionEmpty
		reg.MarginMin = 0
		return reg
	}

	reg.VolumeFraction = float64(len(reg.Members)) / float64(lat.Size())
	reg.MarginMean = stat.Mean(margins, nil)
	if len(margins) > 1 {
		reg.MarginStd = stat.StdDev(margins, nil)
	}

	for _, flat := range reg.Members {
		if r.ballInside(lat, member, flat, radius, marginThreshold) {
			reg.Interior = append(reg.Interior, flat)
		}
	}
	if len(reg.Interior) > 0 {
		reg.Class = RegionRobust
	} else {
		reg.Class = RegionFineTuned
	}

	for _, flat := range reg.Members {
		d := r.boundaryDistance(lat, member, flat)
		if d > reg.MaxBoundaryDistance {
			reg.MaxBoundaryDistance = d
		}
	}
	return reg
}

func (r *Result) ballInside(lat Lattice, member []bool, flat, radius int, marginThreshold float64) bool {
	center := lat.At(flat)
	ok := true
	r.walkBall(lat, center, radius, func(nflat int) {
		p := &r.Points[nflat]
		if !member[nflat] || p.Margin < marginThreshold {
			ok = false
		}
	}, func() { ok = false })
	return ok
}

// boundaryDistance is the largest radius whose full index ball around the
// point stays inside the region and the lattice.
func (r *Result) boundaryDistance(lat Lattice, member []bool, flat int) int {
	center := lat.At(flat)
	maxDim := 0
	for _, ax := range lat.Axes {
		if len(ax.Values) > maxDim {
			maxDim = len(ax.Values)
		}
	}
	for radius := 1; radius <= maxDim; radius++ {
		ok := true
		r.walkBall(lat, center, radius, func(nflat int) {
			if !member[nflat] {
				ok = false
			}
		}, func() { ok = false })
		if !ok {
			return radius - 1
		}
	}
	return maxDim
}

// walkBall visits every lattice point within Chebyshev index distance
// radius of center along the swept axes; outside calls the escape hatch
// for offsets leaving the lattice.
func (r *Result) walkBall(lat Lattice, center []int, radius int, visit func(flat int), outside func()) {
	dims := len(lat.Axes)
	offset := make([]int, dims)
	for d := range offset {
		offset[d] = -radius
	}
	idx := make([]int, dims)
	for {
		inLattice := true
		for d := range idx {
			// axes with a single value do not contribute to the ball
			if len(lat.Axes[d].Values) == 1 {
				idx[d] = center[d]
				continue
			}
			idx[d] = center[d] + offset[d]
			if idx[d] < 0 || idx[d] >= len(lat.Axes[d].Values) {
				inLattice = false
			}
		}
		if inLattice {
			visit(lat.Flat(idx))
		} else {
			outside()
		}

		d := dims - 1
		for d >= 0 {
			offset[d]++
			if offset[d] <= radius {
				break
			}
			offset[d] = -radius
			d--
		}
		if d < 0 {
			return
		}
	}
}
