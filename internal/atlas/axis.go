package atlas

// Reserved axis names binding to the domain and boundary conditions
// instead of potential parameters.
const (
	AxisKappaLeft  = "kappa_l"
	AxisKappaRight = "kappa_r"
	AxisXMax       = "x_max"
	AxisNGrid      = "n_grid"
)

// Axis is one sweep dimension: a parameter name and the values it takes.
type Axis struct {
	Name   string
	Values []float64
}

// NewAxis builds an axis of evenly spaced values over [min, max].
func NewAxis(name string, min, max float64, steps int) Axis {
	if steps < 1 {
		steps = 1
	}
	values := make([]float64, steps)
	if steps == 1 {
		values[0] = min
	} else {
		d := (max - min) / float64(steps-1)
		for i := range values {
			values[i] = min + float64(i)*d
		}
	}
	return Axis{Name: name, Values: values}
}

// ListAxis builds an axis from an explicit value list.
func ListAxis(name string, values []float64) Axis {
	return Axis{Name: name, Values: append([]float64(nil), values...)}
}

// Lattice iterates the Cartesian product of the axes in axis order.
type Lattice struct {
	Axes []Axis
}

// Size is the number of lattice points.
func (l Lattice) Size() int {
	n := 1
	for _, ax := range l.Axes {
		n *= len(ax.Values)
	}
	return n
}

// At unpacks a flat index into per-axis indices, last axis fastest.
func (l Lattice) At(flat int) []int {
	idx := make([]int, len(l.Axes))
	for d := len(l.Axes) - 1; d >= 0; d-- {
		n := len(l.Axes[d].Values)
		idx[d] = flat % n
		flat /= n
	}
	return idx
}

// Flat is the inverse of At.
func (l Lattice) Flat(idx []int) int {
	flat := 0
	for d, ax := range l.Axes {
		flat = flat*len(ax.Values) + idx[d]
	}
	return flat
}

// ValuesAt resolves the parameter values at the given per-axis indices.
func (l Lattice) ValuesAt(idx []int) map[string]float64 {
	theta := make(map[string]float64, len(l.Axes))
	for d, ax := range l.Axes {
		theta[ax.Name] = ax.Values[idx[d]]
	}
	return theta
}
