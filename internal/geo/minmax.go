package geo

// MinMax is an inclusive (min, max) pair over a single climate
// variable's monthly values.
type MinMax struct {
	Min, Max float32
}

// Compute returns the (min, max) over values. Panics on an empty
// slice — every required climate variable has exactly 12 entries.
func Compute(values []float32) MinMax {
	if len(values) == 0 {
		panic("geo: Compute called with no values")
	}
	mm := MinMax{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		if v < mm.Min {
			mm.Min = v
		} else if v > mm.Max {
			mm.Max = v
		}
	}
	return mm
}

// Reduce combines two min/max pairs into one spanning both.
// Commutative and associative, so it's safe to fold over a slice in
// any order or in parallel chunks.
func Reduce(a, b MinMax) MinMax {
	min := a.Min
	if b.Min < min {
		min = b.Min
	}
	max := a.Max
	if b.Max > max {
		max = b.Max
	}
	return MinMax{Min: min, Max: max}
}

// Relative remaps arg into the [0,1] coordinate space of range, i.e.
// range.Min maps to 0 and range.Max maps to 1. Panics if range has
// zero or negative span (an invariant violation in the caller's
// data, not a runtime condition to recover from).
func Relative(arg, rng MinMax) MinMax {
	span := rng.Max - rng.Min
	if span <= 0 {
		panic("geo: invalid minmax range, zero or negative span")
	}
	return MinMax{
		Min: (arg.Min - rng.Min) / span,
		Max: (arg.Max - rng.Min) / span,
	}
}

// OptionalMinMax is a MinMax that may be entirely absent, e.g. when
// every monthly reading for a variable is missing for a city.
type OptionalMinMax struct {
	Value MinMax
	Valid bool
}

// ComputeOptional returns the (min, max) over the present values in
// values, or an invalid OptionalMinMax if every entry is missing.
func ComputeOptional(values []*float32) OptionalMinMax {
	var mm MinMax
	first := true
	for _, v := range values {
		if v == nil {
			continue
		}
		if first {
			mm = MinMax{Min: *v, Max: *v}
			first = false
			continue
		}
		if *v < mm.Min {
			mm.Min = *v
		} else if *v > mm.Max {
			mm.Max = *v
		}
	}
	return OptionalMinMax{Value: mm, Valid: !first}
}

// ReduceOptional combines two optional min/max pairs. The result is
// invalid iff both inputs are invalid.
func ReduceOptional(a, b OptionalMinMax) OptionalMinMax {
	if !a.Valid {
		return b
	}
	if !b.Valid {
		return a
	}
	return OptionalMinMax{Value: Reduce(a.Value, b.Value), Valid: true}
}

// RelativeOptional remaps an optional min/max pair, propagating
// invalidity.
func RelativeOptional(arg, rng OptionalMinMax) OptionalMinMax {
	if !arg.Valid || !rng.Valid {
		return OptionalMinMax{}
	}
	return OptionalMinMax{Value: Relative(arg.Value, rng.Value), Valid: true}
}
