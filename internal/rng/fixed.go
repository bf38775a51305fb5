package rng

// Fixed replays a scripted sequence of float draws and int draws. Once a
// sequence is exhausted it repeats its last value, so tests stay
// deterministic no matter how many draws an engine makes.
type Fixed struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

func (f *Fixed) Float64() float64 {
	if len(f.Floats) == 0 {
		return 0.5
	}
	v := f.Floats[f.fi]
	if f.fi < len(f.Floats)-1 {
		f.fi++
	}
	return v
}

func (f *Fixed) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if len(f.Ints) == 0 {
		return 0
	}
	v := f.Ints[f.ii]
	if f.ii < len(f.Ints)-1 {
		f.ii++
	}
	return v % n
}
