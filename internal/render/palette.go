package render

// palette approximates the seaborn "flare" colormap used for the original
// maps: pale orange through red into deep plum. Stops are evenly spaced.
type palette struct {
	stops [][3]float64
}

func flarePalette() palette {
	return palette{stops: [][3]float64{
		{0.925, 0.616, 0.443},
		{0.886, 0.443, 0.416},
		{0.757, 0.306, 0.431},
		{0.557, 0.243, 0.459},
		{0.349, 0.184, 0.380},
	}}
}

// at returns the interpolated color for t in [0, 1]; out-of-range values
// clamp to the endpoints, which is what a capped color scale needs.
func (p palette) at(t float64) (r, g, b float64) {
	if t <= 0 {
		s := p.stops[0]
		return s[0], s[1], s[2]
	}
	if t >= 1 {
		s := p.stops[len(p.stops)-1]
		return s[0], s[1], s[2]
	}

	scaled := t * float64(len(p.stops)-1)
	i := int(scaled)
	frac := scaled - float64(i)
	lo, hi := p.stops[i], p.stops[i+1]
	return lo[0] + frac*(hi[0]-lo[0]),
		lo[1] + frac*(hi[1]-lo[1]),
		lo[2] + frac*(hi[2]-lo[2])
}
