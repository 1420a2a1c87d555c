package sim

// Path is one simulated price trajectory. Path[0] is the initial price and
// len(Path) is horizon+1.
type Path []float64

// Terminal returns the last price of the path.
func (p Path) Terminal() float64 {
	return p[len(p)-1]
}

func newPath(initialPrice float64, days int) Path {
	p := make(Path, 1, days+1)
	p[0] = initialPrice
	return p
}
