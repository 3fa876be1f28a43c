package polyn

// Hermite basis functions for a cubic segment between p0 and p1 with
// tangents m0 and m1:
//
//	P(t) = h00(t)·p0 + h10(t)·m0 + h01(t)·p1 + h11(t)·m1
//
// with
//
//	h00 = 2t³ - 3t² + 1
//	h10 = t³ - 2t² + t
//	h01 = -2t³ + 3t²
//	h11 = t³ - t²
type Basis [4]Polynomial

// Index positions of the basis functions within a Basis.
const (
	H00 = iota // weight of p0
	H10        // weight of m0
	H01        // weight of p1
	H11        // weight of m1
)

// HermiteBasis returns the four cubic Hermite basis polynomials.
func HermiteBasis() Basis {
	return Basis{
		MustNew(1, X{2, -3}, X{3, 2}),
		MustNew(0, X{1, 1}, X{2, -2}, X{3, 1}),
		MustNew(0, X{2, 3}, X{3, -2}),
		MustNew(0, X{2, -1}, X{3, 1}),
	}
}

// Derivative returns the basis of first derivatives,
//
//	h00' = 6t² - 6t
//	h10' = 3t² - 4t + 1
//	h01' = -6t² + 6t
//	h11' = 3t² - 2t
func (b Basis) Derivative() Basis {
	var d Basis
	for i, h := range b {
		d[i] = h.Derivative()
	}
	return d
}

// Table flattens a basis into dense cubic coefficients, suitable for
// allocation-free evaluation in inner loops.
type Table [4][4]float64

// Table returns the dense coefficient table of b.
func (b Basis) Table() Table {
	var tab Table
	for i, h := range b {
		copy(tab[i][:], h.Coefficients(4))
	}
	return tab
}

// Weights evaluates all four basis functions at t.
func (tab *Table) Weights(t float64) [4]float64 {
	var w [4]float64
	for i := range tab {
		c := &tab[i]
		w[i] = ((c[3]*t+c[2])*t+c[1])*t + c[0]
	}
	return w
}
