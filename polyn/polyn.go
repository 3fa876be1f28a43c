// Package polyn is for arithmetic with polynomials in a single curve parameter t.
/*
BSD 3-Clause License

Copyright (c) 2017–21, Norbert Pillmayer.

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
   contributors may be used to endorse or promote products derived from
   this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package polyn

import (
	"bytes"
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/crspline"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the polynomials tracer.
func T() tracing.Trace {
	return tracing.Select("crspline.polyn")
}

// X is a helper for quick construction of polynomials.
// It denotes a term
//
//	C⋅t^I
//
// I > 0
type X struct {
	I int     // exponent of t
	C float64 // coefficient
}

// New creates a polynomial, given the term coefficients and exponents.
//
// Use it as
//
//	polyn.New(1, polyn.X{2,-3}, polyn.X{3,2})
//
// to get
//
//	P(t) = 1 - 3t² + 2t³
func New(c float64, tms ...X) (Polynomial, error) {
	p := NewConstantPolynomial(c)
	var err error
	for _, t := range tms {
		if t.I < 1 {
			err = fmt.Errorf("term exponent must be at least 1, skipping it")
			T().Errorf("polynomial term with exponent %d skipped", t.I)
		} else {
			p.SetTerm(t.I, p.GetCoeffForTerm(t.I)+t.C)
		}
	}
	return p.Zap(), err
}

// MustNew is like New, but panics on malformed terms.
func MustNew(c float64, tms ...X) Polynomial {
	p, err := New(c, tms...)
	if err != nil {
		panic(err)
	}
	return p
}

// Polynomial is a type for polynomials in one parameter
//
//	c + a.1 t + a.2 t² + ... a.n tⁿ .
//
// We store the coefficients only. Index 0 is the constant term.
// We store the coeffs in a TreeMap (sorted map), keyed by exponent.
type Polynomial struct {
	Terms *treemap.Map
}

// NewConstantPolynomial creates a Polynomial consisting of just a constant term.
func NewConstantPolynomial(c float64) Polynomial {
	p := Polynomial{}
	p.checkTerms()
	p.Terms.Put(0, c) // initialize with constant term (at position 0)
	return p.Zap()
}

func (p *Polynomial) checkTerms() {
	if p.Terms == nil {
		p.Terms = treemap.NewWithIntComparator()
	}
}

// SetTerm sets the coefficient for a term a.i within a Polynomial.
// For i=0, sets the constant term.
func (p Polynomial) SetTerm(i int, scale float64) Polynomial {
	p.checkTerms()
	p.Terms.Put(i, scale)
	return p
}

// CopyPolynomial makes a copy of a Polynomial.
func (p Polynomial) CopyPolynomial() Polynomial {
	p1 := NewConstantPolynomial(0.0) // will become our return value
	p.checkTerms()
	it := p.Terms.Iterator()
	for it.Next() { // copy all terms of p into p1
		p1.SetTerm(it.Key().(int), it.Value().(float64))
	}
	return p1
}

// Internal method: add or subtract 2 polynomials. The high level methods
// are based on this one.
// Flag doAdd signals addition or subtraction.
func (p Polynomial) addOrSub(p2 Polynomial, doAdd bool) Polynomial {
	p1 := p.CopyPolynomial() // will become our return value
	p2.checkTerms()
	it2 := p2.Terms.Iterator()
	for it2.Next() { // inspect all terms of p2
		pos2 := it2.Key().(int)
		scale2 := it2.Value().(float64)
		scale1 := p1.GetCoeffForTerm(pos2)
		if doAdd {
			scale1 += scale2
		} else {
			scale1 -= scale2
		}
		p1.SetTerm(pos2, scale1)
	}
	return p1.Zap()
}

// Add adds two Polynomials. Returns a new Polynomial.
func (p Polynomial) Add(p2 Polynomial) Polynomial {
	return p.addOrSub(p2, true)
}

// Subtract subtracts two Polynomials. Returns a new Polynomial.
func (p Polynomial) Subtract(p2 Polynomial) Polynomial {
	return p.addOrSub(p2, false)
}

// Scale multiplies every coefficient by c. Returns a new Polynomial.
func (p Polynomial) Scale(c float64) Polynomial {
	p1 := p.CopyPolynomial()
	for _, i := range p1.Exponents() {
		p1.SetTerm(i, p1.GetCoeffForTerm(i)*c)
	}
	return p1.Zap()
}

// Derivative returns dP/dt as a new Polynomial.
func (p Polynomial) Derivative() Polynomial {
	d := NewConstantPolynomial(0.0)
	p.checkTerms()
	it := p.Terms.Iterator()
	for it.Next() {
		i := it.Key().(int)
		if i == 0 {
			continue
		}
		d.SetTerm(i-1, float64(i)*it.Value().(float64))
	}
	return d.Zap()
}

// Zap eliminates all terms with coefficient=0 from a polynomial.
func (p Polynomial) Zap() Polynomial {
	p.checkTerms()
	positions := p.Terms.Keys()     // all terms of p
	for _, pos := range positions { // inspect terms
		if scale, _ := p.Terms.Get(pos); crspline.Is0(scale.(float64)) {
			p.Terms.Remove(pos) // may lose constant term c
		}
	}
	if _, ok := p.Terms.Get(0); !ok {
		p.Terms.Put(0, 0.0) // re-introduce c
	}
	return p
}

// IsConstant checks wether
// a Polynomial is a constant, i.e. p = { c }? Returns the constant and a flag.
func (p Polynomial) IsConstant() (float64, bool) {
	p.checkTerms()
	return p.GetCoeffForTerm(0), p.Terms.Size() == 1
}

// GetCoeffForTerm gets the coefficient for term # i.
//
// Example:
//
//	p = 1 + 3t²
//
// ⇒
//
//	coeff(2) = 3
func (p Polynomial) GetCoeffForTerm(i int) float64 {
	p.checkTerms()
	if sc, found := p.Terms.Get(i); found {
		return sc.(float64)
	}
	return 0.0
}

// Exponents returns the exponents of all stored terms, in ascending order.
func (p Polynomial) Exponents() []int {
	p.checkTerms()
	keys := p.Terms.Keys()
	exps := make([]int, len(keys))
	for k, key := range keys {
		exps[k] = key.(int)
	}
	return exps
}

// Degree returns the highest exponent with a non-zero coefficient.
// A constant polynomial has degree 0.
func (p Polynomial) Degree() int {
	p.checkTerms()
	if k, _ := p.Terms.Max(); k != nil {
		return k.(int)
	}
	return 0
}

// Coefficients returns the coefficients a.0 … a.(n-1) as a dense slice.
// Terms of degree n or higher are not included.
func (p Polynomial) Coefficients(n int) []float64 {
	c := make([]float64, n)
	p.checkTerms()
	it := p.Terms.Iterator()
	for it.Next() {
		if i := it.Key().(int); i < n {
			c[i] = it.Value().(float64)
		}
	}
	return c
}

// Eval evaluates p at t, using Horner's scheme.
func (p Polynomial) Eval(t float64) float64 {
	return Horner(p.Coefficients(p.Degree()+1), t)
}

// Horner evaluates the polynomial with dense coefficients c (c[i] belongs
// to tⁱ) at t.
func Horner(c []float64, t float64) float64 {
	v := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		v = v*t + c[i]
	}
	return v
}

// String creates a readable string representation for a Polynomial,
// e.g. "1 - 3t^2 + 2t^3".
func (p Polynomial) String() string {
	var buffer bytes.Buffer
	p.checkTerms()
	it := p.Terms.Iterator()
	first := true
	for it.Next() {
		pos := it.Key().(int)
		scale := it.Value().(float64)
		if pos > 0 && crspline.Is0(scale) {
			continue
		}
		if pos == 0 && crspline.Is0(scale) && p.Terms.Size() > 1 {
			continue
		}
		if first {
			if scale < 0 {
				buffer.WriteString("-")
			}
		} else if scale < 0 {
			buffer.WriteString(" - ")
		} else {
			buffer.WriteString(" + ")
		}
		first = false
		a := scale
		if a < 0 {
			a = -a
		}
		switch {
		case pos == 0:
			buffer.WriteString(fmt.Sprintf("%g", a))
		case !crspline.Is1(a):
			buffer.WriteString(fmt.Sprintf("%g", a))
			fallthrough
		default:
			buffer.WriteString("t")
			if pos > 1 {
				buffer.WriteString(fmt.Sprintf("^%d", pos))
			}
		}
	}
	return buffer.String()
}
