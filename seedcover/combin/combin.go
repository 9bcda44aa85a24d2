// Copyright © 2023-2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package combin provides the small read-only lookup tables shared by the
// seed planner and the hash functions: binomial coefficients for n <= 64,
// and per-bit-width odd primes with their modular inverses.
package combin

import (
	"math"
	"math/big"
	"sync"

	"github.com/pkg/errors"
)

// MaxN is the largest n supported by Binomial.
const MaxN = 64

// ErrBinomialRange means n or k is out of the range of the binomial table.
var ErrBinomialRange = errors.New("combin: binomial coefficient out of range [0, 64]")

// ErrBitsRange means a bit width outside of [1, 64].
var ErrBitsRange = errors.New("combin: bit width out of range [1, 64]")

var binomials [MaxN + 1][MaxN + 1]uint64
var onceBinomials sync.Once

func initBinomials() {
	var n, k int
	for n = 0; n <= MaxN; n++ {
		binomials[n][0] = 1
		for k = 1; k <= n; k++ {
			binomials[n][k] = binomials[n-1][k-1] + binomials[n-1][k]
		}
	}
}

// Binomial returns n choose k. It returns 0 when k > n.
func Binomial(n, k int) (uint64, error) {
	if n < 0 || k < 0 || n > MaxN {
		return 0, errors.Wrapf(ErrBinomialRange, "n=%d, k=%d", n, k)
	}
	if k > n {
		return 0, nil
	}
	onceBinomials.Do(initBinomials)
	return binomials[n][k], nil
}

// MustBinomial is like Binomial but panics on out-of-range arguments.
func MustBinomial(n, k int) uint64 {
	v, err := Binomial(n, k)
	if err != nil {
		panic(err)
	}
	return v
}

// Mask returns a value with the lowest bits set.
func Mask(bits int) uint64 {
	if bits >= 64 {
		return math.MaxUint64
	}
	if bits <= 0 {
		return 0
	}
	return 1<<uint(bits) - 1
}

var primes [65]uint64
var inverses [65]uint64
var oncePrimes sync.Once

// 2^64 / golden ratio
const phi64 = 0x9E3779B97F4A7C15

func initPrimes() {
	p := new(big.Int)
	two := big.NewInt(2)
	for bits := 1; bits <= 64; bits++ {
		// floor(2^bits / phi), kept odd
		p.SetUint64(phi64 >> uint(64-bits))
		if p.Bit(0) == 0 {
			p.Add(p, big.NewInt(1))
		}
		if p.Cmp(two) <= 0 {
			p.SetUint64(3)
		}
		for !p.ProbablyPrime(20) {
			p.Add(p, two)
		}
		primes[bits] = p.Uint64()
		inverses[bits] = inverse64(primes[bits]) & Mask(bits)
	}
}

// inverse64 computes the inverse of an odd value modulo 2^64
// with Newton iterations, each doubling the number of correct bits.
func inverse64(a uint64) uint64 {
	x := a // correct to 3 bits for odd a
	for i := 0; i < 5; i++ {
		x *= 2 - a*x
	}
	return x
}

// Prime returns the fixed odd prime used to randomize hashes of the given width.
func Prime(bits int) uint64 {
	if bits < 1 || bits > 64 {
		panic(errors.Wrapf(ErrBitsRange, "bits: %d", bits))
	}
	oncePrimes.Do(initPrimes)
	return primes[bits]
}

// Inverse returns the inverse of Prime(bits) modulo 2^bits.
func Inverse(bits int) uint64 {
	if bits < 1 || bits > 64 {
		panic(errors.Wrapf(ErrBitsRange, "bits: %d", bits))
	}
	oncePrimes.Do(initPrimes)
	return inverses[bits]
}

// Randomize permutes a hash value of the given width.
func Randomize(h uint64, bits int) uint64 {
	return h * Prime(bits) & Mask(bits)
}

// Derandomize reverts Randomize.
func Derandomize(h uint64, bits int) uint64 {
	return h * Inverse(bits) & Mask(bits)
}
