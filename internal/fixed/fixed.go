// Package fixed implements 26.6 fixed-point arithmetic: a 32-bit signed
// integer with 6 fractional bits, giving 1/64 pixel precision. It is the
// coordinate currency used throughout the Bézier flattener and scan
// converter (see the raster package), the same way outline fonts
// themselves are hinted and scan-converted in fixed point.
package fixed

// Int is a 26.6 fixed-point number: bits [5:0] are the fractional part,
// the rest is the signed integer part. Total ordering equals integer
// ordering on the backing representation.
type Int int32

// FracBits is the number of fractional bits.
const FracBits = 6

// FracMask masks out the fractional bits (0..63).
const FracMask = 1<<FracBits - 1

const (
	// Zero is the additive identity.
	Zero Int = 0
	// One is 1.0 in 26.6 (64).
	One Int = 1 << FracBits
	// Half is 0.5 in 26.6 (32).
	Half Int = 1 << (FracBits - 1)
)

// FromInt converts an integer to 26.6 fixed point.
func FromInt(n int) Int {
	return Int(n << FracBits)
}

// FromFloat64 converts a float64 to 26.6 fixed point by truncating the
// 2⁻⁶-scaled value. It is not required to round half-to-even.
func FromFloat64(x float64) Int {
	return Int(x * 64)
}

// ToInt truncates toward negative infinity (arithmetic right shift).
func (x Int) ToInt() int {
	return int(x >> FracBits)
}

// ToIntRound rounds to the nearest integer, ties rounding toward positive
// infinity (matches adding Half then truncating).
func (x Int) ToIntRound() int {
	return int((x + Half) >> FracBits)
}

// Frac returns the fractional part, always in [0, 64).
func (x Int) Frac() Int {
	return x & FracMask
}

// ToFloat64 converts back to a float64.
func (x Int) ToFloat64() float64 {
	return float64(x) / 64
}

// Floor snaps down to the nearest integer boundary.
func (x Int) Floor() Int {
	return x &^ FracMask
}

// Ceil snaps up to the nearest integer boundary.
func (x Int) Ceil() Int {
	if x&FracMask == 0 {
		return x
	}
	return (x &^ FracMask) + One
}

// Add is saturating addition.
func (x Int) Add(y Int) Int {
	return saturate(int64(x) + int64(y))
}

// Sub is saturating subtraction.
func (x Int) Sub(y Int) Int {
	return saturate(int64(x) - int64(y))
}

// Mul multiplies two 26.6 values via a 64-bit intermediate: (a*b) >> 6.
func (x Int) Mul(y Int) Int {
	return Int((int64(x) * int64(y)) >> FracBits)
}

// Div divides two 26.6 values via a 64-bit intermediate: (a << 6) / b.
func (x Int) Div(y Int) Int {
	return Int((int64(x) << FracBits) / int64(y))
}

// Abs returns the absolute value.
func (x Int) Abs() Int {
	if x < 0 {
		return -x
	}
	return x
}

func saturate(v int64) Int {
	const maxVal = int64(1<<31 - 1)
	const minVal = -int64(1 << 31)
	if v > maxVal {
		return Int(maxVal)
	}
	if v < minVal {
		return Int(minVal)
	}
	return Int(v)
}
