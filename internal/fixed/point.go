package fixed

// Point is a 2D point in 26.6 fixed-point coordinates.
type Point struct {
	X, Y Int
}

// Pt builds a Point from two Int coordinates.
func Pt(x, y Int) Point {
	return Point{X: x, Y: y}
}
