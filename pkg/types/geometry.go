package types

// Point is a position in internal units.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a width and height in internal units.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}
