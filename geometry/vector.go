package geometry

import "math"

// Vector2 is a displacement in the 2D plane.
type Vector2 struct {
	X, Y float64
}

// Dot returns the dot product of v and other.
func (v Vector2) Dot(other Vector2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Norm returns the Euclidean norm of v.
func (v Vector2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Scale returns v scaled by s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Vector3 is a displacement in 3D space.
type Vector3 struct {
	X, Y, Z float64
}

// Dot returns the dot product of v and other.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of v and other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Norm returns the Euclidean norm of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Scale returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}
