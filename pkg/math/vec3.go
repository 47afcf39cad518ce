package math

import (
	"fmt"
	"math"
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// One is the unit scale.
var One = Vec3{1, 1, 1}

// Splat returns a vector with all components set to s.
func Splat(s float32) Vec3 {
	return Vec3{s, s, s}
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise product.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Lerp interpolates toward other. t=0 yields v and t=1 yields other exactly.
func (v Vec3) Lerp(other Vec3, t float32) Vec3 {
	return Vec3{Lerp(v.X, other.X, t), Lerp(v.Y, other.Y, t), Lerp(v.Z, other.Z, t)}
}

// Min returns the smallest component.
func (v Vec3) Min() float32 {
	return min(v.X, v.Y, v.Z)
}

// Array returns the components as an array, the layout mathgl expects.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
