// pkg/utils/math.go
package utils

import "math"

// Vector2D is a point or direction in world space.
type Vector2D struct {
	X, Y float64
}

// Add returns v + o.
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by k.
func (v Vector2D) Scale(k float64) Vector2D {
	return Vector2D{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vector2D) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// IsZero reports whether both components are zero.
func (v Vector2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Angle returns the direction of v in radians.
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle builds a vector of the given length pointing at angle.
func FromAngle(angle, length float64) Vector2D {
	return Vector2D{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Distance computes the Euclidean distance between a and b.
func Distance(a, b Vector2D) float64 {
	return a.Sub(b).Len()
}

// Normalize returns a unit vector in the direction of v.
// The zero vector normalizes to itself.
func Normalize(v Vector2D) Vector2D {
	l := v.Len()
	if l == 0 {
		return Vector2D{}
	}
	return Vector2D{X: v.X / l, Y: v.Y / l}
}

// Direction returns the unit vector pointing from a to b.
func Direction(from, to Vector2D) Vector2D {
	return Normalize(to.Sub(from))
}

// IsColliding treats both objects as circles with diameters sizeA and sizeB.
func IsColliding(posA Vector2D, sizeA float64, posB Vector2D, sizeB float64) bool {
	return Distance(posA, posB) < sizeA/2+sizeB/2
}

// StepToward moves from toward to by at most step, snapping onto the target
// when it is closer than step.
func StepToward(from, to Vector2D, step float64) Vector2D {
	if Distance(from, to) < step {
		return to
	}
	return from.Add(Direction(from, to).Scale(step))
}
