package geometry

import (
	"fmt"
	"math"
)

type Vector struct {
	X, Y, Z float64
}

func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// Transform is the affine transformation of a part reference:
// a 3x3 rotation/scale matrix followed by a translation.
type Transform struct {
	M [3][3]float64
	T Vector
}

func Identity() Transform {
	return Transform{M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// NewTransform creates a transform from the twelve values in
// LDraw line order: x y z a b c d e f g h i.
func NewTransform(v [12]float64) Transform {
	return Transform{
		T: Vector{v[0], v[1], v[2]},
		M: [3][3]float64{
			{v[3], v[4], v[5]},
			{v[6], v[7], v[8]},
			{v[9], v[10], v[11]},
		},
	}
}

// Values returns the twelve components in LDraw line order.
func (t Transform) Values() [12]float64 {
	return [12]float64{
		t.T.X, t.T.Y, t.T.Z,
		t.M[0][0], t.M[0][1], t.M[0][2],
		t.M[1][0], t.M[1][1], t.M[1][2],
		t.M[2][0], t.M[2][1], t.M[2][2],
	}
}

func (t Transform) Apply(v Vector) Vector {
	return Vector{
		t.M[0][0]*v.X + t.M[0][1]*v.Y + t.M[0][2]*v.Z + t.T.X,
		t.M[1][0]*v.X + t.M[1][1]*v.Y + t.M[1][2]*v.Z + t.T.Y,
		t.M[2][0]*v.X + t.M[2][1]*v.Y + t.M[2][2]*v.Z + t.T.Z,
	}
}

// Compose returns the transform applying child first and t afterwards.
func (t Transform) Compose(child Transform) Transform {
	var r Transform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.M[i][j] = t.M[i][0]*child.M[0][j] + t.M[i][1]*child.M[1][j] + t.M[i][2]*child.M[2][j]
		}
	}
	r.T = t.Apply(child.T)
	return r
}

func (t Transform) Determinant() float64 {
	m := t.M
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Mirrors reports whether the transform flips the orientation of
// the geometry, which swaps the winding of all faces.
func (t Transform) Mirrors() bool {
	return t.Determinant() < 0
}

func (t Transform) IsIdentity() bool {
	return t == Identity()
}

func (t Transform) Equal(o Transform, eps float64) bool {
	a, b := t.Values(), o.Values()
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
