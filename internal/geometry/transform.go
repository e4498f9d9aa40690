package geometry

import (
	"math"

	"fyne.io/fyne/v2"
)

// Transform is a 2D affine transform. A point maps to
// (A*x + C*y + Tx, B*x + D*y + Ty).
type Transform struct {
	A, B, C, D float32
	Tx, Ty     float32
}

// Identity leaves every point where it is.
var Identity = Transform{A: 1, D: 1}

// Scale returns a transform scaling by sx, sy.
func Scale(sx, sy float32) Transform {
	return Transform{A: sx, D: sy}
}

// Translate returns a transform moving by tx, ty.
func Translate(tx, ty float32) Transform {
	return Transform{A: 1, D: 1, Tx: tx, Ty: ty}
}

// Concat returns the transform that applies t and then o.
func (t Transform) Concat(o Transform) Transform {
	return Transform{
		A:  t.A*o.A + t.B*o.C,
		B:  t.A*o.B + t.B*o.D,
		C:  t.C*o.A + t.D*o.C,
		D:  t.C*o.B + t.D*o.D,
		Tx: t.Tx*o.A + t.Ty*o.C + o.Tx,
		Ty: t.Tx*o.B + t.Ty*o.D + o.Ty,
	}
}

// IsIdentity reports whether t is the identity transform.
func (t Transform) IsIdentity() bool {
	return t == Identity
}

// Point transforms a single point.
func (t Transform) Point(p fyne.Position) fyne.Position {
	return fyne.NewPos(t.A*p.X+t.C*p.Y+t.Tx, t.B*p.X+t.D*p.Y+t.Ty)
}

// ApplyRect transforms r about its own centre, the way a view transform is
// applied, and returns the bounding box of the result.
func (t Transform) ApplyRect(r Rect) Rect {
	if t.IsIdentity() {
		return r
	}
	c := r.Center()
	hw, hh := r.Size.Width/2, r.Size.Height/2
	corners := [4]fyne.Position{
		t.Point(fyne.NewPos(-hw, -hh)),
		t.Point(fyne.NewPos(hw, -hh)),
		t.Point(fyne.NewPos(-hw, hh)),
		t.Point(fyne.NewPos(hw, hh)),
	}
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, p := range corners {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return NewRect(c.X+minX, c.Y+minY, maxX-minX, maxY-minY)
}
