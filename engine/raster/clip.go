package raster

import (
	"github.com/go-gl/mathgl/mgl32"
)

// clipVertex is a vertex after the model and view-projection transforms.
type clipVertex struct {
	clip   mgl32.Vec4
	world  mgl32.Vec3
	normal mgl32.Vec3
	uv     mgl32.Vec2
}

func lerpVertex(a, b clipVertex, t float32) clipVertex {
	return clipVertex{
		clip:   a.clip.Add(b.clip.Sub(a.clip).Mul(t)),
		world:  a.world.Add(b.world.Sub(a.world).Mul(t)),
		normal: a.normal.Add(b.normal.Sub(a.normal).Mul(t)),
		uv:     a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
	}
}

// clipNear clips a triangle against the near plane (clip z >= 0) and returns the resulting convex
// polygon, which has zero, three or four vertices.
func clipNear(tri [3]clipVertex) []clipVertex {
	out := make([]clipVertex, 0, 4)
	for i := range 3 {
		cur, next := tri[i], tri[(i+1)%3]
		curIn, nextIn := cur.clip[2] >= 0, next.clip[2] >= 0
		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			t := cur.clip[2] / (cur.clip[2] - next.clip[2])
			out = append(out, lerpVertex(cur, next, t))
		}
	}
	return out
}

// screenVertex is a vertex mapped to pixel space. Attributes are premultiplied by invW so they can
// be interpolated linearly in screen space and divided back per fragment.
type screenVertex struct {
	x, y, z float32
	invW    float32
	world   mgl32.Vec3
	normal  mgl32.Vec3
	uv      mgl32.Vec2
}

func toScreen(v clipVertex, width, height int) screenVertex {
	invW := 1 / v.clip[3]
	ndcX, ndcY := v.clip[0]*invW, v.clip[1]*invW
	return screenVertex{
		x:      (ndcX*0.5 + 0.5) * float32(width),
		y:      (0.5 - ndcY*0.5) * float32(height),
		z:      v.clip[2] * invW,
		invW:   invW,
		world:  v.world.Mul(invW),
		normal: v.normal.Mul(invW),
		uv:     v.uv.Mul(invW),
	}
}
