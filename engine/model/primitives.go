package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NewPlane creates a rectangle in the XY plane facing +Z, centered on the origin.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//
// Returns:
//   - *Geometry: a two-triangle plane
func NewPlane(width, height float32) *Geometry {
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	verts := []GPUVertex{
		{Position: [3]float32{-hw, hh, 0}, Normal: n, TexCoord: [2]float32{0, 1}},
		{Position: [3]float32{hw, hh, 0}, Normal: n, TexCoord: [2]float32{1, 1}},
		{Position: [3]float32{-hw, -hh, 0}, Normal: n, TexCoord: [2]float32{0, 0}},
		{Position: [3]float32{hw, -hh, 0}, Normal: n, TexCoord: [2]float32{1, 0}},
	}
	return NewGeometry(WithName("plane"), WithVertices(verts), WithIndices([]uint32{0, 2, 1, 2, 3, 1}))
}

// boxFace describes one side of a box: its outward normal and two in-plane axes with u x v = normal.
type boxFace struct {
	normal, u, v mgl32.Vec3
}

var boxFaces = [6]boxFace{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
}

// NewBox creates an axis aligned box centered on the origin. Each face has its own four vertices
// so normals and UVs stay per face.
//
// Parameters:
//   - width, height, depth: extents along X, Y and Z
//
// Returns:
//   - *Geometry: a 12-triangle box
func NewBox(width, height, depth float32) *Geometry {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	verts := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range boxFaces {
		base := uint32(len(verts))
		for _, c := range corners {
			p := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1]))
			verts = append(verts, GPUVertex{
				Position: [3]float32{p[0] * half[0], p[1] * half[1], p[2] * half[2]},
				Normal:   f.normal,
				TexCoord: [2]float32{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewGeometry(WithName("box"), WithVertices(verts), WithIndices(indices))
}

// NewSphere creates a UV sphere centered on the origin.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: segments around the Y axis (minimum 3)
//   - heightSegments: segments from pole to pole (minimum 2)
//
// Returns:
//   - *Geometry: the sphere
func NewSphere(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	var verts []GPUVertex
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi
		grid[iy] = make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			n := [3]float32{
				float32(-math.Cos(phi) * math.Sin(theta)),
				float32(math.Cos(theta)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			grid[iy][ix] = uint32(len(verts))
			verts = append(verts, GPUVertex{
				Position: mgl32.Vec3(n).Mul(radius),
				Normal:   n,
				TexCoord: [2]float32{float32(u), float32(1 - v)},
			})
		}
	}

	var indices []uint32
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	return NewGeometry(WithName("sphere"), WithVertices(verts), WithIndices(indices))
}

// NewTorus creates a ring in the XY plane centered on the origin.
//
// Parameters:
//   - radius: distance from the center to the middle of the tube
//   - tube: tube radius
//   - radialSegments: segments around the tube (minimum 3)
//   - tubularSegments: segments around the ring (minimum 3)
//
// Returns:
//   - *Geometry: the torus
func NewTorus(radius, tube float32, radialSegments, tubularSegments int) *Geometry {
	radialSegments = max(radialSegments, 3)
	tubularSegments = max(tubularSegments, 3)

	var verts []GPUVertex
	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * math.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi
			ring := float64(radius) + float64(tube)*math.Cos(v)
			p := mgl32.Vec3{
				float32(ring * math.Cos(u)),
				float32(ring * math.Sin(u)),
				float32(float64(tube) * math.Sin(v)),
			}
			center := mgl32.Vec3{
				float32(float64(radius) * math.Cos(u)),
				float32(float64(radius) * math.Sin(u)),
				0,
			}
			verts = append(verts, GPUVertex{
				Position: p,
				Normal:   p.Sub(center).Normalize(),
				TexCoord: [2]float32{float32(i) / float32(tubularSegments), float32(j) / float32(radialSegments)},
			})
		}
	}

	stride := uint32(tubularSegments + 1)
	var indices []uint32
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := stride*j + i - 1
			b := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return NewGeometry(WithName("torus"), WithVertices(verts), WithIndices(indices))
}

// NewOctahedron creates a regular octahedron with vertices on a sphere of the given radius.
//
// Parameters:
//   - radius: circumscribed radius
//
// Returns:
//   - *Geometry: eight faceted triangles
func NewOctahedron(radius float32) *Geometry {
	points := []mgl32.Vec3{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
	}
	faces := []uint32{
		0, 2, 4, 0, 4, 3, 0, 3, 5, 0, 5, 2,
		1, 2, 5, 1, 5, 3, 1, 3, 4, 1, 4, 2,
	}
	return polyhedron("octahedron", points, faces, radius)
}

// NewDodecahedron creates a regular dodecahedron with vertices on a sphere of the given radius.
// Each pentagon is split into three triangles.
//
// Parameters:
//   - radius: circumscribed radius
//
// Returns:
//   - *Geometry: thirty-six faceted triangles
func NewDodecahedron(radius float32) *Geometry {
	t := float32((1 + math.Sqrt(5)) / 2)
	r := 1 / t
	points := []mgl32.Vec3{
		{-1, -1, -1}, {-1, -1, 1}, {-1, 1, -1}, {-1, 1, 1},
		{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
		{0, -r, -t}, {0, -r, t}, {0, r, -t}, {0, r, t},
		{-r, -t, 0}, {-r, t, 0}, {r, -t, 0}, {r, t, 0},
		{-t, 0, -r}, {t, 0, -r}, {-t, 0, r}, {t, 0, r},
	}
	faces := []uint32{
		3, 11, 7, 3, 7, 15, 3, 15, 13,
		7, 19, 17, 7, 17, 6, 7, 6, 15,
		17, 4, 8, 17, 8, 10, 17, 10, 6,
		8, 0, 16, 8, 16, 2, 8, 2, 10,
		0, 12, 1, 0, 1, 18, 0, 18, 16,
		6, 10, 2, 6, 2, 13, 6, 13, 15,
		2, 16, 18, 2, 18, 3, 2, 3, 13,
		18, 1, 9, 18, 9, 11, 18, 11, 3,
		4, 14, 12, 4, 12, 0, 4, 0, 8,
		11, 9, 5, 11, 5, 19, 11, 19, 7,
		19, 5, 14, 19, 14, 4, 19, 4, 17,
		1, 12, 14, 1, 14, 5, 1, 5, 9,
	}
	return polyhedron("dodecahedron", points, faces, radius)
}

// polyhedron projects points onto a sphere and emits one flat triangle per face, wound so that
// every face points away from the origin.
func polyhedron(name string, points []mgl32.Vec3, faces []uint32, radius float32) *Geometry {
	verts := make([]GPUVertex, 0, len(faces))
	for i := 0; i+2 < len(faces); i += 3 {
		tri := [3]mgl32.Vec3{
			points[faces[i]].Normalize().Mul(radius),
			points[faces[i+1]].Normalize().Mul(radius),
			points[faces[i+2]].Normalize().Mul(radius),
		}
		n := mgl32.Vec3(faceNormal(tri[0], tri[1], tri[2]))
		centroid := tri[0].Add(tri[1]).Add(tri[2]).Mul(1.0 / 3)
		if n.Dot(centroid) < 0 {
			tri[1], tri[2] = tri[2], tri[1]
			n = n.Mul(-1)
		}
		for _, p := range tri {
			verts = append(verts, GPUVertex{Position: p, Normal: n, TexCoord: sphericalUV(p)})
		}
	}
	return NewGeometry(WithName(name), WithVertices(verts))
}

// sphericalUV maps a direction to equirectangular texture coordinates.
func sphericalUV(p mgl32.Vec3) [2]float32 {
	d := p.Normalize()
	u := float32(math.Atan2(float64(d[2]), float64(-d[0]))/(2*math.Pi)) + 0.5
	v := float32(math.Atan2(float64(-d[1]), math.Hypot(float64(d[0]), float64(d[2])))/math.Pi) + 0.5
	return [2]float32{u, 1 - v}
}

// NewCapsule creates a Y aligned capsule by revolving a profile of two quarter arcs joined by a
// straight section around the Y axis.
//
// Parameters:
//   - radius: cap and body radius
//   - length: length of the straight middle section
//   - capSegments: arc segments per cap (minimum 1)
//   - radialSegments: segments around the Y axis (minimum 3)
//
// Returns:
//   - *Geometry: the capsule
func NewCapsule(radius, length float32, capSegments, radialSegments int) *Geometry {
	capSegments = max(capSegments, 1)
	radialSegments = max(radialSegments, 3)
	half := float64(length) / 2

	type profilePoint struct{ x, y, nx, ny float64 }
	var profile []profilePoint
	for i := 0; i <= capSegments; i++ {
		a := -math.Pi/2 + float64(i)/float64(capSegments)*math.Pi/2
		profile = append(profile, profilePoint{
			x: float64(radius) * math.Cos(a), y: float64(radius)*math.Sin(a) - half,
			nx: math.Cos(a), ny: math.Sin(a),
		})
	}
	for i := 0; i <= capSegments; i++ {
		a := float64(i) / float64(capSegments) * math.Pi / 2
		profile = append(profile, profilePoint{
			x: float64(radius) * math.Cos(a), y: float64(radius)*math.Sin(a) + half,
			nx: math.Cos(a), ny: math.Sin(a),
		})
	}

	points := len(profile)
	var verts []GPUVertex
	for i := 0; i <= radialSegments; i++ {
		phi := float64(i) / float64(radialSegments) * 2 * math.Pi
		sin, cos := math.Sin(phi), math.Cos(phi)
		for j, p := range profile {
			verts = append(verts, GPUVertex{
				Position: [3]float32{float32(p.x * sin), float32(p.y), float32(p.x * cos)},
				Normal:   [3]float32{float32(p.nx * sin), float32(p.ny), float32(p.nx * cos)},
				TexCoord: [2]float32{float32(i) / float32(radialSegments), float32(j) / float32(points-1)},
			})
		}
	}

	var indices []uint32
	for i := 0; i < radialSegments; i++ {
		for j := 0; j < points-1; j++ {
			base := uint32(j + i*points)
			a := base
			b := base + uint32(points)
			c := base + uint32(points) + 1
			d := base + 1
			indices = append(indices, a, b, d, c, d, b)
		}
	}
	return NewGeometry(WithName("capsule"), WithVertices(verts), WithIndices(indices))
}
