package raster

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/impossible-box/common"
	"github.com/Carmen-Shannon/impossible-box/engine/light"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Stats reports the work done by one Render call.
type Stats struct {
	Items     int
	Triangles int
	Fragments int64
}

// rasterizer is the implementation of the Rasterizer interface.
type rasterizer struct {
	mu *sync.Mutex

	fb         *Framebuffer
	workers    int
	bandHeight int
	pool       worker.DynamicWorkerPool
}

// Rasterizer renders scenes into a Framebuffer on the CPU using the same raster state the GPU
// pipeline uses, including the stencil test.
//
// The screen is split into horizontal bands that run in parallel on a worker pool. Every band walks
// the full render list in order, so within any pixel draws happen in submission order.
type Rasterizer interface {
	// Render clears the framebuffer to the scene background, builds the scene's render list and
	// draws it.
	//
	// Parameters:
	//   - s: the scene
	//   - viewProj: the camera view-projection matrix
	//
	// Returns:
	//   - Stats: counts of drawn items, triangles and fragments
	Render(s scene.Scene, viewProj mgl32.Mat4) Stats

	// Draw rasterizes render items over the current framebuffer contents without clearing.
	//
	// Parameters:
	//   - items: the ordered render items
	//   - lights: the lights for lit materials
	//   - viewProj: the camera view-projection matrix
	//
	// Returns:
	//   - Stats: counts of drawn items, triangles and fragments
	Draw(items []scene.RenderItem, lights []light.Light, viewProj mgl32.Mat4) Stats

	// Framebuffer returns the target framebuffer.
	//
	// Returns:
	//   - *Framebuffer: the framebuffer
	Framebuffer() *Framebuffer

	// Resize replaces the framebuffer with one of the given size.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int)

	// Close stops the worker pool.
	Close()
}

var _ Rasterizer = &rasterizer{}

// NewRasterizer creates a CPU rasterizer with its own worker pool.
//
// Parameters:
//   - width, height: framebuffer size in pixels
//   - options: variadic list of RasterizerBuilderOption functions
//
// Returns:
//   - Rasterizer: the rasterizer
func NewRasterizer(width, height int, options ...RasterizerBuilderOption) Rasterizer {
	r := &rasterizer{
		mu:         &sync.Mutex{},
		fb:         NewFramebuffer(width, height),
		workers:    max(runtime.NumCPU()-1, 1),
		bandHeight: 16,
	}
	for _, opt := range options {
		opt(r)
	}
	r.pool = worker.NewDynamicWorkerPool(r.workers, r.workers*4, 1*time.Second)
	return r
}

func (r *rasterizer) Framebuffer() *Framebuffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fb
}

func (r *rasterizer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fb = NewFramebuffer(width, height)
}

func (r *rasterizer) Close() {
	r.pool.Stop()
}

func (r *rasterizer) Render(s scene.Scene, viewProj mgl32.Mat4) Stats {
	items := s.RenderList(viewProj)
	r.mu.Lock()
	r.fb.Clear(s.Background(), 1, 0)
	r.mu.Unlock()
	return r.Draw(items, s.Lights(), viewProj)
}

func (r *rasterizer) Draw(items []scene.RenderItem, lights []light.Light, viewProj mgl32.Mat4) Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Phase 1: transform, clip and cull every item in parallel.
	prepared := make([]preparedItem, len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		idx := i
		r.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				prepared[idx] = prepare(items[idx], viewProj, r.fb.Width, r.fb.Height)
				return nil, nil
			},
		})
	}
	wg.Wait()

	stats := Stats{Items: len(items)}
	for _, p := range prepared {
		stats.Triangles += len(p.triangles)
	}

	// Phase 2: rasterize bands. Bands own disjoint rows, so no locking is needed on the planes.
	var fragments atomic.Int64
	for y0 := 0; y0 < r.fb.Height; y0 += r.bandHeight {
		wg.Add(1)
		b := band{y0: y0, y1: min(y0+r.bandHeight, r.fb.Height)}
		r.pool.SubmitTask(worker.Task{
			ID:      y0,
			Payload: b,
			Do: func() (any, error) {
				defer wg.Done()
				fragments.Add(r.drawBand(b, prepared, lights))
				return nil, nil
			},
		})
	}
	wg.Wait()

	stats.Fragments = fragments.Load()
	return stats
}

// band is a range of framebuffer rows [y0, y1).
type band struct {
	y0, y1 int
}

// preparedItem is a render item reduced to screen-space triangles and the state to draw them with.
type preparedItem struct {
	state     pipeline.RasterState
	color     [4]float32
	lit       bool
	texture   *common.TextureStagingData
	triangles [][3]screenVertex
	fronts    []bool
}

func prepare(item scene.RenderItem, viewProj mgl32.Mat4, width, height int) preparedItem {
	mat := item.Mesh.Material()
	geo := item.Mesh.Geometry()
	p := preparedItem{
		state:   mat.RasterState(),
		color:   mat.Color(),
		lit:     mat.Lit(),
		texture: mat.Texture(),
	}

	mvp := viewProj.Mul4(item.World)
	for t := 0; t < geo.TriangleCount(); t++ {
		src := geo.Triangle(t)
		var tri [3]clipVertex
		for k, v := range src {
			pos := mgl32.Vec3(v.Position).Vec4(1)
			tri[k] = clipVertex{
				clip:   mvp.Mul4x1(pos),
				world:  item.World.Mul4x1(pos).Vec3(),
				normal: item.Normal.Mul3x1(v.Normal),
				uv:     v.TexCoord,
			}
		}

		poly := clipNear(tri)
		if len(poly) < 3 {
			continue
		}
		screen := make([]screenVertex, len(poly))
		for k, v := range poly {
			screen[k] = toScreen(v, width, height)
		}

		// Facing is decided once for the whole polygon so both halves of a clipped quad agree.
		area := edge(screen[0], screen[1], screen[2])
		if area == 0 {
			continue
		}
		front := area < 0
		switch p.state.Cull {
		case pipeline.CullBack:
			if !front {
				continue
			}
		case pipeline.CullFront:
			if front {
				continue
			}
		}
		for k := 1; k+1 < len(screen); k++ {
			p.triangles = append(p.triangles, [3]screenVertex{screen[0], screen[k], screen[k+1]})
			p.fronts = append(p.fronts, front)
		}
	}
	return p
}

// edge returns twice the signed area of (a, b, p) in pixel space.
func edge(a, b, p screenVertex) float32 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

// edgeAt evaluates the edge function of (a, b) at a pixel center. The endpoints are put in a
// canonical order first so that edgeAt(a, b) == -edgeAt(b, a) holds exactly in float arithmetic.
func edgeAt(a, b screenVertex, px, py float32) float32 {
	if b.y < a.y || (b.y == a.y && b.x < a.x) {
		return -((a.x-b.x)*(py-b.y) - (a.y-b.y)*(px-b.x))
	}
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// ownsEdge breaks ties for pixels exactly on an edge. Adjacent triangles walk a shared edge in
// opposite directions, so exactly one of them owns it.
func ownsEdge(a, b screenVertex) bool {
	dy := b.y - a.y
	return dy > 0 || (dy == 0 && b.x < a.x)
}

func (r *rasterizer) drawBand(b band, items []preparedItem, lights []light.Light) int64 {
	fb := r.fb
	var fragments int64
	for _, item := range items {
		for t, tri := range item.triangles {
			v0, v1, v2 := tri[0], tri[1], tri[2]
			area := edge(v0, v1, v2)
			if area < 0 {
				v1, v2 = v2, v1
				area = -area
			}
			if area == 0 {
				continue
			}

			minX := max(int(min(v0.x, v1.x, v2.x)), 0)
			maxX := min(int(max(v0.x, v1.x, v2.x))+1, fb.Width-1)
			minY := max(int(min(v0.y, v1.y, v2.y)), b.y0)
			maxY := min(int(max(v0.y, v1.y, v2.y))+1, b.y1-1)
			if minX > maxX || minY > maxY {
				continue
			}

			own0, own1, own2 := ownsEdge(v1, v2), ownsEdge(v2, v0), ownsEdge(v0, v1)
			for py := minY; py <= maxY; py++ {
				fy := float32(py) + 0.5
				for px := minX; px <= maxX; px++ {
					fx := float32(px) + 0.5
					w0 := edgeAt(v1, v2, fx, fy)
					w1 := edgeAt(v2, v0, fx, fy)
					w2 := edgeAt(v0, v1, fx, fy)
					if w0 < 0 || w1 < 0 || w2 < 0 {
						continue
					}
					if (w0 == 0 && !own0) || (w1 == 0 && !own1) || (w2 == 0 && !own2) {
						continue
					}
					l0, l1, l2 := w0/area, w1/area, w2/area
					z := l0*v0.z + l1*v1.z + l2*v2.z
					if z < 0 || z > 1 {
						continue
					}
					if r.shadeFragment(fb.index(px, py), z, l0, l1, l2, v0, v1, v2, &item, item.fronts[t], lights) {
						fragments++
					}
				}
			}
		}
	}
	return fragments
}

// shadeFragment runs the per-fragment tests and writes for one covered pixel: stencil test, depth
// test, stencil update, color write, depth write. It reports whether the fragment was written.
func (r *rasterizer) shadeFragment(idx int, z, l0, l1, l2 float32, v0, v1, v2 screenVertex, item *preparedItem, front bool, lights []light.Light) bool {
	fb := r.fb
	state := item.state

	stored := fb.Stencil[idx]
	if !state.Stencil.Test(stored) {
		fb.Stencil[idx] = state.Stencil.Update(stored, false, false)
		return false
	}
	depthPassed := state.DepthPasses(z, fb.Depth[idx])
	fb.Stencil[idx] = state.Stencil.Update(stored, true, depthPassed)
	if !depthPassed {
		return false
	}

	if state.ColorWrite {
		invW := l0*v0.invW + l1*v1.invW + l2*v2.invW
		uv := v0.uv.Mul(l0).Add(v1.uv.Mul(l1)).Add(v2.uv.Mul(l2)).Mul(1 / invW)

		base := item.color
		if item.texture != nil {
			tex := item.texture.Sample(uv[0], uv[1])
			for i := range base {
				base[i] *= tex[i]
			}
		}
		rgb := mgl32.Vec3{base[0], base[1], base[2]}
		if item.lit {
			world := v0.world.Mul(l0).Add(v1.world.Mul(l1)).Add(v2.world.Mul(l2)).Mul(1 / invW)
			n := v0.normal.Mul(l0).Add(v1.normal.Mul(l1)).Add(v2.normal.Mul(l2))
			if n.Len() > 0 {
				n = n.Normalize()
			}
			if !front {
				n = n.Mul(-1)
			}
			lum := light.Illuminate(lights, world, n)
			rgb = mgl32.Vec3{rgb[0] * lum[0], rgb[1] * lum[1], rgb[2] * lum[2]}
		}

		out := [4]float32{common.Clamp(rgb[0], 0, 1), common.Clamp(rgb[1], 0, 1), common.Clamp(rgb[2], 0, 1), base[3]}
		if state.Blend {
			dst := fb.Color[idx*4 : idx*4+4]
			a := base[3]
			for i := range 3 {
				out[i] = out[i]*a + float32(dst[i])/255*(1-a)
			}
			out[3] = a + float32(dst[3])/255*(1-a)
		}
		c := common.ToRGBA8(out)
		copy(fb.Color[idx*4:idx*4+4], c[:])
	}

	if state.DepthWrite {
		fb.Depth[idx] = z
	}
	return true
}
