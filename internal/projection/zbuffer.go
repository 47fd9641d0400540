package projection

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

// TextureSource loads the images textures refer to.
type TextureSource interface {
	Texture(name string) (image.Image, error)
}

var light = geom.Vec3{0.3, -0.5, 0.8}.Normalize()

// ZBufferEngine rasterizes primitives into depth, id and color buffers. Each
// thread id writes to its own buffers, so renderers on different goroutines
// can share one engine; Merge combines them once every pass is done.
type ZBufferEngine struct {
	camera     *ProjectionCamera
	defaultMat *scene.Material
	textures   TextureSource

	mu      sync.Mutex
	buffers map[int]*buffer
	cache   map[string]image.Image
}

var _ Engine = (*ZBufferEngine)(nil)

// NewZBufferEngine returns an engine rendering through cam. textures may be nil.
func NewZBufferEngine(cam *ProjectionCamera, textures TextureSource) *ZBufferEngine {
	return &ZBufferEngine{
		camera:     cam,
		defaultMat: scene.DefaultMaterial,
		textures:   textures,
		buffers:    make(map[int]*buffer),
		cache:      make(map[string]image.Image),
	}
}

func (e *ZBufferEngine) Camera() Camera                   { return e.camera }
func (e *ZBufferEngine) DefaultMaterial() *scene.Material { return e.defaultMat }

// ProjectionCamera returns the engine camera with its concrete type, for cloning.
func (e *ZBufferEngine) ProjectionCamera() *ProjectionCamera { return e.camera }

func (e *ZBufferEngine) buffer(threadID int) *buffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.buffers[threadID]
	if !ok {
		b = newBuffer(e.camera.width, e.camera.height)
		e.buffers[threadID] = b
	}
	return b
}

func (e *ZBufferEngine) ProcessPointSet(ps *scene.PointSet, mat *scene.Material, id uint32, cam Camera, threadID int) {
	b := e.buffer(threadID)
	c := rgba(mat.DiffuseColor(), mat.Transparency)
	radius := max(ps.Width, 1) - 1
	for _, p := range ps.Points {
		q, ok := cam.Project(p)
		if !ok {
			continue
		}
		x, y := int(math.Floor(q[0])), int(math.Floor(q[1]))
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				b.plot(x+dx, y+dy, q[2], id, c)
			}
		}
	}
}

func (e *ZBufferEngine) ProcessPolyline(pl *scene.Polyline, mat *scene.Material, id uint32, cam Camera, threadID int) {
	b := e.buffer(threadID)
	c := rgba(mat.DiffuseColor(), mat.Transparency)
	for i := 0; i+1 < len(pl.Points); i++ {
		p, ok1 := cam.Project(pl.Points[i])
		q, ok2 := cam.Project(pl.Points[i+1])
		if !ok1 || !ok2 {
			continue
		}
		steps := int(math.Ceil(math.Max(math.Abs(q[0]-p[0]), math.Abs(q[1]-p[1]))))
		for s := 0; s <= steps; s++ {
			t := 0.0
			if steps > 0 {
				t = float64(s) / float64(steps)
			}
			pt := p.Add(q.Sub(p).Mul(t))
			b.plot(int(math.Floor(pt[0])), int(math.Floor(pt[1])), pt[2], id, c)
		}
	}
}

func (e *ZBufferEngine) ProcessTriangleSet(ts *scene.TriangleSet, app scene.Appearance, id uint32, cam Camera, threadID int) {
	b := e.buffer(threadID)
	shader := e.shader(ts, app)
	model := cam.ModelMatrix()
	for i, tri := range ts.Indices {
		var screen [3]geom.Vec3
		visible := true
		for k, idx := range tri {
			q, ok := cam.Project(ts.Points[idx])
			if !ok {
				visible = false
				break
			}
			screen[k] = q
		}
		if !visible {
			continue
		}
		a, bb, c := ts.Triangle(i)
		wa, wb, wc := geom.TransformPoint(model, a), geom.TransformPoint(model, bb), geom.TransformPoint(model, c)
		shade := 1.0
		if n := wb.Sub(wa).Cross(wc.Sub(wa)); n.Len() > geom.Epsilon {
			shade = 0.35 + 0.65*math.Abs(n.Normalize().Dot(light))
		}
		rasterize(b, screen, func(w0, w1, w2 float64) color.RGBA {
			return shader(tri, w0, w1, w2, shade)
		}, id)
	}
}

type shadeFunc func(tri [3]int, w0, w1, w2, shade float64) color.RGBA

// shader returns the color function of a triangle set under app.
func (e *ZBufferEngine) shader(ts *scene.TriangleSet, app scene.Appearance) shadeFunc {
	switch a := app.(type) {
	case *scene.Texture2D:
		img := e.texture(a)
		if img == nil || !ts.HasTexCoords() {
			base := color.RGBA{a.BaseColor[0], a.BaseColor[1], a.BaseColor[2], 255}
			return flat(base)
		}
		return func(tri [3]int, w0, w1, w2, shade float64) color.RGBA {
			uv := ts.TexCoords[tri[0]].Mul(w0).Add(ts.TexCoords[tri[1]].Mul(w1)).Add(ts.TexCoords[tri[2]].Mul(w2))
			return scale(sample(img, a, a.Transformation.Transform(uv)), shade)
		}
	case *scene.Material:
		return flat(rgba(a.DiffuseColor(), a.Transparency))
	}
	return flat(rgba(e.defaultMat.DiffuseColor(), 0))
}

func flat(c color.RGBA) shadeFunc {
	return func(_ [3]int, _, _, _, shade float64) color.RGBA { return scale(c, shade) }
}

func (e *ZBufferEngine) texture(t *scene.Texture2D) image.Image {
	if t.Image == nil || t.Image.Filename == "" || e.textures == nil {
		return nil
	}
	name := t.Image.Filename
	e.mu.Lock()
	defer e.mu.Unlock()
	if img, ok := e.cache[name]; ok {
		return img
	}
	img, err := e.textures.Texture(name)
	if err != nil {
		slog.Warn("texture unavailable, using base color", "texture", name, "error", err)
		img = nil
	}
	e.cache[name] = img
	return img
}

func sample(img image.Image, t *scene.Texture2D, uv geom.Vec2) color.RGBA {
	s, v := wrap(uv[0], t.Image.RepeatS), wrap(uv[1], t.Image.RepeatT)
	bounds := img.Bounds()
	x := bounds.Min.X + min(int(s*float64(bounds.Dx())), bounds.Dx()-1)
	y := bounds.Min.Y + min(int((1-v)*float64(bounds.Dy())), bounds.Dy()-1)
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func wrap(x float64, repeat bool) float64 {
	if repeat {
		return x - math.Floor(x)
	}
	return math.Min(math.Max(x, 0), 1)
}

func rgba(c scene.Color3, transparency float64) color.RGBA {
	return color.RGBA{c[0], c[1], c[2], uint8(255 * (1 - math.Min(math.Max(transparency, 0), 1)))}
}

func scale(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{uint8(float64(c.R) * k), uint8(float64(c.G) * k), uint8(float64(c.B) * k), c.A}
}

// rasterize fills the pixels whose centers lie in the screen triangle t,
// interpolating depth linearly.
func rasterize(b *buffer, t [3]geom.Vec3, shade func(w0, w1, w2 float64) color.RGBA, id uint32) {
	area := edge(t[0], t[1], t[2][0], t[2][1])
	if math.Abs(area) < geom.Epsilon {
		return
	}
	minX := max(int(math.Floor(min(t[0][0], t[1][0], t[2][0]))), 0)
	maxX := min(int(math.Ceil(max(t[0][0], t[1][0], t[2][0]))), b.width-1)
	minY := max(int(math.Floor(min(t[0][1], t[1][1], t[2][1]))), 0)
	maxY := min(int(math.Ceil(max(t[0][1], t[1][1], t[2][1]))), b.height-1)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			w0 := edge(t[1], t[2], px, py) / area
			w1 := edge(t[2], t[0], px, py) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*t[0][2] + w1*t[1][2] + w2*t[2][2]
			if b.visible(x, y, z) {
				b.set(x, y, z, id, shade(w0, w1, w2))
			}
		}
	}
}

func edge(a, b geom.Vec3, x, y float64) float64 {
	return (b[0]-a[0])*(y-a[1]) - (b[1]-a[1])*(x-a[0])
}

// Merge combines the per-thread buffers, keeping the nearest fragment of
// each pixel. Threads are visited in id order so ties resolve the same way
// on every run.
func (e *ZBufferEngine) Merge() *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := newBuffer(e.camera.width, e.camera.height)
	ids := make([]int, 0, len(e.buffers))
	for id := range e.buffers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, tid := range ids {
		b := e.buffers[tid]
		for i, z := range b.depth {
			if z < out.depth[i] {
				out.depth[i] = z
				out.ids[i] = b.ids[i]
				out.colors[i] = b.colors[i]
			}
		}
	}
	return &Result{buffer: out, PixelArea: e.camera.PixelArea()}
}

// Reset drops every buffer.
func (e *ZBufferEngine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buffers = make(map[int]*buffer)
}

type buffer struct {
	width, height int
	depth         []float64
	ids           []uint32
	colors        []color.RGBA
}

func newBuffer(width, height int) *buffer {
	b := &buffer{
		width:  width,
		height: height,
		depth:  make([]float64, width*height),
		ids:    make([]uint32, width*height),
		colors: make([]color.RGBA, width*height),
	}
	for i := range b.depth {
		b.depth[i] = math.Inf(1)
		b.ids[i] = scene.NOID
	}
	return b
}

func (b *buffer) visible(x, y int, z float64) bool {
	return z < b.depth[y*b.width+x]
}

func (b *buffer) set(x, y int, z float64, id uint32, c color.RGBA) {
	i := y*b.width + x
	b.depth[i] = z
	b.ids[i] = id
	b.colors[i] = c
}

func (b *buffer) plot(x, y int, z float64, id uint32, c color.RGBA) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	if b.visible(x, y, z) {
		b.set(x, y, z, id, c)
	}
}
