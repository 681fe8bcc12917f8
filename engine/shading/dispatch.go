package shading

import (
	"image"
	"image/color"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Dispatcher fans per-row shading work out across a bounded pool of reusable
// workers. The pool is shared across frames so per-frame dispatch does not
// pay goroutine spawn overhead.
type Dispatcher struct {
	pool    worker.DynamicWorkerPool
	workers int
}

// NewDispatcher creates a Dispatcher with the given worker count. A count of
// zero or less uses one worker per CPU, minus one for the submitting
// goroutine.
func NewDispatcher(workers int) *Dispatcher {
	if workers <= 0 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	return &Dispatcher{
		pool:    worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
		workers: workers,
	}
}

// submit hands work to the pool. SubmitTask blocks until the task queue has
// room, so no task is ever silently dropped; every piece of work pairs with a
// WaitGroup Done inside do, which keeps the per-call barrier balanced.
func (d *Dispatcher) submit(id int, do func()) {
	d.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			do()
			return nil, nil
		},
	})
}

// RenderDepth marches every pixel of the raymarcher's viewport in parallel
// and returns the depth buffer in row-major order. A WaitGroup provides the
// per-call barrier since the pool's own wait blocks until workers idle-exit,
// which is unsuitable for per-frame workloads.
func (d *Dispatcher) RenderDepth(r *Raymarcher) []float32 {
	width := int(r.Uniform.Viewport[0])
	height := int(r.Uniform.Viewport[1])
	depth := make([]float32, width*height)

	var wg sync.WaitGroup
	for y := 0; y < height; y++ {
		wg.Add(1)
		row := y
		d.submit(row, func() {
			defer wg.Done()
			for x := 0; x < width; x++ {
				depth[row*width+x] = r.MarchPixel(x, row).Depth
			}
		})
	}
	wg.Wait()
	return depth
}

// RenderImage marches every pixel and shades hits with a single directional
// lambert term against the estimated surface normal, returning the image and
// the depth buffer. Misses are transparent.
func (d *Dispatcher) RenderImage(r *Raymarcher, lightDir [3]float32) (*image.RGBA, []float32) {
	width := int(r.Uniform.Viewport[0])
	height := int(r.Uniform.Viewport[1])
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	depth := make([]float32, width*height)
	toLight := scale3(normalize3(lightDir), -1)

	var wg sync.WaitGroup
	for y := 0; y < height; y++ {
		wg.Add(1)
		row := y
		d.submit(row, func() {
			defer wg.Done()
			for x := 0; x < width; x++ {
				result := r.MarchPixel(x, row)
				depth[row*width+x] = result.Depth
				if !result.Hit {
					continue
				}
				normal := EstimateNormal(r.SDF, result.Point)
				lambert := max(dot3(normal, toLight), 0)
				shade := uint8(min(0.1+0.9*lambert, 1) * 255)
				img.SetRGBA(x, row, color.RGBA{R: shade, G: shade, B: shade, A: 255})
			}
		})
	}
	wg.Wait()
	return img, depth
}

// ShadeFragments shades a batch of fragments in parallel through the
// resolver and light environment, preserving input order in the output.
func (d *Dispatcher) ShadeFragments(frags []Fragment, resolver Resolver, lights LightEnvironment) [][4]float32 {
	out := make([][4]float32, len(frags))

	chunk := (len(frags) + d.workers - 1) / d.workers
	if chunk < 1 {
		chunk = 1
	}

	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(frags); start += chunk {
		end := min(start+chunk, len(frags))
		wg.Add(1)
		lo, hi := start, end
		id := taskID
		taskID++
		d.submit(id, func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out[i] = resolver.ShadeFragment(frags[i], lights)
			}
		})
	}
	wg.Wait()
	return out
}
