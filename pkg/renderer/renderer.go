// Package renderer drives a full render: it partitions the image into
// rows, distributes rows across a worker pool, and assembles primary
// rays, the per-pixel sample loop, and the resulting pixel buffer.
package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-path-tracer/pkg/camera"
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/integrator"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// RenderDescriptor is the complete configuration for a render.
type RenderDescriptor struct {
	Width, Height int
	Samples       int
	TMin, TMax    core.F
	Integrator    integrator.Integrator
	Scene         *scene.Scene
	Camera        camera.Camera
	RNG           core.Random // master RNG; must also implement core.Seeder
	Workers       int         // 0 selects runtime.NumCPU()
	Logger        core.Logger // nil disables progress logging
}

// Stats summarizes a completed render.
type Stats struct {
	TotalPixels  int
	TotalSamples int
}

// rowTask is one row's worth of work, with its own forked RNG stream so
// that rendering is deterministic given a fixed master seed yet safe to
// run across goroutines.
type rowTask struct {
	y   int // image row, 0 = top scanline; index into the pixel buffer
	row int // scanline counted from the bottom; used for the camera's t coordinate
	rng core.Random
}

// Render renders desc.Scene through desc.Camera into a row-major RGB
// buffer in linear color space. Rows are rendered independently by a
// pool of worker goroutines; each row's RNG stream is forked from the
// master RNG under a mutex before dispatch, so the set of per-row
// streams -- and therefore the final image -- is reproducible for a
// fixed master seed regardless of how the scheduler interleaves rows.
func Render(desc RenderDescriptor) (core.TextureBuffer, Stats) {
	seeder, ok := desc.RNG.(core.Seeder)
	if !ok {
		panic("renderer: RenderDescriptor.RNG must implement core.Seeder")
	}

	numWorkers := desc.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	pixels := make([]core.Vec3, desc.Width*desc.Height)

	tasks := make(chan rowTask, desc.Height)
	var seedMu sync.Mutex
	for row := 0; row < desc.Height; row++ {
		seedMu.Lock()
		rowRNG := seeder.SeedNew()
		seedMu.Unlock()
		tasks <- rowTask{y: desc.Height - row - 1, row: row, rng: rowRNG}
	}
	close(tasks)

	var wg sync.WaitGroup
	var completed int64
	var completedMu sync.Mutex

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range tasks {
				renderRow(desc, task, pixels)

				if desc.Logger != nil {
					completedMu.Lock()
					completed++
					n := completed
					completedMu.Unlock()
					desc.Logger.Printf("rendered row %d/%d", n, desc.Height)
				}
			}
		}()
	}
	wg.Wait()

	stats := Stats{
		TotalPixels:  desc.Width * desc.Height,
		TotalSamples: desc.Width * desc.Height * desc.Samples,
	}

	return core.NewTextureBuffer(desc.Width, desc.Height, pixels), stats
}

// renderRow writes every pixel of row task.y into pixels; pixels is
// shared across worker goroutines, but every row writes a disjoint
// slice, so no synchronization is needed here.
func renderRow(desc RenderDescriptor, task rowTask, pixels []core.Vec3) {
	for x := 0; x < desc.Width; x++ {
		color := core.Vec3{}
		for sample := 0; sample < desc.Samples; sample++ {
			s := (core.F(x) + task.rng.Float64()) / core.F(desc.Width)
			t := (core.F(task.row) + task.rng.Float64()) / core.F(desc.Height)

			ray := desc.Camera.GetRay(s, t)
			color = color.Add(desc.Integrator.CastRay(ray, desc.Scene, task.rng))
		}

		pixels[task.y*desc.Width+x] = color.Multiply(1 / core.F(desc.Samples))
	}
}
