package render

import (
	"context"
	"image"
	"math/rand"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vikram-vadrevu/raytracer/colors"
	"github.com/vikram-vadrevu/raytracer/scene"
)

// Options configures a render pass.
type Options struct {
	// Samples is the number of jittered antialiasing rays per pixel.
	// Zero means one un-jittered ray through the pixel center.
	Samples int
	// Seed drives every random decision (antialiasing jitter, lens
	// jitter, global illumination, roughness). The same seed always
	// reproduces the same image, for any worker count.
	Seed int64
	// Workers bounds render parallelism; <= 0 uses GOMAXPROCS.
	Workers int
	// Progress, when set, is called after each finished row.
	Progress func(rowsDone, totalRows int)
}

// Render traces every pixel of the camera's viewport against the scene
// and returns the assembled image. Rows render in parallel; pixels in
// a row share a per-row generator derived from the seed, so scheduling
// never changes the output.
func Render(ctx context.Context, sc *scene.Scene, cam Camera, opts Options) (*image.NRGBA, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	img := image.NewNRGBA(image.Rect(0, 0, cam.Width, cam.Height))
	var rowsDone atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for y := 0; y < cam.Height; y++ {
		y := y
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(opts.Seed + int64(y)))
			for x := 0; x < cam.Width; x++ {
				c, ok := renderPixel(sc, cam, x, y, opts.Samples, rng)
				if !ok {
					continue // rejected sample, leave transparent
				}
				if cam.Exposure != nil {
					c = colors.ApplyExposure(c, *cam.Exposure)
				}
				img.SetNRGBA(x, y, colors.EncodeSRGB(c).ToNRGBA())
			}

			if opts.Progress != nil {
				opts.Progress(int(rowsDone.Add(1)), cam.Height)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

// renderPixel traces the pixel's primary ray, or averages the
// configured number of jittered samples. Jittered samples that a
// projection rejects contribute transparent black.
func renderPixel(sc *scene.Scene, cam Camera, x, y, samples int, rng *rand.Rand) (colors.Color4, bool) {
	if samples <= 0 {
		ray := cam.PrimaryRay(float64(x), float64(y), rng)
		if ray.IsNoRay() {
			return colors.Color4{}, false
		}
		return sc.Trace(ray, rng), true
	}

	var sum colors.Color4
	for i := 0; i < samples; i++ {
		px := float64(x) + rng.Float64() - 0.5
		py := float64(y) + rng.Float64() - 0.5
		ray := cam.PrimaryRay(px, py, rng)
		if ray.IsNoRay() {
			continue
		}
		sum = sum.Add(sc.Trace(ray, rng))
	}
	return sum.Scale(1.0 / float64(samples)), true
}
