// Command volproj renders an intensity projection of a procedural volume
// on the CPU and writes it to a PNG file.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"

	"github.com/gogpu/volume"
	"github.com/gogpu/volume/render"
)

func main() {
	var (
		width   = flag.Int("width", 512, "render width")
		height  = flag.Int("height", 512, "render height")
		style   = flag.String("style", "max", "projection: min, max or avg")
		steps   = flag.Int("steps", volume.DefaultStepCount, "samples per ray")
		res     = flag.Int("res", 64, "voxel grid resolution per axis")
		tonemap = flag.String("tonemap", "aces", "tone mapping: none, reinhard, aces or filmic")
		scale   = flag.Int("scale", 1, "upscale factor applied after rendering")
		output  = flag.String("output", "volume.png", "output file")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		volume.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	rs, err := volume.ParseRenderingStyle(*style)
	if err != nil {
		log.Fatal(err)
	}
	tone, err := parseToneMapping(*tonemap)
	if err != nil {
		log.Fatal(err)
	}

	grid, err := volume.NewVoxelGridFromFunc(*res, *res, *res, mgl32.Vec3{1, 1, 1}, twoBlobs)
	if err != nil {
		log.Fatalf("Failed to build grid: %v", err)
	}
	tex, err := volume.NewHostTexture3D(grid)
	if err != nil {
		log.Fatalf("Failed to wrap grid: %v", err)
	}
	mat := volume.NewVolumeProjectionMaterial(tex, grid.Size,
		volume.WithRenderingStyle(rs),
		volume.WithStepCount(*steps),
	)
	defer mat.Release()

	camera := volume.NewCamera(mgl32.Vec3{1.2, 0.9, 1.6}, mgl32.Vec3{}, *width, *height)
	camera.Tone = tone
	lights := []volume.Light{volume.NewAmbientLight(1)}

	target := render.NewPixmapTarget(*width, *height)
	target.Clear(color.Black)

	r := render.NewSoftwareRenderer()
	defer r.Close()
	if err := r.Render(target, camera, lights, mat); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	out := target
	if *scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, *width**scale, *height**scale))
		draw.CatmullRom.Scale(dst, dst.Bounds(), target.Image(), target.Image().Bounds(), draw.Src, nil)
		out = render.NewPixmapTargetFromImage(dst)
	}

	if err := out.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("%v saved to %s (%dx%d)\n", rs, *output, out.Width(), out.Height())
}

// twoBlobs is a pair of overlapping gaussian blobs in normalized coordinates.
func twoBlobs(x, y, z float32) float32 {
	blob := func(cx, cy, cz, r float32) float32 {
		dx, dy, dz := x-cx, y-cy, z-cz
		return math32.Exp(-(dx*dx + dy*dy + dz*dz) / (2 * r * r))
	}
	return math32.Min(1, blob(0.35, 0.45, 0.5, 0.12)+0.7*blob(0.65, 0.55, 0.45, 0.18))
}

func parseToneMapping(name string) (volume.ToneMapping, error) {
	switch strings.ToLower(name) {
	case "none":
		return volume.ToneMappingNone, nil
	case "reinhard":
		return volume.ToneMappingReinhard, nil
	case "aces":
		return volume.ToneMappingACES, nil
	case "filmic", "hable":
		return volume.ToneMappingFilmic, nil
	default:
		return 0, fmt.Errorf("unknown tone mapping %q", name)
	}
}
