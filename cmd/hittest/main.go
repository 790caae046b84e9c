// Command hittest resolves one screen point against a fixture frame and
// prints the surface an object dragged there would land on.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"arplace/internal/config"
	"arplace/internal/hittest"
	"arplace/internal/perception"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("hittest", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fixturePath := fs.String("fixture", cfg.FixturePath, "fixture file")
	x := fs.Float64("x", 0, "screen x in pixels")
	y := fs.Float64("y", 0, "screen y in pixels")
	infinite := fs.Bool("infinite", cfg.InfinitePlane, "extend detected planes past their bounds")
	tolerance := fs.Float64("tolerance", float64(cfg.HeightTolerance), "height match tolerance for extended planes")

	allowed := cfg.Alignments
	fs.TextVar(&allowed, "align", cfg.Alignments, "allowed alignments, comma separated")

	var height *float32
	fs.Func("height", "reference height of the dragged object", func(s string) error {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return err
		}
		h := float32(v)
		height = &h
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return 2
	}

	fx, err := perception.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	picker := hittest.NewPicker(fx.Frame, fx.Frame, fx.Scene)
	picker.HeightTolerance = float32(*tolerance)

	point := rl.Vector2{X: float32(*x), Y: float32(*y)}
	opts := hittest.Options{
		InfinitePlane: *infinite,
		ObjectHeight:  height,
		Allowed:       allowed,
	}

	if obj := picker.ObjectAt(point); obj != nil {
		fmt.Fprintf(stdout, "object: %s\n", obj.Name)
	}

	hit, ok := picker.ResolveHit(point, opts)
	if !ok {
		fmt.Fprintln(stdout, "no surface")
		return 0
	}

	p := hit.Position()
	fmt.Fprintf(stdout, "%s %s at (%.3f, %.3f, %.3f)\n", hit.Kind, hit.Alignment, p.X, p.Y, p.Z)
	return 0
}
