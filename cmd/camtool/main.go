// camtool is a CLI utility for inspecting and editing saved camera states.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/gizmo/internal/config"
	"github.com/Faultbox/gizmo/internal/engine/camera"
	"github.com/Faultbox/gizmo/internal/engine/picking"
	"github.com/Faultbox/gizmo/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "set":
		err = cmdSet(args)
	case "reset":
		err = cmdReset(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`camtool - saved camera state utility

Usage:
  camtool <command> [options]

Commands:
  info <state.bin>                   Show rotation, translation and projection
  set [options] <state.bin>          Change fields of a state file
  reset <state.bin>                  Overwrite with the default camera

Options for set:
  -fov <degrees>    vertical field of view
  -near <dist>      near clip distance
  -far <dist>       far clip distance
  -tran <x,y,z>     translation
  -rot <x,y,z>      rotation as Euler angles in degrees

Examples:
  camtool info camera.bin
  camtool set -fov 45 -tran 0,0,-20 camera.bin`)
}

// load reads a state file into a camera with a default viewport.
func load(path string) (*camera.ArcballCamera, error) {
	cam := newCamera(config.Default().Camera)
	if err := cam.Read(path); err != nil {
		return nil, err
	}
	return cam, nil
}

func newCamera(cfg config.CameraConfig) *camera.ArcballCamera {
	w := config.Default().Window
	vp := picking.Viewport{Width: w.Width, Height: w.Height}
	p := camera.DefaultParams()
	p.FOV, p.Near, p.Far = cfg.FOV, cfg.Near, cfg.Far
	return camera.NewFromEuler(vp, vec3(cfg.Rotation), vec3(cfg.Translation), p)
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

func cmdInfo(w io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: camtool info <state.bin>")
	}
	cam, err := load(args[0])
	if err != nil {
		return err
	}
	describe(w, args[0], cam)
	return nil
}

func describe(w io.Writer, path string, cam *camera.ArcballCamera) {
	e, t, p := cam.Euler(), cam.Tran(), cam.Position()
	near, far := cam.Clip()
	fmt.Fprintf(w, "State:       %s\n", path)
	fmt.Fprintf(w, "Rotation:    %.3f %.3f %.3f (deg)\n", e.X, e.Y, e.Z)
	fmt.Fprintf(w, "Translation: %.3f %.3f %.3f\n", t.X, t.Y, t.Z)
	fmt.Fprintf(w, "Position:    %.3f %.3f %.3f\n", p.X, p.Y, p.Z)
	fmt.Fprintf(w, "FOV:         %.2f\n", cam.FOV())
	fmt.Fprintf(w, "Clip:        %g .. %g\n", near, far)
}

func cmdSet(args []string) error {
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	fov := fs.Float64("fov", 0, "vertical field of view in degrees")
	near := fs.Float64("near", 0, "near clip distance")
	far := fs.Float64("far", 0, "far clip distance")
	tran := fs.String("tran", "", "translation x,y,z")
	rot := fs.String("rot", "", "rotation x,y,z in degrees")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: camtool set [options] <state.bin>")
	}
	path := fs.Arg(0)

	cam, err := load(path)
	if err != nil {
		return err
	}

	if *rot != "" {
		e, err := parseVec3(*rot)
		if err != nil {
			return fmt.Errorf("-rot: %w", err)
		}
		mv := math.EulerMatrix(e)
		mv.SetOrigin(cam.Tran())
		cam.SetModelview(mv)
	}
	if *tran != "" {
		t, err := parseVec3(*tran)
		if err != nil {
			return fmt.Errorf("-tran: %w", err)
		}
		mv := cam.Rot()
		mv.SetOrigin(t)
		cam.SetModelview(mv)
	}
	if *fov > 0 {
		cam.SetFOV(float32(*fov))
	}
	if *near > 0 || *far > 0 {
		n, f := cam.Clip()
		if *near > 0 {
			n = float32(*near)
		}
		if *far > 0 {
			f = float32(*far)
		}
		if f <= n {
			return fmt.Errorf("far %g must exceed near %g", f, n)
		}
		cam.SetClip(n, f)
	}

	return cam.Save(path)
}

func cmdReset(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: camtool reset <state.bin>")
	}
	return newCamera(config.Default().Camera).Save(args[0])
}

// parseVec3 parses "x,y,z".
func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, err
		}
		v[i] = float32(f)
	}
	return vec3(v), nil
}
