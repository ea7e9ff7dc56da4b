// Package scenefile parses the line-oriented scene description format.
// The first content line (blank lines and # comments don't count) is a
// header, "png <width> <height> <output>"; every following line is a
// directive acting either on the camera, on the render settings, or on
// the loader state that the next primitive is built from.
package scenefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vikram-vadrevu/raytracer/colors"
	"github.com/vikram-vadrevu/raytracer/geometry"
	"github.com/vikram-vadrevu/raytracer/lights"
	"github.com/vikram-vadrevu/raytracer/render"
	"github.com/vikram-vadrevu/raytracer/scene"
	"github.com/vikram-vadrevu/raytracer/texture"
	"github.com/vikram-vadrevu/raytracer/vectors"
)

// File is a fully loaded scene description, ready to render.
type File struct {
	Output  string
	Scene   *scene.Scene
	Camera  render.Camera
	Samples int // antialiasing rays per pixel, 0 = off
}

// state accumulates the sticky directives that configure the next
// primitive: color, texture, vertex/texcoord pools, and surface
// coefficients.
type state struct {
	color        colors.Color4
	texture      *texture.Texture
	vertices     []vectors.Vec3
	texCoords    []vectors.Vec2
	shininess    []float64
	transparency []float64
	roughness    float64
	ior          float64
}

// Load reads and parses the scene description at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a scene description. Any malformed line fails the whole
// load: a bad scene is a configuration error, not a render condition.
func Parse(r io.Reader) (*File, error) {
	scanner := bufio.NewScanner(r)

	file, lineNo, err := parseHeader(scanner)
	if err != nil {
		return nil, err
	}

	st := state{color: colors.White()}
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if err := file.apply(&st, fields[0], fields[1:]); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return file, nil
}

// parseHeader scans past leading blank and comment lines to the header
// and reports how many lines it consumed.
func parseHeader(scanner *bufio.Scanner) (*File, int, error) {
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) != 4 || parts[0] != "png" {
			return nil, lineNo, fmt.Errorf("invalid header %q, want \"png <width> <height> <output>\"", line)
		}

		width, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, lineNo, fmt.Errorf("invalid width %q: %w", parts[1], err)
		}
		height, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, lineNo, fmt.Errorf("invalid height %q: %w", parts[2], err)
		}
		if width <= 0 || height <= 0 {
			return nil, lineNo, fmt.Errorf("image size %dx%d is not positive", width, height)
		}

		return &File{
			Output: parts[3],
			Scene:  scene.New(),
			Camera: render.NewCamera(width, height),
		}, lineNo, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, lineNo, err
	}
	return nil, lineNo, fmt.Errorf("empty scene description")
}

func (f *File) apply(st *state, action string, args []string) error {
	switch action {
	case "sphere":
		v, err := floats(args, 4)
		if err != nil {
			return err
		}
		f.Scene.AddShape(geometry.NewSphere(vec3(v[0:3]), v[3], st.surface()))

	case "plane":
		v, err := floats(args, 4)
		if err != nil {
			return err
		}
		f.Scene.AddShape(geometry.NewPlane(v[0], v[1], v[2], v[3], st.surface()))

	case "xyz":
		v, err := floats(args, 3)
		if err != nil {
			return err
		}
		st.vertices = append(st.vertices, vec3(v))

	case "texcoord":
		v, err := floats(args, 2)
		if err != nil {
			return err
		}
		st.texCoords = append(st.texCoords, vectors.Vec2{X: v[0], Y: v[1]})

	case "tri":
		return f.addTriangle(st, args)

	case "sun":
		v, err := floats(args, 3)
		if err != nil {
			return err
		}
		f.Scene.AddLight(lights.NewSun(vec3(v), st.color))

	case "bulb":
		v, err := floats(args, 3)
		if err != nil {
			return err
		}
		f.Scene.AddLight(lights.NewBulb(vec3(v), st.color))

	case "suntime":
		if len(args) != 1 {
			return fmt.Errorf("suntime wants 1 argument, got %d", len(args))
		}
		t, err := time.Parse(time.RFC3339, args[0])
		if err != nil {
			return fmt.Errorf("invalid suntime %q: %w", args[0], err)
		}
		f.Scene.AddLight(lights.SunAt(t, st.color))

	case "color":
		v, err := floats(args, 3)
		if err != nil {
			return err
		}
		st.color = colors.New(v[0], v[1], v[2], 1)

	case "texture":
		if len(args) != 1 {
			return fmt.Errorf("texture wants 1 argument, got %d", len(args))
		}
		if args[0] == "none" {
			st.texture = nil
			return nil
		}
		tex, err := texture.Load(args[0])
		if err != nil {
			return fmt.Errorf("texture %q: %w", args[0], err)
		}
		st.texture = tex

	case "shininess":
		v, err := coefficients(args)
		if err != nil {
			return err
		}
		st.shininess = v

	case "transparency":
		v, err := coefficients(args)
		if err != nil {
			return err
		}
		st.transparency = v

	case "roughness":
		v, err := floats(args, 1)
		if err != nil {
			return err
		}
		st.roughness = v[0]

	case "ior":
		v, err := floats(args, 1)
		if err != nil {
			return err
		}
		st.ior = v[0]

	case "bounces":
		n, err := positiveInt(args)
		if err != nil {
			return err
		}
		f.Scene.BounceLimit = n

	case "gi":
		n, err := positiveInt(args)
		if err != nil {
			return err
		}
		f.Scene.GIDepth = n

	case "aa":
		n, err := positiveInt(args)
		if err != nil {
			return err
		}
		f.Samples = n

	case "expose":
		v, err := floats(args, 1)
		if err != nil {
			return err
		}
		f.Camera.Exposure = &v[0]

	case "dof":
		v, err := floats(args, 2)
		if err != nil {
			return err
		}
		f.Camera.DOF = &render.DepthOfField{FocusDistance: v[0], LensRadius: v[1]}

	case "eye":
		v, err := floats(args, 3)
		if err != nil {
			return err
		}
		f.Camera.Eye = vec3(v)

	case "forward":
		v, err := floats(args, 3)
		if err != nil {
			return err
		}
		f.Camera.Forward = vec3(v)

	case "up":
		v, err := floats(args, 3)
		if err != nil {
			return err
		}
		f.Camera.Up = vec3(v)

	case "fisheye":
		f.Camera.Projection = render.Fisheye

	case "panorama":
		f.Camera.Projection = render.Panoramic

	default:
		return fmt.Errorf("unknown directive %q", action)
	}
	return nil
}

// addTriangle resolves three 1-based vertex indexes (negative counts
// from the end of the pool) and, when a texture is active, matching
// texture coordinates.
func (f *File) addTriangle(st *state, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("tri wants 3 vertex indexes, got %d", len(args))
	}

	var verts [3]vectors.Vec3
	var coords [3]vectors.Vec2
	haveCoords := st.texture != nil && len(st.texCoords) > 0

	for i, arg := range args {
		idx, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid vertex index %q: %w", arg, err)
		}

		vi, err := resolveIndex(idx, len(st.vertices))
		if err != nil {
			return fmt.Errorf("vertex index %d: %w", idx, err)
		}
		verts[i] = st.vertices[vi]

		if haveCoords {
			ti, err := resolveIndex(idx, len(st.texCoords))
			if err != nil {
				return fmt.Errorf("texcoord index %d: %w", idx, err)
			}
			coords[i] = st.texCoords[ti]
		}
	}

	var texCoords *[3]vectors.Vec2
	if haveCoords {
		texCoords = &coords
	}
	f.Scene.AddShape(geometry.NewTriangle(verts[0], verts[1], verts[2], texCoords, st.surface()))
	return nil
}

// resolveIndex maps a 1-based scene index (or a negative
// count-from-the-end index) into the pool.
func resolveIndex(idx, size int) (int, error) {
	var out int
	if idx < 0 {
		out = size + idx
	} else {
		out = idx - 1
	}
	if out < 0 || out >= size {
		return 0, fmt.Errorf("out of range (pool has %d entries)", size)
	}
	return out, nil
}

func (st *state) surface() *geometry.Surface {
	var tex geometry.Texture
	if st.texture != nil {
		tex = st.texture
	}
	return geometry.NewSurface(st.color, tex, st.shininess, st.transparency, st.roughness, st.ior)
}

func vec3(v []float64) vectors.Vec3 {
	return vectors.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func floats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d numeric arguments, got %d", n, len(args))
	}
	return parseFloats(args)
}

// coefficients parses a surface coefficient list: one value broadcast
// to all channels, or one value per channel.
func coefficients(args []string) ([]float64, error) {
	if len(args) != 1 && len(args) != 3 {
		return nil, fmt.Errorf("want 1 or 3 numeric arguments, got %d", len(args))
	}
	return parseFloats(args)
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", arg, err)
		}
		out[i] = v
	}
	return out, nil
}

func positiveInt(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("want 1 integer argument, got %d", len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", args[0], err)
	}
	if n < 0 {
		return 0, fmt.Errorf("argument must not be negative, got %d", n)
	}
	return n, nil
}
