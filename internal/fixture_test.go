package internal

import (
	"embed"
	"image"
	"image/color"
	"log"
	"strconv"

	"github.com/JoshVarga/svgparser"
)

// This file parses the svg fixtures and outputs landmark meshes. This is not a
// full svg parser. It collects every <circle> in document order and uses its
// center as a landmark. If anything goes wrong, it bails.
//
// Fixtures are available by name in the fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) Mesh {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	circles := rootEl.FindAll("circle")
	if len(circles) == 0 {
		log.Fatalf("No circles found in fixture %q", name)
	}

	mesh := make(Mesh, 0, len(circles))
	for _, circleEl := range circles {
		x, err := strconv.ParseFloat(circleEl.Attributes["cx"], 64)
		if err != nil {
			log.Fatalf("Invalid cx value %q: %v", circleEl.Attributes["cx"], err)
		}
		y, err := strconv.ParseFloat(circleEl.Attributes["cy"], 64)
		if err != nil {
			log.Fatalf("Invalid cy value %q: %v", circleEl.Attributes["cy"], err)
		}
		mesh = append(mesh, Point{x, y})
	}
	return mesh
}

// A mesh moved by (dx, dy).
func Translate(mesh Mesh, dx, dy float64) Mesh {
	result := make(Mesh, len(mesh))
	for i, p := range mesh {
		result[i] = Point{p.X + dx, p.Y + dy}
	}
	return result
}

// Square corners, clockwise on screen from the top left.
func Square(x, y, size float64) Mesh {
	return Mesh{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}}
}

// An image where every pixel has a distinct color, so that sampling the wrong
// pixel is visible.
func GradientImage(width, height int, seed uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x*2) + seed,
				G: uint8(y*2) + seed,
				B: uint8(x+y) ^ seed,
				A: 0xff,
			})
		}
	}
	return img
}

func SolidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
