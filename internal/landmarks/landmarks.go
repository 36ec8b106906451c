// Readers for landmark files. A landmark file lists the landmark points of one
// face, in the same order as the landmark file of the face it is morphed with.
//
// Two formats are supported. Plain text has one "x y" point per line (a comma
// also separates), with blank lines and lines starting with '#' ignored. SVG
// documents contribute the center of every <circle>, in document order, which
// makes it easy to place landmarks over a photo in a vector editor.
package landmarks

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/facemorph/internal"
	"github.com/pkg/errors"
)

// Load a landmark file, choosing the format by extension.
func Load(path string) (internal.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open landmarks")
	}
	defer f.Close()

	var mesh internal.Mesh
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		mesh, err = ReadSVG(f)
	} else {
		mesh, err = ReadText(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read landmarks from %s", path)
	}
	return mesh, nil
}

func ReadText(in io.Reader) (internal.Mesh, error) {
	mesh := internal.Mesh{}
	scanner := bufio.NewScanner(in)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		mesh = append(mesh, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return mesh, nil
}

func parsePoint(line string) (internal.Point, error) {
	parts := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(parts) != 2 {
		return internal.Point{}, errors.Errorf("expected two coordinates, got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return internal.Point{}, errors.Wrap(err, "x")
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return internal.Point{}, errors.Wrap(err, "y")
	}
	return internal.Point{X: x, Y: y}, nil
}

func ReadSVG(in io.Reader) (internal.Mesh, error) {
	root, err := svgparser.Parse(in, true)
	if err != nil {
		return nil, errors.Wrap(err, "parse svg")
	}

	circles := root.FindAll("circle")
	mesh := make(internal.Mesh, 0, len(circles))
	for i, circle := range circles {
		x, err := strconv.ParseFloat(circle.Attributes["cx"], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "circle %d: invalid cx %q", i, circle.Attributes["cx"])
		}
		y, err := strconv.ParseFloat(circle.Attributes["cy"], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "circle %d: invalid cy %q", i, circle.Attributes["cy"])
		}
		mesh = append(mesh, internal.Point{X: x, Y: y})
	}
	return mesh, nil
}

// Write a mesh in the plain text format.
func WriteText(out io.Writer, mesh internal.Mesh) error {
	w := bufio.NewWriter(out)
	for _, p := range mesh {
		if _, err := w.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64) + " " + strconv.FormatFloat(p.Y, 'g', -1, 64) + "\n"); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(w.Flush())
}
