package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/osuushi/facemorph"
	"github.com/osuushi/facemorph/internal/landmarks"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open image")
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return img, nil
}

func writeImage(path string, img image.Image, format string, quality int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = errors.WithStack(closeErr)
		}
	}()

	switch format {
	case "png":
		err = png.Encode(f, img)
	case "jpg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case "bmp":
		err = bmp.Encode(f, img)
	default:
		return errors.Errorf("unsupported format %q", format)
	}
	return errors.Wrapf(err, "encode %s", path)
}

// Write both landmark lists, and their pointwise average, in the text format.
// This also converts SVG landmarks to text.
func dumpLandmarks(dir string, left, right []facemorph.Point) error {
	average := make([]facemorph.Point, len(left))
	for i := range left {
		average[i] = facemorph.Point{X: (left[i].X + right[i].X) / 2, Y: (left[i].Y + right[i].Y) / 2}
	}
	for name, mesh := range map[string][]facemorph.Point{"left": left, "right": right, "average": average} {
		if err := writeLandmarks(filepath.Join(dir, "landmarks_"+name+".txt"), mesh); err != nil {
			return err
		}
	}
	return nil
}

func writeLandmarks(path string, mesh []facemorph.Point) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = errors.WithStack(closeErr)
		}
	}()
	return errors.Wrapf(landmarks.WriteText(f, mesh), "write %s", path)
}

// Writes every frame the morph produces. The first failure is kept, and later
// frames are dropped.
type frameWriter struct {
	dir     string
	format  string
	quality int
	err     error
}

func (w *frameWriter) path(step int) string {
	return filepath.Join(w.dir, fmt.Sprintf("frame_%03d.%s", step, w.format))
}

func (w *frameWriter) write(step int, frame image.Image) error {
	if w.err != nil {
		return w.err
	}
	w.err = writeImage(w.path(step), frame, w.format, w.quality)
	return w.err
}
