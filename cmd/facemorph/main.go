// Command facemorph blends two face images into a sequence of frames.
//
// Each face needs a landmark file listing the same facial features in the same
// order, either as "x y" lines or as the circle centers of an SVG document:
//
//	facemorph left.jpg right.jpg left.txt right.txt -n 20 -o frames
//
// Frame i of n is written as frames/frame_00i.png, from the left face at frame
// 0 to the right face at frame n.
package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/facemorph"
	"github.com/osuushi/facemorph/internal/landmarks"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"gopkg.in/alecthomas/kingpin.v2"
)

type config struct {
	leftImage, rightImage         string
	leftLandmarks, rightLandmarks string
	steps                         int
	out                           string
	format                        string
	quality                       int
	timeout                       time.Duration
	wireframes                    bool
	dumpLandmarks                 bool
	preview                       bool
	verbose                       bool
	trace                         bool
}

func parseArgs(args []string) (*config, error) {
	c := &config{}
	app := kingpin.New("facemorph", "Morph one face into another.")
	app.Arg("left", "Left face image (png, jpg or bmp).").Required().ExistingFileVar(&c.leftImage)
	app.Arg("right", "Right face image.").Required().ExistingFileVar(&c.rightImage)
	app.Arg("left-landmarks", "Landmarks of the left face (txt or svg).").Required().ExistingFileVar(&c.leftLandmarks)
	app.Arg("right-landmarks", "Landmarks of the right face, in the same order.").Required().ExistingFileVar(&c.rightLandmarks)
	app.Flag("steps", "Number of steps after the first frame.").Short('n').Default("10").IntVar(&c.steps)
	app.Flag("out", "Output directory.").Short('o').Default("frames").StringVar(&c.out)
	app.Flag("format", "Frame format.").Short('f').Default("png").EnumVar(&c.format, "png", "jpg", "bmp")
	app.Flag("quality", "JPEG quality.").Default("90").IntVar(&c.quality)
	app.Flag("timeout", "Stop after this long, keeping the frames written so far.").Default("0").DurationVar(&c.timeout)
	app.Flag("wireframes", "Also write wireframes of the triangulation.").BoolVar(&c.wireframes)
	app.Flag("dump-landmarks", "Also write the left, right and averaged landmarks as text.").BoolVar(&c.dumpLandmarks)
	app.Flag("preview", "Show the last frame in the terminal (iTerm2).").BoolVar(&c.preview)
	app.Flag("verbose", "Log progress to stderr.").Short('v').BoolVar(&c.verbose)
	app.Flag("trace", "Log every triangle. Implies --verbose.").BoolVar(&c.trace)

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}
	if c.steps < 0 {
		return nil, errors.Errorf("--steps must not be negative, got %d", c.steps)
	}
	c.verbose = c.verbose || c.trace
	return c, nil
}

func main() {
	c, err := parseArgs(os.Args[1:])
	if err != nil {
		kingpin.Fatalf("%v", err)
	}

	interactive := term.IsTerminal(int(os.Stderr.Fd()))
	au := aurora.NewAurora(interactive)
	if err := run(c, au, interactive); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", au.Red("Error:"), err)
		os.Exit(1)
	}
}

func run(c *config, au aurora.Aurora, interactive bool) error {
	left, err := readImage(c.leftImage)
	if err != nil {
		return err
	}
	right, err := readImage(c.rightImage)
	if err != nil {
		return err
	}
	leftMesh, err := landmarks.Load(c.leftLandmarks)
	if err != nil {
		return err
	}
	rightMesh, err := landmarks.Load(c.rightLandmarks)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.out, 0755); err != nil {
		return err
	}

	var logger *log.Logger
	if c.verbose {
		logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
	}

	if c.dumpLandmarks {
		if err := dumpLandmarks(c.out, leftMesh, rightMesh); err != nil {
			return err
		}
	}
	if c.wireframes {
		if err := writeWireframes(c, left, right, leftMesh, rightMesh); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer := &frameWriter{dir: c.out, format: c.format, quality: c.quality}
	var s *spinner
	if interactive && !c.verbose {
		s = newSpinner()
		s.start(fmt.Sprintf("Morphing %d frames...", c.steps+1))
	}

	start := time.Now()
	result, err := facemorph.Blend(ctx, left, right, leftMesh, rightMesh, facemorph.Options{
		Steps:  c.steps,
		Logger: logger,
		Trace:  c.trace,
		OnFrame: func(step int, ratio float64, frame *image.NRGBA) {
			if err := writer.write(step, frame); err != nil {
				cancel()
			}
		},
	})
	if s != nil {
		s.stop()
	}
	if err != nil {
		return err
	}
	if writer.err != nil {
		return writer.err
	}

	fmt.Fprintf(os.Stderr, "\nMorphed %s frames in %s\n", au.Green(result.Completed), au.Green(formatTime(time.Since(start))))
	if result.Aborted {
		fmt.Fprintf(os.Stderr, "%s stopped after %d of %d frames\n", au.Yellow("Interrupted:"), result.Completed, c.steps+1)
	}
	if result.Completed > 0 {
		last := writer.path(result.Completed - 1)
		fmt.Fprintf(os.Stderr, "Saved to: %s %s\n", c.out, au.Green("✓"))
		if c.preview {
			if err := imgcat.CatFile(last, os.Stdout); err != nil {
				return errors.Wrap(err, "preview")
			}
		}
	}
	return nil
}

func writeWireframes(c *config, left, right image.Image, leftMesh, rightMesh []facemorph.Point) error {
	tri, err := facemorph.Triangulate(leftMesh, rightMesh)
	if err != nil {
		return err
	}
	l, r, avg, err := facemorph.Wireframes(left, right, tri)
	if err != nil {
		return err
	}
	for name, img := range map[string]image.Image{"left": l, "right": r, "average": avg} {
		path := filepath.Join(c.out, "wireframe_"+name+"."+c.format)
		if err := writeImage(path, img, c.format, c.quality); err != nil {
			return err
		}
	}
	return nil
}
