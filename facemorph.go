// Face morphing for Go.
//
// This package blends two face images into a sequence of intermediate images.
// Given corresponding landmark points on each face, it triangulates the
// averaged landmarks, maps every triangle between the two faces with an affine
// transform, and cross dissolves the warped pixels for each ratio from 0 (the
// left face) to 1 (the right face).
//
// Landmark detection is up to the caller. See internal/landmarks for simple
// landmark file formats.
package facemorph

import (
	"context"
	"image"
	"log"
	"time"

	"github.com/osuushi/facemorph/internal"
	"github.com/pkg/errors"
)

type Point = internal.Point
type Triangle = internal.Triangle
type Triangulation = internal.Triangulation
type AffineTransform = internal.AffineTransform
type Coverage = internal.Coverage
type ProgressListener = internal.ProgressListener
type ProgressFunc = internal.ProgressFunc
type FrameSink = internal.FrameSink
type Result = internal.MorphResult

var (
	// No landmarks were given for at least one of the faces. This is the
	// normal outcome when a detector found no face, not a failure.
	ErrNoFace = errors.New("no face landmarks")
	// The two faces have a different number of landmarks.
	ErrMeshMismatch = errors.New("landmark counts differ")
	// Fewer than three distinct averaged landmarks.
	ErrTooFewLandmarks = errors.New("too few landmarks to triangulate")
	// The landmarks are all on one line, or a triangle has no area.
	ErrDegenerateMesh = errors.New("degenerate landmark mesh")
)

type Options struct {
	// Number of steps after the first frame. Steps+1 frames are produced.
	Steps int
	// Called after every completed step.
	Progress ProgressListener
	// Called with the output raster after every completed step. The raster is
	// reused by the next step.
	OnFrame FrameSink
	// Per pixel coverage weights of the input rasters. Nil weighs nothing.
	LeftCoverage  *Coverage
	RightCoverage *Coverage
	// Nil is silent.
	Logger *log.Logger
	// Log every accepted triangle during triangulation.
	Trace bool
}

func NewCoverage(width, height int) *Coverage {
	return internal.NewCoverage(width, height)
}

// Triangulate the averaged landmarks of two faces. The landmark lists must
// correspond index by index.
func Triangulate(left, right []Point) (*Triangulation, error) {
	return triangulate(left, right, Options{})
}

func triangulate(left, right []Point, opts Options) (result *Triangulation, err error) {
	if len(left) == 0 || len(right) == 0 {
		return nil, ErrNoFace
	}
	if len(left) != len(right) {
		return nil, errors.Wrapf(ErrMeshMismatch, "%d left, %d right", len(left), len(right))
	}

	defer func() {
		recoveredErr := internal.HandleMorphPanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = errors.Wrap(ErrDegenerateMesh, recoveredErr.Error())
		}
	}()

	triangulator := internal.NewTriangulator(left, right)
	triangulator.Logger = opts.Logger
	triangulator.Trace = opts.Trace
	result = triangulator.Run()

	if result.Len() == 0 {
		if distinctMidpoints(left, right) < 3 {
			return nil, errors.Wrapf(ErrTooFewLandmarks, "%d landmarks", len(left))
		}
		return nil, errors.Wrap(ErrDegenerateMesh, "landmarks are collinear")
	}
	return result, nil
}

func distinctMidpoints(left, right []Point) int {
	set := make(internal.PointSet)
	for i := range left {
		set.Add(internal.Midpoint(left[i], right[i]))
	}
	return len(set)
}

// Morph two images through a triangulation of their landmarks.
//
// Cancelling the context stops the morph after the step in progress. This is
// not an error: the result reports how many steps completed.
func Morph(ctx context.Context, left, right image.Image, t *Triangulation, opts Options) (result *Result, err error) {
	if t == nil || t.Len() == 0 {
		return nil, ErrNoFace
	}
	if len(t.Left) != len(t.Right) || len(t.Left) != len(t.Average) {
		return nil, errors.Wrapf(ErrMeshMismatch, "%d left triangles, %d right, %d average", len(t.Left), len(t.Right), len(t.Average))
	}
	if opts.Steps < 0 {
		return nil, errors.Errorf("negative step count: %d", opts.Steps)
	}

	defer func() {
		recoveredErr := internal.HandleMorphPanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = errors.Wrap(ErrDegenerateMesh, recoveredErr.Error())
		}
	}()

	op := internal.NewOperator(left, right, t, internal.OperatorOptions{
		Steps:         opts.Steps,
		Progress:      opts.Progress,
		OnFrame:       opts.OnFrame,
		LeftCoverage:  opts.LeftCoverage,
		RightCoverage: opts.RightCoverage,
		Logger:        opts.Logger,
		Context:       ctx,
	})

	morphResult := op.Morph()
	return &morphResult, nil
}

// Triangulate the landmarks and morph the images in one go. Empty landmarks
// return ErrNoFace.
func Blend(ctx context.Context, left, right image.Image, leftLandmarks, rightLandmarks []Point, opts Options) (*Result, error) {
	start := time.Now()
	t, err := triangulate(leftLandmarks, rightLandmarks, opts)
	if err != nil {
		return nil, err
	}
	result, err := Morph(ctx, left, right, t, opts)
	if err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		opts.Logger.Printf("Blend of %d frames took %v", result.Completed, time.Since(start))
	}
	return result, nil
}

// Debug wireframes of the left, right and averaged triangles, sized like the
// left image, the right image, and their mean.
func Wireframes(left, right image.Image, t *Triangulation) (l, r, avg image.Image, err error) {
	if t == nil {
		return nil, nil, nil, ErrNoFace
	}
	l, r, avg = internal.RenderWireframes(t, left.Bounds().Size(), right.Bounds().Size())
	return l, r, avg, nil
}
