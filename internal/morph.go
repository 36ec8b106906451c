package internal

import (
	"context"
	"image"
	"log"
	"math"
	"sync/atomic"
	"time"
)

// Receives (step, outOf) after every completed step. step runs from 0 to
// outOf inclusive.
type ProgressListener interface {
	OnProgress(step, outOf int)
}

type ProgressFunc func(step, outOf int)

func (f ProgressFunc) OnProgress(step, outOf int) {
	f(step, outOf)
}

// Receives the output raster once a step is complete. The raster is reused and
// cleared by the next step, so a sink that keeps frames must copy or encode
// them before returning.
type FrameSink func(step int, ratio float64, frame *image.NRGBA)

type OperatorOptions struct {
	// Number of steps after the first. The operator produces Steps+1 frames,
	// from ratio 0 (left) to ratio 1 (right). Zero produces only the left
	// geometry.
	Steps    int
	Progress ProgressListener
	OnFrame  FrameSink
	// Optional coverage weights of the left and right rasters.
	LeftCoverage  *Coverage
	RightCoverage *Coverage
	Logger        *log.Logger
	// Cancelling the context aborts the operator, like Abort. Nil never
	// cancels.
	Context context.Context
}

type MorphResult struct {
	// The output raster as the last completed step left it. Blank if the
	// operator was aborted before the first step.
	Image *image.NRGBA
	// Number of completed steps, out of Steps+1.
	Completed int
	Aborted   bool
}

// The morph operator blends two rasters through a triangulation. It owns a
// single output raster which every step clears and repaints.
type Operator struct {
	opts          OperatorOptions
	left, right   *image.NRGBA
	triangulation *Triangulation

	result *image.NRGBA
	// Pixels already painted in the current step. The first triangle to reach
	// a pixel on a shared edge owns it.
	owned           []bool
	resultTriangles []Triangle
	abort           atomic.Bool
}

func NewOperator(left, right image.Image, triangulation *Triangulation, opts OperatorOptions) *Operator {
	if len(triangulation.Left) != len(triangulation.Right) {
		fatalf("left and right triangle lists differ in length: %d != %d", len(triangulation.Left), len(triangulation.Right))
	}
	if opts.Steps < 0 {
		fatalf("negative step count: %d", opts.Steps)
	}
	o := &Operator{
		opts:          opts,
		left:          ToNRGBA(left),
		right:         ToNRGBA(right),
		triangulation: triangulation,
	}
	width := max(o.left.Bounds().Dx(), o.right.Bounds().Dx())
	height := max(o.left.Bounds().Dy(), o.right.Bounds().Dy())
	o.result = image.NewNRGBA(image.Rect(0, 0, width, height))
	o.owned = make([]bool, width*height)
	return o
}

// Ask the operator to stop. The step in progress still completes. Safe to call
// from any goroutine.
func (o *Operator) Abort() {
	o.abort.Store(true)
}

// Has the operator been asked to stop, through Abort or its context?
func (o *Operator) Aborted() bool {
	if o.abort.Load() {
		return true
	}
	return o.opts.Context != nil && o.opts.Context.Err() != nil
}

// The result triangles of the most recent step.
func (o *Operator) ResultTriangles() []Triangle {
	return o.resultTriangles
}

// Run every step, from ratio 0 to ratio 1, unless aborted.
func (o *Operator) Morph() MorphResult {
	result := MorphResult{Image: o.result}
	for i := 0; i <= o.opts.Steps; i++ {
		if o.Aborted() {
			result.Aborted = true
			break
		}
		start := time.Now()
		ratio := o.Ratio(i)
		o.Step(ratio)
		result.Completed++
		o.logf("Step %d/%d (ratio %.3f) in %v", i, o.opts.Steps, ratio, time.Since(start))

		if o.opts.OnFrame != nil {
			o.opts.OnFrame(i, ratio, o.result)
		}
		if o.opts.Progress != nil {
			o.opts.Progress.OnProgress(i, o.opts.Steps)
		}
	}
	return result
}

func (o *Operator) Ratio(step int) float64 {
	if o.opts.Steps == 0 {
		return 0
	}
	return float64(step) / float64(o.opts.Steps)
}

// Paint one frame at the given ratio into the output raster.
func (o *Operator) Step(ratio float64) *image.NRGBA {
	o.clear()
	o.genResultTriangles(ratio)
	for k, result := range o.resultTriangles {
		// A triangle flipping over between the two meshes passes through zero
		// area. It has no interior to paint at that ratio.
		if result.IsDegenerate() {
			continue
		}
		leftTransform := SolveAffine(o.triangulation.Left[k], result)
		rightTransform := SolveAffine(o.triangulation.Right[k], result)
		for _, p := range result.WithinsIn(o.result.Bounds()) {
			o.merge(p, leftTransform, rightTransform, ratio)
		}
	}
	return o.result
}

func (o *Operator) clear() {
	for i := range o.result.Pix {
		o.result.Pix[i] = 0
	}
	for i := range o.owned {
		o.owned[i] = false
	}
}

// Slide the mesh from left (ratio 0) to right (ratio 1).
func (o *Operator) genResultTriangles(ratio float64) {
	o.resultTriangles = o.resultTriangles[:0]
	for k := range o.triangulation.Left {
		l := o.triangulation.Left[k]
		r := o.triangulation.Right[k]
		o.resultTriangles = append(o.resultTriangles, Triangle{
			A: l.A.Lerp(r.A, ratio),
			B: l.B.Lerp(r.B, ratio),
			C: l.C.Lerp(r.C, ratio),
		})
	}
}

// Blend the left and right pixels behind one result pixel.
func (o *Operator) merge(p Point, leftTransform, rightTransform AffineTransform, ratio float64) {
	x, y := int(p.X), int(p.Y)
	bounds := o.result.Bounds()
	if x < bounds.Min.X || y < bounds.Min.Y || x >= bounds.Max.X || y >= bounds.Max.Y {
		return
	}
	ownedIndex := y*bounds.Dx() + x
	if o.owned[ownedIndex] {
		return
	}
	o.owned[ownedIndex] = true

	lx, ly := clampToBounds(leftTransform.Apply(p), o.left.Bounds())
	rx, ry := clampToBounds(rightTransform.Apply(p), o.right.Bounds())
	leftPixel := o.left.Pix[o.left.PixOffset(lx, ly):]
	rightPixel := o.right.Pix[o.right.PixOffset(rx, ry):]

	fl, fr := blendWeights(ratio, o.opts.LeftCoverage.At(lx, ly), o.opts.RightCoverage.At(rx, ry))
	di := o.result.PixOffset(x, y)
	for c := 0; c < 3; c++ {
		v := float64(leftPixel[c])*fl + float64(rightPixel[c])*fr
		o.result.Pix[di+c] = uint8(clamp(math.Round(v), 0, 255))
	}
	o.result.Pix[di+3] = 0xff
}

// Weights of the left and right pixel. Without coverage this is a plain cross
// dissolve, 1-ratio and ratio. A partially covered pixel hands its uncovered
// share to the other image. The weights always sum to 1.
func blendWeights(ratio, leftCoverage, rightCoverage float64) (fl, fr float64) {
	fl = (1-ratio)*(1-leftCoverage) + ratio*rightCoverage
	fr = ratio*(1-rightCoverage) + (1-ratio)*leftCoverage
	return fl, fr
}

func (o *Operator) logf(format string, args ...interface{}) {
	if o.opts.Logger != nil {
		o.opts.Logger.Printf(format, args...)
	}
}
