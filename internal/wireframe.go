package internal

import (
	"image"

	"github.com/fogleman/gg"
)

// Line width of debug wireframes, in pixels.
const wireframeLineWidth = 1

// Draw triangles as a wireframe: green edges and white vertices on black.
func RenderWireframe(triangles []Triangle, width, height int) image.Image {
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	c.SetLineWidth(wireframeLineWidth)
	c.SetRGB(0, 1, 0)
	for _, t := range triangles {
		c.MoveTo(t.A.X, t.A.Y)
		c.LineTo(t.B.X, t.B.Y)
		c.LineTo(t.C.X, t.C.Y)
		c.ClosePath()
	}
	c.Stroke()

	c.SetRGB(1, 1, 1)
	for _, t := range triangles {
		for _, p := range t.Points() {
			c.DrawPoint(p.X, p.Y, wireframeLineWidth*1.5)
		}
	}
	c.Fill()
	return c.Image()
}

// Wireframes of the left, right and averaged meshes. The averaged mesh is
// drawn on a canvas of the mean size of the two inputs.
func RenderWireframes(t *Triangulation, leftSize, rightSize image.Point) (left, right, average image.Image) {
	left = RenderWireframe(t.Left, leftSize.X, leftSize.Y)
	right = RenderWireframe(t.Right, rightSize.X, rightSize.Y)
	average = RenderWireframe(t.Average, (leftSize.X+rightSize.X)/2, (leftSize.Y+rightSize.Y)/2)
	return left, right, average
}
