package internal

import (
	"image"
	"image/color"
	"math"
)

// ToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
// An *image.NRGBA that already starts at the origin is returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	case *image.Gray:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := src.Pix[si]
				dst.Pix[di+0] = c
				dst.Pix[di+1] = c
				dst.Pix[di+2] = c
				dst.Pix[di+3] = 0xff
				di += 4
				si++
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}

// Nearest raster coordinate to a mapped point, clamped into the raster.
func clampToBounds(p Point, bounds image.Rectangle) (x, y int) {
	x = clamp(int(math.Round(p.X)), bounds.Min.X, bounds.Max.X-1)
	y = clamp(int(math.Round(p.Y)), bounds.Min.Y, bounds.Max.Y-1)
	return x, y
}

// Per pixel coverage weight ("clip ratio") of a source raster, in [0, 1]. A
// pixel only partially covered by its triangle hands that share of its weight
// to the other image when blending. The zero value, or a map that was never
// written, weighs nothing.
type Coverage struct {
	Width, Height int
	Ratios        []float64
}

func NewCoverage(width, height int) *Coverage {
	return &Coverage{
		Width:  width,
		Height: height,
		Ratios: make([]float64, width*height),
	}
}

func (c *Coverage) At(x, y int) float64 {
	if c == nil || x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0
	}
	return c.Ratios[y*c.Width+x]
}

func (c *Coverage) Set(x, y int, ratio float64) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.Ratios[y*c.Width+x] = clamp(ratio, 0, 1)
}
