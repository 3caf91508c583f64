// Package debugdraw renders a pathfinder snapshot to an image: the main
// polygon in green, enabled obstacles in red, disabled ones in grey,
// visibility links in yellow and an optional path in blue.
package debugdraw

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"polynav"
)

var (
	background   = color.RGBA{0x20, 0x20, 0x20, 0xff}
	mainFill     = color.RGBA{0x1e, 0x5a, 0x28, 0xff}
	mainEdge     = color.RGBA{0x40, 0xd0, 0x50, 0xff}
	obstacleFill = color.RGBA{0x80, 0x18, 0x18, 0xff}
	obstacleEdge = color.RGBA{0xf0, 0x40, 0x40, 0xff}
	disabledEdge = color.RGBA{0x90, 0x90, 0x90, 0xff}
	linkColor    = color.NRGBA{0xe0, 0xd0, 0x30, 0xa0}
	nodeColor    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	pathColor    = color.RGBA{0x40, 0x80, 0xff, 0xff}
)

const defaultMargin = 8

// Options control the output size.
type Options struct {
	Width, Height int
	// Margin is the blank border in pixels.
	Margin int
}

// Render draws snap, and path if it has at least two points.
func Render(snap polynav.Snapshot, path []polynav.Point, opts Options) *image.RGBA {
	if opts.Width <= 0 {
		opts.Width = 512
	}
	if opts.Height <= 0 {
		opts.Height = opts.Width
	}
	if opts.Margin <= 0 {
		opts.Margin = defaultMargin
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	c, ok := newCanvas(img, snap, path, opts.Margin)
	if !ok {
		return img
	}

	for _, p := range snap.Polygons {
		if p.Role == polynav.RoleMain {
			c.fill(p.Vertices, mainFill)
		}
	}
	for _, p := range snap.Polygons {
		switch {
		case p.Role == polynav.RoleMain:
			c.outline(p.Vertices, mainEdge, 1.5)
		case p.Enabled:
			c.fill(p.Vertices, obstacleFill)
			c.outline(p.Vertices, obstacleEdge, 1.5)
		default:
			c.outline(p.Vertices, disabledEdge, 1)
		}
	}
	for _, l := range snap.Links {
		c.line(l.P1, l.P2, linkColor, 0.5)
	}
	for _, p := range snap.Polygons {
		for _, n := range p.Nodes {
			c.dot(n, nodeColor, 2)
		}
	}
	for i := 1; i < len(path); i++ {
		c.line(path[i-1], path[i], pathColor, 2)
	}
	return img
}

// EncodePNG renders and writes the image as PNG.
func EncodePNG(w io.Writer, snap polynav.Snapshot, path []polynav.Point, opts Options) error {
	return png.Encode(w, Render(snap, path, opts))
}

// canvas maps world coordinates (y up) to pixels (y down).
type canvas struct {
	img   *image.RGBA
	r     *vector.Rasterizer
	scale float64
	minX  float64
	minY  float64
	off   float64
	h     float64
}

func newCanvas(img *image.RGBA, snap polynav.Snapshot, path []polynav.Point, margin int) (*canvas, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(pts []polynav.Point) {
		for _, p := range pts {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	for _, p := range snap.Polygons {
		grow(p.Vertices)
	}
	grow(path)
	if math.IsInf(minX, 1) {
		return nil, false
	}

	b := img.Bounds()
	w := float64(b.Dx() - 2*margin)
	h := float64(b.Dy() - 2*margin)
	if w <= 0 || h <= 0 {
		return nil, false
	}
	scale := math.Min(w/math.Max(maxX-minX, 1e-9), h/math.Max(maxY-minY, 1e-9))

	return &canvas{
		img:   img,
		r:     vector.NewRasterizer(b.Dx(), b.Dy()),
		scale: scale,
		minX:  minX,
		minY:  minY,
		off:   float64(margin),
		h:     float64(b.Dy()),
	}, true
}

func (c *canvas) px(p polynav.Point) (float32, float32) {
	x := c.off + (p.X-c.minX)*c.scale
	y := c.h - c.off - (p.Y-c.minY)*c.scale
	return float32(x), float32(y)
}

func (c *canvas) paint(col color.Color) {
	b := c.img.Bounds()
	c.r.Draw(c.img, b, image.NewUniform(col), image.Point{})
	c.r.Reset(b.Dx(), b.Dy())
}

func (c *canvas) fill(pts []polynav.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	c.r.MoveTo(c.px(pts[0]))
	for _, p := range pts[1:] {
		c.r.LineTo(c.px(p))
	}
	c.r.ClosePath()
	c.paint(col)
}

func (c *canvas) outline(pts []polynav.Point, col color.Color, width float32) {
	prev := pts[len(pts)-1]
	for _, p := range pts {
		c.line(prev, p, col, width)
		prev = p
	}
}

// line strokes a-b as a quad of the given pixel width.
func (c *canvas) line(a, b polynav.Point, col color.Color, width float32) {
	ax, ay := c.px(a)
	bx, by := c.px(b)
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2

	c.r.MoveTo(ax+nx, ay+ny)
	c.r.LineTo(bx+nx, by+ny)
	c.r.LineTo(bx-nx, by-ny)
	c.r.LineTo(ax-nx, ay-ny)
	c.r.ClosePath()
	c.paint(col)
}

func (c *canvas) dot(p polynav.Point, col color.Color, radius float32) {
	x, y := c.px(p)
	c.r.MoveTo(x-radius, y-radius)
	c.r.LineTo(x+radius, y-radius)
	c.r.LineTo(x+radius, y+radius)
	c.r.LineTo(x-radius, y+radius)
	c.r.ClosePath()
	c.paint(col)
}
