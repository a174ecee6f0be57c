package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/bubblecluster/bubble"
	"github.com/fogleman/gg"
)

var palette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072",
	"#80b1d3", "#fdb462", "#b3de69", "#fccde5",
}

func regionColor(r *bubble.Region) string {
	return palette[(r.ID()-1)%len(palette)]
}

// view maps cluster coordinates to image coordinates, fitting the cluster's
// bounding box into a square image with the y axis pointing up.
type view struct {
	aff bubble.Affine
}

func newView(c *bubble.Cluster, img ImageConfig) view {
	box, ok := c.BoundingBox()
	if !ok || box.Width() == 0 || box.Height() == 0 {
		box = bubble.Rect{X0: -1, Y0: -1, X1: 1, Y1: 1}.Union(box)
	}
	pad := float64(img.Padding)
	size := float64(img.Size)
	scale := math.Min((size-2*pad)/box.Width(), (size-2*pad)/box.Height())
	aff := bubble.Translate(bubble.Vec(-box.MinX(), -box.MinY())).
		ThenScale(scale, -scale).
		ThenTranslate(bubble.Vec(pad, size-pad))
	return view{aff: aff}
}

func (v view) screen(p bubble.Point) (float64, float64) {
	q := p.Transform(v.aff)
	return q.X, q.Y
}

// RenderPNG draws the regions, chains and nodes of c to a PNG file.
func RenderPNG(c *bubble.Cluster, path string, img ImageConfig) error {
	v := newView(c, img)
	dc := gg.NewContext(img.Size, img.Size)
	dc.SetColor(color.White)
	dc.Clear()

	for _, r := range c.Regions() {
		loops, ok := r.Loops()
		if !ok {
			return fmt.Errorf("render %s: boundary is not closed", r)
		}
		for _, loop := range loops {
			dc.NewSubPath()
			for _, p := range bubble.PathPoints(loop) {
				dc.LineTo(v.screen(p))
			}
			dc.ClosePath()
		}
		dc.SetHexColor(regionColor(r))
		dc.Fill()
	}

	for _, ch := range c.Chains() {
		dc.NewSubPath()
		for p := range ch.Points() {
			dc.LineTo(v.screen(p))
		}
	}
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1.5)
	dc.Stroke()

	for _, n := range c.Nodes() {
		x, y := v.screen(n.Point)
		dc.DrawCircle(x, y, 3)
	}
	dc.SetRGB(0.8, 0, 0)
	dc.Fill()

	return dc.SavePNG(path)
}
