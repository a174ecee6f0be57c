package main

import (
	"fmt"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/bubblecluster/bubble"
)

const (
	chainStyle = "fill:none;stroke:rgb(0,0,0);stroke-width:1.5"
	nodeStyle  = "fill:rgb(204,0,0)"
)

// RenderSVG draws the regions, chains and nodes of c to an SVG file.
func RenderSVG(c *bubble.Cluster, path string, img ImageConfig) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	v := newView(c, img)
	canvas := svg.New(file)
	canvas.Start(img.Size, img.Size)
	canvas.Rect(0, 0, img.Size, img.Size, "fill:rgb(255,255,255)")

	for _, r := range c.Regions() {
		loops, ok := r.Loops()
		if !ok {
			return fmt.Errorf("render %s: boundary is not closed", r)
		}
		var d strings.Builder
		for _, loop := range loops {
			for i, p := range bubble.PathPoints(loop) {
				x, y := v.screen(p)
				op := "L"
				if i == 0 {
					op = "M"
				}
				fmt.Fprintf(&d, "%s%.2f %.2f ", op, x, y)
			}
			d.WriteString("Z ")
		}
		canvas.Path(d.String(), fmt.Sprintf("fill:%s;stroke:none", regionColor(r)), fmt.Sprintf(`id="region-%d"`, r.ID()))
	}

	for _, ch := range c.Chains() {
		var xs, ys []int
		for p := range ch.Points() {
			x, y := v.screen(p)
			xs = append(xs, int(x+0.5))
			ys = append(ys, int(y+0.5))
		}
		canvas.Polyline(xs, ys, chainStyle)
	}

	for _, n := range c.Nodes() {
		x, y := v.screen(n.Point)
		canvas.Circle(int(x+0.5), int(y+0.5), 3, nodeStyle)
	}
	canvas.End()
	return nil
}
