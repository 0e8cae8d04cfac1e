package main

import (
	"fmt"
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/LdDl/explore-go/costmap"
	"github.com/LdDl/explore-go/frontier"
)

// plotFrontiers writes PNG scatter with obstacles, frontier cells colored by rank and the robot
func plotFrontiers(filename string, grid *costmap.Costmap, frontiers []frontier.Frontier, robot frontier.Point) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Frontiers (%d)", len(frontiers))
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	obstaclePts := make(plotter.XYs, 0)
	for my := 0; my < grid.SizeInCellsY(); my++ {
		for mx := 0; mx < grid.SizeInCellsX(); mx++ {
			if frontier.Classify(grid.CostAt(mx, my)) != frontier.Obstacle {
				continue
			}
			wx, wy := grid.MapToWorld(mx, my)
			obstaclePts = append(obstaclePts, plotter.XY{X: wx, Y: wy})
		}
	}
	if len(obstaclePts) > 0 {
		obstacles, err := plotter.NewScatter(obstaclePts)
		if err != nil {
			return errors.Wrap(err, "Can't plot obstacles")
		}
		obstacles.GlyphStyle.Color = color.Gray{Y: 64}
		obstacles.GlyphStyle.Radius = vg.Points(1)
		obstacles.GlyphStyle.Shape = draw.BoxGlyph{}
		p.Add(obstacles)
	}

	colors := generateColors(len(frontiers))
	for i, f := range frontiers {
		pts := make(plotter.XYs, 0, f.Size)
		pts = append(pts, plotter.XY{X: f.Initial.X, Y: f.Initial.Y})
		for _, pt := range f.Points {
			pts = append(pts, plotter.XY{X: pt.X, Y: pt.Y})
		}
		cells, err := plotter.NewScatter(pts)
		if err != nil {
			return errors.Wrapf(err, "Can't plot frontier %d", i)
		}
		cells.GlyphStyle.Color = colors[i]
		cells.GlyphStyle.Radius = vg.Points(1.5)
		cells.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(cells)
		if i < 10 {
			p.Legend.Add(fmt.Sprintf("#%d cost %.3f", i, f.Cost), cells)
		}
	}

	robotPts, err := plotter.NewScatter(plotter.XYs{{X: robot.X, Y: robot.Y}})
	if err != nil {
		return errors.Wrap(err, "Can't plot robot")
	}
	robotPts.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
	robotPts.GlyphStyle.Radius = vg.Points(4)
	robotPts.GlyphStyle.Shape = draw.CrossGlyph{}
	p.Add(robotPts)
	p.Legend.Add("robot", robotPts)

	if err := p.Save(10*vg.Inch, 10*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "Can't save plot to %q", filename)
	}
	return nil
}

// generateColors spreads n hues around the color wheel
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := uint8(l * 255)
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	rf := hueToRGB(p, q, h+1.0/3.0)
	gf := hueToRGB(p, q, h)
	bf := hueToRGB(p, q, h-1.0/3.0)
	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
