/*
 * plot.go, part of gobox.
 *
 * Copyright 2024 The gobox developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package gobox

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//PlotRMSF computes the root mean square fluctuation of the selected points
//(see RMSF) and saves a line plot of it, against point rank, as a PNG file.
func (s *Structure) PlotRMSF(plotname string, indices []int, step ...float64) error {
	rmsf, err := s.RMSF(indices, step...)
	if err != nil {
		return errDecorate(err, "PlotRMSF")
	}
	p := basicPlot("Per-point fluctuation", "Point", "RMSF")
	pts := make(plotter.XYs, len(rmsf))
	for i, v := range rmsf {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(l)
	return p.Save(5*vg.Inch, 5*vg.Inch, fmt.Sprintf("%s.png", plotname))
}

//PlotProjections projects every conformation on the dominant principal
//components (see PCAProject) and saves a scatter plot of the first two
//projections, one point per conformation, as a PNG file. At least two modes
//must survive the threshold.
func (s *Structure) PlotProjections(plotname string, indices []int, threshold float64) error {
	_, _, proj, err := s.PCAProject(indices, threshold)
	if err != nil {
		return errDecorate(err, "PlotProjections")
	}
	modes, f := proj.Dims()
	if modes < 2 {
		return preconditionError("PlotProjections", "only %d dominant mode(s) at threshold %f, need 2 to plot", modes, threshold)
	}
	p := basicPlot("Principal component projections", "PC1", "PC2")
	pts := make(plotter.XYs, f)
	for j := 0; j < f; j++ {
		pts[j].X = proj.At(0, j)
		pts[j].Y = proj.At(1, j)
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	p.Add(sc)
	return p.Save(5*vg.Inch, 5*vg.Inch, fmt.Sprintf("%s.png", plotname))
}
