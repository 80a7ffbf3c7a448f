/*
 * density.go, part of gobox.
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

package density

import (
	"fmt"
	"math"

	"github.com/structbio/gobox"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Options contains the parameters of a density synthesis. Its zero value is
//not usable; obtain one from DefaultOptions and change what you need.
type Options struct {
	//Step is the edge of the cubic voxels.
	Step float64
	//Sigma is the standard deviation of the gaussian kernel smearing
	//each point.
	Sigma float64
	//KernelHalfWidth is the kernel's half width in voxels; the kernel
	//window is a cube of edge 2*KernelHalfWidth+1.
	KernelHalfWidth int
	//Buff is the padding added around the points' bounding box.
	Buff float64
}

//DefaultOptions returns an Options with unit voxels, a unit-sigma kernel 5
//voxels in half width, and a padding of 3 around the cloud.
func DefaultOptions() *Options {
	return &Options{
		Step:            1,
		Sigma:           1,
		KernelHalfWidth: 5,
		Buff:            3,
	}
}

//Map is a synthesized volumetric density. Voxels are laid out x-major:
//the value at grid position i,j,k lives at Data[(i*Shape[1]+j)*Shape[2]+k].
type Map struct {
	//Data holds the density values, normalized so the strongest voxel
	//is 1.
	Data []float64
	//Shape is the number of voxels along each axis.
	Shape [3]int
	//Origin is the cartesian position of the map's corner.
	Origin [3]float64
	//Delta is the voxel edge.
	Delta float64
	//Sigma is the standard deviation of the normalized density values.
	Sigma float64
}

//At returns the density at grid position i,j,k.
func (m *Map) At(i, j, k int) float64 {
	return m.Data[(i*m.Shape[1]+j)*m.Shape[2]+k]
}

//axis is a uniform grid along one dimension, half-open at the far end.
type axis struct {
	start float64
	step  float64
	n     int
}

func newAxis(start, stop, step float64) axis {
	return axis{start, step, int(math.Ceil((stop - start) / step))}
}

//nearest returns the index of the grid value closest to p; ties go to the
//lower index.
func (a axis) nearest(p float64) int {
	best := 0
	bestd := math.Abs(a.start - p)
	for i := 1; i < a.n; i++ {
		d := math.Abs(a.start + float64(i)*a.step - p)
		if d < bestd {
			best = i
			bestd = d
		}
	}
	return best
}

//gaussKernel returns a cubic gaussian window of the given half width,
//truncated below machine precision and normalized to unit sum.
func gaussKernel(halfWidth int, sigma float64) []float64 {
	window := 2*halfWidth + 1
	h := make([]float64, window*window*window)
	max := 0.0
	idx := 0
	for x := -halfWidth; x <= halfWidth; x++ {
		for y := -halfWidth; y <= halfWidth; y++ {
			for z := -halfWidth; z <= halfWidth; z++ {
				v := math.Exp(-float64(x*x+y*y+z*z) / (2 * sigma * sigma))
				h[idx] = v
				if v > max {
					max = v
				}
				idx++
			}
		}
	}
	for i, v := range h {
		if v < eps*max {
			h[i] = 0
		}
	}
	if sum := floats.Sum(h); sum != 0 {
		floats.Scale(1/sum, h)
	}
	return h
}

const eps = 2.220446049250313e-16

//Synthesize builds a volumetric density map from the current frame of s.
//Every point drops a unit impulse on its nearest voxel (points sharing a
//voxel count once), the impulse grid is convolved with a gaussian kernel,
//and the result is normalized so its strongest voxel reads 1. A nil o
//means DefaultOptions.
func Synthesize(s *gobox.Structure, o *Options) (*Map, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if o.Step <= 0 {
		return nil, Error{fmt.Sprintf("voxel step must be positive, got %f", o.Step), []string{"Synthesize"}}
	}
	if o.Sigma <= 0 {
		return nil, Error{fmt.Sprintf("kernel sigma must be positive, got %f", o.Sigma), []string{"Synthesize"}}
	}
	if o.KernelHalfWidth < 0 {
		return nil, Error{fmt.Sprintf("kernel half width cannot be negative, got %d", o.KernelHalfWidth), []string{"Synthesize"}}
	}
	pts := s.Coords()
	if pts == nil {
		return nil, Error{"empty structure", []string{"Synthesize"}}
	}
	n := pts.NVecs()
	var min, max [3]float64
	for j := 0; j < 3; j++ {
		min[j] = pts.At(0, j)
		max[j] = pts.At(0, j)
	}
	for i := 1; i < n; i++ {
		for j := 0; j < 3; j++ {
			v := pts.At(i, j)
			if v < min[j] {
				min[j] = v
			}
			if v > max[j] {
				max[j] = v
			}
		}
	}
	var axes [3]axis
	for j := 0; j < 3; j++ {
		axes[j] = newAxis(min[j]-o.Buff, max[j]+o.Buff+o.Step, o.Step)
	}
	nx, ny, nz := axes[0].n, axes[1].n, axes[2].n
	grid := make([]float64, nx*ny*nz)
	for i := 0; i < n; i++ {
		x := axes[0].nearest(pts.At(i, 0))
		y := axes[1].nearest(pts.At(i, 1))
		z := axes[2].nearest(pts.At(i, 2))
		grid[(x*ny+y)*nz+z] = 1
	}
	window := 2*o.KernelHalfWidth + 1
	kernel := gaussKernel(o.KernelHalfWidth, o.Sigma)
	field := convolveSame(grid, [3]int{nx, ny, nz}, kernel, [3]int{window, window, window})
	if peak := floats.Max(field); peak > 0 {
		floats.Scale(1/peak, field)
	}
	ret := &Map{
		Data:  field,
		Shape: [3]int{nx, ny, nz},
		Delta: o.Step,
		Sigma: stat.PopStdDev(field, nil),
	}
	c := centroid(s)
	for j, nv := range ret.Shape {
		ret.Origin[j] = c[j] - o.Step*float64(nv)/2
	}
	return ret, nil
}

func centroid(s *gobox.Structure) [3]float64 {
	pts := s.Coords()
	n := pts.NVecs()
	var c [3]float64
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			c[j] += pts.At(i, j)
		}
	}
	for j := range c {
		c[j] /= float64(n)
	}
	return c
}

//Error is the concrete error type of the density package.
type Error struct {
	message string
	deco    []string
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return "gobox/density: " + err.message
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
