/*
 * surface.go, part of gobox.
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

package surface

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/structbio/gobox"
	v3 "github.com/structbio/gobox/v3"
)

//Options contains the parameters of a surface calculation. Its zero value
//is not usable; obtain one from DefaultOptions and change what you need.
type Options struct {
	//Probe is the radius of the rolling probe sphere.
	Probe float64
	//SpherePoints is the number of mesh points placed on the sphere
	//around each point.
	SpherePoints int
	//Threshold is the fraction of a point's mesh that must be solvent
	//accessible for the point itself to count as exposed.
	Threshold float64
	//Cpus is the number of goroutines working on the calculation.
	Cpus int
}

//DefaultOptions returns an Options with the usual values for a molecular
//surface: a water-sized probe of 1.4, 960 mesh points per sphere and a 5%
//exposure threshold, using every logical CPU.
func DefaultOptions() *Options {
	return &Options{
		Probe:        1.4,
		SpherePoints: 960,
		Threshold:    0.05,
		Cpus:         runtime.NumCPU(),
	}
}

//Result holds the outcome of a surface calculation.
type Result struct {
	//Area is the total accessible surface area contributed by the
	//exposed points.
	Area float64
	//Mesh contains the accessible mesh points of every target, in
	//target order.
	Mesh *v3.Matrix
	//Exposed lists the indices of the targets whose accessible mesh
	//fraction exceeds the threshold.
	Exposed []int
}

//unitSphere returns n points distributed on the unit sphere along a golden
//spiral.
func unitSphere(n int) *v3.Matrix {
	ret := v3.Zeros(n)
	inc := math.Pi * (3 - math.Sqrt(5))
	offset := 2 / float64(n)
	for k := 0; k < n; k++ {
		y := float64(k)*offset - 1 + offset/2
		r := math.Sqrt(1 - y*y)
		phi := float64(k) * inc
		ret.Set(k, 0, math.Cos(phi)*r)
		ret.Set(k, 1, y)
		ret.Set(k, 2, math.Sin(phi)*r)
	}
	return ret
}

//perTarget is what one unit of work produces: the accessible mesh points
//around one target and whether enough of them are accessible for the
//target to count as exposed.
type perTarget struct {
	mesh    []float64
	exposed bool
	area    float64
}

//Calc estimates the accessible surface area of the current frame of s by
//the Shrake-Rupley rolling ball method. Around each target point a sphere
//mesh is inflated to the point's radius plus the probe radius; mesh points
//that no neighboring sphere swallows are accessible. Only the given targets
//are probed (all points, if targets is empty), but every point of the frame
//can occlude. A nil o means DefaultOptions.
func Calc(s *gobox.Structure, targets []int, o *Options) (*Result, error) {
	if o == nil {
		o = DefaultOptions()
	}
	coords := s.Coords()
	if coords == nil {
		return nil, Error{"empty structure", []string{"Calc"}}
	}
	n := coords.NVecs()
	if o.Threshold < 0 || o.Threshold > 1 {
		return nil, Error{fmt.Sprintf("threshold should be between 0 and 1, got %f", o.Threshold), []string{"Calc"}}
	}
	if o.SpherePoints <= 0 {
		return nil, Error{fmt.Sprintf("need a positive number of sphere points, got %d", o.SpherePoints), []string{"Calc"}}
	}
	if o.Probe < 0 {
		return nil, Error{fmt.Sprintf("probe radius cannot be negative, got %f", o.Probe), []string{"Calc"}}
	}
	radii, err := s.Radii()
	if err != nil {
		return nil, errDecorate(err, "Calc")
	}
	if len(targets) == 0 {
		targets = make([]int, n)
		for i := range targets {
			targets[i] = i
		}
	}
	for _, t := range targets {
		if t < 0 || t >= n {
			return nil, Error{fmt.Sprintf("target %d requested, but only %d points available", t, n), []string{"Calc"}}
		}
	}
	maxrad := radii[0]
	for _, r := range radii {
		if r > maxrad {
			maxrad = r
		}
	}
	sphere := unitSphere(o.SpherePoints)
	results := make([]perTarget, len(targets))
	work := make(chan int, len(targets))
	for w := range targets {
		work <- w
	}
	close(work)
	cpus := o.Cpus
	if cpus < 1 {
		cpus = 1
	}
	var wg sync.WaitGroup
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range work {
				results[k] = probeTarget(coords, radii, targets[k], sphere, o, maxrad)
			}
		}()
	}
	wg.Wait()
	ret := &Result{Exposed: []int{}}
	var meshdata []float64
	for k, r := range results {
		meshdata = append(meshdata, r.mesh...)
		if r.exposed {
			ret.Exposed = append(ret.Exposed, targets[k])
			ret.Area += r.area
		}
	}
	ret.Mesh = v3.Zeros(len(meshdata) / 3)
	for i := 0; i < len(meshdata)/3; i++ {
		ret.Mesh.Set(i, 0, meshdata[3*i])
		ret.Mesh.Set(i, 1, meshdata[3*i+1])
		ret.Mesh.Set(i, 2, meshdata[3*i+2])
	}
	return ret, nil
}

//probeTarget inflates the sphere mesh around one target and checks every
//mesh point against the spheres of the neighboring points. A mesh point is
//buried when it lies closer to a neighbor's surface than one probe radius.
func probeTarget(coords *v3.Matrix, radii []float64, i int, sphere *v3.Matrix, o *Options, maxrad float64) perTarget {
	n := coords.NVecs()
	xi, yi, zi := coords.At(i, 0), coords.At(i, 1), coords.At(i, 2)
	//the target itself passes the filter too; its own sphere never
	//buries its mesh, which sits exactly probe away from its surface
	cutoff := maxrad + 2*o.Probe
	var neigh []int
	for j := 0; j < n; j++ {
		dx := coords.At(j, 0) - xi
		dy := coords.At(j, 1) - yi
		dz := coords.At(j, 2) - zi
		if math.Sqrt(dx*dx+dy*dy+dz*dz) < cutoff {
			neigh = append(neigh, j)
		}
	}
	inflate := radii[i] + o.Probe
	cnt := 0
	var ret perTarget
	for m := 0; m < sphere.NVecs(); m++ {
		mx := sphere.At(m, 0)*inflate + xi
		my := sphere.At(m, 1)*inflate + yi
		mz := sphere.At(m, 2)*inflate + zi
		buried := false
		for _, j := range neigh {
			dx := coords.At(j, 0) - mx
			dy := coords.At(j, 1) - my
			dz := coords.At(j, 2) - mz
			if math.Sqrt(dx*dx+dy*dy+dz*dz)-radii[j] < o.Probe {
				buried = true
				break
			}
		}
		if !buried {
			cnt++
			ret.mesh = append(ret.mesh, mx, my, mz)
		}
	}
	if float64(cnt) > float64(o.SpherePoints)*o.Threshold {
		ret.exposed = true
		ret.area = 4 * math.Pi / float64(o.SpherePoints) * float64(cnt) * inflate * inflate
	}
	return ret
}

//Error is the concrete error type of the surface package.
type Error struct {
	message string
	deco    []string
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return "gobox/surface: " + err.message
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

type decorator interface {
	Error() string
	Decorate(string) []string
}

func errDecorate(err error, caller string) error {
	if err2, ok := err.(decorator); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
