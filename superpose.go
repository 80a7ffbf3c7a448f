/*
 * superpose.go, part of gobox.
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
	"math"
	"runtime"
	"sync"

	v3 "github.com/structbio/gobox/v3"
	"gonum.org/v1/gonum/mat"
)

//kabsch superimposes the centered copy of test onto the centered copy of ref
//and returns the minimal RMSD along with the 3x3 rotation that, right
//multiplied to the centered test points, realizes it. Both matrices must
//hold the same number of points. The rotation is taken from the raw singular
//vectors; the reflection correction only enters the RMSD value, so the
//rotation of a mirror-image pair is an improper one.
func kabsch(ref, test *v3.Matrix) (float64, *v3.Matrix, error) {
	l := ref.NVecs()
	if l == 0 {
		return 0, nil, preconditionError("kabsch", "no points to superimpose")
	}
	if test.NVecs() != l {
		return 0, nil, shapeError("kabsch", "%d points against %d", test.NVecs(), l)
	}
	m1 := v3.Zeros(l)
	m1.Copy(ref)
	centerInPlace(m1)
	m2 := v3.Zeros(l)
	m2.Copy(test)
	centerInPlace(m2)
	n1 := m1.Norm(2)
	n2 := m2.Norm(2)
	e0 := n1*n1 + n2*n2
	cov := mat.NewDense(3, 3, nil)
	cov.Mul(m2.Dense.T(), m1.Dense)
	u, v, sv, err := v3.SVD(v3.Dense2Matrix(cov))
	if err != nil {
		return 0, nil, errDecorate(err, "kabsch")
	}
	rot := v3.Zeros(3)
	rot.Mul(u, v.Dense.T())
	if v3.Det(u)*v3.Det(v) < 0 {
		sv[2] = -sv[2]
	}
	rmsd := math.Sqrt(math.Abs(e0-2*(sv[0]+sv[1]+sv[2])) / float64(l))
	return rmsd, rot, nil
}

func centerInPlace(m *v3.Matrix) {
	n := m.NVecs()
	c := v3.Zeros(1)
	for i := 0; i < n; i++ {
		c.AddVec(c, m.VecView(i))
	}
	c.Scale(-1.0/float64(n), c)
	m.AddVec(m, c)
}

//frameSubset returns a copy of the given frame restricted to indices, or of
//the whole frame when indices is empty.
func (s *Structure) frameSubset(i int, indices []int) (*v3.Matrix, error) {
	f, err := s.Frame(i)
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		ret := v3.Zeros(f.NVecs())
		ret.Copy(f)
		return ret, nil
	}
	for _, v := range indices {
		if v < 0 || v >= f.NVecs() {
			return nil, indexError("frameSubset", "point %d requested, but only %d points available", v, f.NVecs())
		}
	}
	ret := v3.Zeros(len(indices))
	ret.SomeVecs(f, indices)
	return ret, nil
}

//RMSD returns the minimal root mean square deviation between conformations
//i and j, after optimal superposition by the Kabsch algorithm. If indices
//are given, only those points enter the comparison. Neither conformation is
//modified.
func (s *Structure) RMSD(i, j int, indices ...int) (float64, error) {
	m1, err := s.frameSubset(i, indices)
	if err != nil {
		return 0, errDecorate(err, "RMSD")
	}
	m2, err := s.frameSubset(j, indices)
	if err != nil {
		return 0, errDecorate(err, "RMSD")
	}
	rmsd, _, err := kabsch(m1, m2)
	if err != nil {
		return 0, errDecorate(err, "RMSD")
	}
	return rmsd, nil
}

//RMSDOneVsAll returns the minimal RMSD of every conformation against the
//reference one, in frame order, with a zero at the reference's position. If
//indices are given, only those points enter the comparisons. If align is
//true, every other conformation is additionally rotated, in place, by the
//superposition found for it; the rotation is computed on the selected points
//but applied to the whole frame, and cannot be undone. The current frame
//selection is restored before returning.
func (s *Structure) RMSDOneVsAll(ref int, indices []int, align bool) ([]float64, error) {
	bkp := s.current
	m1, err := s.frameSubset(ref, indices)
	if err != nil {
		return nil, errDecorate(err, "RMSDOneVsAll")
	}
	restore := func() {
		if len(s.coords) > 0 {
			s.SetCurrent(bkp)
		}
	}
	ret := make([]float64, 0, len(s.coords))
	for i := range s.coords {
		if i == ref {
			ret = append(ret, 0)
			continue
		}
		m2, err := s.frameSubset(i, indices)
		if err != nil {
			restore()
			return nil, errDecorate(err, "RMSDOneVsAll")
		}
		rmsd, rot, err := kabsch(m1, m2)
		if err != nil {
			restore()
			return nil, errDecorate(err, "RMSDOneVsAll")
		}
		if align {
			if err := s.SetCurrent(i); err != nil {
				restore()
				return nil, errDecorate(err, "RMSDOneVsAll")
			}
			if err := s.ApplyTransformation(rot); err != nil {
				restore()
				return nil, errDecorate(err, "RMSDOneVsAll")
			}
		}
		ret = append(ret, rmsd)
	}
	restore()
	return ret, nil
}

//RMSDDistanceMatrix returns the symmetric matrix of pairwise minimal RMSDs
//between all conformations, with zeros on the diagonal. If indices are
//given, only those points enter the comparisons. The pairs are computed
//concurrently, one goroutine per logical CPU.
func (s *Structure) RMSDDistanceMatrix(indices ...int) (*mat.Dense, error) {
	f := len(s.coords)
	if f < 2 {
		return nil, preconditionError("RMSDDistanceMatrix", "at least 2 conformations needed, have %d", f)
	}
	ret := mat.NewDense(f, f, nil)
	rows := make(chan int, f)
	for i := 0; i < f-1; i++ {
		rows <- i
	}
	close(rows)
	cpus := runtime.NumCPU()
	errs := make([]error, cpus)
	var wg sync.WaitGroup
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range rows {
				for j := i + 1; j < f; j++ {
					r, err := s.RMSD(i, j, indices...)
					if err != nil {
						errs[w] = err
						return
					}
					ret.Set(i, j, r)
					ret.Set(j, i, r)
				}
			}
		}(w)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, errDecorate(err, "RMSDDistanceMatrix")
		}
	}
	return ret, nil
}

//RMSDDistanceMatrixFlat returns the strict upper triangle of the RMSD
//distance matrix, row by row, as a slice of length F*(F-1)/2 for F
//conformations.
func (s *Structure) RMSDDistanceMatrixFlat(indices ...int) ([]float64, error) {
	m, err := s.RMSDDistanceMatrix(indices...)
	if err != nil {
		return nil, errDecorate(err, "RMSDDistanceMatrixFlat")
	}
	f := len(s.coords)
	ret := make([]float64, 0, f*(f-1)/2)
	for i := 0; i < f-1; i++ {
		for j := i + 1; j < f; j++ {
			ret = append(ret, m.At(i, j))
		}
	}
	return ret, nil
}

//RMSF returns the root mean square fluctuation of the selected points, i.e.
//the spread of each point around its mean position over all conformations,
//in the order of indices (all points, in order, if indices is empty). The
//optional step scales the denominator, for conformations sampled at a fixed
//time interval. At least 2 conformations are needed. Frames are compared as
//stored; superimpose them first if they are not in a common reference frame.
func (s *Structure) RMSF(indices []int, step ...float64) ([]float64, error) {
	f := len(s.coords)
	if f < 2 {
		return nil, preconditionError("RMSF", "at least 2 conformations needed, have %d", f)
	}
	h := 1.0
	if len(step) > 0 {
		h = step[0]
	}
	if h <= 0 {
		return nil, domainError("RMSF", "step must be positive, got %f", h)
	}
	if len(indices) == 0 {
		indices = make([]int, s.Len())
		for i := range indices {
			indices[i] = i
		}
	}
	n := len(indices)
	sub := make([]*v3.Matrix, f)
	for i := range s.coords {
		m, err := s.frameSubset(i, indices)
		if err != nil {
			return nil, errDecorate(err, "RMSF")
		}
		sub[i] = m
	}
	means := v3.Zeros(n)
	for _, m := range sub {
		means.Add(means, m)
	}
	means.Scale(1.0/float64(f), means)
	ret := make([]float64, n)
	d := v3.Zeros(1)
	for _, m := range sub {
		for k := 0; k < n; k++ {
			d.SubVec(m.VecView(k), means.VecView(k))
			norm := d.Norm(2)
			ret[k] += norm * norm
		}
	}
	for k := range ret {
		ret[k] = math.Sqrt(ret[k] / (float64(f) * h))
	}
	return ret, nil
}
