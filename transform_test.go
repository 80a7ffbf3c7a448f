/*
 * transform_test.go, part of gobox.
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
	"testing"

	v3 "github.com/structbio/gobox/v3"
)

func singleFrame(Te *testing.T, data []float64) *Structure {
	Te.Helper()
	m, err := v3.NewMatrix(data)
	if err != nil {
		Te.Fatal(err)
	}
	s, err := NewFromFrame(m)
	if err != nil {
		Te.Fatal(err)
	}
	return s
}

func TestCenter(Te *testing.T) {
	s := singleFrame(Te, []float64{
		0, 0, 0,
		2, 0, 0,
		0, 2, 0,
		2, 2, 0,
	})
	c := s.Center()
	if c.At(0, 0) != 1 || c.At(0, 1) != 1 || c.At(0, 2) != 0 {
		Te.Errorf("expected center (1 1 0), got %v", c)
	}
}

func TestTranslate(Te *testing.T) {
	s := singleFrame(Te, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	vec, _ := v3.NewMatrix([]float64{1, -1, 10})
	if err := s.Translate(vec); err != nil {
		Te.Fatal(err)
	}
	p := s.Coords()
	if p.At(0, 0) != 2 || p.At(0, 1) != 1 || p.At(1, 2) != 16 {
		Te.Errorf("translation gave %v", p)
	}
	c, err := s.Get(PropCenter).Vec()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(c[0]-3.5) > 1e-12 || math.Abs(c[2]-14.5) > 1e-12 {
		Te.Errorf("cached center not shifted, got %v", c)
	}
	//translating back restores coordinates and center
	back, _ := v3.NewMatrix([]float64{-1, 1, -10})
	if err := s.Translate(back); err != nil {
		Te.Fatal(err)
	}
	if p.At(0, 0) != 1 || p.At(1, 2) != 6 {
		Te.Errorf("round trip did not restore coordinates: %v", p)
	}
	c, _ = s.Get(PropCenter).Vec()
	if math.Abs(c[0]-2.5) > 1e-12 {
		Te.Errorf("round trip did not restore the center, got %v", c)
	}
}

func TestCenterToOrigin(Te *testing.T) {
	s := singleFrame(Te, []float64{
		1, 1, 1,
		3, 3, 3,
	})
	if err := s.CenterToOrigin(); err != nil {
		Te.Fatal(err)
	}
	c := s.Center()
	for j := 0; j < 3; j++ {
		if math.Abs(c.At(0, j)) > 1e-12 {
			Te.Errorf("center after CenterToOrigin: %v", c)
		}
	}
}

func TestRotationMatrixZeroTheta(Te *testing.T) {
	axis, _ := v3.NewMatrix([]float64{0, 0, 1})
	rot, err := RotationMatrix(axis, 0)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(rot.At(i, j)-want) > 1e-12 {
				Te.Errorf("rotation by 0 is not the identity: %v", rot)
			}
		}
	}
}

func TestRotationMatrixZeroAxis(Te *testing.T) {
	axis, _ := v3.NewMatrix([]float64{0, 0, 0})
	if _, err := RotationMatrix(axis, 1); err == nil {
		Te.Error("expected an error for a zero axis")
	}
}

func TestRotate90AboutZ(Te *testing.T) {
	s := singleFrame(Te, []float64{1, 0, 0})
	if err := s.Rotate(0, 0, 90); err != nil {
		Te.Fatal(err)
	}
	p := s.Coords()
	if math.Abs(p.At(0, 0)) > 1e-12 || math.Abs(p.At(0, 1)-1) > 1e-12 {
		Te.Errorf("expected (0 1 0), got %v", p)
	}
}

func TestRotateAbout(Te *testing.T) {
	s := singleFrame(Te, []float64{1, 0, 0})
	axis, _ := v3.NewMatrix([]float64{0, 0, 1})
	if err := s.RotateAbout(axis, math.Pi/2); err != nil {
		Te.Fatal(err)
	}
	p := s.Coords()
	if math.Abs(p.At(0, 0)) > 1e-12 || math.Abs(p.At(0, 1)-1) > 1e-12 {
		Te.Errorf("expected (0 1 0), got %v", p)
	}
}

func TestRotatePreservesDistances(Te *testing.T) {
	s := singleFrame(Te, []float64{
		1, 2, 3,
		-1, 0, 2,
		4, 4, 4,
	})
	d0 := pointDistance(s.Coords(), 0, 2)
	if err := s.Rotate(10, 20, 30); err != nil {
		Te.Fatal(err)
	}
	d1 := pointDistance(s.Coords(), 0, 2)
	if math.Abs(d0-d1) > 1e-10 {
		Te.Errorf("rotation changed a pairwise distance from %f to %f", d0, d1)
	}
}

func pointDistance(p *v3.Matrix, i, j int) float64 {
	d := v3.Zeros(1)
	d.SubVec(p.VecView(i), p.VecView(j))
	return d.Norm(2)
}

func TestSize(Te *testing.T) {
	s := singleFrame(Te, []float64{
		0, 0, 0,
		1, 0, 0,
		0, 2, 0,
	})
	sz, err := s.Size()
	if err != nil {
		Te.Fatal(err)
	}
	if sz[0] != 1 || sz[1] != 2 || sz[2] != 0 {
		Te.Errorf("expected size (1 2 0), got %v", sz)
	}
}

func TestRgyr(Te *testing.T) {
	s := singleFrame(Te, []float64{
		1, 0, 0,
		-1, 0, 0,
	})
	rg, err := s.Rgyr()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(rg-1) > 1e-12 {
		Te.Errorf("expected a gyration radius of 1, got %f", rg)
	}
}

func TestPrincipalAxes(Te *testing.T) {
	//a rod along x: the smallest moment belongs to the rod's axis
	s := singleFrame(Te, []float64{
		1, 0, 0,
		-1, 0, 0,
		2, 0, 0,
		-2, 0, 0,
	})
	axes, evals, err := s.PrincipalAxes()
	if err != nil {
		Te.Fatal(err)
	}
	if evals[0] > evals[1] || evals[1] > evals[2] {
		Te.Errorf("moments not in ascending order: %v", evals)
	}
	if math.Abs(evals[0]) > 1e-10 {
		Te.Errorf("expected a vanishing first moment for a rod, got %f", evals[0])
	}
	if dot := math.Abs(axes.At(0, 0)); math.Abs(dot-1) > 1e-10 {
		Te.Errorf("first principal axis not along x: %v", axes.VecView(0))
	}
	if d := v3.Det(axes); math.Abs(d-1) > 1e-10 {
		Te.Errorf("principal axes not right-handed, determinant %f", d)
	}
}

func TestAlignAxes(Te *testing.T) {
	//an asymmetric cloud with distinct moments, knocked out of
	//alignment and then realigned
	s := singleFrame(Te, []float64{
		3, 0, 0,
		-3, 0, 0,
		0, 1, 0,
		0, -1, 0,
		0, 0, 0.5,
		0, 0, -0.5,
	})
	if err := s.Rotate(10, 20, 30); err != nil {
		Te.Fatal(err)
	}
	if err := s.AlignAxes(); err != nil {
		Te.Fatal(err)
	}
	axes, _, err := s.PrincipalAxes()
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := math.Abs(axes.At(i, j))
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(v-want) > 1e-6 {
				Te.Errorf("principal axes not cartesian after aligning: %v", axes)
			}
		}
	}
	c := s.Center()
	for j := 0; j < 3; j++ {
		if math.Abs(c.At(0, j)) > 1e-10 {
			Te.Errorf("center moved away from the origin: %v", c)
		}
	}
	//a second alignment must leave the shape aligned, too
	sz0, err := s.Size()
	if err != nil {
		Te.Fatal(err)
	}
	if err := s.AlignAxes(); err != nil {
		Te.Fatal(err)
	}
	sz1, err := s.Size()
	if err != nil {
		Te.Fatal(err)
	}
	for j := 0; j < 3; j++ {
		if math.Abs(sz0[j]-sz1[j]) > 1e-6 {
			Te.Errorf("realigning changed the extents from %v to %v", sz0, sz1)
		}
	}
}

func TestTransformEmpty(Te *testing.T) {
	s, err := New(nil)
	if err != nil {
		Te.Fatal(err)
	}
	vec, _ := v3.NewMatrix([]float64{1, 1, 1})
	if err := s.Translate(vec); !IsKind(err, KindPrecondition) {
		Te.Errorf("expected a precondition error, got %v", err)
	}
	if _, err := s.Rgyr(); !IsKind(err, KindPrecondition) {
		Te.Errorf("expected a precondition error, got %v", err)
	}
	if _, _, err := s.PrincipalAxes(); !IsKind(err, KindPrecondition) {
		Te.Errorf("expected a precondition error, got %v", err)
	}
}
