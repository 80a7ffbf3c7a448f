/*
 * transform.go, part of gobox.
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

	v3 "github.com/structbio/gobox/v3"
	"gonum.org/v1/gonum/mat"
)

func denseFromSlice(data []float64) *mat.Dense {
	return mat.NewDense(3, 3, data)
}

//Center recomputes the geometric center of the current frame, stores it in
//the center property and returns it as a 1x3 matrix. For an empty structure
//the center is the zero vector.
func (s *Structure) Center() *v3.Matrix {
	ret := v3.Zeros(1)
	p := s.Coords()
	if p == nil {
		s.props[PropCenter] = VecProp(0, 0, 0)
		return ret
	}
	n := p.NVecs()
	for i := 0; i < n; i++ {
		ret.AddVec(ret, p.VecView(i))
	}
	ret.Scale(1.0/float64(n), ret)
	s.props[PropCenter] = VecProp(ret.At(0, 0), ret.At(0, 1), ret.At(0, 2))
	return ret
}

//Translate rigidly shifts every point of the current frame by the given 1x3
//vector. The cached center is shifted accordingly instead of recomputed.
func (s *Structure) Translate(vec *v3.Matrix) error {
	p := s.Coords()
	if p == nil {
		return preconditionError("Translate", "empty structure")
	}
	if vec.NVecs() != 1 {
		return shapeError("Translate", "translation must be a single vector, got %d", vec.NVecs())
	}
	p.AddVec(p, vec)
	if c, err := s.props[PropCenter].Vec(); err == nil {
		s.props[PropCenter] = VecProp(c[0]+vec.At(0, 0), c[1]+vec.At(0, 1), c[2]+vec.At(0, 2))
	}
	return nil
}

//CenterToOrigin translates the structure so the geometric center of the
//current frame lands on the origin.
func (s *Structure) CenterToOrigin() error {
	c := s.Center()
	c.Scale(-1, c)
	return s.Translate(c)
}

//ApplyTransformation right-multiplies the points of the current frame by the
//given 3x3 matrix and replaces the frame with the result. The cached center
//is left untouched: callers composing several transformations refresh it
//once at the end, via Center.
func (s *Structure) ApplyTransformation(m *v3.Matrix) error {
	p := s.Coords()
	if p == nil {
		return preconditionError("ApplyTransformation", "empty structure")
	}
	if m.NVecs() != 3 {
		return shapeError("ApplyTransformation", "transformation must be 3x3, got %dx3", m.NVecs())
	}
	ret := v3.Zeros(p.NVecs())
	ret.Mul(p, m)
	s.coords[s.current] = ret
	return nil
}

//Rotate rotates the current frame, in place, by the given angles (degrees)
//around the cartesian x, y and z axes. The three elementary rotations are
//composed in x, y, z order and applied as a single transformation. The
//center is recomputed afterwards.
func (s *Structure) Rotate(alpha, beta, gamma float64) error {
	alpha = alpha * math.Pi / 180
	beta = beta * math.Pi / 180
	gamma = gamma * math.Pi / 180
	sa, ca := math.Sin(alpha), math.Cos(alpha)
	sb, cb := math.Sin(beta), math.Cos(beta)
	sg, cg := math.Sin(gamma), math.Cos(gamma)
	rx := v3.Dense2Matrix(denseFromSlice([]float64{
		1, 0, 0,
		0, ca, -sa,
		0, sa, ca,
	}))
	ry := v3.Dense2Matrix(denseFromSlice([]float64{
		cb, 0, sb,
		0, 1, 0,
		-sb, 0, cb,
	}))
	rz := v3.Dense2Matrix(denseFromSlice([]float64{
		cg, -sg, 0,
		sg, cg, 0,
		0, 0, 1,
	}))
	tmp := v3.Zeros(3)
	tmp.Mul(rx, ry)
	comp := v3.Zeros(3)
	comp.Mul(tmp, rz)
	//points are row vectors, so the composite is applied transposed
	rot := v3.Zeros(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rot.Set(i, j, comp.At(j, i))
		}
	}
	if err := s.ApplyTransformation(rot); err != nil {
		return errDecorate(err, "Rotate")
	}
	s.Center()
	return nil
}

//RotationMatrix returns the 3x3 matrix rotating row vectors, on right
//multiplication, by theta radians around the given axis (a 1x3 vector,
//not necessarily normalized), following the Euler-Rodrigues formula. A zero
//theta yields the identity regardless of the axis.
func RotationMatrix(axis *v3.Matrix, theta float64) (*v3.Matrix, error) {
	if axis.NVecs() != 1 {
		return nil, shapeError("RotationMatrix", "axis must be a single vector, got %d", axis.NVecs())
	}
	ret := v3.Zeros(3)
	if theta == 0 {
		ret.Set(0, 0, 1)
		ret.Set(1, 1, 1)
		ret.Set(2, 2, 1)
		return ret, nil
	}
	norm := axis.Norm(2)
	if norm == 0 {
		return nil, domainError("RotationMatrix", "cannot rotate around a zero axis")
	}
	sin := math.Sin(theta / 2)
	a := math.Cos(theta / 2)
	b := -axis.At(0, 0) / norm * sin
	c := -axis.At(0, 1) / norm * sin
	d := -axis.At(0, 2) / norm * sin
	ret.Set(0, 0, a*a+b*b-c*c-d*d)
	ret.Set(0, 1, 2*(b*c-a*d))
	ret.Set(0, 2, 2*(b*d+a*c))
	ret.Set(1, 0, 2*(b*c+a*d))
	ret.Set(1, 1, a*a+c*c-b*b-d*d)
	ret.Set(1, 2, 2*(c*d-a*b))
	ret.Set(2, 0, 2*(b*d-a*c))
	ret.Set(2, 1, 2*(c*d+a*b))
	ret.Set(2, 2, a*a+d*d-b*b-c*c)
	return ret, nil
}

//RotateAbout rotates the current frame by theta radians around the given
//axis through the origin, then recomputes the center.
func (s *Structure) RotateAbout(axis *v3.Matrix, theta float64) error {
	rot, err := RotationMatrix(axis, theta)
	if err != nil {
		return errDecorate(err, "RotateAbout")
	}
	if err := s.ApplyTransformation(rot); err != nil {
		return errDecorate(err, "RotateAbout")
	}
	s.Center()
	return nil
}

//Size returns the extent of the current frame's bounding box along x, y
//and z.
func (s *Structure) Size() ([3]float64, error) {
	p := s.Coords()
	if p == nil {
		return [3]float64{}, preconditionError("Size", "empty structure")
	}
	var min, max [3]float64
	for j := 0; j < 3; j++ {
		min[j] = p.At(0, j)
		max[j] = p.At(0, j)
	}
	for i := 1; i < p.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			v := p.At(i, j)
			if v < min[j] {
				min[j] = v
			}
			if v > max[j] {
				max[j] = v
			}
		}
	}
	return [3]float64{max[0] - min[0], max[1] - min[1], max[2] - min[2]}, nil
}

//Rgyr returns the radius of gyration of the current frame, the root mean
//square distance of the points from their geometric center.
func (s *Structure) Rgyr() (float64, error) {
	p := s.Coords()
	if p == nil {
		return 0, preconditionError("Rgyr", "empty structure")
	}
	c := s.Center()
	n := p.NVecs()
	sum := 0.0
	d := v3.Zeros(1)
	for i := 0; i < n; i++ {
		d.SubVec(p.VecView(i), c)
		norm := d.Norm(2)
		sum += norm * norm
	}
	return math.Sqrt(sum / float64(n)), nil
}

//PrincipalAxes diagonalizes the inertia tensor of the current frame, taken
//with respect to the origin and with unit weights. It returns the axes as
//the rows of a 3x3 right-handed matrix, together with the corresponding
//moments in ascending order.
func (s *Structure) PrincipalAxes() (*v3.Matrix, []float64, error) {
	p := s.Coords()
	if p == nil {
		return nil, nil, preconditionError("PrincipalAxes", "empty structure")
	}
	var xx, yy, zz, xy, xz, yz float64
	for i := 0; i < p.NVecs(); i++ {
		x, y, z := p.At(i, 0), p.At(i, 1), p.At(i, 2)
		xx += y*y + z*z
		yy += x*x + z*z
		zz += x*x + y*y
		xy -= x * y
		xz -= x * z
		yz -= y * z
	}
	tensor := v3.Dense2Matrix(denseFromSlice([]float64{
		xx, xy, xz,
		xy, yy, yz,
		xz, yz, zz,
	}))
	axes, evals, err := v3.EigenWrap(tensor)
	if err != nil {
		return nil, nil, errDecorate(err, "PrincipalAxes")
	}
	return axes, evals, nil
}

//AlignAxes centers the current frame on the origin and rotates it so its
//first principal axis lies on x and its second on y. The center is
//recomputed (it becomes, numerically, the origin).
func (s *Structure) AlignAxes() error {
	if err := s.CenterToOrigin(); err != nil {
		return errDecorate(err, "AlignAxes")
	}
	xhat := rowVec(1, 0, 0)
	yhat := rowVec(0, 1, 0)
	axes, _, err := s.PrincipalAxes()
	if err != nil {
		return errDecorate(err, "AlignAxes")
	}
	if err := s.alignVec(axes.VecView(0), xhat); err != nil {
		return errDecorate(err, "AlignAxes")
	}
	axes, _, err = s.PrincipalAxes()
	if err != nil {
		return errDecorate(err, "AlignAxes")
	}
	if err := s.alignVec(axes.VecView(1), yhat); err != nil {
		return errDecorate(err, "AlignAxes")
	}
	s.Center()
	return nil
}

//alignVec rotates the current frame so the direction of a lands on b. Both
//must be unit 1x3 vectors. Antiparallel vectors are handled by a half-turn
//around any perpendicular axis; parallel ones need no rotation.
func (s *Structure) alignVec(a, b *v3.Matrix) error {
	cross := v3.Zeros(1)
	cross.Cross(a, b)
	sin := cross.Norm(2)
	cos := a.Dot(b)
	theta := math.Atan2(sin, cos)
	if sin < appzero {
		if cos > 0 {
			return nil
		}
		//antiparallel, any perpendicular axis does
		cross.Cross(a, perpendicularTo(a))
		theta = math.Pi
	}
	rot, err := RotationMatrix(cross, theta)
	if err != nil {
		return err
	}
	return s.ApplyTransformation(rot)
}

//perpendicularTo returns a vector not collinear with a, so their cross
//product gives an axis perpendicular to a.
func perpendicularTo(a *v3.Matrix) *v3.Matrix {
	if math.Abs(a.At(0, 0)) < math.Abs(a.At(0, 1)) {
		return rowVec(1, 0, 0)
	}
	return rowVec(0, 1, 0)
}

func rowVec(x, y, z float64) *v3.Matrix {
	ret := v3.Zeros(1)
	ret.Set(0, 0, x)
	ret.Set(0, 1, y)
	ret.Set(0, 2, z)
	return ret
}

const appzero = 0.0000001
