/*
 * structure.go, part of gobox.
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
	v3 "github.com/structbio/gobox/v3"
)

//DefaultRadius is the radius assigned to every point of a Structure when no
//radius is given at construction.
const DefaultRadius = 1.9

//Keys of the properties every Structure carries.
const (
	PropCenter = "center"
	PropRadius = "radius"
)

//PropKind tags the variant held by a Property.
type PropKind int

const (
	//PropFloat is a single scalar.
	PropFloat PropKind = iota
	//PropVec is a 3-element cartesian vector.
	PropVec
	//PropPerPoint is an array with one value per point of the structure.
	PropPerPoint
	//PropBlob is an arbitrary payload, carried verbatim.
	PropBlob
)

//Property is a tagged variant value attached to a Structure under a string
//key. Collaborators may attach their own properties; geometric operations
//preserve them verbatim.
type Property struct {
	kind   PropKind
	scalar float64
	array  []float64 //len 3 for PropVec, len N for PropPerPoint
	blob   interface{}
}

//FloatProp returns a scalar property.
func FloatProp(v float64) *Property {
	return &Property{kind: PropFloat, scalar: v}
}

//VecProp returns a 3-vector property.
func VecProp(x, y, z float64) *Property {
	return &Property{kind: PropVec, array: []float64{x, y, z}}
}

//PerPointProp returns a per-point array property. The slice is not copied.
func PerPointProp(v []float64) *Property {
	return &Property{kind: PropPerPoint, array: v}
}

//BlobProp returns an opaque property carrying any payload.
func BlobProp(v interface{}) *Property {
	return &Property{kind: PropBlob, blob: v}
}

//Kind returns the variant tag of the property.
func (p *Property) Kind() PropKind {
	return p.kind
}

//Float returns the scalar held by the property, or a domain error if the
//property holds something else.
func (p *Property) Float() (float64, error) {
	if p.kind != PropFloat {
		return 0, domainError("Float", "property holds a %d-kind, not a scalar", p.kind)
	}
	return p.scalar, nil
}

//Vec returns the 3-vector held by the property, or a domain error if the
//property holds something else.
func (p *Property) Vec() ([3]float64, error) {
	if p.kind != PropVec {
		return [3]float64{}, domainError("Vec", "property holds a %d-kind, not a vector", p.kind)
	}
	return [3]float64{p.array[0], p.array[1], p.array[2]}, nil
}

//PerPoint returns the per-point array held by the property, or a domain
//error if the property holds something else.
func (p *Property) PerPoint() ([]float64, error) {
	if p.kind != PropPerPoint {
		return nil, domainError("PerPoint", "property holds a %d-kind, not a per-point array", p.kind)
	}
	return p.array, nil
}

//Value returns whatever the property holds, untyped.
func (p *Property) Value() interface{} {
	switch p.kind {
	case PropFloat:
		return p.scalar
	case PropVec, PropPerPoint:
		return p.array
	default:
		return p.blob
	}
}

//Structure is an ensemble of alternative conformations (frames) of a point
//cloud in 3D space, together with an open-ended property bag. All frames
//share the same number of points. One frame is always the "current" one; the
//single-frame operations of this package act on it.
//
//The center property is the geometric center of the current frame. It is
//recomputed by SetCurrent and by the operations documented to do so, and is
//stale right after a transformation unless said operation refreshes it.
type Structure struct {
	coords  []*v3.Matrix
	current int
	props   map[string]*Property
}

//New creates a Structure from one or more conformations. All frames must
//have the same number of points. The optional radius is assigned to every
//point; it defaults to DefaultRadius. The frame matrices are stored, not
//copied: the caller gives up ownership.
func New(frames []*v3.Matrix, radius ...float64) (*Structure, error) {
	s := &Structure{props: make(map[string]*Property)}
	r := DefaultRadius
	if len(radius) > 0 {
		r = radius[0]
	}
	s.props[PropRadius] = FloatProp(r)
	s.props[PropCenter] = VecProp(0, 0, 0)
	if len(frames) > 0 {
		if err := s.AddFrames(frames...); err != nil {
			return nil, errDecorate(err, "New")
		}
		s.current = 0
		s.Center()
	}
	return s, nil
}

//NewFromFrame creates a single-conformation Structure. See New.
func NewFromFrame(frame *v3.Matrix, radius ...float64) (*Structure, error) {
	return New([]*v3.Matrix{frame}, radius...)
}

//Len returns the number of points per frame, or 0 for an empty store.
func (s *Structure) Len() int {
	if len(s.coords) == 0 {
		return 0
	}
	return s.coords[0].NVecs()
}

//LenFrames returns the number of conformations in the store.
func (s *Structure) LenFrames() int {
	return len(s.coords)
}

//Current returns the index of the currently selected conformation.
func (s *Structure) Current() int {
	return s.current
}

//SetCurrent selects the conformation with the given index and recomputes the
//center property for it.
func (s *Structure) SetCurrent(i int) error {
	if i < 0 || i >= len(s.coords) {
		return indexError("SetCurrent", "frame %d requested, but only %d conformations available", i, len(s.coords))
	}
	s.current = i
	s.Center()
	return nil
}

//Get returns the property stored under the given key, or nil if the key is
//absent. It never fails.
func (s *Structure) Get(key string) *Property {
	return s.props[key]
}

//AddProperty stores a property under the given key, replacing any previous
//value.
func (s *Structure) AddProperty(key string, p *Property) {
	s.props[key] = p
}

//Coords returns the currently selected conformation. The returned matrix is
//the stored one, not a copy; it is invalidated by AddFrames, DelFrame and
//Clear. Returns nil for an empty store.
func (s *Structure) Coords() *v3.Matrix {
	if len(s.coords) == 0 {
		return nil
	}
	return s.coords[s.current]
}

//Frame returns the conformation with the given index, with the same aliasing
//caveats as Coords.
func (s *Structure) Frame(i int) (*v3.Matrix, error) {
	if i < 0 || i >= len(s.coords) {
		return nil, indexError("Frame", "frame %d requested, but only %d conformations available", i, len(s.coords))
	}
	return s.coords[i], nil
}

//SomeCoords returns a copy of the points of the current frame with indexes
//in clist, in the order of clist.
func (s *Structure) SomeCoords(clist []int) (*v3.Matrix, error) {
	p := s.Coords()
	if p == nil {
		return nil, preconditionError("SomeCoords", "empty structure")
	}
	for _, v := range clist {
		if v < 0 || v >= p.NVecs() {
			return nil, indexError("SomeCoords", "point %d requested, but only %d points available", v, p.NVecs())
		}
	}
	ret := v3.Zeros(len(clist))
	ret.SomeVecs(p, clist)
	return ret, nil
}

//SetCoords overwrites the points of the current frame with a copy of the
//given ones, and recomputes the center.
func (s *Structure) SetCoords(coords *v3.Matrix) error {
	p := s.Coords()
	if p == nil {
		return preconditionError("SetCoords", "empty structure")
	}
	if coords.NVecs() != p.NVecs() {
		return shapeError("SetCoords", "%d points given, but frames hold %d", coords.NVecs(), p.NVecs())
	}
	p.Copy(coords)
	s.Center()
	return nil
}

//AddFrames appends one or more conformations to the store, which may start
//empty. Every appended frame must match the points-per-frame count of the
//store (or of the first appended frame, for an empty store). On success the
//first newly appended frame becomes the current one.
func (s *Structure) AddFrames(frames ...*v3.Matrix) error {
	if len(frames) == 0 {
		return shapeError("AddFrames", "no frames given")
	}
	n := s.Len()
	if len(s.coords) == 0 {
		if frames[0] == nil {
			return shapeError("AddFrames", "nil frame given")
		}
		n = frames[0].NVecs()
	}
	for _, f := range frames {
		if f == nil {
			return shapeError("AddFrames", "nil frame given")
		}
		if f.NVecs() != n {
			return shapeError("AddFrames", "frame with %d points given, but frames hold %d", f.NVecs(), n)
		}
	}
	first := len(s.coords)
	s.coords = append(s.coords, frames...)
	return s.SetCurrent(first)
}

//DelFrame removes the conformation with the given index. The previous
//conformation becomes the current one, or the first one if the first frame
//was deleted.
func (s *Structure) DelFrame(i int) error {
	if i < 0 || i >= len(s.coords) {
		return indexError("DelFrame", "frame %d requested, but only %d conformations available", i, len(s.coords))
	}
	s.coords = append(s.coords[:i], s.coords[i+1:]...)
	if len(s.coords) == 0 {
		s.current = 0
		s.props[PropCenter] = VecProp(0, 0, 0)
		return nil
	}
	if i > 0 {
		return s.SetCurrent(i - 1)
	}
	return s.SetCurrent(0)
}

//Clear removes every conformation from the store.
func (s *Structure) Clear() {
	s.coords = nil
	s.current = 0
	s.props[PropCenter] = VecProp(0, 0, 0)
}

//Radii returns the per-point radii of the structure, expanding a scalar
//radius to a slice with one entry per point. A per-point radius property
//must have exactly one entry per point.
func (s *Structure) Radii() ([]float64, error) {
	n := s.Len()
	prop := s.props[PropRadius]
	if prop == nil {
		return nil, preconditionError("Radii", "structure carries no radius property")
	}
	switch prop.Kind() {
	case PropFloat:
		r, _ := prop.Float()
		ret := make([]float64, n)
		for i := range ret {
			ret[i] = r
		}
		return ret, nil
	case PropPerPoint:
		r, _ := prop.PerPoint()
		if len(r) != n {
			return nil, shapeError("Radii", "lengths of radii (%d) and points (%d) mismatch", len(r), n)
		}
		return r, nil
	}
	return nil, domainError("Radii", "radius property holds neither a scalar nor a per-point array")
}

//Contains reports whether the given point lies inside the shape described by
//the structure. It is intentionally not implemented and always reports an
//unsupported-operation error.
func (s *Structure) Contains(point *v3.Matrix) (bool, error) {
	return false, Error{KindUnsupported, "point-in-shape containment is not implemented", []string{"Contains"}}
}
