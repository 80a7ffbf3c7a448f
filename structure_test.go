/*
 * structure_test.go, part of gobox.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v3 "github.com/structbio/gobox/v3"
)

func frameFromSlice(t *testing.T, data []float64) *v3.Matrix {
	t.Helper()
	m, err := v3.NewMatrix(data)
	require.NoError(t, err)
	return m
}

func twoFrames(t *testing.T) *Structure {
	t.Helper()
	f1 := frameFromSlice(t, []float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	})
	f2 := frameFromSlice(t, []float64{
		0, 0, 1,
		1, 0, 1,
		0, 1, 1,
	})
	s, err := New([]*v3.Matrix{f1, f2})
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	s := twoFrames(t)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.LenFrames())
	assert.Equal(t, 0, s.Current())
	r, err := s.Get(PropRadius).Float()
	require.NoError(t, err)
	assert.Equal(t, DefaultRadius, r)
}

func TestNewMismatchedFrames(t *testing.T) {
	f1 := frameFromSlice(t, []float64{0, 0, 0})
	f2 := frameFromSlice(t, []float64{0, 0, 0, 1, 1, 1})
	_, err := New([]*v3.Matrix{f1, f2})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindShape))
}

func TestSetCurrent(t *testing.T) {
	s := twoFrames(t)
	require.NoError(t, s.SetCurrent(1))
	assert.Equal(t, 1, s.Current())
	assert.Equal(t, 1.0, s.Coords().At(0, 2))
	err := s.SetCurrent(7)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindIndex))
	//a failed selection leaves the store untouched
	assert.Equal(t, 1, s.Current())
}

func TestAddFramesToEmpty(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Coords())
	f := frameFromSlice(t, []float64{1, 2, 3})
	require.NoError(t, s.AddFrames(f))
	assert.Equal(t, 1, s.LenFrames())
	assert.Equal(t, 0, s.Current())
	c, err := s.Get(PropCenter).Vec()
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 2, 3}, c)
}

func TestAddFramesSelectsFirstNew(t *testing.T) {
	s := twoFrames(t)
	f3 := frameFromSlice(t, []float64{
		5, 5, 5,
		6, 5, 5,
		5, 6, 5,
	})
	f4 := frameFromSlice(t, []float64{
		7, 7, 7,
		8, 7, 7,
		7, 8, 7,
	})
	require.NoError(t, s.AddFrames(f3, f4))
	assert.Equal(t, 4, s.LenFrames())
	assert.Equal(t, 2, s.Current())
}

func TestDelFrame(t *testing.T) {
	s := twoFrames(t)
	f3 := frameFromSlice(t, []float64{
		5, 5, 5,
		6, 5, 5,
		5, 6, 5,
	})
	require.NoError(t, s.AddFrames(f3))
	require.NoError(t, s.DelFrame(1))
	assert.Equal(t, 2, s.LenFrames())
	assert.Equal(t, 0, s.Current())
	require.NoError(t, s.DelFrame(0))
	assert.Equal(t, 1, s.LenFrames())
	assert.Equal(t, 0, s.Current())
	assert.Equal(t, 5.0, s.Coords().At(0, 0))
	require.NoError(t, s.DelFrame(0))
	assert.Equal(t, 0, s.LenFrames())
	assert.Nil(t, s.Coords())
	err := s.DelFrame(0)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindIndex))
}

func TestClear(t *testing.T) {
	s := twoFrames(t)
	s.Clear()
	assert.Equal(t, 0, s.LenFrames())
	assert.Nil(t, s.Coords())
	c, err := s.Get(PropCenter).Vec()
	require.NoError(t, err)
	assert.Equal(t, [3]float64{0, 0, 0}, c)
}

func TestProperties(t *testing.T) {
	s := twoFrames(t)
	assert.Nil(t, s.Get("no-such-key"))
	s.AddProperty("charge", PerPointProp([]float64{-1, 0, 1}))
	p := s.Get("charge")
	require.NotNil(t, p)
	arr, err := p.PerPoint()
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0, 1}, arr)
	_, err = p.Float()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDomain))
	s.AddProperty("tag", BlobProp("anything"))
	assert.Equal(t, "anything", s.Get("tag").Value())
}

func TestRadii(t *testing.T) {
	s := twoFrames(t)
	r, err := s.Radii()
	require.NoError(t, err)
	assert.Equal(t, []float64{DefaultRadius, DefaultRadius, DefaultRadius}, r)
	s.AddProperty(PropRadius, PerPointProp([]float64{1, 2, 3}))
	r, err = s.Radii()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, r)
	s.AddProperty(PropRadius, PerPointProp([]float64{1, 2}))
	_, err = s.Radii()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindShape))
}

func TestSomeCoords(t *testing.T) {
	s := twoFrames(t)
	sub, err := s.SomeCoords([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.NVecs())
	assert.Equal(t, 1.0, sub.At(0, 1))
	_, err = s.SomeCoords([]int{9})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindIndex))
	//a selection may repeat points and grow past the store's length
	sub, err = s.SomeCoords([]int{0, 0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 4, sub.NVecs())
	assert.Equal(t, 0.0, sub.At(1, 0))
	assert.Equal(t, 1.0, sub.At(2, 0))
}

func TestSetCoords(t *testing.T) {
	s := twoFrames(t)
	repl := frameFromSlice(t, []float64{
		9, 9, 9,
		9, 9, 9,
		9, 9, 9,
	})
	require.NoError(t, s.SetCoords(repl))
	assert.Equal(t, 9.0, s.Coords().At(2, 2))
	c, err := s.Get(PropCenter).Vec()
	require.NoError(t, err)
	assert.Equal(t, [3]float64{9, 9, 9}, c)
	bad := frameFromSlice(t, []float64{1, 1, 1})
	err = s.SetCoords(bad)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindShape))
}

func TestContains(t *testing.T) {
	s := twoFrames(t)
	p := frameFromSlice(t, []float64{0, 0, 0})
	_, err := s.Contains(p)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnsupported))
}
