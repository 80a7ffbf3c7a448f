/*
 * gonum.go, part of gobox.
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

//gonum.go holds the Matrix container and everything that talks directly to
//the gonum.org/v1/gonum/mat machinery: construction, views, products and the
//eigendecomposition/SVD wrappers used by the geometric code.

package v3

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of row vectors in 3D space, implemented as a wrapper over a
//gonum dense matrix with 3 columns. Within the package it is understood that
//a "vector" is a row vector, i.e. the cartesian coordinates of a point in 3D
//space.
type Matrix struct {
	*mat.Dense
}

//Matrix2Dense returns the gonum dense matrix underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//Dense2Matrix wraps a 3-column gonum dense matrix into a Matrix.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}}
	}
	return &Matrix{mat.NewDense(l/cols, cols, data)}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	return &Matrix{mat.NewDense(vecs, cols, make([]float64, cols*vecs))}
}

//VecView returns a view of the ith vector of the matrix. Changes in the view
//are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from i,j and spanning r rows and c columns.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	ret := F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)
	return &Matrix{ret}
}

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Mul wraps mat.Dense.Mul to take care of the case when one of the arguments
//is also the receiver. Since the receiver is a Matrix, gonum could compare
//A (a mat.Dense) against F (a Matrix) and not know that internally
//F.Dense==A, hence the need for this function.
func (F *Matrix) Mul(A, B mat.Matrix) {
	if A2, ok := A.(*Matrix); ok {
		A = A2.Dense
	}
	if B2, ok := B.(*Matrix); ok {
		B = B2.Dense
	}
	F.Dense.Mul(A, B)
}

//Scale wraps mat.Dense.Scale for the same reason as Mul: if A is the
//receiver itself, gonum's overlap check sees a Matrix aliasing the
//receiver's backing data without being the same mat.Dense, and panics.
func (F *Matrix) Scale(f float64, A mat.Matrix) {
	if A2, ok := A.(*Matrix); ok {
		A = A2.Dense
	}
	F.Dense.Scale(f, A)
}

//Add wraps mat.Dense.Add, unwrapping any Matrix argument. See Mul.
func (F *Matrix) Add(A, B mat.Matrix) {
	if A2, ok := A.(*Matrix); ok {
		A = A2.Dense
	}
	if B2, ok := B.(*Matrix); ok {
		B = B2.Dense
	}
	F.Dense.Add(A, B)
}

//Norm returns the i-norm of the matrix. For a single vector, Norm(2) is the
//euclidean length.
func (F *Matrix) Norm(i float64) float64 {
	return mat.Norm(F.Dense, i)
}

//Dot returns the dot product between the first vectors of F and B.
func (F *Matrix) Dot(B *Matrix) float64 {
	if F.NVecs() < 1 || B.NVecs() < 1 {
		panic(ErrNotEnoughElements)
	}
	var d float64
	for k := 0; k < 3; k++ {
		d += F.At(0, k) * B.At(0, k)
	}
	return d
}

//Det returns the determinant of a 3x3 matrix. Panics if the matrix is not 3x3.
func Det(A mat.Matrix) float64 {
	r, c := A.Dims()
	if r != 3 || c != 3 {
		panic(ErrDeterminant)
	}
	return A.At(0, 0)*(A.At(1, 1)*A.At(2, 2)-A.At(2, 1)*A.At(1, 2)) -
		A.At(1, 0)*(A.At(0, 1)*A.At(2, 2)-A.At(2, 1)*A.At(0, 2)) +
		A.At(2, 0)*(A.At(0, 1)*A.At(1, 2)-A.At(1, 1)*A.At(0, 2))
}

//This is a facility to sort eigenvector/eigenvalue pairs.
//It satisfies the sort.Interface interface.
type eigenpair struct {
	//evecs must have as many rows as evals has elements.
	evecs *Matrix
	evals sort.Float64Slice
}

func (E eigenpair) Less(i, j int) bool {
	return E.evals[i] < E.evals[j]
}

func (E eigenpair) Swap(i, j int) {
	E.evals.Swap(i, j)
	E.evecs.SwapVecs(i, j)
}

func (E eigenpair) Len() int {
	return len(E.evals)
}

//EigenWrap wraps the gonum symmetric eigendecomposition in order to guarantee
//that the eigenvectors and eigenvalues are sorted according to the
//eigenvalues, in ascending order, and that the eigenvector matrix is
//right-handed. The eigenvectors are the rows of the returned matrix. Only
//3x3 symmetric matrices are accepted.
func EigenWrap(in *Matrix) (*Matrix, []float64, error) {
	r, c := in.Dims()
	if r != 3 || c != 3 {
		return nil, nil, Error{string(ErrEigen), []string{"EigenWrap"}}
	}
	sym := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			sym.SetSym(i, j, in.At(i, j))
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return nil, nil, Error{string(ErrEigen), []string{"EigenWrap"}}
	}
	evals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	//gonum returns the eigenvectors as columns, we want them as rows.
	evecs := Zeros(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			evecs.Set(i, j, vecs.At(j, i))
		}
	}
	pair := eigenpair{evecs, evals}
	sort.Sort(pair)
	if Det(pair.evecs) < 0 {
		pair.evecs.Scale(-1, pair.evecs)
	}
	return pair.evecs, pair.evals, nil
}

//SVD returns the full singular value decomposition of the 3x3 matrix A,
//A = U*S*Vt, as the matrices U and V plus the singular values, in the
//descending order gonum guarantees.
func SVD(A *Matrix) (*Matrix, *Matrix, []float64, error) {
	r, c := A.Dims()
	if r != 3 || c != 3 {
		return nil, nil, nil, Error{string(ErrGonum), []string{"SVD"}}
	}
	var svd mat.SVD
	if ok := svd.Factorize(A.Dense, mat.SVDFull); !ok {
		return nil, nil, nil, Error{string(ErrGonum), []string{"SVD"}}
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	return &Matrix{&u}, &Matrix{&v}, svd.Values(nil), nil
}

//Errors

//Error is the concrete error type of the v3 package.
type Error struct {
	message string
	deco    []string
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//PanicMsg is a message used for panics. It does satisfy the error interface,
//but for errors the Error type is used instead.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("gobox/v3: A Matrix should have 3 columns")
	ErrNoCrossProduct    = PanicMsg("gobox/v3: Invalid matrix for cross product")
	ErrNotEnoughElements = PanicMsg("gobox/v3: not enough elements in Matrix")
	ErrGonum             = PanicMsg("gobox/v3: Error in gonum function")
	ErrEigen             = PanicMsg("gobox/v3: Can't obtain eigenvectors/eigenvalues of given matrix")
	ErrDeterminant       = PanicMsg("gobox/v3: Determinants are only available for 3x3 matrices")
	ErrShape             = PanicMsg("gobox/v3: Dimension mismatch")
	ErrIndexOutOfRange   = PanicMsg("gobox/v3: index out of range")
)
