/*
 * pca.go, part of gobox.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//observationMatrix flattens the selected points of every conformation into
//an FxD matrix, one row per conformation, with D = 3 * len(indices) degrees
//of freedom laid out as x0 y0 z0 x1 y1 z1...
func (s *Structure) observationMatrix(indices []int) (*mat.Dense, error) {
	f := len(s.coords)
	if f < 2 {
		return nil, preconditionError("observationMatrix", "at least 2 conformations needed, have %d", f)
	}
	if len(indices) == 0 {
		indices = make([]int, s.Len())
		for i := range indices {
			indices[i] = i
		}
	}
	d := 3 * len(indices)
	ret := mat.NewDense(f, d, nil)
	for i := range s.coords {
		m, err := s.frameSubset(i, indices)
		if err != nil {
			return nil, errDecorate(err, "observationMatrix")
		}
		for k := range indices {
			ret.Set(i, 3*k, m.At(k, 0))
			ret.Set(i, 3*k+1, m.At(k, 1))
			ret.Set(i, 3*k+2, m.At(k, 2))
		}
	}
	return ret, nil
}

//PCA performs a principal components analysis of the motion of the selected
//points (all points if indices is empty) across the conformations of the
//store. It diagonalizes the covariance matrix of the flattened coordinates
//(with the usual F-1 normalization for F conformations) and returns the
//eigenvalues in descending order plus the matrix whose columns are the
//correspondingly ranked eigenvectors, each of dimension 3 * len(indices).
func (s *Structure) PCA(indices []int) ([]float64, *mat.Dense, error) {
	obs, err := s.observationMatrix(indices)
	if err != nil {
		return nil, nil, errDecorate(err, "PCA")
	}
	_, d := obs.Dims()
	cov := mat.NewSymDense(d, nil)
	stat.CovarianceMatrix(cov, obs, nil)
	var eig mat.EigenSym
	if ok := eig.Factorize(cov, true); !ok {
		return nil, nil, Error{KindPrecondition, "covariance matrix diagonalization failed", []string{"PCA"}}
	}
	evals := eig.Values(nil)
	var evecs mat.Dense
	eig.VectorsTo(&evecs)
	//gonum returns them ascending, callers want dominant modes first
	revals := make([]float64, d)
	revecs := mat.NewDense(d, d, nil)
	for j := 0; j < d; j++ {
		revals[j] = evals[d-1-j]
		for i := 0; i < d; i++ {
			revecs.Set(i, j, evecs.At(i, d-1-j))
		}
	}
	return revals, revecs, nil
}

//PCAProject runs PCA and projects every conformation on the dominant
//eigenvectors: the smallest leading set whose cumulative eigenvalue
//fraction exceeds threshold, which must be in (0,1]. It returns the ranked
//eigenvalues, the ranked eigenvectors, and a (modes x F) matrix with the
//projection of each conformation's raw flattened coordinates on each
//selected mode.
func (s *Structure) PCAProject(indices []int, threshold float64) ([]float64, *mat.Dense, *mat.Dense, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, nil, nil, domainError("PCAProject", "threshold should be in (0,1], got %f", threshold)
	}
	evals, evecs, err := s.PCA(indices)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "PCAProject")
	}
	obs, err := s.observationMatrix(indices)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "PCAProject")
	}
	f, d := obs.Dims()
	total := floats.Sum(evals)
	cumulative := 0.0
	cnt := 0
	for i, v := range evals {
		cumulative += v
		if cumulative/total > threshold {
			cnt = i + 1
			break
		}
	}
	if cnt == 0 {
		cnt = d //threshold of exactly 1 keeps every mode
	}
	proj := mat.NewDense(cnt, f, nil)
	for i := 0; i < cnt; i++ {
		for j := 0; j < f; j++ {
			sum := 0.0
			for k := 0; k < d; k++ {
				sum += evecs.At(k, i) * obs.At(j, k)
			}
			proj.Set(i, j, sum)
		}
	}
	return evals, evecs, proj, nil
}
