/*
 * conv.go, part of gobox.
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
	"gonum.org/v1/gonum/dsp/fourier"
)

//convolveSame convolves the x-major volume a with the kernel k through the
//frequency domain and returns the central part of the result, with the
//same dimensions as a.
func convolveSame(a []float64, adims [3]int, k []float64, kdims [3]int) []float64 {
	var l [3]int
	for i := range l {
		l[i] = adims[i] + kdims[i] - 1
	}
	fa := pad(a, adims, l)
	fk := pad(k, kdims, l)
	fft3(fa, l, false)
	fft3(fk, l, false)
	for i := range fa {
		fa[i] *= fk[i]
	}
	fft3(fa, l, true)
	//the gonum transforms are unnormalized, a round trip gains a factor
	//of the length along each axis
	scale := 1 / float64(l[0]*l[1]*l[2])
	var off [3]int
	for i := range off {
		off[i] = (kdims[i] - 1) / 2
	}
	out := make([]float64, adims[0]*adims[1]*adims[2])
	for x := 0; x < adims[0]; x++ {
		for y := 0; y < adims[1]; y++ {
			for z := 0; z < adims[2]; z++ {
				v := fa[((x+off[0])*l[1]+y+off[1])*l[2]+z+off[2]]
				out[(x*adims[1]+y)*adims[2]+z] = real(v) * scale
			}
		}
	}
	return out
}

//pad copies an x-major volume into the corner of a larger zeroed complex
//volume.
func pad(a []float64, adims, l [3]int) []complex128 {
	ret := make([]complex128, l[0]*l[1]*l[2])
	for x := 0; x < adims[0]; x++ {
		for y := 0; y < adims[1]; y++ {
			for z := 0; z < adims[2]; z++ {
				ret[(x*l[1]+y)*l[2]+z] = complex(a[(x*adims[1]+y)*adims[2]+z], 0)
			}
		}
	}
	return ret
}

//fft3 transforms an x-major complex volume in place along all three axes,
//forward or inverse.
func fft3(data []complex128, l [3]int, inverse bool) {
	for axis := 0; axis < 3; axis++ {
		n := l[axis]
		fft := fourier.NewCmplxFFT(n)
		src := make([]complex128, n)
		dst := make([]complex128, n)
		var stride, outer1, outer2, s1, s2 int
		switch axis {
		case 0:
			stride, outer1, outer2 = l[1]*l[2], l[1], l[2]
			s1, s2 = l[2], 1
		case 1:
			stride, outer1, outer2 = l[2], l[0], l[2]
			s1, s2 = l[1]*l[2], 1
		case 2:
			stride, outer1, outer2 = 1, l[0], l[1]
			s1, s2 = l[1]*l[2], l[2]
		}
		for i := 0; i < outer1; i++ {
			for j := 0; j < outer2; j++ {
				base := i*s1 + j*s2
				for t := 0; t < n; t++ {
					src[t] = data[base+t*stride]
				}
				if inverse {
					fft.Sequence(dst, src)
				} else {
					fft.Coefficients(dst, src)
				}
				for t := 0; t < n; t++ {
					data[base+t*stride] = dst[t]
				}
			}
		}
	}
}
