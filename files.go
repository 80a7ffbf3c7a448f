/*
 * files.go, part of gobox.
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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	v3 "github.com/structbio/gobox/v3"
)

//PDBWriter writes conformations of a point cloud as models of a
//(possibly multi-model) PDB file, every point a sphere with its radius in
//the occupancy column. Files ending in .gz or .zst are compressed
//transparently.
type PDBWriter struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
}

//NewPDBWriter opens name for writing conformations of natoms points each.
func NewPDBWriter(name string, natoms int) (*PDBWriter, error) {
	w := new(PDBWriter)
	var err error
	w.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	gzipwriter := func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, gzip.BestCompression) }
	zstdwriter := func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		w.h, err = gzipwriter(w.f)
	case strings.HasSuffix(lower, ".zst"):
		w.h, err = zstdwriter(w.f)
	default:
		w.h = nopWriteCloser{w.f}
	}
	if err != nil {
		w.f.Close()
		return nil, err
	}
	w.natoms = natoms
	w.filename = name
	w.writeable = true
	return w, nil
}

//WNext writes one conformation as a model terminated by an END record. The
//radii slice must carry one radius per point; it ends up in the occupancy
//column, with a constant beta factor. Point serials beyond the 5-column
//capacity of the format are written in hexadecimal.
func (w *PDBWriter) WNext(coord *v3.Matrix, radii []float64) error {
	if !w.writeable {
		return preconditionError("WNext", "writer for %s is closed", w.filename)
	}
	if coord == nil {
		return preconditionError("WNext", "nil coordinates given to writer for %s", w.filename)
	}
	v := coord.NVecs()
	if v != w.natoms {
		return shapeError("WNext", "%d coordinates given, but %d expected", v, w.natoms)
	}
	if len(radii) != v {
		return shapeError("WNext", "lengths of radii (%d) and points (%d) mismatch", len(radii), v)
	}
	for i := 0; i < v; i++ {
		nb := fmt.Sprintf("%d", i)
		if i > 99999 {
			nb = fmt.Sprintf("%x", i)
		}
		line := fmt.Sprintf("ATOM  %5s  %-4s%-4s%1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
			nb, "SPH", "SPH", "A", i%9999,
			coord.At(i, 0), coord.At(i, 1), coord.At(i, 2),
			radii[i], 1.0, "Z")
		if _, err := w.h.Write([]byte(line)); err != nil {
			return err
		}
	}
	_, err := w.h.Write([]byte("END\n"))
	return err
}

//Close flushes and closes the writer. Safe to call on a nil or already
//closed writer.
func (w *PDBWriter) Close() {
	if w == nil || !w.writeable {
		return
	}
	w.h.Close()
	w.f.Close()
	w.writeable = false
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

//WritePDB writes conformations of the structure to a PDB file, one model
//per frame. With no frame indices given, every conformation is written, in
//order. Compression follows the file extension (.gz, .zst). The radius of
//each point lands in the occupancy column.
func (s *Structure) WritePDB(filename string, frames ...int) error {
	if len(s.coords) == 0 {
		return preconditionError("WritePDB", "empty structure")
	}
	for _, f := range frames {
		if f < 0 || f >= len(s.coords) {
			return indexError("WritePDB", "frame %d requested, but only %d available", f, len(s.coords))
		}
	}
	if len(frames) == 0 {
		frames = make([]int, len(s.coords))
		for i := range frames {
			frames[i] = i
		}
	}
	radii, err := s.Radii()
	if err != nil {
		return errDecorate(err, "WritePDB")
	}
	w, err := NewPDBWriter(filename, s.Len())
	if err != nil {
		return errDecorate(err, "WritePDB")
	}
	defer w.Close()
	for _, f := range frames {
		if err := w.WNext(s.coords[f], radii); err != nil {
			return errDecorate(err, "WritePDB")
		}
	}
	return nil
}
