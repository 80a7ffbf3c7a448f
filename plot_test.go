/*
 * plot_test.go, part of gobox.
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
	"os"
	"path/filepath"
	"testing"
)

func TestPlotRMSF(Te *testing.T) {
	s := rotatedPair(Te)
	name := filepath.Join(Te.TempDir(), "rmsf")
	if err := s.PlotRMSF(name, nil); err != nil {
		Te.Fatal(err)
	}
	info, err := os.Stat(name + ".png")
	if err != nil {
		Te.Fatal(err)
	}
	if info.Size() == 0 {
		Te.Error("wrote an empty plot")
	}
}

func TestPlotProjections(Te *testing.T) {
	s := oneModeEnsemble(Te)
	name := filepath.Join(Te.TempDir(), "proj")
	//a single dominant mode cannot fill a 2D scatter
	if err := s.PlotProjections(name, nil, 0.9); !IsKind(err, KindPrecondition) {
		Te.Errorf("expected a precondition error, got %v", err)
	}
	if err := s.PlotProjections(name, nil, 1); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Fatal(err)
	}
}
