/*
 * doc.go, part of gobox.
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

//Package gobox provides a store for ensembles of alternative 3D conformations
//of a point cloud, plus geometric and statistical operations over it: rigid
//transformations, principal-axis alignment, Kabsch optimal superposition and
//RMSD, per-point fluctuations, ensemble principal component analysis, and a
//fixed-width structure-file writer. Surface estimation and density-map
//synthesis live in their own subpackages.
package gobox
