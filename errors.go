/*
 * errors.go, part of gobox.
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

import "fmt"

//Kind classifies the failures reported by this package. Every failure is
//local and synchronous; nothing is retried internally.
type Kind int

const (
	//KindShape reports a wrong tensor rank or mismatched lengths between
	//points and per-point properties.
	KindShape Kind = iota
	//KindIndex reports a frame or point index out of bounds.
	KindIndex
	//KindDomain reports a numeric parameter outside its valid range.
	KindDomain
	//KindPrecondition reports an operation invoked on a store that does not
	//meet its requirements, e.g. too few frames.
	KindPrecondition
	//KindUnsupported reports an intentionally unimplemented operation.
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindIndex:
		return "index"
	case KindDomain:
		return "domain"
	case KindPrecondition:
		return "precondition"
	case KindUnsupported:
		return "unsupported"
	}
	return "unknown"
}

//Error is the concrete error type returned by this package. The Decorate
//method allows adding information to the error as it travels up the calling
//stack, without changing its type or wrapping it around something else.
type Error struct {
	kind    Kind
	message string
	deco    []string
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return fmt.Sprintf("gobox: %s error: %s", err.kind, err.message)
}

//Kind returns the classification of the error.
func (err Error) Kind() Kind {
	return err.kind
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice. An empty string only returns the
//current decorations.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//IsKind reports whether err is a gobox Error of the given kind.
func IsKind(err error, k Kind) bool {
	e, ok := err.(Error)
	return ok && e.kind == k
}

func shapeError(caller, format string, a ...interface{}) Error {
	return Error{KindShape, fmt.Sprintf(format, a...), []string{caller}}
}

func indexError(caller, format string, a ...interface{}) Error {
	return Error{KindIndex, fmt.Sprintf(format, a...), []string{caller}}
}

func domainError(caller, format string, a ...interface{}) Error {
	return Error{KindDomain, fmt.Sprintf(format, a...), []string{caller}}
}

func preconditionError(caller, format string, a ...interface{}) Error {
	return Error{KindPrecondition, fmt.Sprintf(format, a...), []string{caller}}
}

//decorator is the interface of decoratable errors, as implemented by this
//package and its subpackages.
type decorator interface {
	Error() string
	Decorate(string) []string
}

//errDecorate adds the caller's name to a decoratable error and returns it
//unchanged otherwise.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(decorator); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
