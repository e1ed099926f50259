//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package common holds the error kinds shared across the schema/lifter,
// string table, and byte encoder. Every error surfaced by THE CORE is
// one of these; none are recovered from internally (see spec §7).
package common

import "fmt"

// UnknownTypeError reports a raw node whose "type" has no schema entry
// under strict lifting.
type UnknownTypeError struct {
	RawType string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown node type %q", e.RawType)
}

// MissingFieldError reports a required field descriptor absent from a
// raw node.
type MissingFieldError struct {
	TypeName  string
	FieldName string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.TypeName, e.FieldName)
}

// MissingBranchError reports a required branch descriptor absent from a
// raw node.
type MissingBranchError struct {
	TypeName   string
	BranchName string
}

func (e *MissingBranchError) Error() string {
	return fmt.Sprintf("%s: missing required branch %q", e.TypeName, e.BranchName)
}

// UnknownPropertyError reports a raw property that is neither "type",
// "range", "loc", nor a declared field/branch name.
type UnknownPropertyError struct {
	TypeName     string
	PropertyName string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("%s: unknown property %q", e.TypeName, e.PropertyName)
}

// ArrayShapeMismatchError reports disagreement between a descriptor's
// array-ness and the raw value found for it.
type ArrayShapeMismatchError struct {
	TypeName string
	Name     string
	WantsArr bool
}

func (e *ArrayShapeMismatchError) Error() string {
	if e.WantsArr {
		return fmt.Sprintf("%s: %q must be an array", e.TypeName, e.Name)
	}
	return fmt.Sprintf("%s: %q must not be an array", e.TypeName, e.Name)
}

// UnknownStringError reports a lookup of a string never added before
// the string table was finalized.
type UnknownStringError struct {
	S string
}

func (e *UnknownStringError) Error() string {
	return fmt.Sprintf("string table: unknown string %q", e.S)
}

// UnsupportedValueError reports a value passed to the byte encoder that
// falls outside the primitive value tag table (§4.6).
type UnsupportedValueError struct {
	Value interface{}
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("encoder: unsupported value %#v", e.Value)
}

// VarUintOverflowError reports a value that does not fit in 32 bits.
type VarUintOverflowError struct {
	Value int64
}

func (e *VarUintOverflowError) Error() string {
	return fmt.Sprintf("encoder: varuint overflow for value %d", e.Value)
}

// RefOutOfRangeError reports a cache reference parameter (depth delta or
// reverse index) outside its allowed range.
type RefOutOfRangeError struct {
	Field string
	Value int
}

func (e *RefOutOfRangeError) Error() string {
	return fmt.Sprintf("encoder: %s out of range: %d", e.Field, e.Value)
}
