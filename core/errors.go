// Copyright 2025 Poiesic Systems
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


package core

import "errors"

// Domain validation errors. These are input errors: they abort the single
// operation that received the bad input and never corrupt persisted state.
var (
	// ErrEmptyInput indicates that no page units were provided.
	ErrEmptyInput = errors.New("no page units provided")

	// ErrInvalidChunkSizes indicates chunk sizes are not strictly descending
	// or contain non-positive values.
	ErrInvalidChunkSizes = errors.New("invalid chunk sizes")

	// ErrInvalidPageUnit indicates a PageUnit failed validation.
	ErrInvalidPageUnit = errors.New("invalid page unit")

	// ErrInvalidPageNumber indicates a page number is not positive or not
	// in ascending order.
	ErrInvalidPageNumber = errors.New("invalid page number")

	// ErrMixedSourceFiles indicates page units from more than one source
	// file were passed to a single-document operation.
	ErrMixedSourceFiles = errors.New("page units span multiple source files")

	// ErrInvalidNode indicates a Node failed validation.
	ErrInvalidNode = errors.New("invalid node")

	// ErrEmptyCollectionName indicates a collection name is empty.
	ErrEmptyCollectionName = errors.New("collection name cannot be empty")
)
