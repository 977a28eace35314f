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


package retrieve

import "errors"

var (
	// ErrNodeRepositoryRequired is returned when a node repository is not provided.
	ErrNodeRepositoryRequired = errors.New("node repository required")

	// ErrCollectionRepositoryRequired is returned when a collection repository is not provided.
	ErrCollectionRepositoryRequired = errors.New("collection repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidThreshold is returned for a merge threshold outside (0, 1].
	ErrInvalidThreshold = errors.New("merge threshold must be in (0, 1]")

	// ErrInvalidTopK is returned for a non-positive top-k.
	ErrInvalidTopK = errors.New("top-k must be positive")
)
