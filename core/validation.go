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

import "fmt"

// ValidatePageUnits validates a single document's page units.
//
// Validation rules:
//   - At least one page unit must be present
//   - All units must name the same source file
//   - Page numbers must be positive and strictly ascending
//
// NOT validated:
//   - Text (blank pages are legal and carve into empty-ish spans)
func ValidatePageUnits(units []PageUnit) error {
	if len(units) == 0 {
		return ErrEmptyInput
	}

	filePath := units[0].FilePath
	lastPage := 0
	for i, unit := range units {
		if unit.FileName == "" || unit.FilePath == "" {
			return fmt.Errorf("%w: unit %d has no source file", ErrInvalidPageUnit, i)
		}
		if unit.FilePath != filePath {
			return fmt.Errorf("%w: %q and %q", ErrMixedSourceFiles, filePath, unit.FilePath)
		}
		if unit.PageNumber <= lastPage {
			return fmt.Errorf("%w: page %d after page %d", ErrInvalidPageNumber, unit.PageNumber, lastPage)
		}
		lastPage = unit.PageNumber
	}
	return nil
}

// ValidateChunkSizes validates the level thresholds for tree construction.
// Sizes run from the largest (root level) to the smallest (leaf level) and
// must be strictly descending positive values.
func ValidateChunkSizes(sizes []int) error {
	if len(sizes) == 0 {
		return fmt.Errorf("%w: no sizes provided", ErrInvalidChunkSizes)
	}
	prev := 0
	for i, size := range sizes {
		if size <= 0 {
			return fmt.Errorf("%w: size %d at index %d", ErrInvalidChunkSizes, size, i)
		}
		if i > 0 && size >= prev {
			return fmt.Errorf("%w: %d not smaller than %d", ErrInvalidChunkSizes, size, prev)
		}
		prev = size
	}
	return nil
}

// ValidateNode validates a Node according to domain rules.
//
// Validation rules:
//   - ID must be set
//   - Text span must be non-degenerate
//   - Page range must be ordered and positive
func ValidateNode(node *Node) error {
	if node == nil {
		return fmt.Errorf("%w: node is nil", ErrInvalidNode)
	}
	if node.Id == 0 {
		return fmt.Errorf("%w: id not set", ErrInvalidNode)
	}
	if node.SpanEnd < node.SpanStart {
		return fmt.Errorf("%w: span [%d,%d)", ErrInvalidNode, node.SpanStart, node.SpanEnd)
	}
	if node.Pages.First <= 0 || node.Pages.Last < node.Pages.First {
		return fmt.Errorf("%w: page range %d-%d", ErrInvalidNode, node.Pages.First, node.Pages.Last)
	}
	return nil
}
