package core

import (
	"errors"
	"testing"
)

func pageUnits(filePath string, pages ...int) []PageUnit {
	units := make([]PageUnit, len(pages))
	for i, p := range pages {
		units[i] = PageUnit{
			Text:       "page text",
			PageNumber: p,
			FileName:   "doc.pdf",
			FilePath:   filePath,
		}
	}
	return units
}

func TestValidatePageUnits(t *testing.T) {
	tests := []struct {
		name    string
		units   []PageUnit
		wantErr error
	}{
		{
			name:    "valid single page",
			units:   pageUnits("/docs/doc.pdf", 1),
			wantErr: nil,
		},
		{
			name:    "valid multiple pages",
			units:   pageUnits("/docs/doc.pdf", 1, 2, 3),
			wantErr: nil,
		},
		{
			name:    "valid with gaps",
			units:   pageUnits("/docs/doc.pdf", 1, 3, 7),
			wantErr: nil,
		},
		{
			name:    "empty input",
			units:   nil,
			wantErr: ErrEmptyInput,
		},
		{
			name: "missing source file",
			units: []PageUnit{
				{Text: "text", PageNumber: 1},
			},
			wantErr: ErrInvalidPageUnit,
		},
		{
			name: "mixed source files",
			units: append(pageUnits("/docs/a.pdf", 1),
				pageUnits("/docs/b.pdf", 2)...),
			wantErr: ErrMixedSourceFiles,
		},
		{
			name:    "zero page number",
			units:   pageUnits("/docs/doc.pdf", 0),
			wantErr: ErrInvalidPageNumber,
		},
		{
			name:    "descending page numbers",
			units:   pageUnits("/docs/doc.pdf", 2, 1),
			wantErr: ErrInvalidPageNumber,
		},
		{
			name:    "duplicate page numbers",
			units:   pageUnits("/docs/doc.pdf", 1, 1),
			wantErr: ErrInvalidPageNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePageUnits(tt.units)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePageUnits() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePageUnits() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChunkSizes(t *testing.T) {
	tests := []struct {
		name    string
		sizes   []int
		wantErr bool
	}{
		{"standard three levels", []int{4096, 1024, 512}, false},
		{"single level", []int{512}, false},
		{"empty", nil, true},
		{"non-positive size", []int{4096, 0}, true},
		{"negative size", []int{-1}, true},
		{"not descending", []int{1024, 4096}, true},
		{"equal sizes", []int{1024, 1024}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunkSizes(tt.sizes)
			if tt.wantErr && !errors.Is(err, ErrInvalidChunkSizes) {
				t.Errorf("ValidateChunkSizes(%v) = %v, want ErrInvalidChunkSizes", tt.sizes, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateChunkSizes(%v) = %v, want nil", tt.sizes, err)
			}
		})
	}
}

func TestValidateNode(t *testing.T) {
	valid := &Node{
		Id:        NodeID("/docs/doc.pdf", 0, 0, 100),
		Text:      "chunk",
		SpanStart: 0,
		SpanEnd:   100,
		Pages:     PageRange{First: 1, Last: 2},
	}
	if err := ValidateNode(valid); err != nil {
		t.Errorf("ValidateNode(valid) = %v", err)
	}

	tests := []struct {
		name string
		node *Node
	}{
		{"nil node", nil},
		{"missing id", &Node{SpanEnd: 1, Pages: PageRange{First: 1, Last: 1}}},
		{"inverted span", &Node{Id: 1, SpanStart: 5, SpanEnd: 1, Pages: PageRange{First: 1, Last: 1}}},
		{"zero page", &Node{Id: 1, SpanEnd: 1, Pages: PageRange{First: 0, Last: 0}}},
		{"inverted page range", &Node{Id: 1, SpanEnd: 1, Pages: PageRange{First: 3, Last: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateNode(tt.node); !errors.Is(err, ErrInvalidNode) {
				t.Errorf("ValidateNode() = %v, want ErrInvalidNode", err)
			}
		})
	}
}
