package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderLoadBar(t *testing.T) {
	tests := []struct {
		name  string
		load  float64
		peak  float64
		width int
		want  string
	}{
		{"half", 2, 4, 8, "[████░░░░] 2/4"},
		{"full", 4, 4, 8, "[████████] 4/4"},
		{"over peak clamps", 5, 4, 4, "[████] 5/4"},
		{"no peak", 0, 0, 4, "[░░░░] 0/0"},
		{"tiny width clamps to 2", 1, 2, 1, "[█░] 1/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plain(RenderLoadBar(tt.load, tt.peak, tt.width)))
		})
	}
}
