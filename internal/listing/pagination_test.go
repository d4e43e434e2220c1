package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"3", 1, 3},
		{"-1", 1, -1},
		{"0", 1, 0},
		{"", 1, 1},
		{"abc", 1, 1},
		{"1.5", 1, 1},
		{" 2", 1, 1},
		{"2x", 4, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseInt(tt.in, tt.def), "input %q", tt.in)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		limit      int
		requested  int
		wantCount  int
		wantOffset int
	}{
		{"empty set still has one page", 0, 4, 1, 1, 1},
		{"exact fit", 8, 4, 1, 2, 1},
		{"remainder rounds up", 9, 4, 1, 3, 1},
		{"request beyond end clamps", 9, 4, 7, 3, 3},
		{"last page sentinel", 9, 4, -1, 3, 3},
		{"zero request snaps to first", 9, 4, 0, 3, 1},
		{"negative request snaps to first", 9, 4, -5, 3, 1},
		{"garbage limit falls back", 9, 0, 1, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Resolve(tt.total, tt.limit, tt.requested)
			assert.Equal(t, tt.wantCount, p.Count)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestRowOffset(t *testing.T) {
	p := Resolve(20, 8, 2)
	assert.Equal(t, 8, p.RowOffset())

	p = Resolve(20, 8, 1)
	assert.Equal(t, 0, p.RowOffset())
}

func TestResolveLimit(t *testing.T) {
	assert.Equal(t, 8, ResolveLimit(8, 16), "explicit request wins")
	assert.Equal(t, 16, ResolveLimit(0, 16), "stored value is the fallback")
	assert.Equal(t, DefaultLimit, ResolveLimit(0, 0))
}
