package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "a", 0},
		{"a", "b", -1},
		{"b", "a", 1},
		{"file2", "file10", -1},
		{"file10", "file2", 1},
		{"file10", "file10", 0},
		{"file02", "file2", 0},
		{"a2b", "a10a", -1},
		{"x", "x1", -1},
		{"1", "2", -1},
		{"9", "10", -1},
		{"a100", "a99", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compare(tt.a, tt.b), "Compare(%q, %q)", tt.a, tt.b)
	}
}

func TestLess_SortsNaturally(t *testing.T) {
	names := []string{"img12.png", "img2.png", "img1.png", "img10.png"}
	sort.Slice(names, func(i, j int) bool { return Less(names[i], names[j]) })
	assert.Equal(t, []string{"img1.png", "img2.png", "img10.png", "img12.png"}, names)
}
