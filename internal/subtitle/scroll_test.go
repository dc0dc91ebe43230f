package subtitle

import "testing"

func TestScrollTarget(t *testing.T) {
	heights := []int{1, 1, 2, 1, 1, 1, 1, 1, 1, 1}

	tests := []struct {
		name     string
		active   int
		viewport int
		want     int
	}{
		{"top clamps to zero", 0, 5, 0},
		{"centers middle line", 5, 5, 4},
		{"tall line", 2, 3, 2},
		{"bottom clamps", 9, 5, 6},
		{"no active line", -1, 5, 0},
		{"content shorter than viewport", 3, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScrollTarget(heights, tt.active, tt.viewport); got != tt.want {
				t.Errorf("ScrollTarget = %d, want %d", got, tt.want)
			}
		})
	}
}
