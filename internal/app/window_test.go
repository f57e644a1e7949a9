package app

import (
	"testing"
	"time"
)

func TestResolveWindow(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("zero buffer yields raw interval", func(t *testing.T) {
		w := ResolveWindow(start, end, 0)
		if !w.Start.Equal(start) || !w.End.Equal(end) {
			t.Fatalf("expected raw interval, got [%v, %v)", w.Start, w.End)
		}
	})

	t.Run("buffer pads both endpoints", func(t *testing.T) {
		w := ResolveWindow(start, end, 30)
		if !w.Start.Equal(start.Add(-30 * time.Minute)) {
			t.Fatalf("expected start padded backward, got %v", w.Start)
		}
		if !w.End.Equal(end.Add(30 * time.Minute)) {
			t.Fatalf("expected end padded forward, got %v", w.End)
		}
	})

	t.Run("negative buffer clamps to zero", func(t *testing.T) {
		w := ResolveWindow(start, end, -15)
		if !w.Start.Equal(start) || !w.End.Equal(end) {
			t.Fatalf("expected raw interval, got [%v, %v)", w.Start, w.End)
		}
	})
}

func TestWindowOverlaps(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		a, b Window
		want bool
	}{
		{
			name: "disjoint",
			a:    Window{Start: day(1), End: day(3)},
			b:    Window{Start: day(5), End: day(7)},
			want: false,
		},
		{
			name: "contained",
			a:    Window{Start: day(1), End: day(10)},
			b:    Window{Start: day(3), End: day(4)},
			want: true,
		},
		{
			name: "partial overlap",
			a:    Window{Start: day(1), End: day(5)},
			b:    Window{Start: day(4), End: day(8)},
			want: true,
		},
		{
			name: "exact boundary touch is not a conflict",
			a:    Window{Start: day(1), End: day(3)},
			b:    Window{Start: day(3), End: day(5)},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Fatalf("Overlaps (reversed) = %v, want %v", got, tc.want)
			}
		})
	}
}
