package mosaic

import (
	"math"
	"sync"
	"testing"
)

func TestPointer_SetClearLoad(t *testing.T) {
	p := NewPointer()
	if _, ok := p.Load(); ok {
		t.Fatal("new pointer should report no detection")
	}

	p.Set(0.25, 0.75)
	got, ok := p.Load()
	if !ok || got != (Point{X: 0.25, Y: 0.75}) {
		t.Errorf("Load() = %v, %v", got, ok)
	}

	p.Clear()
	if _, ok := p.Load(); ok {
		t.Error("Clear() should report no detection")
	}
	if p.Updates() != 2 {
		t.Errorf("Updates() = %d, want 2", p.Updates())
	}
}

func TestPointer_LatestValueWins(t *testing.T) {
	p := NewPointer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.Set(float64(i), float64(j))
			}
		}(i)
	}
	wg.Wait()

	if _, ok := p.Load(); !ok {
		t.Error("expected a detection after concurrent writes")
	}
	if p.Updates() != 800 {
		t.Errorf("Updates() = %d, want 800", p.Updates())
	}
}

func TestMapper_Scaled(t *testing.T) {
	tests := []struct {
		name   string
		canvas Size
		feed   Size
		want   Size
	}{
		{"same aspect", Size{W: 800, H: 600}, Size{W: 640, H: 480}, Size{W: 800, H: 600}},
		{"wider feed covers height", Size{W: 600, H: 600}, Size{W: 640, H: 480}, Size{W: 800, H: 600}},
		{"taller feed covers width", Size{W: 1600, H: 600}, Size{W: 640, H: 480}, Size{W: 1600, H: 1200}},
		{"unknown feed", Size{W: 300, H: 200}, Size{}, Size{W: 300, H: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mapper{Canvas: tt.canvas, Feed: tt.feed}.Scaled()
			if math.Abs(got.W-tt.want.W) > 1e-9 || math.Abs(got.H-tt.want.H) > 1e-9 {
				t.Errorf("Scaled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapper_ToCanvas(t *testing.T) {
	m := Mapper{Canvas: Size{W: 600, H: 600}, Feed: Size{W: 640, H: 480}}

	// Scaled feed is 800x600, centered: 100 units hang over each side.
	tests := []struct {
		in, want Point
	}{
		{Point{X: 0.5, Y: 0.5}, Point{X: 300, Y: 300}},
		{Point{X: 0, Y: 0}, Point{X: -100, Y: 0}},
		{Point{X: 1, Y: 1}, Point{X: 700, Y: 600}},
		{Point{X: 0.125, Y: 0.25}, Point{X: 0, Y: 150}},
	}
	for _, tt := range tests {
		got := m.ToCanvas(tt.in)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("ToCanvas(%v) = %v, want %v", tt.in, got, tt.want)
		}
		back := m.ToNormalized(got)
		if math.Abs(back.X-tt.in.X) > 1e-9 || math.Abs(back.Y-tt.in.Y) > 1e-9 {
			t.Errorf("ToNormalized(%v) = %v, want %v", got, back, tt.in)
		}
	}
}

func TestMapper_Mirror(t *testing.T) {
	m := Mapper{Canvas: Size{W: 800, H: 600}, Mirror: true}
	got := m.ToCanvas(Point{X: 0.25, Y: 0.5})
	if got != (Point{X: 600, Y: 300}) {
		t.Errorf("mirrored ToCanvas = %v, want {600 300}", got)
	}
	back := m.ToNormalized(got)
	if back != (Point{X: 0.25, Y: 0.5}) {
		t.Errorf("mirrored ToNormalized = %v", back)
	}
}
