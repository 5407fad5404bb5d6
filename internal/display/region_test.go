package display

import "testing"

func TestPhysicalAppliesScaleAndEvensDimensions(t *testing.T) {
	got := Physical(Rect{X: 100, Y: 100, Width: 301, Height: 201}, 1.5)
	want := PhysicalRegion{X: 150, Y: 150, Width: 452, Height: 302}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestPhysicalIdempotentOnEvenRegion(t *testing.T) {
	got := Physical(Rect{X: 10, Y: 20, Width: 640, Height: 480}, 1)
	want := PhysicalRegion{X: 10, Y: 20, Width: 640, Height: 480}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestPhysicalClampsNegativeOrigin(t *testing.T) {
	got := Physical(Rect{X: -5, Y: -3, Width: 11, Height: 9}, 1)
	if got.X != 0 || got.Y != 0 {
		t.Fatalf("expected origin clamped to zero, got %+v", got)
	}
}

func TestPhysicalNeverReturnsZeroOrOddDimensions(t *testing.T) {
	scales := []float64{1, 1.25, 1.5, 1.75, 2, 2.5, 3}
	for _, scale := range scales {
		for w := 1; w <= 7; w++ {
			for h := 1; h <= 7; h++ {
				got := Physical(Rect{Width: w, Height: h}, scale)
				if got.Width <= 0 || got.Height <= 0 {
					t.Fatalf("scale %v %dx%d: zero dimension %+v", scale, w, h, got)
				}
				if got.Width%2 != 0 || got.Height%2 != 0 {
					t.Fatalf("scale %v %dx%d: odd dimension %+v", scale, w, h, got)
				}
				if float64(got.Width) < float64(w)*scale-1 || float64(got.Height) < float64(h)*scale-1 {
					t.Fatalf("scale %v %dx%d: output smaller than scaled input %+v", scale, w, h, got)
				}
			}
		}
	}
}

func TestPhysicalTreatsSubUnitScaleAsOne(t *testing.T) {
	got := Physical(Rect{X: 10, Y: 10, Width: 100, Height: 100}, 0.5)
	want := Physical(Rect{X: 10, Y: 10, Width: 100, Height: 100}, 1)
	if got != want {
		t.Fatalf("expected scale<1 to behave as 1, got %+v want %+v", got, want)
	}
}
