package camera

import (
	"math"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

func TestCameraCenterRayPointsAtLookAt(t *testing.T) {
	lookFrom := core.NewVec3(0, 0, 5)
	lookAt := core.NewVec3(0, 0, 0)
	up := core.NewVec3(0, 1, 0)
	c := New(lookFrom, lookAt, up, math.Pi/4, 1)

	ray := c.GetRay(0.5, 0.5)
	want := lookAt.Subtract(lookFrom).Normalize()
	if ray.Direction.Subtract(want).Length() > 1e-9 {
		t.Fatalf("center ray direction = %v, want %v", ray.Direction, want)
	}
	if ray.Origin != lookFrom {
		t.Fatalf("ray origin = %v, want %v", ray.Origin, lookFrom)
	}
}

func TestCameraCornersDivergeSymmetrically(t *testing.T) {
	lookFrom := core.NewVec3(0, 0, 5)
	lookAt := core.NewVec3(0, 0, 0)
	up := core.NewVec3(0, 1, 0)
	c := New(lookFrom, lookAt, up, math.Pi/4, 1)

	left := c.GetRay(0, 0.5)
	right := c.GetRay(1, 0.5)
	bottom := c.GetRay(0.5, 0)
	top := c.GetRay(0.5, 1)

	if left.Direction.X >= 0 {
		t.Errorf("left ray should point toward -X, got %v", left.Direction)
	}
	if right.Direction.X <= 0 {
		t.Errorf("right ray should point toward +X, got %v", right.Direction)
	}
	if bottom.Direction.Y >= 0 {
		t.Errorf("bottom ray should point toward -Y, got %v", bottom.Direction)
	}
	if top.Direction.Y <= 0 {
		t.Errorf("top ray should point toward +Y, got %v", top.Direction)
	}
}

func TestCameraRayDirectionsAreUnitLength(t *testing.T) {
	c := New(core.NewVec3(1, 2, 3), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), math.Pi/3, 16.0/9.0)

	for _, st := range [][2]core.F{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.3, 0.7}} {
		ray := c.GetRay(st[0], st[1])
		if math.Abs(ray.Direction.Length()-1) > 1e-9 {
			t.Errorf("GetRay(%v, %v) direction length = %f, want 1", st[0], st[1], ray.Direction.Length())
		}
	}
}

func TestCameraAspectRatioStretchesHorizontally(t *testing.T) {
	lookFrom := core.NewVec3(0, 0, 5)
	lookAt := core.NewVec3(0, 0, 0)
	up := core.NewVec3(0, 1, 0)

	square := New(lookFrom, lookAt, up, math.Pi/4, 1)
	wide := New(lookFrom, lookAt, up, math.Pi/4, 2)

	squareRight := square.GetRay(1, 0.5)
	wideRight := wide.GetRay(1, 0.5)

	if wideRight.Direction.X <= squareRight.Direction.X {
		t.Fatalf("a wider aspect ratio should push the right edge ray further in +X")
	}
}
