package geom

import "testing"

func TestVec3fSqDist(t *testing.T) {
	a := Vec3f{X: 0, Y: 0, Z: 0}
	b := Vec3f{X: 3, Y: 4, Z: 0}
	if got := a.SqDist(b); got != 25 {
		t.Fatalf("SqDist: got %v want 25", got)
	}
}

func TestVec3fAxis(t *testing.T) {
	v := Vec3f{X: 1, Y: 2, Z: 3}
	cases := []struct {
		axis int
		want float32
	}{{0, 1}, {1, 2}, {2, 3}}
	for _, c := range cases {
		if got := v.Axis(c.axis); got != c.want {
			t.Fatalf("Axis(%d): got %v want %v", c.axis, got, c.want)
		}
	}
}

func TestVec3fAxisPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid axis")
		}
	}()
	Vec3f{}.Axis(3)
}

func TestAABB3fContains(t *testing.T) {
	box := AABB3f{Min: Vec3f{X: -1, Y: -1, Z: -1}, Max: Vec3f{X: 5, Y: 1, Z: 1}}
	inside := []Vec3f{{X: 0}, {X: 4.999, Y: 0.999, Z: 0.999}, {X: -1, Y: -1, Z: -1}}
	for _, p := range inside {
		if !box.Contains(p) {
			t.Fatalf("expected box to contain %v", p)
		}
	}
	onMaxFace := Vec3f{X: 5, Y: 0, Z: 0}
	if box.Contains(onMaxFace) {
		t.Fatalf("expected box to exclude the max face %v (half-open upper bound)", onMaxFace)
	}
	outside := Vec3f{X: 6, Y: 0, Z: 0}
	if box.Contains(outside) {
		t.Fatalf("expected box to exclude %v", outside)
	}
}

func TestAABB3fExpand(t *testing.T) {
	box := AABB3f{Min: Vec3f{X: 0, Y: 0, Z: 0}, Max: Vec3f{X: 0, Y: 0, Z: 0}}
	grown := box.Expand(2)
	want := AABB3f{Min: Vec3f{X: -2, Y: -2, Z: -2}, Max: Vec3f{X: 2, Y: 2, Z: 2}}
	if grown != want {
		t.Fatalf("Expand: got %+v want %+v", grown, want)
	}
}

func TestAABB3fClosestAndFarthestPoint(t *testing.T) {
	box := AABB3f{Min: Vec3f{X: 0, Y: 0, Z: 0}, Max: Vec3f{X: 10, Y: 10, Z: 10}}
	p := Vec3f{X: -5, Y: 20, Z: 5}
	closest := box.ClosestPoint(p)
	want := Vec3f{X: 0, Y: 10, Z: 5}
	if closest != want {
		t.Fatalf("ClosestPoint: got %v want %v", closest, want)
	}
	farthest := box.FarthestPoint(p)
	wantFar := Vec3f{X: 10, Y: 0, Z: 5}
	if farthest != wantFar {
		t.Fatalf("FarthestPoint: got %v want %v", farthest, wantFar)
	}
}

func TestFromCenterRadius(t *testing.T) {
	box := FromCenterRadius(Vec3f{X: 10, Y: 10, Z: 10}, 5)
	want := AABB3f{Min: Vec3f{X: 5, Y: 5, Z: 5}, Max: Vec3f{X: 15, Y: 15, Z: 15}}
	if box != want {
		t.Fatalf("FromCenterRadius: got %+v want %+v", box, want)
	}
}
