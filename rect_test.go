package roadgeom

import "testing"

func TestRectUnion(t *testing.T) {
	if !emptyRect.IsEmpty() {
		t.Fatal("emptyRect is not empty")
	}
	r := emptyRect.UnionPoint(Pt(1, 2))
	diff(t, Rect{1, 2, 1, 2}, r)
	if r.IsEmpty() {
		t.Error("a single point is not an empty rectangle")
	}

	r = r.UnionPoint(Pt(-3, 5)).Union(Rect{0, 0, 2, 1})
	diff(t, Rect{-3, 0, 2, 5}, r)
	diff(t, r, emptyRect.Union(r))
	diff(t, r, r.Union(emptyRect))
}
