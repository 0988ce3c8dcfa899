package types

import "testing"

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 5}, Position{1, 0}, -1},
		{Position{2, 0}, Position{1, 9}, 1},
		{Position{1, 3}, Position{1, 2}, 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestOrderPositions(t *testing.T) {
	a, b := Position{Line: 2, Col: 5}, Position{Line: 1, Col: 0}
	start, end := OrderPositions(a, b)
	if start != b || end != a {
		t.Fatalf("OrderPositions(%v, %v) = %v, %v", a, b, start, end)
	}
	start2, end2 := OrderPositions(b, a)
	if start2 != start || end2 != end {
		t.Fatalf("OrderPositions is not order independent")
	}
}

func TestWithin(t *testing.T) {
	start, end := Position{Line: 1, Col: 2}, Position{Line: 2, Col: 1}
	if !(Position{Line: 1, Col: 2}).Within(start, end) {
		t.Error("start should be inside")
	}
	if (Position{Line: 2, Col: 1}).Within(start, end) {
		t.Error("end is exclusive")
	}
	if !(Position{Line: 1, Col: 40}).Within(start, end) {
		t.Error("rest of first line should be inside")
	}
}
