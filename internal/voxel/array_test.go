package voxel

import "testing"

func testSize() Size { return Size{X: 4, Y: 4, Z: 4} }

func TestBlockArrayGetSetRoundTrip(t *testing.T) {
	a := NewBlockArray(testSize())
	l := Local{X: 1, Y: 2, Z: 3}
	if got := a.Get(l); got != BlockAir {
		t.Fatalf("fresh array at %+v: got %v, want air", l, got)
	}
	if !a.Set(l, Block(7)) {
		t.Fatalf("Set should report a change")
	}
	if got := a.Get(l); got != Block(7) {
		t.Fatalf("after Set: got %v, want 7", got)
	}
	if a.Set(l, Block(7)) {
		t.Fatalf("Set with the same id should report no change")
	}
}

func TestBlockArrayOutOfRangeIsSilent(t *testing.T) {
	a := NewBlockArray(testSize())
	oob := Local{X: -1, Y: 0, Z: 0}
	if got := a.Get(oob); got != BlockAir {
		t.Fatalf("out-of-range Get: got %v, want air", got)
	}
	if a.Set(oob, Block(9)) {
		t.Fatalf("out-of-range Set should report no change")
	}
}

func TestBlockArrayIndexCanonicalOrder(t *testing.T) {
	a := NewBlockArray(testSize())
	a.Set(Local{X: 1, Y: 0, Z: 0}, Block(1))
	a.Set(Local{X: 0, Y: 0, Z: 1}, Block(2))
	a.Set(Local{X: 0, Y: 1, Z: 0}, Block(3))
	raw := a.Raw()
	size := testSize()
	if raw[1] != Block(1) {
		t.Errorf("x fastest: raw[1] = %v, want 1", raw[1])
	}
	if raw[size.X] != Block(2) {
		t.Errorf("z next: raw[Cx] = %v, want 2", raw[size.X])
	}
	if raw[size.X*size.Z] != Block(3) {
		t.Errorf("y slowest: raw[Cx*Cz] = %v, want 3", raw[size.X*size.Z])
	}
}

func TestBlockArrayBulkReplace(t *testing.T) {
	a := NewBlockArray(testSize())
	data := make([]byte, testSize().Volume())
	for i := range data {
		data[i] = byte(i % 5)
	}
	if !a.BulkReplace(data) {
		t.Fatalf("BulkReplace with correct length should succeed")
	}
	for i, b := range a.Raw() {
		if byte(b) != data[i] {
			t.Fatalf("block %d: got %v, want %v", i, b, data[i])
		}
	}
	if a.BulkReplace(data[:len(data)-1]) {
		t.Fatalf("BulkReplace with wrong length should fail")
	}
}

func TestBlockArrayReset(t *testing.T) {
	a := NewBlockArray(testSize())
	a.Set(Local{X: 0, Y: 0, Z: 0}, Block(5))
	a.Reset()
	for _, b := range a.Raw() {
		if b != BlockAir {
			t.Fatalf("after Reset: found non-air block %v", b)
		}
	}
}
