package audio

import "testing"

func TestRingLatestPartial(t *testing.T) {
	r := NewRing(8)
	r.Write([]float32{1, 2, 3})

	dst := make([]float32, 5)
	n := r.Latest(dst)
	if n != 3 {
		t.Fatalf("Latest() = %d, expected 3", n)
	}

	expected := []float32{0, 0, 1, 2, 3}
	for i := range expected {
		if dst[i] != expected[i] {
			t.Errorf("dst[%d] = %v, expected %v", i, dst[i], expected[i])
		}
	}
}

func TestRingWrapAround(t *testing.T) {
	r := NewRing(4)
	r.Write([]float32{1, 2, 3})
	r.Write([]float32{4, 5, 6})

	if r.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", r.Len())
	}

	dst := make([]float32, 4)
	r.Latest(dst)
	expected := []float32{3, 4, 5, 6}
	for i := range expected {
		if dst[i] != expected[i] {
			t.Errorf("dst[%d] = %v, expected %v", i, dst[i], expected[i])
		}
	}
}

func TestRingOversizedWrite(t *testing.T) {
	r := NewRing(3)
	r.Write([]float32{1, 2, 3, 4, 5, 6, 7})

	dst := make([]float32, 3)
	r.Latest(dst)
	expected := []float32{5, 6, 7}
	for i := range expected {
		if dst[i] != expected[i] {
			t.Errorf("dst[%d] = %v, expected %v", i, dst[i], expected[i])
		}
	}
}

func TestRingShortDestination(t *testing.T) {
	r := NewRing(6)
	r.Write([]float32{1, 2, 3, 4, 5})

	dst := make([]float32, 2)
	if n := r.Latest(dst); n != 2 {
		t.Fatalf("Latest() = %d, expected 2", n)
	}
	if dst[0] != 4 || dst[1] != 5 {
		t.Errorf("Latest() = %v, expected [4 5]", dst)
	}
}

func TestRingReset(t *testing.T) {
	r := NewRing(4)
	r.Write([]float32{1, 2, 3, 4})
	r.Reset()

	dst := []float32{9, 9}
	if n := r.Latest(dst); n != 0 {
		t.Errorf("Latest() after Reset = %d, expected 0", n)
	}
	if dst[0] != 0 || dst[1] != 0 {
		t.Errorf("Latest() after Reset should zero-fill, got %v", dst)
	}
}
