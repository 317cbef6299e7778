package pony

import "testing"

func TestMulberry32Sequence(t *testing.T) {
	tests := []struct {
		seed     uint32
		expected []uint32
	}{
		{42, []uint32{2581720956, 1925393290, 3661312704, 2876485805, 750819978}},
		{7, []uint32{50271532, 266108690, 4195786334, 3002305430, 2239590375}},
		{99, []uint32{1118692146, 3456687457, 2323025554, 2964572940, 4890715}},
		{0, []uint32{1144304738, 1416247, 958946056, 627933444, 2007157716}},
	}

	for _, tt := range tests {
		rng := NewMulberry32(tt.seed)
		for i, want := range tt.expected {
			if got := rng.Uint32(); got != want {
				t.Errorf("seed %d output %d = %d, expected %d", tt.seed, i, got, want)
			}
		}
	}
}

func TestMulberry32Range(t *testing.T) {
	rng := NewMulberry32(12345)
	for i := 0; i < 10000; i++ {
		v := rng.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v, outside [0, 1)", v)
		}
	}
}
