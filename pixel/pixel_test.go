/*
NAME
  pixel_test.go

LICENSE
  Copyright (C) 2026 the vqmetrics contributors.
*/

package pixel

import "testing"

func TestMaxForDepth(t *testing.T) {
	cases := map[int]int{8: 255, 10: 1023, 12: 4095, 16: 65535}
	for depth, want := range cases {
		if got := MaxForDepth(depth); got != want {
			t.Errorf("MaxForDepth(%d) = %d, want %d", depth, got, want)
		}
	}
}

func TestFromInt32Clamps(t *testing.T) {
	if got := FromInt32[uint8](-5, 255); got != 0 {
		t.Errorf("FromInt32(-5, 255) = %d, want 0", got)
	}
	if got := FromInt32[uint8](300, 255); got != 255 {
		t.Errorf("FromInt32(300, 255) = %d, want 255", got)
	}
	if got := FromInt32[uint8](100, 255); got != 100 {
		t.Errorf("FromInt32(100, 255) = %d, want 100", got)
	}
}

func TestToInt32RoundTrip(t *testing.T) {
	var v uint16 = 1023
	if got := ToInt32(v); got != 1023 {
		t.Errorf("ToInt32(1023) = %d, want 1023", got)
	}
}
