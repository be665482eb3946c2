package board

import (
	"errors"
	"testing"
)

func TestCatalogFitsInNibble(t *testing.T) {
	if NumLayouts > 16 {
		t.Fatalf("NumLayouts = %d, must be <= 16", NumLayouts)
	}
}

func TestCatalogUsesOnlyLowBits(t *testing.T) {
	for id, layout := range Catalog {
		for row, bits := range layout {
			if bits>>Cols != 0 {
				t.Errorf("layout %d row %d = %#b uses bits above column range", id, row, bits)
			}
		}
	}
}

func TestLayoutByID(t *testing.T) {
	got, err := LayoutByID(2)
	if err != nil {
		t.Fatalf("LayoutByID(2): %v", err)
	}
	if got != Catalog[2] {
		t.Errorf("LayoutByID(2) returned a different layout")
	}

	_, err = LayoutByID(uint8(NumLayouts))
	if !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("LayoutByID(%d) err = %v, want ErrUnknownLayout", NumLayouts, err)
	}
}

func TestWrapID(t *testing.T) {
	last := uint8(NumLayouts - 1)
	tests := []struct {
		id    uint8
		delta int
		want  uint8
	}{
		{0, 1, 1},
		{last, 1, 0},
		{0, -1, last},
		{3, -1, 2},
	}
	for _, tt := range tests {
		if got := WrapID(tt.id, tt.delta); got != tt.want {
			t.Errorf("WrapID(%d, %d) = %d, want %d", tt.id, tt.delta, got, tt.want)
		}
	}
}

func TestShipMSBIsColumnZero(t *testing.T) {
	var l Layout
	l[0] = 0b10000
	if !l.Ship(0, 0) {
		t.Error("bit 4 should be column 0")
	}
	if l.Ship(0, Cols-1) {
		t.Error("column 4 should be empty")
	}
}
