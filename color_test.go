package termio

import "testing"

func TestColorFGParam(t *testing.T) {
	cases := []struct {
		c    Color
		want string
	}{
		{DefaultColor, "39"},
		{Standard(1), "31"},
		{Bright(1), "91"},
		{Extended(200), "38;5;200"},
		{RGB(10, 20, 30), "38;2;10;20;30"},
	}
	for _, tc := range cases {
		if got := tc.c.fgParam(); got != tc.want {
			t.Errorf("fgParam(%+v) = %q, want %q", tc.c, got, tc.want)
		}
	}
}

func TestColorBGParam(t *testing.T) {
	if got := Standard(2).bgParam(); got != "42" {
		t.Errorf("bgParam(Standard(2)) = %q, want 42", got)
	}
	if got := Bright(2).bgParam(); got != "102" {
		t.Errorf("bgParam(Bright(2)) = %q, want 102", got)
	}
}

func TestOptimizedExtendedFoldsLowIndices(t *testing.T) {
	if c := optimizedExtended(3); c != Standard(3) {
		t.Errorf("optimizedExtended(3) = %+v, want Standard(3)", c)
	}
	if c := optimizedExtended(12); c != Bright(4) {
		t.Errorf("optimizedExtended(12) = %+v, want Bright(4)", c)
	}
	if c := optimizedExtended(200); c != Extended(200) {
		t.Errorf("optimizedExtended(200) = %+v, want Extended(200)", c)
	}
}

func TestToExtendedRoundTripsCubeColor(t *testing.T) {
	// Pure red in the 6x6x6 cube is index 16 + 36*5 = 196.
	ext := toExtended(RGB(255, 0, 0))
	if ext != Extended(196) {
		t.Errorf("toExtended(pure red) = %+v, want Extended(196)", ext)
	}
}

func TestToExtendedGrayscaleRamp(t *testing.T) {
	ext := toExtended(RGB(118, 118, 118))
	r, g, b := getRgb(ext)
	if r != g || g != b {
		t.Fatalf("expected a gray result, got (%d,%d,%d)", r, g, b)
	}
}

func TestToStandardDownConverts(t *testing.T) {
	if got := toStandard(RGB(255, 0, 0)); got != Standard(1) {
		t.Errorf("toStandard(red) = %+v, want Standard(1)", got)
	}
	if got := toStandard(Bright(3)); got != Standard(3) {
		t.Errorf("toStandard(Bright(3)) = %+v, want Standard(3)", got)
	}
}

func TestToAnsiKeepsBrightDistinctFromStandard(t *testing.T) {
	bright := toAnsi(RGB(255, 0, 0))
	if bright != Bright(1) {
		t.Fatalf("toAnsi(pure red) = %+v, want Bright(1) rather than Standard(1)", bright)
	}
}

func TestGetRgbDefaultIsStable(t *testing.T) {
	r1, g1, b1 := getRgb(DefaultColor)
	r2, g2, b2 := getRgb(DefaultColor)
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Fatal("getRgb(DefaultColor) should be deterministic")
	}
}
