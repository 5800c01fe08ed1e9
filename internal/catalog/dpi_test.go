package catalog

import "testing"

func TestSplitDPISuffix(t *testing.T) {
	cases := []struct {
		in        string
		canonical string
		scale     int
	}{
		{"assets/button.png", "assets/button.png", 100},
		{"assets/button@2x.png", "assets/button.png", 200},
		{"assets/button@3x.png", "assets/button.png", 300},
		{"assets/button@1.5x.png", "assets/button.png", 150},
		{"assets/button@x.png", "assets/button@x.png", 100},
		{"assets/button@0x.png", "assets/button@0x.png", 100},
		{"assets/email@domain.png", "assets/email@domain.png", 100},
		{"assets/deep/dir@2x/icon.png", "assets/deep/dir@2x/icon.png", 100},
	}

	for _, tc := range cases {
		canonical, scale := SplitDPISuffix(tc.in)
		if canonical != tc.canonical || scale != tc.scale {
			t.Errorf("SplitDPISuffix(%q) = (%q, %d), want (%q, %d)",
				tc.in, canonical, scale, tc.canonical, tc.scale)
		}
	}
}
