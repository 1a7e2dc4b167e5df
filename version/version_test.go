package version

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Version
	}{
		{"2019.4.31f1", Version{2019, 4, 31, Final, 1}},
		{"2018.2.0a5", Version{2018, 2, 0, Alpha, 5}},
		{"5.6.0", Version{5, 6, 0, Final, 0}},
		{"2022.1.0b3", Version{2022, 1, 0, Beta, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "garbage", "1"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected error", in)
		}
	}
}

func TestCompareOrdering(t *testing.T) {
	a := MustParse("2019.4.31a1")
	b := MustParse("2019.4.31f0")
	if !Less(a, b) {
		t.Errorf("expected %s < %s (alpha before final)", a, b)
	}

	c := MustParse("2019.4.31f0")
	d := MustParse("2019.4.31f1")
	if !Less(c, d) {
		t.Errorf("expected %s < %s", c, d)
	}

	e := MustParse("5.6.0")
	f := MustParse("2018.2.0")
	if !Less(e, f) {
		t.Errorf("expected %s < %s", e, f)
	}
}

func TestSupports(t *testing.T) {
	v2017 := MustParse("2017.4.0f1")
	v2018 := MustParse("2018.2.0f1")
	v2019 := MustParse("2019.1.0f1")
	v2020 := MustParse("2020.1.0f1")
	v2022 := MustParse("2022.1.0f1")
	v5 := MustParse("5.3.0f1")

	if v2017.Supports(FeatureBigIDs) {
		t.Errorf("2017 should not support BigIds")
	}
	if !v2018.Supports(FeatureBigIDs) {
		t.Errorf("2018.2 should support BigIds")
	}
	if !v2019.Supports(FeatureRefTypes) {
		t.Errorf("2019 should support RefTypes")
	}
	if !v2020.Supports(FeatureBrotli) {
		t.Errorf("2020 should support Brotli")
	}
	if !v2022.Supports(FeatureAlignment8) {
		t.Errorf("2022 should support Alignment8")
	}
	if !v5.Supports(FeatureUnityFS) {
		t.Errorf("5.3 should support UnityFS")
	}
}
