package css

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vitrine/core/dimen"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.style")
	defer teardown()
	//
	d, err := ParseDimen("15px")
	if err != nil {
		t.Fatalf(err.Error())
	}
	if !d.IsAbsolute() || d.Unwrap() != 15*dimen.PX {
		t.Errorf("expected 15px, have %v", d)
	}
	d, err = ParseDimen("80%")
	if err != nil {
		t.Fatalf(err.Error())
	}
	if !d.IsPercent() {
		t.Errorf("expected percent dimension, have %v", d)
	}
	d, err = ParseDimen("1.5em")
	if err != nil {
		t.Fatalf(err.Error())
	}
	if !d.Equals(FontScaled) {
		t.Errorf("expected font-scaled dimension, have %v", d)
	}
}

func TestDimenOptionKeywords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.style")
	defer teardown()
	//
	if d := DimenOption("auto"); !d.IsAuto() {
		t.Errorf("expected auto dimension, have %v", d)
	}
	if d := DimenOption("rubbish$"); !d.IsNone() {
		t.Errorf("expected unset dimension for illegal input, have %v", d)
	}
	if d := DimenOption("min-content"); !d.Equals(ContentScaled) {
		t.Errorf("expected content-scaled dimension, have %v", d)
	}
}

func TestDimenResolve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.style")
	defer teardown()
	//
	env := Env{
		FontSize:     16 * dimen.PX,
		RootFontSize: 16 * dimen.PX,
		View:         dimen.Point{X: 800 * dimen.PX, Y: 600 * dimen.PX},
		Contain:      200 * dimen.PX,
	}
	d, _ := ParseDimen("1.5em")
	if du, ok := d.Resolve(env); !ok || du != 24*dimen.PX {
		t.Errorf("expected 1.5em to resolve to 24px, have %v", du)
	}
	d, _ = ParseDimen("50%")
	if du, ok := d.Resolve(env); !ok || du != 100*dimen.PX {
		t.Errorf("expected 50%% of 200px to be 100px, have %v", du)
	}
	d, _ = ParseDimen("10vh")
	if du, ok := d.Resolve(env); !ok || du != 60*dimen.PX {
		t.Errorf("expected 10vh to resolve to 60px, have %v", du)
	}
	if _, ok := DimenOption("auto").Resolve(env); ok {
		t.Errorf("expected auto to refuse resolution")
	}
}

func TestParseDisplay(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.style")
	defer teardown()
	//
	mode, err := ParseDisplay("inline-block")
	if err != nil {
		t.Fatalf(err.Error())
	}
	if !mode.Contains(InlineMode) || !mode.Contains(InnerBlockMode) {
		t.Errorf("expected inline|flow-root, have %v", mode.FullString())
	}
	mode, _ = ParseDisplay("flex")
	if mode.Outer() != BlockMode || mode.Inner() != InnerFlexMode {
		t.Errorf("expected block outer and flex inner, have %v", mode.FullString())
	}
}
