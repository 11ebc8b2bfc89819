package frame

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vitrine/core/dimen"
	"github.com/npillmayer/vitrine/engine/dom/style/css"
	"github.com/stretchr/testify/assert"
)

func TestBoxContentWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	box := InitEmptyBox(nil)
	box.W = css.SomeDimen(100 * dimen.PX)
	box.Padding[Left] = css.SomeDimen(10 * dimen.PX)
	box.Padding[Right] = css.SomeDimen(10 * dimen.PX)
	assert.Equal(t, css.SomeDimen(100*dimen.PX), box.ContentWidth())
	assert.Equal(t, css.SomeDimen(120*dimen.PX), box.BorderBoxWidth())
	box.BorderBoxSizing = true
	assert.Equal(t, css.SomeDimen(80*dimen.PX), box.ContentWidth())
}

func TestBoxFixWidthAuto(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	box := InitEmptyBox(nil)
	box.Padding[Left] = css.SomeDimen(10 * dimen.PX)
	box.Padding[Right] = css.SomeDimen(10 * dimen.PX)
	box.Margins[Left] = css.SomeDimen(5 * dimen.PX)
	box.Margins[Right] = css.SomeDimen(5 * dimen.PX)
	if err := box.FixWidthFromEnclosing(200 * dimen.PX); err != nil {
		t.Fatalf(err.Error())
	}
	// 200 - 2*5 margin - 2*10 padding = 170 content width
	if !box.W.IsAbsolute() || box.W.Unwrap() != 170*dimen.PX {
		t.Errorf("expected auto width to solve to 170px, have %v", box.W)
	}
}

func TestBoxAutoMarginsCenter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	box := InitEmptyBox(nil)
	box.W = css.SomeDimen(100 * dimen.PX)
	box.Margins[Left] = css.AutoDimen()
	box.Margins[Right] = css.AutoDimen()
	if err := box.FixWidthFromEnclosing(300 * dimen.PX); err != nil {
		t.Fatalf(err.Error())
	}
	if box.Margins[Left].Unwrap() != 100*dimen.PX || box.Margins[Right].Unwrap() != 100*dimen.PX {
		t.Errorf("expected auto margins to center the box, have %v / %v",
			box.Margins[Left], box.Margins[Right])
	}
}

func TestBoxMinMaxClamp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	box := InitEmptyBox(nil)
	box.W = css.SomeDimen(100 * dimen.PX)
	box.Min.W = css.SomeDimen(150 * dimen.PX)
	box.Max.W = css.SomeDimen(120 * dimen.PX)
	// min wins over max on conflict
	if w := box.ClampWidth(box.W.Unwrap()); w != 150*dimen.PX {
		t.Errorf("expected min-width to win the clash, have %v", w)
	}
}

func TestBoxResolveUnits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	box := InitEmptyBox(nil)
	box.Padding[Top], _ = css.ParseDimen("1em")
	box.Margins[Left], _ = css.ParseDimen("10%")
	env := css.Env{
		FontSize:     16 * dimen.PX,
		RootFontSize: 16 * dimen.PX,
		Contain:      500 * dimen.PX,
	}
	box.ResolveUnits(env)
	if box.Padding[Top].Unwrap() != 16*dimen.PX {
		t.Errorf("expected 1em padding to resolve to 16px, have %v", box.Padding[Top])
	}
	if box.Margins[Left].Unwrap() != 50*dimen.PX {
		t.Errorf("expected 10%% margin of 500px to be 50px, have %v", box.Margins[Left])
	}
}

func TestCollapseMargins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.frame")
	defer teardown()
	//
	b1 := InitEmptyBox(nil)
	b2 := InitEmptyBox(nil)
	b1.Margins[Bottom] = css.SomeDimen(20 * dimen.PX)
	b2.Margins[Top] = css.SomeDimen(12 * dimen.PX)
	if m := CollapseMargins(b1, b2); m.Unwrap() != 20*dimen.PX {
		t.Errorf("expected margins to collapse to 20px, have %v", m)
	}
	b2.Margins[Top] = css.SomeDimen(-5 * dimen.PX)
	if m := CollapseMargins(b1, b2); m.Unwrap() != 15*dimen.PX {
		t.Errorf("expected 20px and -5px to collapse to 15px, have %v", m)
	}
	if m := CollapseMargins(nil, b2); m.Unwrap() != -5*dimen.PX {
		t.Errorf("expected collapse against nil to keep -5px, have %v", m)
	}
}
