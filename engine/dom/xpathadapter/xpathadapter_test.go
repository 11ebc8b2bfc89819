package xpathadapter

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vitrine/engine/dom"
)

const myhtml = `
<html><body>
  <div id="main">
	<p>one</p>
	<p>two</p>
  </div>
  <p>three</p>
</body></html>
`

func TestQueryAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.dom")
	defer teardown()
	//
	doc, err := dom.FromHTML(strings.NewReader(myhtml))
	if err != nil {
		t.Fatalf(err.Error())
	}
	nodes, err := QueryAll(doc, "//p")
	if err != nil {
		t.Fatalf(err.Error())
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 <p> nodes, have %d", len(nodes))
	}
	nodes, err = QueryAll(doc, "//div[@id='main']/p")
	if err != nil {
		t.Fatalf(err.Error())
	}
	if len(nodes) != 2 {
		t.Errorf("expected 2 <p> children of #main, have %d", len(nodes))
	}
	for _, n := range nodes {
		if doc.Tag(n) != "p" {
			t.Errorf("expected <p> node, have <%s>", doc.Tag(n))
		}
	}
}
