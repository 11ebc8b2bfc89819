package text

import (
	"io"
	"strings"

	"github.com/npillmayer/uax"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
	"github.com/npillmayer/uax/uax29"
	"github.com/npillmayer/vitrine/engine/text/hyphen"
	"golang.org/x/text/unicode/bidi"
)

// ItemType discriminates the kinds of inline items.
type ItemType int8

// Inline item kinds, following the box-glue-penalty model.
const (
	BoxItem           ItemType = iota // a shapeable fragment of text
	GlueItem                          // stretchable and shrinkable space
	PenaltyItem                       // a (dis-)encouraged break opportunity
	DiscretionaryItem                 // an optional hyphenation point
)

func (t ItemType) String() string {
	switch t {
	case GlueItem:
		return "glue"
	case PenaltyItem:
		return "penalty"
	case DiscretionaryItem:
		return "discretionary"
	}
	return "box"
}

// HyphenPenalty is the demerit for breaking a line at a discretionary
// hyphen.
const HyphenPenalty = 50

// Item is an element of the inline item stream: a box, glue, or a
// penalty. Boxes and glue cover a byte interval of the source text;
// penalties are zero-width.
type Item struct {
	Type     ItemType
	Text     string
	From, To uint64    // byte interval in the source text
	P        int       // penalty value; breaks are feasible below uax.InfinitePenalty
	Dir      Direction // resolved bidi direction for box items
}

// Breakable is true for penalty and discretionary items which permit a
// line break.
func (item Item) Breakable() bool {
	switch item.Type {
	case PenaltyItem, DiscretionaryItem:
		return item.P < uax.InfinitePenalty
	}
	return false
}

// ItemizeOptions configure the itemization stage.
type ItemizeOptions struct {
	Hyphenator      *hyphen.Dictionary // nil switches hyphenation off
	MinHyphenLength int                // shortest word to hyphenate; 0 → 4
}

// itemizer consists of the segmenters to produce an item stream from
// text. We use a uax14.LineWrap as the primary breaker and a
// segment.SimpleWordBreaker to extract spans of whitespace. For the
// inner loop we use a uax29.WordBreaker. This is a default
// configuration adequate for western languages.
type itemizer struct {
	linewrap    *uax14.LineWrap
	wordbreaker *uax29.WordBreaker
	segmenter   *segment.Segmenter
	words       *segment.Segmenter
}

func newItemizer() *itemizer {
	it := &itemizer{}
	it.linewrap = uax14.NewLineWrap()
	it.segmenter = segment.NewSegmenter(it.linewrap, segment.NewSimpleWordBreaker())
	it.wordbreaker = uax29.NewWordBreaker(1)
	it.words = segment.NewSegmenter(it.wordbreaker)
	return it
}

// Itemize transforms a text into a stream of boxes, glue and penalties.
// Byte offsets of the input are preserved in the items, so positioned
// glyphs can be traced back to source positions.
func Itemize(text string, opts ItemizeOptions) ([]Item, error) {
	it := newItemizer()
	it.segmenter.Init(strings.NewReader(text))
	var items []Item
	var pos uint64
	for it.segmenter.Next() {
		fragment := it.segmenter.Text()
		p1, p2 := it.segmenter.Penalties()
		tracer().Debugf("next segment = '%s'\twith penalties %d|%d", fragment, p1, p2)
		items = itemsFromSegment(items, fragment, pos, p1, p2)
		pos += uint64(len(it.segmenter.Bytes()))
	}
	if opts.Hyphenator != nil {
		items = hyphenateBoxes(items, it, opts)
	}
	items = resolveDirections(text, items)
	tracer().Infof("itemized text of length %d into %d items", len(text), len(items))
	return items, nil
}

// itemsFromSegment appends the items for one segment. A segment is
// terminated either by a line-wrap opportunity (primary breaker) or a
// whitespace boundary (secondary breaker).
func itemsFromSegment(items []Item, fragment string, pos uint64, p1, p2 int) []Item {
	from, to := pos, pos+uint64(len(fragment))
	if isspace(fragment) {
		// close a span of whitespace; a break after glue costs the
		// secondary penalty
		items = append(items,
			Item{Type: GlueItem, Text: fragment, From: from, To: to},
			Item{Type: PenaltyItem, P: clampPenalty(p2), From: to, To: to})
		return items
	}
	if p1 < uax.InfinitePenalty && p2 >= uax.InfinitePenalty {
		// a line-wrap opportunity inside a word, e.g. after an explicit
		// hyphen or between ideographs
		items = append(items,
			Item{Type: BoxItem, Text: fragment, From: from, To: to},
			Item{Type: PenaltyItem, P: clampPenalty(p1), From: to, To: to})
		return items
	}
	// a word; the feasible break comes after the following glue
	items = append(items,
		Item{Type: BoxItem, Text: fragment, From: from, To: to},
		Item{Type: PenaltyItem, P: uax.InfinitePenalty, From: to, To: to})
	return items
}

// hyphenateBoxes replaces box items by sequences of syllable boxes,
// joined by discretionary items.
func hyphenateBoxes(items []Item, it *itemizer, opts ItemizeOptions) []Item {
	minlen := opts.MinHyphenLength
	if minlen <= 0 {
		minlen = 4
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Type != BoxItem {
			out = append(out, item)
			continue
		}
		it.words.Init(strings.NewReader(item.Text))
		wpos := item.From
		changed := false
		var parts []Item
		for it.words.Next() {
			word := it.words.Text()
			wlen := uint64(len(it.words.Bytes()))
			if len(word) >= minlen {
				if syllables := opts.Hyphenator.Hyphenate(word); len(syllables) > 1 {
					changed = true
					spos := wpos
					for i, syl := range syllables {
						send := spos + uint64(len(syl))
						parts = append(parts, Item{
							Type: BoxItem, Text: syl, From: spos, To: send,
						})
						if i < len(syllables)-1 {
							parts = append(parts, Item{
								Type: DiscretionaryItem, Text: "-",
								P: HyphenPenalty, From: send, To: send,
							})
						}
						spos = send
					}
					wpos += wlen
					continue
				}
			}
			parts = append(parts, Item{
				Type: BoxItem, Text: word, From: wpos, To: wpos + wlen,
			})
			wpos += wlen
		}
		if !changed {
			out = append(out, item)
			continue
		}
		out = append(out, parts...)
	}
	return out
}

// resolveDirections tags box items with their bidi direction. The
// default paragraph direction is left-to-right.
func resolveDirections(text string, items []Item) []Item {
	var para bidi.Paragraph
	para.SetString(text, bidi.DefaultDirection(bidi.LeftToRight))
	ordering, err := para.Order()
	if err != nil || ordering.NumRuns() <= 1 {
		if err == nil && ordering.NumRuns() == 1 {
			run := ordering.Run(0)
			if run.Direction() == bidi.RightToLeft {
				for i := range items {
					items[i].Dir = RightToLeft
				}
			}
		}
		return items
	}
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		if run.Direction() != bidi.RightToLeft {
			continue
		}
		from, to := run.Pos()
		for j := range items {
			if items[j].Type != BoxItem {
				continue
			}
			if items[j].From < uint64(to+1) && items[j].To > uint64(from) {
				items[j].Dir = RightToLeft
			}
		}
	}
	return items
}

func clampPenalty(p int) int {
	if p > uax.InfinitePenalty {
		return uax.InfinitePenalty
	}
	if p < -uax.InfinitePenalty {
		return -uax.InfinitePenalty
	}
	return p
}

func isspace(s string) bool {
	for _, r := range s {
		if !isspaceRune(r) {
			return false
		}
	}
	return s != ""
}

func isspaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0x00a0, 0x2028, 0x2029:
		return true
	}
	return false
}

// reader returns a rune reader over an item's text.
func (item Item) reader() io.RuneReader {
	return strings.NewReader(item.Text)
}
