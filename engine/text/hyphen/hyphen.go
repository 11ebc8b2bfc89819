/*
Package hyphen finds legal hyphenation points in words.

Hyphenation uses Liang's pattern method: patterns such as "hy3ph" carry
inter-letter priorities, odd priorities marking break opportunities.
Patterns are held in a prefix trie; hyphenating a word overlays the
priorities of every pattern matching a substring. Pattern files in the
common TeX format can be loaded for any language.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package hyphen

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/derekparker/trie"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vitrine.text'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.text")
}

// Dictionary holds the hyphenation patterns for one language.
type Dictionary struct {
	patterns   *trie.Trie
	exceptions map[string][]string
	maxPattern int
	// do not break closer to the word edges than these many letters
	LeftMin, RightMin int
}

// NewDictionary creates a dictionary from a list of Liang patterns and
// a list of exceptions. Exceptions are words with explicit hyphen
// positions, e.g. "ta-ble".
func NewDictionary(patterns []string, exceptions []string) *Dictionary {
	dict := &Dictionary{
		patterns:   trie.New(),
		exceptions: make(map[string][]string),
		LeftMin:    2,
		RightMin:   2,
	}
	for _, p := range patterns {
		dict.addPattern(p)
	}
	for _, e := range exceptions {
		word := strings.ToLower(strings.ReplaceAll(e, "-", ""))
		dict.exceptions[word] = strings.Split(strings.ToLower(e), "-")
	}
	return dict
}

// LoadPatterns reads whitespace-separated patterns in TeX format from a
// reader. Lines starting with '%' are comments.
func LoadPatterns(r io.Reader) (*Dictionary, error) {
	dict := NewDictionary(nil, nil)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		for _, p := range strings.Fields(line) {
			dict.addPattern(p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return dict, nil
}

// addPattern splits a pattern into its letters and priorities and
// stores the priorities in the trie, keyed by the letter string.
func (dict *Dictionary) addPattern(pattern string) {
	letters := make([]rune, 0, len(pattern))
	prios := make([]int, 1, len(pattern)+1)
	for _, r := range pattern {
		if unicode.IsDigit(r) {
			prios[len(prios)-1] = int(r - '0')
			continue
		}
		letters = append(letters, r)
		prios = append(prios, 0)
	}
	key := string(letters)
	if len(key) > dict.maxPattern {
		dict.maxPattern = len(key)
	}
	dict.patterns.Add(key, prios)
}

// Hyphenate splits a word at its legal hyphenation points. A word
// without any legal split is returned as a one-element slice.
func (dict *Dictionary) Hyphenate(word string) []string {
	if syllables, ok := dict.exceptions[strings.ToLower(word)]; ok {
		return adjustCase(word, syllables)
	}
	runes := []rune("." + strings.ToLower(word) + ".")
	prios := make([]int, len(runes)+1)
	for i := 0; i < len(runes); i++ {
		limit := len(runes)
		if dict.maxPattern > 0 && i+dict.maxPattern < limit {
			limit = i + dict.maxPattern
		}
		for j := i + 1; j <= limit; j++ {
			node, ok := dict.patterns.Find(string(runes[i:j]))
			if !ok {
				continue
			}
			pprios := node.Meta().([]int)
			for k, p := range pprios {
				if p > prios[i+k] {
					prios[i+k] = p
				}
			}
		}
	}
	// priorities index gaps of the dotted word; gap g of the bare word
	// corresponds to prios[g+1]
	wordRunes := []rune(word)
	var syllables []string
	last := 0
	for g := 1; g < len(wordRunes); g++ {
		if prios[g+1]%2 == 0 {
			continue
		}
		if g < dict.LeftMin || len(wordRunes)-g < dict.RightMin {
			continue
		}
		syllables = append(syllables, string(wordRunes[last:g]))
		last = g
	}
	syllables = append(syllables, string(wordRunes[last:]))
	tracer().Debugf("hyphenate('%s') = %v", word, syllables)
	return syllables
}

// adjustCase maps lowercase exception syllables back onto the original
// word's characters.
func adjustCase(word string, syllables []string) []string {
	out := make([]string, len(syllables))
	runes := []rune(word)
	pos := 0
	for i, syl := range syllables {
		n := len([]rune(syl))
		if pos+n > len(runes) {
			n = len(runes) - pos
		}
		out[i] = string(runes[pos : pos+n])
		pos += n
	}
	return out
}
