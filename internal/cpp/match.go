package cpp

import "strings"

// Match tests a pattern against tokens starting at tok. A pattern is a
// space-separated list of elements:
//
//	%var%    any identifier
//	%type%   any type-like identifier
//	%num%    a numeric literal
//	%any%    any single token
//	a|b|c    alternation of elements
//	a|       optional element (empty alternative matches zero tokens)
//	[;{}]    one token whose text is one of the listed characters
//
// Anything else matches its literal text. Matching is greedy with no
// backtracking: an optional element consumes a token whenever it can.
func Match(tok *Token, pattern string) bool {
	_, ok := matchFrom(tok, pattern)
	return ok
}

// SimpleMatch tests a pattern of literal words only.
func SimpleMatch(tok *Token, pattern string) bool {
	for _, word := range strings.Fields(pattern) {
		if tok == nil || tok.Text() != word {
			return false
		}
		tok = tok.Next()
	}
	return true
}

// FindMatch scans forward from start for the first token where the
// pattern matches. The scan stops before end; a nil end means the end
// of the stream.
func FindMatch(start *Token, pattern string, end *Token) *Token {
	for tok := start; tok != nil && tok != end; tok = tok.Next() {
		if Match(tok, pattern) {
			return tok
		}
	}
	return nil
}

func matchFrom(tok *Token, pattern string) (*Token, bool) {
	for _, elem := range strings.Fields(pattern) {
		consumed, optional := matchElement(tok, elem)
		if consumed {
			tok = tok.Next()
			continue
		}
		if optional {
			continue
		}
		return tok, false
	}
	return tok, true
}

// matchElement reports whether elem matches tok (consumed) and whether
// elem may match zero tokens (optional).
func matchElement(tok *Token, elem string) (consumed, optional bool) {
	// character class: [;{}] matches a single-character token
	if len(elem) > 2 && elem[0] == '[' && elem[len(elem)-1] == ']' {
		text := tok.Text()
		return len(text) == 1 && strings.ContainsRune(elem[1:len(elem)-1], rune(text[0])), false
	}

	if !strings.Contains(elem, "|") {
		return matchSingle(tok, elem), false
	}

	for _, alt := range strings.Split(elem, "|") {
		if alt == "" {
			optional = true
			continue
		}
		if matchSingle(tok, alt) {
			return true, optional
		}
	}
	return false, optional
}

func matchSingle(tok *Token, elem string) bool {
	if tok == nil {
		return false
	}
	switch elem {
	case "%var%", "%type%":
		return tok.IsName()
	case "%num%":
		return tok.IsNumber()
	case "%any%":
		return true
	default:
		return tok.Text() == elem
	}
}
