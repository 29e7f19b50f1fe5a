package symbols

import (
	"strings"

	"classcheck/internal/cpp"
)

// baseClassList collects the qualified base names of the class whose
// keyword token is classTok.
func baseClassList(classTok *cpp.Token) []string {
	var bases []string
	for tok := classTok; tok != nil && tok.Text() != "{"; tok = tok.Next() {
		if cpp.Match(tok, "[:,] public|protected|private") {
			tok = tok.TokAt(2)
			base := ""
			for cpp.Match(tok, "%var% ::") {
				base += tok.Text() + " :: "
				tok = tok.TokAt(2)
			}
			base += tok.Text()
			bases = append(bases, base)
		}
	}
	return bases
}

// findBaseClass locates the definition of an unqualified base class by
// linear search over the stream. Qualified base names are not resolved.
func (db *Database) findBaseClass(name string) *cpp.Token {
	if strings.Contains(name, "::") {
		return nil
	}
	return cpp.FindMatch(db.tokens, "class|struct "+name+" {|:", nil)
}

// IsVirtualInBase reports whether fnTok's function is declared virtual
// in any of the named bases or, transitively, their bases. A base whose
// definition cannot be located contributes nothing.
func (db *Database) IsVirtualInBase(bases []string, fnTok *cpp.Token) bool {
	for _, baseName := range bases {
		classTok := db.findBaseClass(baseName)
		if classTok == nil {
			continue
		}
		grandBases := baseClassList(classTok)

		tok := classTok
		for tok != nil && tok.Text() != "{" {
			tok = tok.Next()
		}

	members:
		for tok = tok.Next(); tok != nil; tok = tok.Next() {
			switch {
			case tok.Text() == "{":
				tok = tok.Link()
				if tok == nil {
					break members
				}
			case tok.Text() == "}":
				break members
			case cpp.Match(tok, "public:|protected:|private:"):
				continue
			case tok.Text() == "(":
				tok = tok.Link()
				if tok == nil {
					break members
				}
			case tok.Text() == "virtual":
				// go to the function name
				for tok != nil && tok.StrAt(1) != "(" {
					tok = tok.Next()
				}
				if tok == nil {
					break members
				}
				if tok.Text() != fnTok.Text() {
					continue
				}
				// compare return tokens right-to-left up to "virtual"
				t1, t2 := tok.Previous(), fnTok.Previous()
				returnMatch := true
				for t1 != nil && t1.Text() != "virtual" {
					if t1.Text() != t2.Text() {
						returnMatch = false
						break
					}
					t1 = t1.Previous()
					t2 = t2.Previous()
				}
				if returnMatch && ArgsMatch(tok.TokAt(2), fnTok.TokAt(2), "", 0) {
					return true
				}
			}
		}

		if len(grandBases) > 0 && db.IsVirtualInBase(grandBases, fnTok) {
			return true
		}
	}
	return false
}
