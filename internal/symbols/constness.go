package symbols

import (
	"strings"

	"classcheck/internal/cpp"
)

// IsMemberVar decides whether tok denotes a member variable of the
// class (or of a base, whose variable list is rebuilt on demand).
// Mutable members do not count: writing them is still const-correct.
func (db *Database) IsMemberVar(className string, bases []string, vars []*Variable, tok *cpp.Token) bool {
	for tok.Previous() != nil && !cpp.Match(tok.Previous(), "}|{|;|public:|protected:|private:|return|:|?") {
		if cpp.Match(tok.Previous(), "* this") {
			return true
		}
		tok = tok.Previous()
	}

	if tok.Text() == "this" {
		return true
	}

	if cpp.Match(tok, "( * %var% ) [") {
		tok = tok.TokAt(2)
	}

	// strip the class's own namespace prefix
	if tok.Text() == className && tok.StrAt(1) == "::" {
		tok = tok.TokAt(2)
	}

	for _, v := range vars {
		if v.Name == tok.Text() {
			return !v.Mutable
		}
	}

	// not found here, look in the bases
	for _, baseName := range bases {
		classTok := db.findBaseClass(baseName)
		if classTok == nil {
			continue
		}
		baseVars := db.memberVariables(classTok)
		if db.IsMemberVar(classTok.StrAt(1), baseClassList(classTok), baseVars, tok) {
			return true
		}
	}

	return false
}

// IsConstBody reports whether the function body starting after tok
// (the closing ")" of the parameter list) leaves the object untouched:
// no write to a member, no streaming into one, no increment or
// decrement, no call to anything that might mutate, no delete. Unknown
// callees are pessimistic.
func (db *Database) IsConstBody(className string, bases []string, vars []*Variable, tok *cpp.Token) bool {
	indentlevel := 0
	for t := tok; t != nil; t = t.Next() {
		if t.Text() == "{" {
			indentlevel++
			continue
		}
		if t.Text() == "}" {
			if indentlevel <= 1 {
				break
			}
			indentlevel--
			continue
		}

		switch {
		// assignment: = += |= ...
		case isWriteOperator(t.Text()):
			// in a derived class any left operand may be an inherited
			// member, so every assignment there counts as a write
			if len(bases) > 0 {
				return false
			}
			if db.IsMemberVar(className, bases, vars, t.Previous()) {
				return false
			}

		// streaming into a member
		case t.Text() == "<<" && db.IsMemberVar(className, bases, vars, t.Previous()):
			return false

		case cpp.Match(t, "++|--"):
			return false

		// a function call might mutate anything
		case cpp.Match(t, "%var% (") && !cpp.Match(t, "return|c_str|if"):
			return false
		case cpp.Match(t, "%var% < %any% > ("):
			return false

		case t.Text() == "delete":
			return false
		}
	}
	return true
}

func isWriteOperator(text string) bool {
	if text == "=" {
		return true
	}
	// two-character operator with "=" second: += -= *= ... but not
	// comparisons
	return len(text) == 2 && text[0] != '=' && text[1] == '=' &&
		!strings.ContainsAny(text, "<!>")
}
