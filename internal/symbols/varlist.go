package symbols

import (
	"strings"

	"classcheck/internal/cpp"
)

// memberVariables extracts the member variables of the class or struct
// whose keyword token is tok1. Declarations are recognized at nesting
// depth 1 by a grammar of declarator shapes; anything the grammar does
// not cover is silently skipped.
func (db *Database) memberVariables(tok1 *cpp.Token) []*Variable {
	var vars []*Variable
	indentlevel := 0
	priv := tok1.Text() != "struct"

	for tok := tok1; tok != nil; tok = tok.Next() {
		if tok.Next() == nil {
			break
		}

		if tok.Text() == "{" {
			indentlevel++
		} else if tok.Text() == "}" {
			if indentlevel <= 1 {
				break
			}
			indentlevel--
		}

		if indentlevel != 1 {
			continue
		}

		// Borland C++: variables in the __published section are
		// automatically initialized, so they are not collected.
		if tok.Text() == "__published:" {
			priv = false
			for ; tok != nil; tok = tok.Next() {
				if tok.Text() == "{" {
					tok = tok.Link()
				}
				if cpp.Match(tok.Next(), "private:|protected:|public:") {
					break
				}
			}
			if tok != nil {
				continue
			}
			break
		}

		// access label: "private:" etc
		label := tok.Text()[0] != ':' && strings.Contains(tok.Text(), ":")
		if label {
			priv = tok.Text() == "private:"
		}

		// only look at statement starts
		if !cpp.Match(tok, "[;{}]") && !label {
			continue
		}

		next := tok.Next()
		varname := ""

		// a ":" in the next token means this is not a declaration
		if strings.Contains(next.Text(), ":") {
			continue
		}

		// Borland C++ properties
		if next.Text() == "__property" {
			continue
		}

		if next.Text() == "const" {
			next = next.Next()
		}
		isStatic := cpp.SimpleMatch(next, "static")
		if isStatic {
			next = next.Next()
		}
		isMutable := cpp.SimpleMatch(next, "mutable")
		if isMutable {
			next = next.Next()
		}
		if next.Text() == "const" {
			next = next.Next()
		}

		isClass := false
		switch {
		case cpp.Match(next, "%type% %var% ;|:"):
			if !next.IsStandardType() {
				isClass = true
			}
			varname = next.StrAt(1)

		case cpp.Match(next, "struct|union %type% %var% ;"):
			varname = next.StrAt(2)

		case cpp.Match(next, "%type% * %var% ;"):
			varname = next.StrAt(2)
		case cpp.Match(next, "%type% %type% * %var% ;"):
			varname = next.StrAt(3)
		case cpp.Match(next, "%type% :: %type% * %var% ;"):
			varname = next.StrAt(4)

		case cpp.Match(next, "%type% %var% [") && next.StrAt(1) != "operator":
			if !next.IsStandardType() {
				isClass = true
			}
			varname = next.StrAt(1)

		case cpp.Match(next, "%type% * %var% ["):
			varname = next.StrAt(2)
		case cpp.Match(next, "%type% :: %type% * %var% ["):
			varname = next.StrAt(4)

		case cpp.Match(next, "%type% :: %type% %var% ;"):
			isClass = true
			varname = next.StrAt(3)

		case cpp.Match(next, "%type% :: %type% <") || cpp.Match(next, "%type% <"):
			isClass = true
			// find the matching ">"
			level := 0
			for ; next != nil; next = next.Next() {
				if next.Text() == "<" {
					level++
				} else if next.Text() == ">" {
					level--
					if level == 0 {
						break
					}
				}
			}
			if cpp.Match(next, "> %var% ;") {
				varname = next.StrAt(1)
			} else if cpp.Match(next, "> * %var% ;") {
				varname = next.StrAt(2)
			}
		}

		if varname != "" && varname != "operator" {
			vars = append(vars, &Variable{
				Name:    varname,
				Private: priv,
				Mutable: isMutable,
				Static:  isStatic,
				IsClass: isClass,
			})
		}
	}

	return vars
}
