package checks

import (
	"classcheck/internal/cpp"
	"classcheck/internal/models"
)

// PrivateFunctionCheck reports private member functions that are never
// called. It works on raw token traversal rather than the symbol
// database because it must see every call site in the stream,
// including ones inside unrelated functions.
type PrivateFunctionCheck struct{}

func NewPrivateFunctionCheck() *PrivateFunctionCheck {
	return &PrivateFunctionCheck{}
}

func (c *PrivateFunctionCheck) Name() string {
	return "unused private functions"
}

func (c *PrivateFunctionCheck) Run(ctx *Context) []models.Diagnostic {
	if !ctx.Config.Checks.Style {
		return nil
	}

	var out []models.Diagnostic
	const classPattern = "class|struct %var% {|:"

	for tok1 := cpp.FindMatch(ctx.Tokens, classPattern, nil); tok1 != nil; tok1 = cpp.FindMatch(tok1.Next(), classPattern, nil) {
		// only check classes declared in the primary translation unit;
		// for headers the whole implementation may not be visible
		if tok1.FileIndex() != 0 {
			continue
		}

		className := tok1.Next().Text()
		candidates := c.privateFunctions(tok1, className)

		// scan every member-function body of this class and drop each
		// candidate that is used
		hasImpl := c.removeUsedFunctions(ctx, className, &candidates)

		for hasImpl && len(candidates) > 0 {
			front := candidates[0]
			candidates = candidates[1:]

			// last chance: the name may be used as a function pointer
			pattern := "return|(|)|,|= " + front.Text()
			if cpp.FindMatch(ctx.Tokens, pattern, nil) == nil {
				out = append(out, ctx.diag(models.IDUnusedPrivateFunction, models.SeverityStyle, front,
					"Unused private function '"+className+"::"+front.Text()+"'"))
			}
		}
	}
	return out
}

// privateFunctions collects the private function-name tokens of a
// class. Friends and embedded classes make the analysis unreliable, so
// either empties the result.
func (c *PrivateFunctionCheck) privateFunctions(tok1 *cpp.Token, className string) []*cpp.Token {
	var funcs []*cpp.Token
	priv := tok1.Text() != "struct"
	indentlevel := 0

	for tok := tok1; tok != nil; tok = tok.Next() {
		if cpp.Match(tok, "friend %var%") {
			return nil
		}

		if tok.Text() == "{" {
			indentlevel++
		} else if tok.Text() == "}" {
			if indentlevel <= 1 {
				break
			}
			indentlevel--
		} else if indentlevel != 1 {
			continue
		} else if tok.Text() == "private:" {
			priv = true
		} else if tok.Text() == "public:" || tok.Text() == "protected:" {
			priv = false
		} else if priv {
			switch {
			case cpp.Match(tok, "typedef %type% ("):
				if link := tok.TokAt(2).Link(); link != nil {
					tok = link
				}
			case cpp.Match(tok, "[:,] %var% ("):
				if link := tok.TokAt(2).Link(); link != nil {
					tok = link
				}
			case cpp.Match(tok, "%var% (") &&
				!cpp.SimpleMatch(tok.Next().Link(), ") (") &&
				tok.Text() != className:
				funcs = append(funcs, tok)
			}
		}

		// an embedded class has access to the private functions
		if tok.Text() == "class" {
			return nil
		}
	}
	return funcs
}

// removeUsedFunctions walks the whole stream, finds each member
// function body of the class (inline or qualified out-of-line), and
// removes every candidate used in it as a call or as an initializer
// target. It reports whether any implementation was seen in the
// primary file.
func (c *PrivateFunctionCheck) removeUsedFunctions(ctx *Context, className string, candidates *[]*cpp.Token) bool {
	hasImpl := false
	inclass := false
	indentlevel := 0

	for ftok := ctx.Tokens; ftok != nil; ftok = ftok.Next() {
		if ftok.Text() == "{" {
			indentlevel++
		} else if ftok.Text() == "}" {
			if indentlevel > 0 {
				indentlevel--
			}
			if indentlevel == 0 {
				inclass = false
			}
		}

		if cpp.Match(ftok, "class "+className+" :|{") {
			indentlevel = 0
			inclass = true
		}

		if !(inclass && indentlevel == 1 && cpp.Match(ftok, "%var% (")) &&
			!cpp.Match(ftok, className+" :: ~| %var% (") {
			continue
		}

		// go to the end of the parameter list
		for ftok != nil && ftok.Text() != ")" {
			ftok = ftok.Next()
		}
		if ftok == nil {
			break
		}

		// constructor initializer list uses candidates as targets
		if cpp.Match(ftok, ") : %var% (") {
			for !cpp.Match(ftok.Next(), "[{};]") {
				if cpp.Match(ftok, "::|,|( %var% ,|)") {
					removeCandidate(candidates, ftok.StrAt(1))
				}
				ftok = ftok.Next()
				if ftok == nil {
					return hasImpl
				}
			}
		}

		if !cpp.Match(ftok, ") const| {") {
			continue
		}
		if ftok.FileIndex() == 0 {
			hasImpl = true
		}

		// every call inside the body counts as a use
		indentlevel2 := 0
		for tok2 := ftok; tok2 != nil; tok2 = tok2.Next() {
			if tok2.Text() == "{" {
				indentlevel2++
			} else if tok2.Text() == "}" {
				indentlevel2--
				if indentlevel2 < 1 {
					break
				}
			} else if cpp.Match(tok2, "%var% (") {
				removeCandidate(candidates, tok2.Text())
			}
		}
	}
	return hasImpl
}

func removeCandidate(candidates *[]*cpp.Token, name string) {
	kept := (*candidates)[:0]
	for _, tok := range *candidates {
		if tok.Text() != name {
			kept = append(kept, tok)
		}
	}
	*candidates = kept
}
