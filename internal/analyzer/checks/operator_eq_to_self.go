package checks

import (
	"strings"

	"classcheck/internal/cpp"
	"classcheck/internal/models"
)

// OperatorEqToSelfCheck reports assignment operators that deallocate
// and reallocate a member pointer without guarding against assignment
// to self. For classes with multiple inheritance the object has more
// than one address, so the check is skipped there.
type OperatorEqToSelfCheck struct{}

func NewOperatorEqToSelfCheck() *OperatorEqToSelfCheck {
	return &OperatorEqToSelfCheck{}
}

func (c *OperatorEqToSelfCheck) Name() string {
	return "operator= self assignment"
}

func (c *OperatorEqToSelfCheck) Run(ctx *Context) []models.Diagnostic {
	if !ctx.Config.Checks.Style {
		return nil
	}

	var out []models.Diagnostic
	start := ctx.Tokens
	for {
		tok := cpp.FindMatch(start, "operator = (", nil)
		if tok == nil {
			break
		}
		start = tok.Next()

		if cpp.Match(tok.TokAt(-2), "%type% ::") {
			out = append(out, c.checkQualified(ctx, tok)...)
		} else {
			out = append(out, c.checkInline(ctx, tok)...)
		}
	}
	return out
}

// checkQualified handles "C& C::operator=(const C& rhs)".
func (c *OperatorEqToSelfCheck) checkQualified(ctx *Context, tok *cpp.Token) []models.Diagnostic {
	nameLength := 1
	tok1 := tok.TokAt(-2)
	for cpp.Match(tok1.TokAt(-2), "%type% ::") {
		tok1 = tok1.TokAt(-2)
		nameLength += 2
	}

	className := tok1
	nameString := nameStr(className, nameLength)

	if hasMultipleInheritanceGlobal(ctx.Tokens, nameString) {
		return nil
	}
	if tok1.Previous().Text() != "&" {
		return nil
	}
	// returned class name must match the qualified name
	if tok1.TokAt(-(1+nameLength)) == nil || !nameMatch(className, tok1.TokAt(-(1+nameLength)), nameLength) {
		return nil
	}
	// parameter must be "const C & rhs"
	if !cpp.Match(tok.TokAt(3), "const "+nameString+" & %var% )") {
		return nil
	}
	rhs := tok.TokAt(5 + nameLength)
	if !nameMatch(className, tok.TokAt(4), nameLength) {
		return nil
	}

	paramEnd := tok.TokAt(2).Link()
	if paramEnd == nil || paramEnd.StrAt(1) != "{" || paramEnd.Next().Link() == nil {
		return nil
	}
	first := paramEnd.Next()
	last := first.Link()

	if !hasAssignSelf(first, last, rhs) && hasDeallocation(first, last) {
		return []models.Diagnostic{ctx.diag(models.IDOperatorEqToSelf, models.SeverityStyle, tok,
			"'operator=' should check for assignment to self")}
	}
	return nil
}

// checkInline handles an operator= defined inside the class body.
func (c *OperatorEqToSelfCheck) checkInline(ctx *Context, tok *cpp.Token) []models.Diagnostic {
	if tok.Previous().Text() != "&" {
		return nil
	}

	// walk back to the class declaration
	tok1 := tok
	for tok1 != nil && !cpp.Match(tok1, "class|struct %var%") {
		tok1 = tok1.Previous()
	}
	if tok1 == nil {
		return nil
	}
	className := tok1.Next()

	if hasMultipleInheritanceInline(tok1) {
		return nil
	}
	if !cpp.SimpleMatch(tok.TokAt(-2), className.Text()) {
		return nil
	}
	if !cpp.Match(tok.TokAt(3), "const %type% & %var% )") {
		return nil
	}
	rhs := tok.TokAt(6)
	if tok.StrAt(4) != className.Text() {
		return nil
	}

	paramEnd := tok.TokAt(2).Link()
	if paramEnd == nil || !cpp.SimpleMatch(paramEnd.Next(), "{") || paramEnd.Next().Link() == nil {
		return nil
	}
	first := paramEnd.Next()
	last := first.Link()

	if !hasAssignSelf(first, last, rhs) && hasDeallocation(first, last) {
		return []models.Diagnostic{ctx.diag(models.IDOperatorEqToSelf, models.SeverityStyle, tok,
			"'operator=' should check for assignment to self")}
	}
	return nil
}

// nameMatch compares two runs of tokens of the given length.
func nameMatch(tok1, tok2 *cpp.Token, length int) bool {
	for i := 0; i < length; i++ {
		if tok1.TokAt(i) == nil || tok2.TokAt(i) == nil {
			return false
		}
		if tok1.StrAt(i) != tok2.StrAt(i) {
			return false
		}
	}
	return true
}

// nameStr renders a run of tokens as a space-separated string.
func nameStr(name *cpp.Token, length int) string {
	var parts []string
	for i := 0; i < length; i++ {
		parts = append(parts, name.StrAt(i))
	}
	return strings.Join(parts, " ")
}

// hasDeallocation looks for the specific sequence
// "deallocate member ; ... member = allocate" within a body. It is far
// from ideal and misses cases on purpose to avoid false positives.
func hasDeallocation(first, last *cpp.Token) bool {
	for tok := first; tok != nil && tok != last; tok = tok.Next() {
		switch {
		case cpp.Match(tok, "{|;|, free ( %var%"):
			v := tok.TokAt(3)
			for tok1 := tok.TokAt(4); tok1 != nil && tok1 != last; tok1 = tok1.Next() {
				if cpp.Match(tok1, "%var% =") && tok1.Text() == v.Text() {
					return true
				}
			}
		case cpp.Match(tok, "{|;|, delete [ ] %var%"):
			v := tok.TokAt(4)
			for tok1 := tok.TokAt(5); tok1 != nil && tok1 != last; tok1 = tok1.Next() {
				if cpp.Match(tok1, "%var% = new %type% [") && tok1.Text() == v.Text() {
					return true
				}
			}
		case cpp.Match(tok, "{|;|, delete %var%"):
			v := tok.TokAt(2)
			for tok1 := tok.TokAt(3); tok1 != nil && tok1 != last; tok1 = tok1.Next() {
				if cpp.Match(tok1, "%var% = new") && tok1.Text() == v.Text() {
					return true
				}
			}
		}
	}
	return false
}

// hasAssignSelf looks for "if (this == &rhs)" or a mirrored variant.
func hasAssignSelf(first, last, rhs *cpp.Token) bool {
	for tok := first; tok != nil && tok != last; tok = tok.Next() {
		if !cpp.SimpleMatch(tok, "if (") {
			continue
		}
		tok1 := tok.TokAt(2)
		tok2 := tok.Next().Link()
		for ; tok1 != nil && tok1 != tok2; tok1 = tok1.Next() {
			if cpp.Match(tok1, "this ==|!= & %var%") {
				if tok1.StrAt(3) == rhs.Text() {
					return true
				}
			} else if cpp.Match(tok1, "& %var% ==|!= this") {
				if tok1.StrAt(1) == rhs.Text() {
					return true
				}
			}
		}
	}
	return false
}

// hasMultipleInheritanceInline reports a "," in the base list starting
// at the class keyword.
func hasMultipleInheritanceInline(tok *cpp.Token) bool {
	for ; tok != nil && tok.Text() != "{"; tok = tok.Next() {
		if tok.Text() == "," {
			return true
		}
	}
	return false
}

// hasMultipleInheritanceGlobal resolves a possibly nested class name
// ("A :: B") and reports a "," in its base list.
func hasMultipleInheritanceGlobal(start *cpp.Token, name string) bool {
	tok := start
	className := name

	// resolve nested classes one component at a time
	for strings.Contains(className, "::") {
		part := className
		if i := strings.Index(part, " "); i >= 0 {
			part = part[:i]
		}
		className = strings.TrimPrefix(className, part)
		className = strings.TrimPrefix(className, " :: ")

		tok = cpp.FindMatch(tok, "class|struct "+part, nil)
		if tok == nil {
			return false
		}
	}

	tok = cpp.FindMatch(tok, "class|struct "+className, nil)
	if tok == nil {
		return false
	}
	return hasMultipleInheritanceInline(tok)
}
