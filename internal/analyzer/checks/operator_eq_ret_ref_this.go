package checks

import (
	"classcheck/internal/cpp"
	"classcheck/internal/models"
	"classcheck/internal/symbols"
)

// OperatorEqRetRefThisCheck reports assignment operators declared to
// return a reference to the class that do not return *this.
type OperatorEqRetRefThisCheck struct{}

func NewOperatorEqRetRefThisCheck() *OperatorEqRetRefThisCheck {
	return &OperatorEqRetRefThisCheck{}
}

func (c *OperatorEqRetRefThisCheck) Name() string {
	return "operator= returns *this"
}

func (c *OperatorEqRetRefThisCheck) Run(ctx *Context) []models.Diagnostic {
	if !ctx.Config.Checks.Style {
		return nil
	}

	var out []models.Diagnostic
	for _, scope := range ctx.Symbols.Scopes() {
		for i := range scope.Functions {
			fn := &scope.Functions[i]
			if fn.Kind != symbols.KindOperatorEqual || !fn.HasBody {
				continue
			}

			// the declared return type must be "ClassName &"
			if !cpp.Match(fn.DeclToken.TokAt(-4), ";|}|{|public:|protected:|private: %type% &") ||
				fn.DeclToken.StrAt(-3) != scope.Name {
				continue
			}

			// find the ")" of the parameter list, then the body
			paramEnd := fn.DefToken.Next().Link()
			if paramEnd == nil {
				continue
			}
			last := paramEnd.Next().Link()
			if last == nil {
				continue
			}

			foundReturn := false
			for tok := paramEnd.TokAt(2); tok != nil && tok != last; tok = tok.Next() {
				if tok.Text() != "return" {
					continue
				}
				foundReturn = true

				// tolerate an explicit cast: return (C&)*this;
				if cpp.Match(tok.Next(), "( "+scope.Name+" & )") {
					tok = tok.TokAt(4)
				}

				if !cpp.Match(tok.TokAt(1), "(| * this ;|=") &&
					!cpp.Match(tok.TokAt(1), "(| * this +=") &&
					!cpp.Match(tok.TokAt(1), "operator = (") {
					out = append(out, ctx.diag(models.IDOperatorEqRetRefThis, models.SeverityStyle, fn.DefToken,
						"'operator=' should return reference to self"))
				}
			}
			if !foundReturn {
				out = append(out, ctx.diag(models.IDOperatorEqRetRefThis, models.SeverityStyle, fn.DefToken,
					"'operator=' should return reference to self"))
			}
		}
	}
	return out
}
