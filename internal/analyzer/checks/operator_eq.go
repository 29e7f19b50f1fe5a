package checks

import (
	"classcheck/internal/models"
	"classcheck/internal/symbols"
)

// OperatorEqCheck reports assignment operators declared to return void.
type OperatorEqCheck struct{}

func NewOperatorEqCheck() *OperatorEqCheck {
	return &OperatorEqCheck{}
}

func (c *OperatorEqCheck) Name() string {
	return "operator= return type"
}

func (c *OperatorEqCheck) Run(ctx *Context) []models.Diagnostic {
	if !ctx.Config.Checks.Style {
		return nil
	}

	var out []models.Diagnostic
	for _, scope := range ctx.Symbols.Scopes() {
		for i := range scope.Functions {
			fn := &scope.Functions[i]
			if fn.Kind != symbols.KindOperatorEqual || fn.Access == symbols.Private {
				continue
			}
			if fn.DefToken.StrAt(-2) == "void" {
				out = append(out, ctx.diag(models.IDOperatorEq, models.SeverityStyle, fn.DefToken.TokAt(-2),
					"'operator=' should return something"))
			}
		}
	}
	return out
}
