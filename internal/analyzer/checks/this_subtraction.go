package checks

import (
	"classcheck/internal/cpp"
	"classcheck/internal/models"
)

// ThisSubtractionCheck reports "this - x", which is usually a typo for
// "this->x".
type ThisSubtractionCheck struct{}

func NewThisSubtractionCheck() *ThisSubtractionCheck {
	return &ThisSubtractionCheck{}
}

func (c *ThisSubtractionCheck) Name() string {
	return "this subtraction"
}

func (c *ThisSubtractionCheck) Run(ctx *Context) []models.Diagnostic {
	if !ctx.Config.Checks.Style {
		return nil
	}

	var out []models.Diagnostic
	tok := ctx.Tokens
	for {
		tok = cpp.FindMatch(tok, "this - %var%", nil)
		if tok == nil {
			break
		}
		if !cpp.SimpleMatch(tok.Previous(), "*") {
			out = append(out, ctx.diag(models.IDThisSubtraction, models.SeverityStyle, tok,
				"Suspicious pointer subtraction"))
		}
		tok = tok.Next()
	}
	return out
}
