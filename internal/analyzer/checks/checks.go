// Package checks holds the defect recognizers. Each check is a small
// pass over the symbol database or the raw token stream; they are
// registered explicitly by the analyzer and run independently.
package checks

import (
	"classcheck/internal/config"
	"classcheck/internal/cpp"
	"classcheck/internal/models"
	"classcheck/internal/symbols"
)

// Context is everything a check may consult: the token view it runs
// on, the lazily built symbol database over that view, and the
// settings.
type Context struct {
	File    string
	Tokens  *cpp.Token
	Symbols *symbols.Database
	Config  *config.Config
}

func NewContext(file string, tokens *cpp.Token, cfg *config.Config) *Context {
	return &Context{
		File:    file,
		Tokens:  tokens,
		Symbols: symbols.NewDatabase(tokens),
		Config:  cfg,
	}
}

type Check interface {
	Name() string
	Run(ctx *Context) []models.Diagnostic
}

func (ctx *Context) location(tok *cpp.Token) models.Location {
	return models.Location{
		File:   ctx.File,
		Line:   tok.Line(),
		Column: tok.Column(),
	}
}

func (ctx *Context) diag(id models.ID, severity models.Severity, tok *cpp.Token, message string) models.Diagnostic {
	return models.Diagnostic{
		ID:       id,
		Severity: severity,
		Message:  message,
		Location: ctx.location(tok),
	}
}
