package checks

import (
	"classcheck/internal/cpp"
	"classcheck/internal/models"
	"classcheck/internal/symbols"
)

// ConstFunctionCheck reports member functions that could be declared
// const: no member is written, nothing is streamed into, nothing is
// deleted, and no potentially mutating call is made.
type ConstFunctionCheck struct{}

func NewConstFunctionCheck() *ConstFunctionCheck {
	return &ConstFunctionCheck{}
}

func (c *ConstFunctionCheck) Name() string {
	return "const candidate functions"
}

func (c *ConstFunctionCheck) Run(ctx *Context) []models.Diagnostic {
	// with multiple preprocessor configurations a function may mutate
	// state in a branch this pass never sees
	if !ctx.Config.Checks.Style || ctx.Config.Checks.MultipleConfigs {
		return nil
	}

	var out []models.Diagnostic
	for _, scope := range ctx.Symbols.Scopes() {
		for i := range scope.Functions {
			fn := &scope.Functions[i]
			if fn.Kind != symbols.KindFunction || !fn.HasBody ||
				fn.IsFriend || fn.IsStatic || fn.IsConst || fn.IsVirtual {
				continue
			}

			functionName := fn.DeclToken.Text()
			if !fn.DeclToken.IsName() {
				functionName = "operator" + functionName
			}

			if !constWorthReturnType(fn) {
				continue
			}

			paramEnd := fn.DefToken.Next().Link()
			if paramEnd == nil {
				continue
			}

			// an override of a virtual cannot become const on its own
			if len(scope.Bases) > 0 && ctx.Symbols.IsVirtualInBase(scope.Bases, fn.DefToken) {
				continue
			}

			if !ctx.Symbols.IsConstBody(scope.Name, scope.Bases, scope.Variables, paramEnd) {
				continue
			}

			className := scope.Name
			for nest := scope.Parent; nest != nil; nest = nest.Parent {
				className = nest.Name + "::" + className
			}
			message := "The function '" + className + "::" + functionName + "' can be const"

			d := ctx.diag(models.IDFunctionConst, models.SeverityStyle, fn.DefToken, message)
			if !fn.IsInline {
				decl := ctx.location(fn.DeclToken)
				d.Secondary = &decl
			}
			out = append(out, d)
		}
	}
	return out
}

// constWorthReturnType filters out functions whose return type makes
// the const question moot or unanswerable: a non-const pointer or
// reference into the object, or an all-uppercase opaque type (LPVOID,
// HDC, ...).
func constWorthReturnType(fn *symbols.Function) bool {
	// last token of the return type
	var previous *cpp.Token
	if fn.DeclToken.IsName() {
		previous = fn.DefToken.Previous()
	} else {
		previous = fn.DefToken.TokAt(-2)
	}
	for previous.Text() == "::" {
		previous = previous.TokAt(-2)
	}

	if cpp.Match(previous, "*|&") {
		// pointer or reference return: only const ones qualify
		temp := fn.DefToken.Previous()
		for temp != nil && !cpp.Match(temp.Previous(), ";|}|{|public:|protected:|private:") {
			temp = temp.Previous()
		}
		return temp.Text() == "const"
	}

	if cpp.Match(previous.Previous(), "*|& >") {
		temp := fn.DefToken.Previous()
		for temp != nil && !cpp.Match(temp.Previous(), ";|}|{|public:|protected:|private:") {
			temp = temp.Previous()
			if temp.Text() == "const" {
				break
			}
		}
		return temp.Text() == "const"
	}

	if previous.IsName() && isAllUpper(previous.Text()) {
		return false
	}
	return true
}

func isAllUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '_' && (ch < 'A' || ch > 'Z') {
			return false
		}
	}
	return true
}
