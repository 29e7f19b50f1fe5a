package checks

import (
	"classcheck/internal/cpp"
	"classcheck/internal/models"
	"classcheck/internal/symbols"
)

// ConstructorCheck reports classes that need a constructor but have
// none, and members left uninitialized by a constructor, copy
// constructor or assignment operator.
type ConstructorCheck struct{}

func NewConstructorCheck() *ConstructorCheck {
	return &ConstructorCheck{}
}

func (c *ConstructorCheck) Name() string {
	return "constructors"
}

func (c *ConstructorCheck) Run(ctx *Context) []models.Diagnostic {
	if !ctx.Config.Checks.Style {
		return nil
	}

	var out []models.Diagnostic
	for _, scope := range ctx.Symbols.Scopes() {
		if scope.IsNamespace {
			continue
		}

		if scope.NumConstructors == 0 {
			// a private non-static, non-class variable needs one
			for _, v := range scope.Variables {
				if v.Private && !v.IsClass && !v.Static {
					isStruct := scope.DefToken.Text() == "struct"
					kind := "class"
					if isStruct {
						kind = "struct"
					}
					out = append(out, ctx.diag(models.IDNoConstructor, models.SeverityStyle, scope.DefToken,
						"The "+kind+" '"+scope.Name+"' has no constructor. Member variables not initialized."))
					break
				}
			}
		}

		for i := range scope.Functions {
			fn := &scope.Functions[i]
			if !fn.HasBody {
				continue
			}
			if fn.Kind != symbols.KindConstructor && fn.Kind != symbols.KindCopyConstructor &&
				fn.Kind != symbols.KindOperatorEqual {
				continue
			}

			scope.ResetVarInit()
			var callstack []string
			ctx.Symbols.InitializeVars(scope, fn.DefToken, &callstack)

			for _, v := range scope.Variables {
				// class members initialize themselves in a plain constructor
				if v.IsClass && fn.Kind == symbols.KindConstructor {
					continue
				}
				if v.Init || v.Static {
					continue
				}

				if fn.Kind == symbols.KindOperatorEqual {
					if operatorEqUsesClassName(fn, scope.Name) {
						out = append(out, ctx.diag(models.IDOperatorEqVar, models.SeverityStyle, fn.DefToken,
							"Member variable '"+scope.Name+"::"+v.Name+"' is not assigned a value in '"+scope.Name+"::operator='"))
					}
				} else if fn.Access != symbols.Private {
					out = append(out, ctx.diag(models.IDUninitVar, models.SeverityStyle, fn.DefToken,
						"Member variable not initialized in the constructor '"+scope.Name+"::"+v.Name+"'"))
				}
			}
		}
	}
	return out
}

// operatorEqUsesClassName guards against unrelated operator= overloads
// (e.g. assignment from const char*): the report is only meaningful
// when the class name shows up in the operator's parameter list.
func operatorEqUsesClassName(fn *symbols.Function, className string) bool {
	var operStart *cpp.Token
	if fn.DefToken.Text() == "=" {
		operStart = fn.DefToken.TokAt(1)
	} else {
		operStart = fn.DefToken.TokAt(3)
	}
	end := operStart.Link()
	for t := operStart; t != nil && t != end; t = t.Next() {
		if t.Text() == className {
			return true
		}
	}
	return false
}
