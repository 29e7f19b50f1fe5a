package checks

import (
	"classcheck/internal/cpp"
	"classcheck/internal/models"
)

// VirtualDestructorCheck reports base classes whose destructor is not
// virtual while a derived class has a non-empty destructor of its own.
// The report is only sound when the base object is actually deleted
// through a base pointer, which is not verified, so the whole check is
// gated behind the inconclusive setting.
type VirtualDestructorCheck struct{}

func NewVirtualDestructorCheck() *VirtualDestructorCheck {
	return &VirtualDestructorCheck{}
}

func (c *VirtualDestructorCheck) Name() string {
	return "virtual destructor"
}

func (c *VirtualDestructorCheck) Run(ctx *Context) []models.Diagnostic {
	if !ctx.Config.Checks.Inconclusive {
		return nil
	}

	var out []models.Diagnostic
	derived := ctx.Tokens
	for {
		derived = cpp.FindMatch(derived, "class %var% : %var%", nil)
		if derived == nil {
			break
		}

		// the derived class must have a non-empty destructor
		destructor := cpp.FindMatch(ctx.Tokens, "~ "+derived.StrAt(1)+" ( ) {", nil)
		if destructor == nil || cpp.Match(destructor, "~ %var% ( ) { }") {
			derived = derived.Next()
			continue
		}

		derivedClass := derived.TokAt(1)

		// iterate the base list
		derived = derived.TokAt(3)
		for cpp.Match(derived, "%var%") {
			isPublic := derived.Text() == "public"
			if cpp.Match(derived, "public|protected|private") {
				derived = derived.Next()
			}

			baseName := derived.Text()

			// position derived for the next base
			for derived != nil {
				if derived.Text() == "{" {
					break
				}
				if derived.Text() == "," {
					derived = derived.Next()
					break
				}
				derived = derived.Next()
			}

			if !isPublic {
				continue
			}

			out = append(out, c.checkBase(ctx, baseName, derivedClass)...)
		}
	}
	return out
}

func (c *VirtualDestructorCheck) checkBase(ctx *Context, baseName string, derivedClass *cpp.Token) []models.Diagnostic {
	message := "Class " + baseName + " which is inherited by class " + derivedClass.Text() +
		" does not have a virtual destructor"

	// find the base destructor, skipping qualified references
	base := cpp.FindMatch(ctx.Tokens, "%any% ~ "+baseName+" (", nil)
	for base != nil && base.Text() == "::" {
		base = cpp.FindMatch(base.Next(), "%any% ~ "+baseName+" (", nil)
	}

	reverseTok := base
	for cpp.Match(base, "%var%") && base.Text() != "virtual" {
		base = base.Previous()
	}

	if base == nil {
		// no destructor found; report only when the class declaration
		// itself is visible
		if decl := cpp.FindMatch(ctx.Tokens, "class "+baseName+" {", nil); decl != nil {
			return []models.Diagnostic{ctx.diag(models.IDVirtualDestructor, models.SeverityError, decl, message)}
		}
		return nil
	}

	if base.Text() == "virtual" {
		return nil
	}

	// If the base class has bases of its own, one of them might carry
	// the virtual destructor; checking that properly needs the whole
	// hierarchy, so skip.
	if cpp.FindMatch(ctx.Tokens, "class "+baseName+" {", nil) == nil {
		return nil
	}

	// the destructor must be public for the bug to be reachable
	indent := 0
	for reverseTok != nil {
		switch reverseTok.Text() {
		case "public:":
			return []models.Diagnostic{ctx.diag(models.IDVirtualDestructor, models.SeverityError, base, message)}
		case "protected:", "private:":
			return nil
		case "{":
			indent++
			if indent >= 1 {
				return nil
			}
		case "}":
			indent--
		}
		reverseTok = reverseTok.Previous()
	}
	return nil
}
