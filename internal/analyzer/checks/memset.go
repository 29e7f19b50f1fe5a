package checks

import (
	"classcheck/internal/cpp"
	"classcheck/internal/models"
)

// MemsetCheck reports memset/memcpy/memmove applied to a class or
// struct that holds an std:: member. Clearing such an object byte-wise
// wrecks the member's internal state. This check must run on the raw
// token view: only there is the sizeof operator preserved.
type MemsetCheck struct{}

func NewMemsetCheck() *MemsetCheck {
	return &MemsetCheck{}
}

func (c *MemsetCheck) Name() string {
	return "memset on class"
}

func (c *MemsetCheck) Run(ctx *Context) []models.Diagnostic {
	var out []models.Diagnostic

	for tok := ctx.Tokens; tok != nil; tok = tok.Next() {
		if !cpp.Match(tok, "memset|memcpy|memmove") {
			continue
		}

		typeName := ""
		switch {
		case cpp.Match(tok, "memset ( %var% , %num% , sizeof ( %type% ) )"):
			typeName = tok.StrAt(8)
		case cpp.Match(tok, "memset ( & %var% , %num% , sizeof ( %type% ) )"):
			typeName = tok.StrAt(9)
		case cpp.Match(tok, "memset ( %var% , %num% , sizeof ( struct %type% ) )"):
			typeName = tok.StrAt(9)
		case cpp.Match(tok, "memset ( & %var% , %num% , sizeof ( struct %type% ) )"):
			typeName = tok.StrAt(10)
		case cpp.Match(tok, "%type% ( %var% , %var% , sizeof ( %type% ) )"):
			typeName = tok.StrAt(8)
		}
		if typeName == "" {
			continue
		}

		out = append(out, c.checkType(ctx, tok, typeName)...)
	}
	return out
}

// checkType scans the definition of typeName for std:: members,
// scalar or template, and reports the memory function applied to it.
func (c *MemsetCheck) checkType(ctx *Context, tok *cpp.Token, typeName string) []models.Diagnostic {
	var out []models.Diagnostic

	for tstruct := cpp.FindMatch(ctx.Tokens, "struct|class "+typeName+" {", nil); tstruct != nil; tstruct = tstruct.Next() {
		if tstruct.Text() == "}" {
			break
		}

		// skip over member function bodies
		if cpp.SimpleMatch(tstruct, ") {") {
			tstruct = tstruct.Next().Link()
			if tstruct == nil {
				break
			}
			continue
		}

		// a member declaration starts after ; { } or an access label
		if !cpp.Match(tstruct, "[;{}]") && !containsColon(tstruct.Text()) {
			continue
		}

		if cpp.Match(tstruct.Next(), "std :: %type% %var% ;") {
			out = append(out, ctx.diag(models.IDMemsetStruct, models.SeverityError, tok,
				"Using '"+tok.Text()+"' on struct that contains a 'std::"+tstruct.StrAt(3)+"'"))
		} else if cpp.Match(tstruct.Next(), "std :: %type% <") {
			memberType := tstruct.StrAt(3)

			// find the end of the template argument list
			level := 0
			for tstruct = tstruct.Next(); tstruct != nil; tstruct = tstruct.Next() {
				if tstruct.Text() == "<" {
					level++
				} else if tstruct.Text() == ">" {
					if level <= 1 {
						break
					}
					level--
				} else if tstruct.Text() == "(" {
					tstruct = tstruct.Link()
					if tstruct == nil {
						break
					}
				}
			}
			if tstruct == nil {
				break
			}

			// not a pointer to the container: report
			if cpp.Match(tstruct, "> %var% ;") {
				out = append(out, ctx.diag(models.IDMemsetStruct, models.SeverityError, tok,
					"Using '"+tok.Text()+"' on struct that contains a 'std::"+memberType+"'"))
			}
		}
	}
	return out
}

func containsColon(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return true
		}
	}
	return false
}
