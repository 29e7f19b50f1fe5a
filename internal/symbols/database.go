package symbols

import "classcheck/internal/cpp"

// Database indexes every scope in a token stream. Construction is lazy
// and happens at most once per instance; tokens are borrowed, never
// owned.
type Database struct {
	tokens *cpp.Token
	built  bool
	scopes []*Scope // declaration order
	byName map[string][]*Scope
}

func NewDatabase(tokens *cpp.Token) *Database {
	return &Database{
		tokens: tokens,
		byName: make(map[string][]*Scope),
	}
}

func (db *Database) Tokens() *cpp.Token {
	return db.tokens
}

// Scopes returns every scope in declaration order, building the
// database on first use.
func (db *Database) Scopes() []*Scope {
	db.build()
	return db.scopes
}

// LookupScopes returns the scopes sharing an unqualified name, in
// declaration order.
func (db *Database) LookupScopes(name string) []*Scope {
	db.build()
	return db.byName[name]
}

func (db *Database) build() {
	if db.built {
		return
	}
	db.built = true

	var info *Scope
	for tok := db.tokens; tok != nil; tok = tok.Next() {
		// locate next scope
		if cpp.Match(tok, "class|struct|namespace %var% [{:]") {
			scope := &Scope{
				IsNamespace: tok.Text() == "namespace",
				Name:        tok.Next().Text(),
				DefToken:    tok,
				Parent:      info,
			}
			if tok.Text() == "struct" {
				scope.access = Public
			} else {
				scope.access = Private
			}

			// walk to the opening brace, collecting base classes
			tok2 := tok.TokAt(2)
			for tok2 != nil && tok2.Text() != "{" {
				if cpp.Match(tok2, "[:,] public|protected|private") {
					tok2 = tok2.TokAt(2)
					base := ""
					for cpp.Match(tok2, "%var% ::") {
						base += tok2.Text() + " :: "
						tok2 = tok2.TokAt(2)
					}
					base += tok2.Text()
					scope.Bases = append(scope.Bases, base)
				}
				tok2 = tok2.Next()
			}
			if tok2 == nil || tok2.Link() == nil {
				break // truncated scope, tolerate
			}
			scope.OpenBrace = tok2
			scope.CloseBrace = tok2.Link()
			if !scope.IsNamespace {
				scope.Variables = db.memberVariables(tok)
			}

			info = scope
			db.scopes = append(db.scopes, scope)
			db.byName[scope.Name] = append(db.byName[scope.Name], scope)

			tok = tok2
			continue
		}

		if info == nil || info.IsNamespace {
			continue
		}

		switch {
		case tok == info.CloseBrace:
			info = info.Parent
		case tok.Text() == "private:":
			info.access = Private
		case tok.Text() == "protected:":
			info.access = Protected
		case tok.Text() == "public:":
			info.access = Public
		default:
			if next := db.parseFunction(info, tok); next != nil {
				tok = next
			}
		}
	}
}

// parseFunction recognizes a member-function declaration at tok and
// appends it to the scope, binding an out-of-line definition when one
// exists. It returns the token to resume the scan at, or nil when tok
// is not a function.
func (db *Database) parseFunction(info *Scope, tok *cpp.Token) *cpp.Token {
	if !cpp.Match(tok, "%var% (") && !cpp.Match(tok, "operator %any% (") {
		return nil
	}
	if tok.Previous().Text() == "::" {
		return nil
	}
	var argOpen *cpp.Token
	if tok.Text() == "operator" {
		argOpen = tok.TokAt(2)
	} else {
		argOpen = tok.Next()
	}
	argClose := argOpen.Link()
	if argClose == nil || !cpp.Match(argClose, ") const| ;|{|=|:") {
		return nil
	}

	fn := Function{
		Access:    info.access,
		DeclToken: tok,
		Kind:      KindFunction,
	}

	if tok.Text() == "operator" {
		fn.IsOperator = true
		fn.DeclToken = tok.Next()
		if fn.DeclToken.Text() == "=" {
			fn.Kind = KindOperatorEqual
		}
	} else if tok.Text() == info.Name {
		switch {
		case tok.Previous().Text() == "~":
			fn.Kind = KindDestructor
		case cpp.Match(tok, "%var% ( const %var% & %var%| )") && tok.StrAt(3) == info.Name:
			fn.Kind = KindCopyConstructor
		default:
			fn.Kind = KindConstructor
		}
	}

	// scan backward over the declaration for modifiers
	for t := tok; t.Previous() != nil && !cpp.Match(t.Previous(), ";|}|{|public:|protected:|private:"); t = t.Previous() {
		switch t.Previous().Text() {
		case "virtual":
			fn.IsVirtual = true
		case "static":
			fn.IsStatic = true
		case "friend":
			fn.IsFriend = true
		default:
			continue
		}
		break
	}

	if fn.DeclToken.Next().Link().StrAt(1) == "const" {
		fn.IsConst = true
	}

	if fn.Kind == KindConstructor || fn.Kind == KindCopyConstructor {
		info.NumConstructors++
	}

	// assume inline until an out-of-line definition is found
	fn.DefToken = fn.DeclToken

	next := fn.DeclToken.Next().Link()

	if cpp.Match(next, ") const| ;") || cpp.Match(next, ") const| = 0 ;") {
		db.bindDefinition(info, &fn)
		info.Functions = append(info.Functions, fn)
		return next.Next()
	}

	// inline function: body follows inside the class
	fn.IsInline = true
	fn.HasBody = true
	info.Functions = append(info.Functions, fn)

	resume := next.Next()
	for resume != nil && resume.Text() != "{" {
		resume = resume.Next()
	}
	if resume.Link() == nil {
		return resume
	}
	return resume.Link()
}

// bindDefinition looks for the out-of-line implementation of fn,
// widening the qualification path one enclosing scope at a time. The
// search starts at the scope's close-brace and is bounded by the parent
// scope's close-brace.
func (db *Database) bindDefinition(info *Scope, fn *Function) {
	var classPattern string
	if fn.IsOperator {
		classPattern = "operator " + fn.DeclToken.Text() + " ("
	} else {
		classPattern = fn.DeclToken.Text() + " ("
	}
	funcArgs := fn.DeclToken.TokAt(2)

	classPath := ""
	depth := 0
	nest := info
	for !fn.HasBody && nest != nil {
		classPath = nest.Name + " :: " + classPath
		searchPattern := classPath + classPattern
		depth++
		nest = nest.Parent

		var stop *cpp.Token
		if nest != nil {
			stop = nest.CloseBrace
		}
		found := info.CloseBrace
		for {
			found = cpp.FindMatch(found, searchPattern, stop)
			if found == nil {
				break
			}
			// a qualified reference to some other scope
			if found.Previous().Text() == "::" {
				break
			}
			// go to the function name
			for found != nil && found.Next().Text() != "(" {
				found = found.Next()
			}
			if cpp.Match(found.Next().Link(), ") const| {") {
				if ArgsMatch(funcArgs, found.TokAt(2), classPath, depth) {
					fn.DefToken = found
					fn.HasBody = true
					break
				}
				// skip the candidate's body
				for found != nil && found.Text() != "{" {
					found = found.Next()
				}
				if found.Link() == nil {
					break
				}
				found = found.Link()
			}
		}
	}
}
