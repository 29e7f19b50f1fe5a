package symbols

import "classcheck/internal/cpp"

// InitializeVars walks a constructor or operator= body starting at the
// implementation-site name token ftok and marks which of the scope's
// variables it initializes. Calls to other member functions are
// followed; callstack is the cycle guard, and any resolution failure
// marks everything initialized. Conservative-in-the-face-of-unknowns
// is the governing rule.
func (db *Database) InitializeVars(scope *Scope, ftok *cpp.Token, callstack *[]string) {
	assign := false
	indentlevel := 0

	for ; ftok != nil; ftok = ftok.Next() {
		if ftok.Next() == nil {
			break
		}

		// initializer list: Kalle::Kalle() : var(value) { }
		if indentlevel == 0 {
			if assign && cpp.Match(ftok, "%var% (") {
				scope.initVar(ftok.Text())

				// assignment inside the initializer: var(value = x)
				if cpp.Match(ftok.TokAt(2), "%var% =") {
					scope.initVar(ftok.StrAt(2))
				}
			}
			if ftok.Text() == ":" {
				assign = true
			}
		}

		if ftok.Text() == "{" {
			indentlevel++
			assign = false
		} else if ftok.Text() == "}" {
			if indentlevel <= 1 {
				break
			}
			indentlevel--
		}

		if indentlevel < 1 {
			continue
		}

		// variable getting a value from a stream
		if cpp.Match(ftok, ">> %var%") {
			scope.initVar(ftok.StrAt(1))
		}

		// before a new statement there is one of "{};()="
		if !cpp.Match(ftok, "[{};()=]") {
			continue
		}

		if cpp.SimpleMatch(ftok, "( !") {
			ftok = ftok.Next()
		}

		// operator= initializing everything: *this = ...
		if cpp.SimpleMatch(ftok.Next(), "* this =") {
			scope.initAllVars()
			break
		}

		if cpp.Match(ftok.Next(), "%var% . %var% (") {
			ftok = ftok.TokAt(2)
		}

		if !cpp.Match(ftok.Next(), "%var%") &&
			!cpp.Match(ftok.Next(), "this . %var%") &&
			!cpp.Match(ftok.Next(), "* %var% =") &&
			!cpp.Match(ftok.Next(), "( * this ) . %var%") {
			continue
		}

		// go to the first token of the statement
		ftok = ftok.Next()

		if cpp.SimpleMatch(ftok, "( * this ) .") {
			ftok = ftok.TokAt(5)
		}
		if cpp.SimpleMatch(ftok, "this .") {
			ftok = ftok.TokAt(2)
		}
		if cpp.Match(ftok, "%var% ::") {
			ftok = ftok.TokAt(2)
		}

		switch {
		// clearing the whole object
		case cpp.SimpleMatch(ftok, "memset ( this ,"):
			scope.initAllVars()
			return

		// clearing one member
		case cpp.Match(ftok, "memset ( %var% ,"):
			scope.initVar(ftok.StrAt(2))
			if ftok.Next().Link() == nil {
				return
			}
			ftok = ftok.Next().Link()
			continue

		// calling a member function?
		case cpp.Match(ftok, "%var% (") && ftok.Text() != "if":
			if db.callInitializesVars(scope, ftok, callstack) {
				continue
			}
			// resolution bailed out; everything is assumed initialized
			return

		// assignment of a member variable
		case cpp.Match(ftok, "%var% ="):
			scope.initVar(ftok.Text())
		case cpp.Match(ftok, "%var% [ %any% ] ="):
			scope.initVar(ftok.Text())
		case cpp.Match(ftok, "%var% [ %any% ] [ %any% ] ="):
			scope.initVar(ftok.Text())
		case cpp.Match(ftok, "* %var% ="):
			scope.initVar(ftok.StrAt(1))
		case cpp.Match(ftok, "%var% . %any% ="):
			scope.initVar(ftok.Text())
		}

		// clear() and Clear() are assumed to initialize
		if cpp.Match(ftok, "%var% . clear|Clear (") {
			scope.initVar(ftok.Text())
		}
	}
}

// callInitializesVars handles a call inside a constructor body. It
// returns true when propagation should continue with the next
// statement and false when the walk must stop because everything was
// conservatively marked initialized.
func (db *Database) callInitializesVars(scope *Scope, ftok *cpp.Token, callstack *[]string) bool {
	// passing "this" anywhere means everything may be initialized
	for t := ftok.Next().Link(); t != nil && t != ftok; t = t.Previous() {
		if t.Text() == "this" {
			scope.initAllVars()
			return false
		}
	}

	// recursive call or overloaded sibling: assume everything is set
	for _, name := range *callstack {
		if name == ftok.Text() {
			scope.initAllVars()
			return false
		}
	}

	// resolve the callee inside this class
	for i := range scope.Functions {
		fn := &scope.Functions[i]
		if fn.HasBody && fn.DeclToken.Text() == ftok.Text() {
			*callstack = append(*callstack, ftok.Text())
			db.InitializeVars(scope, fn.DefToken, callstack)
			*callstack = (*callstack)[:len(*callstack)-1]
			return true
		}
	}

	// The callee has no body we can find. If the name still belongs to
	// the class (declared but not implemented here), or a friend is
	// involved, or the class is derived, bail out conservatively.
	declaredHere := false
	for t := scope.OpenBrace.Next(); t != nil; t = t.Next() {
		if t.Text() == "{" {
			t = t.Link()
			if t == nil {
				break
			}
		} else if t.Text() == "}" {
			break
		} else if t.Text() == ftok.Text() || t.Text() == "friend" {
			if t.StrAt(1) == "(" || t.Text() == "friend" {
				declaredHere = true
				break
			}
		}
	}
	if declaredHere || len(scope.Bases) > 0 {
		scope.initAllVars()
		return false
	}

	// external call: assume any variable passed to it is initialized
	// by reference
	indentlevel := 0
	for t := ftok.TokAt(2); t != nil; t = t.Next() {
		if t.Text() == "(" {
			indentlevel++
		} else if t.Text() == ")" {
			if indentlevel == 0 {
				break
			}
			indentlevel--
		}
		if t.IsName() {
			scope.initVar(t.Text())
		}
	}
	return true
}
