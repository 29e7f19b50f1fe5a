// Package symbols builds a queryable view of the classes, structs and
// namespaces in a token stream: scope discovery, member-variable
// extraction, declaration-to-definition matching, and the resolvers
// the defect checks are built on.
package symbols

import "classcheck/internal/cpp"

type Access int

const (
	Public Access = iota
	Protected
	Private
)

type FunctionKind int

const (
	KindFunction FunctionKind = iota
	KindConstructor
	KindCopyConstructor
	KindOperatorEqual
	KindDestructor
)

// Variable is a member variable. Init is the only mutable field; it is
// reset and recomputed per constructor by the init propagation pass.
type Variable struct {
	Name    string
	Init    bool
	Private bool
	Mutable bool
	Static  bool
	IsClass bool // class type or unknown type
}

// Function is a member function. DeclToken is the name token inside the
// class body; DefToken is the name token at the implementation site and
// equals DeclToken for inline functions.
type Function struct {
	DeclToken  *cpp.Token
	DefToken   *cpp.Token
	Access     Access
	HasBody    bool
	IsInline   bool
	IsConst    bool
	IsVirtual  bool
	IsStatic   bool
	IsFriend   bool
	IsOperator bool
	Kind       FunctionKind
}

// Scope is a class, struct or namespace body. Namespaces carry no
// variables and no functions.
type Scope struct {
	IsNamespace     bool
	Name            string
	DefToken        *cpp.Token // the class/struct/namespace keyword
	OpenBrace       *cpp.Token
	CloseBrace      *cpp.Token
	NumConstructors int
	Functions       []Function
	Variables       []*Variable
	Bases           []string
	Parent          *Scope

	access Access // current section while the database is being built
}

// ResetVarInit clears the Init flag on every variable, done before each
// init propagation run.
func (s *Scope) ResetVarInit() {
	for _, v := range s.Variables {
		v.Init = false
	}
}

func (s *Scope) initVar(name string) {
	for _, v := range s.Variables {
		if v.Name == name {
			v.Init = true
			return
		}
	}
}

func (s *Scope) initAllVars() {
	for _, v := range s.Variables {
		v.Init = true
	}
}
