package symbols

import (
	"testing"

	"classcheck/internal/cpp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constBody tokenizes a class with one member function, then runs the
// const-body walk from the function's parameter-list ")".
func constBody(t *testing.T, code string) bool {
	t.Helper()
	db := newDB(t, code)
	scopes := db.Scopes()
	require.NotEmpty(t, scopes)
	scope := scopes[0]

	var fn *Function
	for i := range scope.Functions {
		if scope.Functions[i].Kind == KindFunction && scope.Functions[i].HasBody {
			fn = &scope.Functions[i]
			break
		}
	}
	require.NotNil(t, fn, "no function with body found")

	paramEnd := fn.DefToken.Next().Link()
	require.NotNil(t, paramEnd)
	return db.IsConstBody(scope.Name, scope.Bases, scope.Variables, paramEnd)
}

func TestIsConstBody(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"plain getter", `class A { int x; public: int get() { return x; } };`, true},
		{"member write", `class A { int x; public: void set(int v) { x = v; } };`, false},
		{"compound write", `class A { int x; public: void add(int v) { x += v; } };`, false},
		{"mutable member write", `class A { mutable int x; public: void touch(int v) { x = v; } };`, true},
		{"local write only", `class A { int x; public: int calc() { int local ; local = 3 ; return local ; } };`, true},
		{"increment", `class A { int x; public: void bump() { ++x; } };`, false},
		{"function call", `class A { int x; public: void run() { helper(); } };`, false},
		{"delete", `class A { int *p; public: void drop() { delete p; } };`, false},
		{"comparison is fine", `class A { int x; public: int same(int v) { return x == v; } };`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, constBody(t, tt.code))
		})
	}
}

func TestIsConstBodyLocalWrite(t *testing.T) {
	// a write to something that is not a member variable leaves the
	// body const
	ok := constBody(t, `class A { int x; public: int twice(int v) { v = v + v ; return v ; } };`)
	assert.True(t, ok)
}

func TestIsConstBodyDerivedClassPessimistic(t *testing.T) {
	// any assignment in a derived class may hit an inherited member
	ok := constBody(t, `class D : public B { public: int calc() { int local ; local = 3 ; return local ; } };`)
	assert.False(t, ok)
}

func TestIsMemberVar(t *testing.T) {
	code := `
		class A {
			int x;
			mutable int m;
		public:
			void set();
		};
		void A::set() { m = 1 ; x = 2 ; }
	`
	db := newDB(t, code)
	scope := db.Scopes()[0]

	xTok := cpp.FindMatch(db.Tokens(), "x = 2", nil)
	require.NotNil(t, xTok)
	assert.True(t, db.IsMemberVar(scope.Name, scope.Bases, scope.Variables, xTok))

	// mutable members are excluded on purpose
	mTok := cpp.FindMatch(db.Tokens(), "m = 1", nil)
	require.NotNil(t, mTok)
	assert.False(t, db.IsMemberVar(scope.Name, scope.Bases, scope.Variables, mTok))

	// a local is no member
	localTok := cpp.Tokenize("{ local = 1 ;", 0).Next()
	assert.False(t, db.IsMemberVar(scope.Name, scope.Bases, scope.Variables, localTok))
}

func TestIsMemberVarInBase(t *testing.T) {
	code := `
		class B { public: int y; };
		class D : public B {
		public:
			int get();
		};
		int D::get() { return y ; }
	`
	db := newDB(t, code)
	var derived *Scope
	for _, s := range db.Scopes() {
		if s.Name == "D" {
			derived = s
		}
	}
	require.NotNil(t, derived)

	yTok := cpp.FindMatch(db.Tokens(), "return y ;", nil).Next()
	require.NotNil(t, yTok)
	assert.True(t, db.IsMemberVar(derived.Name, derived.Bases, derived.Variables, yTok))
}

func TestIsMemberVarClassQualified(t *testing.T) {
	code := `
		class A {
			int x;
		public:
			void set();
		};
		void A::set() { A :: x = 1 ; }
	`
	db := newDB(t, code)
	scope := db.Scopes()[0]

	eq := cpp.FindMatch(db.Tokens(), "x = 1", nil).Next()
	require.NotNil(t, eq)
	assert.True(t, db.IsMemberVar(scope.Name, scope.Bases, scope.Variables, eq.Previous()))
}

func TestIsVirtualInBase(t *testing.T) {
	code := `
		class Base {
		public:
			virtual void poll();
			virtual int weigh(int grams);
		};
		class Mid : public Base { };
		class D : public Mid {
		public:
			void poll();
			int weigh(double grams);
		};
	`
	db := newDB(t, code)
	var derived *Scope
	for _, s := range db.Scopes() {
		if s.Name == "D" {
			derived = s
		}
	}
	require.NotNil(t, derived)
	require.Len(t, derived.Functions, 2)

	// poll matches through the transitive base
	assert.True(t, db.IsVirtualInBase(derived.Bases, derived.Functions[0].DeclToken))

	// weigh has a different signature, so it is no override
	assert.False(t, db.IsVirtualInBase(derived.Bases, derived.Functions[1].DeclToken))
}

func TestIsVirtualInBaseUnknownBase(t *testing.T) {
	code := `
		class D : public Unknown {
		public:
			void poll();
		};
	`
	db := newDB(t, code)
	scope := db.Scopes()[0]
	require.Len(t, scope.Functions, 1)
	assert.False(t, db.IsVirtualInBase(scope.Bases, scope.Functions[0].DeclToken))
}
