package symbols

import (
	"testing"

	"classcheck/internal/cpp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T, code string) *Database {
	t.Helper()
	return NewDatabase(cpp.Tokenize(code, 0))
}

func TestBuildDiscoversScopes(t *testing.T) {
	db := newDB(t, `
		class A { };
		struct B { };
		namespace N { class C { }; }
	`)
	scopes := db.Scopes()
	require.Len(t, scopes, 4)

	assert.Equal(t, "A", scopes[0].Name)
	assert.False(t, scopes[0].IsNamespace)
	assert.Equal(t, "B", scopes[1].Name)
	assert.Equal(t, "N", scopes[2].Name)
	assert.True(t, scopes[2].IsNamespace)
	assert.Equal(t, "C", scopes[3].Name)
	assert.Same(t, scopes[2], scopes[3].Parent)

	// namespaces carry no variables and no functions
	assert.Empty(t, scopes[2].Variables)
	assert.Empty(t, scopes[2].Functions)
}

func TestBuildIsLazyAndRunsOnce(t *testing.T) {
	db := newDB(t, `class A { };`)
	first := db.Scopes()
	second := db.Scopes()
	require.Len(t, first, 1)
	assert.Same(t, first[0], second[0])
}

func TestBuildOpenCloseBraceLinked(t *testing.T) {
	db := newDB(t, `class A { public: void f() { } };`)
	scopes := db.Scopes()
	require.Len(t, scopes, 1)
	assert.Same(t, scopes[0].CloseBrace, scopes[0].OpenBrace.Link())
}

func TestBuildBaseList(t *testing.T) {
	db := newDB(t, `class D : public A, protected N::B, private C { };`)
	scopes := db.Scopes()
	require.Len(t, scopes, 1)
	assert.Equal(t, []string{"A", "N :: B", "C"}, scopes[0].Bases)
}

func TestBuildClassifiesFunctions(t *testing.T) {
	db := newDB(t, `
		class A {
		public:
			A();
			A(const A &other);
			~A() { }
			A &operator=(const A &rhs);
			void work();
			static int count();
			virtual void v() { }
			friend void helper();
		private:
			int x;
		};
	`)
	scopes := db.Scopes()
	require.Len(t, scopes, 1)
	s := scopes[0]

	kinds := make(map[FunctionKind]int)
	for _, fn := range s.Functions {
		kinds[fn.Kind]++
	}
	assert.Equal(t, 1, kinds[KindConstructor])
	assert.Equal(t, 1, kinds[KindCopyConstructor])
	assert.Equal(t, 1, kinds[KindDestructor])
	assert.Equal(t, 1, kinds[KindOperatorEqual])

	// num-constructors equals constructor-kind count
	assert.Equal(t, 2, s.NumConstructors)

	var static, virtual, friend int
	for _, fn := range s.Functions {
		if fn.IsStatic {
			static++
		}
		if fn.IsVirtual {
			virtual++
		}
		if fn.IsFriend {
			friend++
		}
	}
	assert.Equal(t, 1, static)
	assert.Equal(t, 1, virtual)
	assert.Equal(t, 1, friend)
}

func TestBuildAccessTracking(t *testing.T) {
	db := newDB(t, `
		class A {
			void privDefault();
		public:
			void pub();
		protected:
			void prot();
		private:
			void priv();
		};
	`)
	s := db.Scopes()[0]
	require.Len(t, s.Functions, 4)
	assert.Equal(t, Private, s.Functions[0].Access)
	assert.Equal(t, Public, s.Functions[1].Access)
	assert.Equal(t, Protected, s.Functions[2].Access)
	assert.Equal(t, Private, s.Functions[3].Access)
}

func TestBuildBindsOutOfLineDefinition(t *testing.T) {
	db := newDB(t, `
		class A {
		public:
			A();
			void foo(int value);
			void missing();
		};
		A::A() { }
		void A::foo(int value) { }
	`)
	s := db.Scopes()[0]
	require.Len(t, s.Functions, 3)

	ctor := s.Functions[0]
	assert.True(t, ctor.HasBody)
	assert.False(t, ctor.IsInline)
	assert.NotSame(t, ctor.DeclToken, ctor.DefToken)
	// the definition site is qualified with the scope path
	assert.Equal(t, "::", ctor.DefToken.Previous().Text())

	foo := s.Functions[1]
	assert.True(t, foo.HasBody)
	assert.Equal(t, "::", foo.DefToken.Previous().Text())

	missing := s.Functions[2]
	assert.False(t, missing.HasBody)
	assert.Same(t, missing.DeclToken, missing.DefToken)
}

func TestBuildInlineFunction(t *testing.T) {
	db := newDB(t, `class A { public: int get() const { return 0; } };`)
	s := db.Scopes()[0]
	require.Len(t, s.Functions, 1)
	fn := s.Functions[0]
	assert.True(t, fn.IsInline)
	assert.True(t, fn.HasBody)
	assert.True(t, fn.IsConst)
	assert.Same(t, fn.DeclToken, fn.DefToken)
}

func TestBuildNestedScopeDefinition(t *testing.T) {
	db := newDB(t, `
		namespace N {
			class A {
			public:
				void foo();
			};
			void A::foo() { }
		}
	`)
	var class *Scope
	for _, s := range db.Scopes() {
		if s.Name == "A" {
			class = s
		}
	}
	require.NotNil(t, class)
	require.Len(t, class.Functions, 1)
	assert.True(t, class.Functions[0].HasBody)
}

func TestBuildSkipsUnrelatedOverload(t *testing.T) {
	db := newDB(t, `
		class A {
		public:
			void foo(int a);
		};
		void A::foo(double unrelated) { }
		void A::foo(int a) { }
	`)
	s := db.Scopes()[0]
	require.Len(t, s.Functions, 1)
	fn := s.Functions[0]
	require.True(t, fn.HasBody)
	// bound to the matching overload, not the first candidate
	assert.Equal(t, "int", fn.DefToken.StrAt(2))
}

func TestLookupScopes(t *testing.T) {
	db := newDB(t, `class A { }; namespace N { class A { }; }`)
	assert.Len(t, db.LookupScopes("A"), 2)
	assert.Empty(t, db.LookupScopes("B"))
}
