package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runInit builds the database for code, runs init propagation on the
// first function of the scope named className, and returns the scope.
func runInit(t *testing.T, code, className string) *Scope {
	t.Helper()
	db := newDB(t, code)
	scopes := db.LookupScopes(className)
	require.NotEmpty(t, scopes)
	scope := scopes[0]
	require.NotEmpty(t, scope.Functions)
	fn := scope.Functions[0]
	require.True(t, fn.HasBody)

	scope.ResetVarInit()
	var callstack []string
	db.InitializeVars(scope, fn.DefToken, &callstack)
	return scope
}

func initState(s *Scope) map[string]bool {
	state := make(map[string]bool)
	for _, v := range s.Variables {
		state[v.Name] = v.Init
	}
	return state
}

func TestInitVarsAssignment(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A();
		private:
			int x;
			int y;
		};
		A::A() { x = 1; }
	`, "A")
	state := initState(scope)
	assert.True(t, state["x"])
	assert.False(t, state["y"])
}

func TestInitVarsAssignmentShapes(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A();
		private:
			int arr[4];
			int grid[2][2];
			int *ptr;
			Point pos;
			std::string name;
		};
		A::A() {
			arr[0] = 1;
			grid[0][1] = 2;
			*ptr = 3;
			pos.x = 4;
			this->name.clear();
		}
	`, "A")
	state := initState(scope)
	for _, name := range []string{"arr", "grid", "ptr", "pos", "name"} {
		assert.True(t, state[name], "%s should be marked initialized", name)
	}
}

func TestInitVarsInitializerList(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A() : x(0), y(z = 5) { }
		private:
			int x;
			int y;
			int z;
			int w;
		};
	`, "A")
	state := initState(scope)
	assert.True(t, state["x"])
	assert.True(t, state["y"])
	assert.True(t, state["z"])
	assert.False(t, state["w"])
}

func TestInitVarsStreamExtraction(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A();
		private:
			int x;
			int y;
		};
		A::A() { std::cin >> x; }
	`, "A")
	state := initState(scope)
	assert.True(t, state["x"])
	assert.False(t, state["y"])
}

func TestInitVarsMemsetThis(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A();
		private:
			int x;
			int y;
		};
		A::A() { memset(this, 0, sizeof(A)); }
	`, "A")
	state := initState(scope)
	assert.True(t, state["x"])
	assert.True(t, state["y"])
}

func TestInitVarsMemsetMember(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A();
		private:
			int buf[16];
			int other;
		};
		A::A() { memset(buf, 0, sizeof(buf)); }
	`, "A")
	state := initState(scope)
	assert.True(t, state["buf"])
	assert.False(t, state["other"])
}

func TestInitVarsAssignToThis(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A();
		private:
			int x;
		};
		A::A() { *this = A(); }
	`, "A")
	assert.True(t, initState(scope)["x"])
}

func TestInitVarsMemberCallRecursion(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A();
			void setup();
		private:
			int x;
			int y;
		};
		A::A() { setup(); }
		void A::setup() { x = 1; }
	`, "A")
	state := initState(scope)
	assert.True(t, state["x"])
	assert.False(t, state["y"])
}

func TestInitVarsCallCycleMarksAll(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A();
			void first();
			void second();
		private:
			int x;
		};
		A::A() { first(); }
		void A::first() { second(); }
		void A::second() { first(); }
	`, "A")
	assert.True(t, initState(scope)["x"])
}

func TestInitVarsUnknownCalleeWithBasesMarksAll(t *testing.T) {
	scope := runInit(t, `
		class A : public B {
		public:
			A();
		private:
			int x;
		};
		A::A() { inherited(); }
	`, "A")
	assert.True(t, initState(scope)["x"])
}

func TestInitVarsDeclaredButUnimplementedCalleeMarksAll(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A();
			void setup();
		private:
			int x;
		};
		A::A() { setup(); }
	`, "A")
	assert.True(t, initState(scope)["x"])
}

func TestInitVarsExternalCallMarksArguments(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A();
		private:
			int x;
			int y;
		};
		A::A() { fill(x); }
	`, "A")
	state := initState(scope)
	assert.True(t, state["x"])
	assert.False(t, state["y"])
}

func TestInitVarsPassingThisMarksAll(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A();
		private:
			int x;
		};
		A::A() { registerObject(this); }
	`, "A")
	assert.True(t, initState(scope)["x"])
}

func TestInitVarsThisPrefixStripped(t *testing.T) {
	scope := runInit(t, `
		class A {
		public:
			A();
		private:
			int x;
			int y;
		};
		A::A() {
			this->x = 1;
			(*this).y = 2;
		}
	`, "A")
	state := initState(scope)
	assert.True(t, state["x"])
	assert.True(t, state["y"])
}
