package symbols

import (
	"testing"

	"classcheck/internal/cpp"

	"github.com/stretchr/testify/assert"
)

// argTokens returns the first token inside the parentheses of a
// tokenized argument list, the position ArgsMatch cursors start at.
func argTokens(code string) *cpp.Token {
	return cpp.Tokenize(code, 0).Next()
}

func TestArgsMatchBasic(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
		want   bool
	}{
		{"empty lists", `( )`, `( )`, true},
		{"identical", `( int a )`, `( int a )`, true},
		{"identical multi", `( int a , char b )`, `( int a , char b )`, true},
		{"different types", `( int a )`, `( char a )`, false},
		{"missing name declaration side", `( int )`, `( int a )`, true},
		{"missing name definition side", `( int a )`, `( int )`, true},
		{"different names tolerated", `( int a )`, `( int b )`, true},
		{"different names multi", `( int a , char b )`, `( int x , char y )`, true},
		{"arity mismatch", `( int )`, `( int , int )`, false},
		{"arity mismatch reversed", `( int , int )`, `( int )`, false},
		{"pointer match", `( char * s )`, `( char * s )`, true},
		{"pointer vs value", `( char * s )`, `( char s )`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArgsMatch(argTokens(tt.first), argTokens(tt.second), "", 0)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgsMatchSymmetry(t *testing.T) {
	// unqualified inputs of equal arity with matching types must match
	// in both directions
	pairs := [][2]string{
		{`( int a )`, `( int b )`},
		{`( int a , char b )`, `( int a , char b )`},
		{`( const Foo & f )`, `( const Foo & g )`},
	}
	for _, pair := range pairs {
		a := ArgsMatch(argTokens(pair[0]), argTokens(pair[1]), "", 0)
		b := ArgsMatch(argTokens(pair[1]), argTokens(pair[0]), "", 0)
		assert.Equal(t, a, b, "asymmetric result for %v", pair)
		assert.True(t, a)
	}
}

func TestArgsMatchQualifiedPath(t *testing.T) {
	// declaration uses the unqualified type, definition qualifies it
	// with the enclosing scope
	decl := argTokens(`( int i , Inner in )`)
	def := argTokens(`( int i , Outer :: Inner in )`)
	assert.True(t, ArgsMatch(decl, def, "Outer :: ", 1))

	// wrong scope prefix does not match
	def2 := argTokens(`( int i , Other :: Inner in )`)
	assert.False(t, ArgsMatch(decl, def2, "Outer :: ", 1))
}

func TestArgsMatchQualifiedPathStripped(t *testing.T) {
	// at depth 2 the full path is tried first, then the outer prefix
	// alone
	decl := argTokens(`( int i , Inner in )`)
	full := argTokens(`( int i , Outer :: Mid :: Inner in )`)
	assert.True(t, ArgsMatch(decl, full, "Outer :: Mid :: ", 2))

	partial := argTokens(`( int i , Outer :: Inner in )`)
	assert.True(t, ArgsMatch(decl, partial, "Outer :: Mid :: ", 2))
}

func TestArgsMatchNilTolerant(t *testing.T) {
	assert.False(t, ArgsMatch(nil, argTokens(`( )`), "", 0))
	assert.False(t, ArgsMatch(argTokens(`( )`), nil, "", 0))
}
