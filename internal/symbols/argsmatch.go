package symbols

import (
	"strings"

	"classcheck/internal/cpp"
)

// ArgsMatch decides whether two argument lists denote the same
// signature. first and second point at the first token inside each
// list's parentheses; a match is reached when both cursors arrive at
// the closing ")". Default values on the declaration side are skipped,
// a missing parameter name on either side is tolerated, and when the
// declaration carries an unqualified type the definition may qualify it
// with up to depth components of path (the enclosing scope path,
// innermost last, formatted "Outer :: Inner :: ").
func ArgsMatch(first, second *cpp.Token, path string, depth int) bool {
	match := false
	for first != nil && second != nil && first.Text() == second.Text() {
		// at end of argument list
		if first.Text() == ")" {
			match = true
			break
		}

		// skip default value assignment
		if first.StrAt(1) == "=" {
			first = first.TokAt(2)
			continue
		}

		switch {
		// declaration missing variable name
		case first.StrAt(1) == "," && second.StrAt(1) != ",":
			second = second.Next()
		case first.StrAt(1) == ")" && second.StrAt(1) != ")":
			second = second.Next()

		// definition missing variable name
		case second.StrAt(1) == "," && first.StrAt(1) != ",":
			first = first.Next()
		case second.StrAt(1) == ")" && first.StrAt(1) != ")":
			first = first.Next()

		// different number of arguments
		case second.Text() == ")":
			return false

		// variable names are different
		case cpp.Match(first.Next(), "%var% ,|)|=") && cpp.Match(second.Next(), "%var% ,|)") &&
			first.StrAt(1) != second.StrAt(1):
			first = first.Next()
			second = second.Next()
			if first.StrAt(1) == "=" {
				first = first.TokAt(2)
			}

		// unqualified type on the declaration side, qualified on the
		// definition side: the full path first, then with trailing
		// components stripped one at a time
		case depth > 0 && cpp.Match(first.Next(), "%var%"):
			prefix := path
			for n := depth; n > 0; n-- {
				if cpp.Match(second.Next(), prefix+first.StrAt(1)) {
					second = second.TokAt(n * 2)
					break
				}
				prefix = stripLastPathComponent(prefix)
			}
		}

		first = first.Next()
		second = second.Next()
	}

	return match
}

// stripLastPathComponent turns "A :: B :: " into "A :: ".
func stripLastPathComponent(path string) string {
	path = strings.TrimSuffix(path, " :: ")
	if i := strings.LastIndex(path, " "); i >= 0 {
		return path[:i+1]
	}
	return ""
}
