package polynav

import "fmt"

// assertf panics with a formatted message when cond is false and the
// package was built with the polynavdebug tag. Violations are programming
// defects, never runtime conditions.
func assertf(cond bool, format string, args ...any) {
	if debugAssertions && !cond {
		panic(fmt.Sprintf("polynav: "+format, args...))
	}
}
