//go:build debug

package corvidassert

import "fmt"

// Debug is true when the debug build tag is set.
const Debug = true

// Assert panics with the formatted message if test is false.
func Assert(test bool, msg string, a ...interface{}) {
	if !test {
		panic(fmt.Sprintf(msg, a...))
	}
}
