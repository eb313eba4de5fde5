package interp

import (
	"sort"

	"github.com/maruel/natural"
)

// naturalSort orders names the way a human would (so "method2" sorts
// before "method10"). Class.MethodNames uses it to give a deterministic
// order to names taken from a Go map.
func naturalSort(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return natural.Less(names[i], names[j])
	})
}
