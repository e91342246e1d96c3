package kern

import (
	"fmt"
	"reflect"
	"strings"
)

// TypeName is the lower-cased concrete type name of a kernel, used for
// combination child naming and numerics warnings.
func TypeName(k Kernel) string {
	t := reflect.TypeOf(k)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

// MakeKernelNames gives each kernel in the list a unique human-readable
// name derived from its type name. Duplicate types get trailing numbers,
// and the first duplicate renames the original retroactively, so two
// Matern32 children become matern32_1 and matern32_2.
func MakeKernelNames(kerns []Kernel) []string {
	names := make([]string, 0, len(kerns))
	counts := make(map[string]int, len(kerns))
	for _, k := range kerns {
		raw := TypeName(k)
		n, seen := counts[raw]
		if !seen {
			counts[raw] = 1
			names = append(names, raw)
			continue
		}
		if n == 1 {
			for i, prev := range names {
				if prev == raw {
					names[i] = raw + "_1"
					break
				}
			}
		}
		counts[raw] = n + 1
		names = append(names, fmt.Sprintf("%s_%d", raw, n+1))
	}
	return names
}
