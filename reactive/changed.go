package reactive

import "reflect"

// HasChanged is the default calming customization point: it decides
// whether a recomputed signal value constitutes a change worth
// propagating. Types that support == get an efficient direct comparison;
// everything else (slices, maps, funcs, and other non-comparable types)
// falls back to reflect.DeepEqual, which is conservative — two values that
// DeepEqual cannot prove equal are treated as changed, matching the rule
// that non-equality-comparable types default to "always changed".
func HasChanged[S any](old, new S) bool {
	if ok, equal := tryComparableEqual(old, new); ok {
		return !equal
	}
	return !reflect.DeepEqual(old, new)
}

func tryComparableEqual(old, new interface{}) (ok, equal bool) {
	defer func() {
		if recover() != nil {
			ok, equal = false, false
		}
	}()
	ov := reflect.ValueOf(old)
	if !ov.IsValid() {
		nv := reflect.ValueOf(new)
		return true, !nv.IsValid()
	}
	if !ov.Comparable() {
		return false, false
	}
	return true, ov.Equal(reflect.ValueOf(new))
}
