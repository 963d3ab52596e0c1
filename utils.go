package lightscene

import (
	"reflect"

	"github.com/chewxy/math32"
)

// ToRadians is a helper function to easily convert degrees to radians (which is what node rotations use).
func ToRadians(degrees float32) float32 {
	return math32.Pi * degrees / 180
}

// ToDegrees is a helper function to easily convert radians to degrees for human readability.
func ToDegrees(radians float32) float32 {
	return radians / math32.Pi * 180
}

func clamp[V float32 | int](value, min, max V) V {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}

// isNil reports whether v is nil, including a typed nil pointer stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}
