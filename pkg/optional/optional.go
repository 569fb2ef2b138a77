// Package optional provides a present-or-absent value used for metrics that
// can be mathematically undefined. An absent value carries no number at all,
// so NaN and infinities never travel as "valid" results.
package optional

import (
	"encoding/json"
	"fmt"

	"github.com/iwvelando/pv-viability/pkg/mathutil"
)

// Number constrains the element types a Value can hold.
type Number interface {
	~int | ~float64
}

// Value is either a present number or explicitly absent. The zero Value is
// absent.
type Value[T Number] struct {
	v  T
	ok bool
}

// Float is an optional float64.
type Float = Value[float64]

// Int is an optional int.
type Int = Value[int]

// Of returns a present Value holding v.
func Of[T Number](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// None returns an absent Value.
func None[T Number]() Value[T] {
	return Value[T]{}
}

// Finite returns a present Float for finite inputs and an absent one for
// NaN or infinities.
func Finite(v float64) Float {
	if !mathutil.IsFinite(v) {
		return None[float64]()
	}
	return Of(v)
}

// Get returns the held value and whether it is present.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.ok
}

// Present reports whether a value is held.
func (o Value[T]) Present() bool {
	return o.ok
}

// String renders the value, or "N/A" when absent.
func (o Value[T]) String() string {
	if !o.ok {
		return "N/A"
	}
	return fmt.Sprint(o.v)
}

var null = []byte("null")

// MarshalJSON encodes an absent value as null.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return null, nil
	}
	return json.Marshal(o.v)
}
