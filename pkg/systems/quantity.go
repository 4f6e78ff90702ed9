package systems

import (
	"strconv"
)

// Quantity is a magnitude with a unit symbol.
type Quantity struct {
	Magnitude float64
	Unit      string
}

// Q returns a Quantity.
func Q(magnitude float64, unit string) Quantity {
	return Quantity{Magnitude: magnitude, Unit: unit}
}

// String is the compact form, "2.5 m/s".
func (q Quantity) String() string {
	m := strconv.FormatFloat(q.Magnitude, 'g', -1, 64)
	if q.Unit == "" {
		return m
	}
	return m + " " + q.Unit
}
