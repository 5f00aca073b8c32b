package calc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Constant is a named mathematical or physical constant.
type Constant int

const (
	ConstPi Constant = iota
	ConstTau
	ConstE
	ConstPhi
	ConstC  // speed of light (m/s)
	ConstH  // Planck (Js)
	ConstG  // gravitational constant (m^3/(kg s^2))
	ConstR  // gas constant (J/(mol K))
	ConstNa // Avogadro's number (mol^-1)
	ConstKb // Boltzmann constant (J/K)
	ConstEc // electron charge (C)
)

// constantOrder fixes the listing order for Constants().
var constantOrder = []Constant{
	ConstPi, ConstTau, ConstE, ConstPhi,
	ConstC, ConstH, ConstG, ConstR, ConstNa, ConstKb, ConstEc,
}

var constantNames = map[Constant]string{
	ConstPi:  "pi",
	ConstTau: "tau",
	ConstE:   "e",
	ConstPhi: "phi",
	ConstC:   "c",
	ConstH:   "h",
	ConstG:   "g",
	ConstR:   "r",
	ConstNa:  "na",
	ConstKb:  "kb",
	ConstEc:  "ec",
}

var constantValues = map[Constant]decimal.Decimal{
	ConstPi:  decimal.RequireFromString("3.1415926535897932384626433832795028841971"),
	ConstTau: decimal.RequireFromString("6.2831853071795864769252867665590057683942"),
	ConstE:   decimal.RequireFromString("2.7182818284590452353602874713526624977572"),
	ConstPhi: decimal.RequireFromString("1.6180339887498948482045868343656381177203"),
	ConstC:   decimal.RequireFromString("299792458"),
	ConstH:   decimal.RequireFromString("6.62607015e-34"),
	ConstG:   decimal.RequireFromString("6.67430e-11"),
	ConstR:   decimal.RequireFromString("8.314462618"),
	ConstNa:  decimal.RequireFromString("6.02214076e23"),
	ConstKb:  decimal.RequireFromString("1.380649e-23"),
	ConstEc:  decimal.RequireFromString("1.602176634e-19"),
}

func (c Constant) String() string {
	if name, ok := constantNames[c]; ok {
		return name
	}
	return fmt.Sprintf("constant(%d)", int(c))
}

// Value returns the constant's decimal value.
func (c Constant) Value() decimal.Decimal {
	return constantValues[c]
}

// LookupConstant resolves a case-insensitive identifier to a constant.
func LookupConstant(ident string) (Constant, error) {
	lowered := strings.ToLower(ident)
	for c, name := range constantNames {
		if name == lowered {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown math constant: %s", ident)
}

// Constants lists every supported constant in a stable order.
func Constants() []Constant {
	out := make([]Constant, len(constantOrder))
	copy(out, constantOrder)
	return out
}
