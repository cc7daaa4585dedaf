package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Scale names a temperature scale.
type Scale string

const (
	Celsius    Scale = "celsius"
	Fahrenheit Scale = "fahrenheit"
	Kelvin     Scale = "kelvin"

	absoluteZeroCelsius = 273.15
)

// ErrBelowAbsoluteZero is returned for temperatures colder than 0 K.
var ErrBelowAbsoluteZero = errors.New("temperature below absolute zero")

// ParseScale accepts full names or the single-letter abbreviations C, F and K.
func ParseScale(raw string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "c", "celsius":
		return Celsius, nil
	case "f", "fahrenheit":
		return Fahrenheit, nil
	case "k", "kelvin":
		return Kelvin, nil
	}
	return "", fmt.Errorf("unknown temperature scale %q", raw)
}

func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }

func CelsiusToKelvin(c float64) float64 { return c + absoluteZeroCelsius }

func KelvinToCelsius(k float64) float64 { return k - absoluteZeroCelsius }

func FahrenheitToKelvin(f float64) float64 { return CelsiusToKelvin(FahrenheitToCelsius(f)) }

func KelvinToFahrenheit(k float64) float64 { return CelsiusToFahrenheit(KelvinToCelsius(k)) }

// IsValidTemperature reports whether kelvin is at or above absolute zero.
func IsValidTemperature(kelvin float64) bool {
	return kelvin >= 0
}

// ConvertTemperature converts value between scales, rejecting physically impossible input.
func ConvertTemperature(value float64, from, to Scale) (float64, error) {
	kelvin, err := toKelvin(value, from)
	if err != nil {
		return 0, err
	}
	if !IsValidTemperature(kelvin) {
		return 0, fmt.Errorf("%w: %g %s", ErrBelowAbsoluteZero, value, from)
	}
	if from == to {
		return value, nil
	}
	switch to {
	case Celsius:
		if from == Fahrenheit {
			return FahrenheitToCelsius(value), nil
		}
		return KelvinToCelsius(kelvin), nil
	case Fahrenheit:
		if from == Celsius {
			return CelsiusToFahrenheit(value), nil
		}
		return KelvinToFahrenheit(kelvin), nil
	case Kelvin:
		return kelvin, nil
	}
	return 0, fmt.Errorf("unknown temperature scale %q", to)
}

func toKelvin(value float64, from Scale) (float64, error) {
	switch from {
	case Celsius:
		return CelsiusToKelvin(value), nil
	case Fahrenheit:
		return FahrenheitToKelvin(value), nil
	case Kelvin:
		return value, nil
	}
	return 0, fmt.Errorf("unknown temperature scale %q", from)
}
