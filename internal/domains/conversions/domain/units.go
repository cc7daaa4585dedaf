package domain

import (
	"fmt"
	"sort"
)

// Conversion factors between metric and imperial units.
const (
	FeetPerMeter             = 3.28084
	MilesPerKilometer        = 0.621371
	PoundsPerKilogram        = 2.20462
	OuncesPerGram            = 0.035274
	GallonsPerLiter          = 0.264172
	FluidOuncesPerMilliliter = 0.033814
)

func MetersToFeet(m float64) float64 { return m * FeetPerMeter }

func KilometersToMiles(km float64) float64 { return km * MilesPerKilometer }

func KilogramsToPounds(kg float64) float64 { return kg * PoundsPerKilogram }

func GramsToOunces(g float64) float64 { return g * OuncesPerGram }

func LitersToGallons(l float64) float64 { return l * GallonsPerLiter }

func MillilitersToFluidOunces(ml float64) float64 { return ml * FluidOuncesPerMilliliter }

var unitConversions = map[string]func(float64) float64{
	"meters-to-feet":             MetersToFeet,
	"kilometers-to-miles":        KilometersToMiles,
	"kilograms-to-pounds":        KilogramsToPounds,
	"grams-to-ounces":            GramsToOunces,
	"liters-to-gallons":          LitersToGallons,
	"milliliters-to-fluidounces": MillilitersToFluidOunces,
}

// ConvertUnit applies the named conversion, e.g. "meters-to-feet".
func ConvertUnit(name string, value float64) (float64, error) {
	fn, ok := unitConversions[name]
	if !ok {
		return 0, fmt.Errorf("unknown conversion %q", name)
	}
	return fn(value), nil
}

// UnitConversions lists the supported conversion names in order.
func UnitConversions() []string {
	names := make([]string, 0, len(unitConversions))
	for name := range unitConversions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
