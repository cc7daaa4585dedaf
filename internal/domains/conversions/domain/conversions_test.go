package domain

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTemperatureFormulas(t *testing.T) {
	assert.InDelta(t, 212.0, CelsiusToFahrenheit(100), 1e-9)
	assert.InDelta(t, 0.0, FahrenheitToCelsius(32), 1e-9)
	assert.InDelta(t, 273.15, CelsiusToKelvin(0), 1e-9)
	assert.InDelta(t, -273.15, KelvinToCelsius(0), 1e-9)
	assert.InDelta(t, 273.15, FahrenheitToKelvin(32), 1e-9)
	assert.InDelta(t, -459.67, KelvinToFahrenheit(0), 1e-9)
	assert.True(t, IsValidTemperature(0))
	assert.False(t, IsValidTemperature(-0.01))
}

func TestConvertTemperature(t *testing.T) {
	got, err := ConvertTemperature(100, Celsius, Fahrenheit)
	require.NoError(t, err)
	assert.InDelta(t, 212.0, got, 1e-9)

	got, err = ConvertTemperature(50, Fahrenheit, Fahrenheit)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got)

	_, err = ConvertTemperature(-300, Celsius, Kelvin)
	assert.ErrorIs(t, err, ErrBelowAbsoluteZero)

	_, err = ConvertTemperature(1, Scale("rankine"), Kelvin)
	assert.Error(t, err)
}

func TestConvertTemperature_RoundTrips(t *testing.T) {
	scales := []Scale{Celsius, Fahrenheit, Kelvin}
	rapid.Check(t, func(t *rapid.T) {
		from := rapid.SampledFrom(scales).Draw(t, "from")
		to := rapid.SampledFrom(scales).Draw(t, "to")
		kelvin := rapid.Float64Range(1, 10000).Draw(t, "kelvin")
		value, err := ConvertTemperature(kelvin, Kelvin, from)
		if err != nil {
			t.Fatal(err)
		}
		there, err := ConvertTemperature(value, from, to)
		if err != nil {
			t.Fatal(err)
		}
		back, err := ConvertTemperature(there, to, from)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(back-value) > 1e-6 {
			t.Fatalf("%g %s -> %g %s -> %g", value, from, there, to, back)
		}
	})
}

func TestParseScale(t *testing.T) {
	s, err := ParseScale(" F ")
	require.NoError(t, err)
	assert.Equal(t, Fahrenheit, s)
	_, err = ParseScale("x")
	assert.Error(t, err)
}

func TestConvertUnit(t *testing.T) {
	cases := map[string]float64{
		"meters-to-feet":             3.28084,
		"kilometers-to-miles":        0.621371,
		"kilograms-to-pounds":        2.20462,
		"grams-to-ounces":            0.035274,
		"liters-to-gallons":          0.264172,
		"milliliters-to-fluidounces": 0.033814,
	}
	for name, want := range cases {
		got, err := ConvertUnit(name, 1)
		require.NoError(t, err, name)
		assert.InDelta(t, want, got, 1e-12, name)
	}
	assert.Len(t, UnitConversions(), len(cases))

	_, err := ConvertUnit("feet-to-meters", 1)
	assert.Error(t, err)
}

func TestCalculator(t *testing.T) {
	var c Calculator

	got, err := c.Apply(Add, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
	got, err = c.Apply("Multiply", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)
	assert.Equal(t, -1.0, c.Subtract(2, 3))

	_, err = c.Divide(1, 0)
	assert.ErrorIs(t, err, ErrDivideByZero)
	_, err = c.Apply("modulo", 1, 2)
	assert.ErrorIs(t, err, ErrUnknownOperator)

	c.StoreInMemory(42)
	assert.Equal(t, 42.0, c.RecallMemory())
	c.ClearMemory()
	assert.Equal(t, 0.0, c.RecallMemory())
}

func TestCalculator_ConcurrentMemory(t *testing.T) {
	var c Calculator
	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			c.StoreInMemory(v)
			_ = c.RecallMemory()
		}(float64(i))
	}
	wg.Wait()
	got := c.RecallMemory()
	assert.True(t, got >= 1 && got <= 20)
}
