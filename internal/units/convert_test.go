package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestCelsiusToFahrenheit(t *testing.T) {
	assert.Nil(t, CelsiusToFahrenheit(nil))
	assert.Equal(t, 68.0, *CelsiusToFahrenheit(fp(20)))
	assert.Equal(t, 32.0, *CelsiusToFahrenheit(fp(0)))
	assert.Equal(t, -40.0, *CelsiusToFahrenheit(fp(-40)))
}

func TestFahrenheitToCelsius(t *testing.T) {
	assert.Nil(t, FahrenheitToCelsius(nil))
	assert.Equal(t, 20.0, *FahrenheitToCelsius(fp(68)))
	assert.Equal(t, 0.0, *FahrenheitToCelsius(fp(32)))
}

// A Celsius value pushed through Fahrenheit and back must land within
// one degree of where it started, and stay put on re-application.
func TestRoundTripWithinOneDegree(t *testing.T) {
	for c := -60.0; c <= 60.0; c++ {
		f := CelsiusToFahrenheit(fp(c))
		require.NotNil(t, f)
		back := FahrenheitToCelsius(f)
		require.NotNil(t, back)
		assert.InDelta(t, c, *back, 1.0, "round trip of %.0fC", c)

		again := FahrenheitToCelsius(CelsiusToFahrenheit(back))
		assert.Equal(t, *back, *again, "re-application of %.0fC drifted", c)
	}
}

func TestConvert(t *testing.T) {
	t.Run("identity for equal units", func(t *testing.T) {
		v := fp(72.5)
		assert.Equal(t, v, Convert(v, Fahrenheit, Fahrenheit))
		assert.Nil(t, Convert(nil, Fahrenheit, Fahrenheit))
		assert.Nil(t, Convert(nil, Celsius, Fahrenheit))
	})

	t.Run("F to C", func(t *testing.T) {
		assert.Equal(t, 20.0, *Convert(fp(68), Fahrenheit, Celsius))
	})

	t.Run("C to F", func(t *testing.T) {
		assert.Equal(t, 68.0, *Convert(fp(20), Celsius, Fahrenheit))
	})

	t.Run("unknown unit pair passes through", func(t *testing.T) {
		assert.Equal(t, 10.0, *Convert(fp(10), "K", Celsius))
	})
}

func TestParseTemp(t *testing.T) {
	assert.Equal(t, 20.0, *parseTemp("68", Fahrenheit, Celsius))
	assert.Equal(t, 72.0, *parseTemp("72", Fahrenheit, Fahrenheit))
	assert.Nil(t, parseTemp("warm", Fahrenheit, Celsius))
	assert.Nil(t, parseTemp("", Fahrenheit, Celsius))
}

func TestConvertWindSpeed(t *testing.T) {
	t.Run("missing value", func(t *testing.T) {
		speed, label := ConvertWindSpeed(nil, "wmoUnit:m_s-1")
		assert.Nil(t, speed)
		assert.Equal(t, WindLabelNone, label)
	})

	t.Run("meters per second", func(t *testing.T) {
		speed, label := ConvertWindSpeed(fp(10), "wmoUnit:m_s-1")
		require.NotNil(t, speed)
		assert.Equal(t, 22, *speed) // round(10*2.23694)
		assert.Equal(t, WindLabelMPH, label)
	})

	t.Run("kilometers per hour", func(t *testing.T) {
		speed, label := ConvertWindSpeed(fp(5), "wmoUnit:km_h-1")
		require.NotNil(t, speed)
		assert.Equal(t, 3, *speed) // round(5*0.621371)
		assert.Equal(t, WindLabelMPH, label)
	})

	t.Run("unknown unit code is never guessed", func(t *testing.T) {
		speed, label := ConvertWindSpeed(fp(10), "wmoUnit:kt")
		assert.Nil(t, speed)
		assert.Equal(t, WindLabelNone, label)
	})

	t.Run("zero speed stays present", func(t *testing.T) {
		speed, label := ConvertWindSpeed(fp(0), "wmoUnit:km_h-1")
		require.NotNil(t, speed)
		assert.Equal(t, 0, *speed)
		assert.Equal(t, WindLabelMPH, label)
	})
}

func TestDegreesToCardinal(t *testing.T) {
	cases := []struct {
		degrees float64
		want    string
	}{
		{0, "N"},
		{360, "N"},
		{348.75, "N"},
		{11.24, "N"},
		{11.26, "NNE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{348.74, "NNW"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DegreesToCardinal(&tc.degrees), "degrees=%.2f", tc.degrees)
	}

	assert.Equal(t, "", DegreesToCardinal(nil))
}

func TestMillimetersToInches(t *testing.T) {
	assert.Equal(t, 0.0, MillimetersToInches(0))
	assert.Equal(t, 1.0, MillimetersToInches(25.4))
	assert.Equal(t, 0.1, MillimetersToInches(2.54))
	assert.Equal(t, 0.03, MillimetersToInches(0.8))
}

func TestRound(t *testing.T) {
	assert.Nil(t, Round(nil))
	assert.Equal(t, 3, *Round(fp(3.4)))
	assert.Equal(t, 4, *Round(fp(3.5)))
	assert.Equal(t, -4, *Round(fp(-3.5)))
}
