package units

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pcbcore/pkg/types"
)

func mustFormatter(t *testing.T, u types.UnitScale, a types.AngleConvention) *Formatter {
	t.Helper()
	f, err := NewFormatter(types.FormatConfig{Units: u, Angles: a})
	require.NoError(t, err)
	return f
}

func TestNewFormatter_RejectsUnknownSwitches(t *testing.T) {
	_, err := NewFormatter(types.FormatConfig{Units: "cubits", Angles: types.AnglesTenths})
	assert.ErrorIs(t, err, types.ErrUnitsUnknown)

	_, err = NewFormatter(types.FormatConfig{Units: types.UnitsNanometres, Angles: "grads"})
	assert.ErrorIs(t, err, types.ErrAnglesUnknown)

	assert.Equal(t, types.DefaultFormatConfig(), Default().Config())
}

func TestFormatIU_Nanometres(t *testing.T) {
	f := mustFormatter(t, types.UnitsNanometres, types.AnglesTenths)

	tests := []struct {
		iu   int
		want string
	}{
		{0, "0"},
		{1, "0.000001"},
		{-1, "-0.000001"},
		{10, "0.00001"},
		{99, "0.000099"},
		{100, "0.0001"},
		{101, "0.000101"},
		{-50, "-0.00005"},
		{100000, "0.1"},
		{250000, "0.25"},
		{1000000, "1"},
		{-1500000, "-1.5"},
		{25400000, "25.4"},
		{123456789, "123.456789"},
		{2147483647, "2147.483647"},
		{1234567890123, "1234567.89"},
		{12345678900000000, "1.23456789e+10"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.iu), func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatIU(tt.iu))
		})
	}
}

func TestFormatIU_DeciMils(t *testing.T) {
	f := mustFormatter(t, types.UnitsDeciMils, types.AnglesTenths)

	tests := []struct {
		iu   int
		want string
	}{
		{0, "0"},
		{1, "0.0003937007874"},
		{2540, "1"},
		{25400000, "10000"},
		{-127, "-0.05"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.iu), func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatIU(tt.iu))
		})
	}
}

func TestFormatIU_StripKeepsFractionDigit(t *testing.T) {
	f := Default()
	got := f.FormatIU(100000)
	assert.Equal(t, "0.1", got)
	assert.False(t, strings.HasSuffix(got, "."))

	for _, iu := range []int{1, 7, 30, 99, 100, -100} {
		s := f.FormatIU(iu)
		assert.False(t, strings.HasSuffix(s, "0"), "%d -> %q", iu, s)
		assert.False(t, strings.HasSuffix(s, "."), "%d -> %q", iu, s)
		assert.NotContains(t, s, "e", "small values never use exponent notation")
	}
}

func TestFormatIU_RoundTrip(t *testing.T) {
	values := []int{0, 1, -1, 99, 100, 101, 1000000, 25400000, -25400000, 123456789, 2147483647}

	for _, scale := range []types.UnitScale{types.UnitsNanometres, types.UnitsDeciMils} {
		f := mustFormatter(t, scale, types.AnglesTenths)
		for _, iu := range values {
			t.Run(fmt.Sprintf("%s/%d", scale, iu), func(t *testing.T) {
				text := f.FormatIU(iu)
				got, err := f.ParseIU(text)
				require.NoError(t, err)
				assert.Equal(t, iu, got, "text %q", text)
			})
		}
	}
}

func TestFormatIU_ThresholdBoundary(t *testing.T) {
	f := Default()

	below := f.FormatIU(99)
	at := f.FormatIU(100)
	assert.Equal(t, "0.000099", below)
	assert.Equal(t, "0.0001", at)

	for iu, text := range map[int]string{99: below, 100: at} {
		got, err := f.ParseIU(text)
		require.NoError(t, err)
		assert.Equal(t, iu, got)
	}
}

func TestFormatPointAndSize(t *testing.T) {
	f := Default()

	assert.Equal(t, "1 2", f.FormatPoint(types.Pt(1000000, 2000000)))
	assert.Equal(t, "0 -0.5", f.FormatPoint(types.Pt(0, -500000)))
	assert.Equal(t, "1.6 0.000001", f.FormatSize(types.Size{Width: 1600000, Height: 1}))

	p := types.Pt(-3175000, 42)
	text := f.FormatPoint(p)
	assert.Equal(t, 1, strings.Count(text, " "))
	assert.NotContains(t, text, ",")
	assert.NotContains(t, text, "(")
	assert.Equal(t, f.FormatIU(p.X)+" "+f.FormatIU(p.Y), text)

	back, err := f.ParsePoint(text)
	require.NoError(t, err)
	assert.Equal(t, p, back)

	size, err := f.ParseSize("1.6 0.000001")
	require.NoError(t, err)
	assert.Equal(t, types.Size{Width: 1600000, Height: 1}, size)

	_, err = f.ParsePoint("1")
	assert.ErrorIs(t, err, types.ErrInvalidNumber)
	_, err = f.ParseSize("1 x")
	assert.ErrorIs(t, err, types.ErrInvalidNumber)
}

func TestFormatAngle(t *testing.T) {
	tenths := mustFormatter(t, types.UnitsNanometres, types.AnglesTenths)
	degrees := mustFormatter(t, types.UnitsNanometres, types.AnglesDegrees)

	assert.Equal(t, "90", tenths.FormatAngle(900))
	assert.Equal(t, degrees.FormatAngle(90.0), tenths.FormatAngle(900))
	assert.Equal(t, "900", degrees.FormatAngle(900))

	tests := []struct {
		f     *Formatter
		angle float64
		want  string
	}{
		{tenths, 0, "0"},
		{tenths, 450, "45"},
		{tenths, 1, "0.1"},
		{tenths, -900, "-90"},
		{tenths, 3599, "359.9"},
		{degrees, 33.333333333333, "33.33333333"},
		{degrees, 0.000001, "1e-06"},
		{degrees, 0.0001, "0.0001"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.FormatAngle(tt.angle))
		})
	}
}

func TestParseAngle(t *testing.T) {
	tenths := mustFormatter(t, types.UnitsNanometres, types.AnglesTenths)
	degrees := mustFormatter(t, types.UnitsNanometres, types.AnglesDegrees)

	got, err := tenths.ParseAngle("90")
	require.NoError(t, err)
	assert.Equal(t, 900.0, got)

	got, err = degrees.ParseAngle("90")
	require.NoError(t, err)
	assert.Equal(t, 90.0, got)

	_, err = tenths.ParseAngle("ninety")
	assert.ErrorIs(t, err, types.ErrInvalidNumber)
}

func TestParseIU_Invalid(t *testing.T) {
	f := Default()
	for _, text := range []string{"", "abc", "1,5", "NaN", "Inf", "-Inf"} {
		_, err := f.ParseIU(text)
		assert.ErrorIs(t, err, types.ErrInvalidNumber, "%q", text)
	}

	got, err := f.ParseIU(" 1.5 ")
	require.NoError(t, err)
	assert.Equal(t, 1500000, got)
}
