// Package units converts internal-unit coordinates and stored angles to the
// decimal text written to board files, and back.
//
// The output is the shortest text that survives a round trip at the file's
// precision: values at or below 0.0001 engineering units use ten fixed
// decimals with trailing zeros stripped, everything else uses ten
// significant digits. Text is plain ASCII and never locale dependent.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/pcbcore/pkg/types"
)

// Formatting constants. Downstream files depend on this exact output.
const (
	smallThreshold = 0.0001
	smallDecimals  = 10
	significant    = 10
)

// Scale constants.
const (
	nanometresPerMM = 1000000.0
	deciMilsPerInch = 10000.0
	mmPerInch       = 25.4
	tenthsPerDegree = 10.0
)

// Formatter writes internal units and angles as text. It is immutable and
// safe to share.
type Formatter struct {
	units  types.UnitScale
	angles types.AngleConvention
}

// NewFormatter builds a Formatter for cfg. It returns ErrUnitsUnknown or
// ErrAnglesUnknown for unrecognized switches.
func NewFormatter(cfg types.FormatConfig) (*Formatter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Formatter{units: cfg.Units, angles: cfg.Angles}, nil
}

// Default returns a Formatter for DefaultFormatConfig.
func Default() *Formatter {
	cfg := types.DefaultFormatConfig()
	return &Formatter{units: cfg.Units, angles: cfg.Angles}
}

// Config returns the switches the Formatter was built with.
func (f *Formatter) Config() types.FormatConfig {
	return types.FormatConfig{Units: f.units, Angles: f.angles}
}

// ToEngineering converts internal units to engineering units.
func (f *Formatter) ToEngineering(iu int) float64 {
	if f.units == types.UnitsDeciMils {
		return (float64(iu) * deciMilsPerInch) / mmPerInch / nanometresPerMM
	}
	return float64(iu) / nanometresPerMM
}

// FromEngineering converts engineering units to the nearest internal unit.
func (f *Formatter) FromEngineering(eng float64) int {
	if f.units == types.UnitsDeciMils {
		return int(math.Round(eng * nanometresPerMM * mmPerInch / deciMilsPerInch))
	}
	return int(math.Round(eng * nanometresPerMM))
}

// FormatIU writes one internal-unit value. Non-finite results are not
// expected and produce whatever strconv writes for them.
func (f *Formatter) FormatIU(iu int) string {
	eng := f.ToEngineering(iu)
	if eng != 0 && math.Abs(eng) <= smallThreshold {
		s := strconv.FormatFloat(eng, 'f', smallDecimals, 64)
		// The fixed layout always has a decimal point, so trimming stops there.
		return strings.TrimRight(s, "0")
	}
	return formatGeneral(eng)
}

// FormatPoint writes "x y".
func (f *Formatter) FormatPoint(p types.Point) string {
	return f.FormatIU(p.X) + " " + f.FormatIU(p.Y)
}

// FormatSize writes "width height".
func (f *Formatter) FormatSize(s types.Size) string {
	return f.FormatIU(s.Width) + " " + f.FormatIU(s.Height)
}

// FormatAngle writes a stored angle in degrees. Under the tenths convention
// the stored value is divided by ten first.
func (f *Formatter) FormatAngle(angle float64) string {
	if f.angles == types.AnglesTenths {
		angle /= tenthsPerDegree
	}
	return formatGeneral(angle)
}

// ParseIU reads an engineering-unit decimal and returns the nearest internal
// unit. It accepts anything FormatIU writes.
func (f *Formatter) ParseIU(text string) (int, error) {
	eng, err := parseFinite(text)
	if err != nil {
		return 0, err
	}
	return f.FromEngineering(eng), nil
}

// ParsePoint reads "x y" as written by FormatPoint.
func (f *Formatter) ParsePoint(text string) (types.Point, error) {
	x, y, err := f.parsePair(text)
	if err != nil {
		return types.Point{}, err
	}
	return types.Point{X: x, Y: y}, nil
}

// ParseSize reads "width height" as written by FormatSize.
func (f *Formatter) ParseSize(text string) (types.Size, error) {
	w, h, err := f.parsePair(text)
	if err != nil {
		return types.Size{}, err
	}
	return types.Size{Width: w, Height: h}, nil
}

// ParseAngle reads degrees and returns the value in the stored convention.
func (f *Formatter) ParseAngle(text string) (float64, error) {
	deg, err := parseFinite(text)
	if err != nil {
		return 0, err
	}
	if f.angles == types.AnglesTenths {
		return deg * tenthsPerDegree, nil
	}
	return deg, nil
}

func (f *Formatter) parsePair(text string) (int, int, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%q: want two values: %w", text, types.ErrInvalidNumber)
	}
	a, err := f.ParseIU(fields[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := f.ParseIU(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// formatGeneral matches C's "%.10g".
func formatGeneral(v float64) string {
	return strconv.FormatFloat(v, 'g', significant, 64)
}

func parseFinite(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", text, types.ErrInvalidNumber)
	}
	return v, nil
}
