package types

// Config holds backend selection and parameters for Store.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// UnitScale selects how internal units convert to engineering units.
type UnitScale string

// Unit scales. Exactly one is in effect for a session.
const (
	// UnitsNanometres treats internal units as nanometres and writes
	// millimetres.
	UnitsNanometres UnitScale = "nanometres"
	// UnitsDeciMils is the legacy scale that rescales through the inch/mm
	// constant.
	UnitsDeciMils UnitScale = "decimils"
)

// AngleConvention selects how stored angles convert to degrees.
type AngleConvention string

// Angle conventions.
const (
	// AnglesTenths stores angles in tenths of a degree.
	AnglesTenths AngleConvention = "tenths"
	// AnglesDegrees stores angles in degrees.
	AnglesDegrees AngleConvention = "degrees"
)

// FormatConfig carries the two switches the unit formatter is built with.
type FormatConfig struct {
	Units  UnitScale       `json:"units" yaml:"units"`
	Angles AngleConvention `json:"angles" yaml:"angles"`
}

// DefaultFormatConfig is nanometres with tenths-of-degree angles.
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{Units: UnitsNanometres, Angles: AnglesTenths}
}

// Validate returns ErrUnitsUnknown or ErrAnglesUnknown when a switch holds
// an unrecognized value.
func (c FormatConfig) Validate() error {
	switch c.Units {
	case UnitsNanometres, UnitsDeciMils:
	default:
		return ErrUnitsUnknown
	}
	switch c.Angles {
	case AnglesTenths, AnglesDegrees:
	default:
		return ErrAnglesUnknown
	}
	return nil
}
