package manager

import "fmt"

// UnitSystem selects between the two supported measurement systems.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// Units carries the API parameters and display symbols for a unit system.
type Units struct {
	TemperatureParam  string
	WindParam         string
	TemperatureSymbol string
	WindSymbol        string
}

// ResolveUnits maps a unit system to its API parameters and symbols.
// Unknown values resolve as metric.
func ResolveUnits(system UnitSystem) Units {
	if system == Imperial {
		return Units{
			TemperatureParam:  "fahrenheit",
			WindParam:         "mph",
			TemperatureSymbol: "°F",
			WindSymbol:        "mph",
		}
	}
	return Units{
		TemperatureParam:  "celsius",
		WindParam:         "kmh",
		TemperatureSymbol: "°C",
		WindSymbol:        "km/h",
	}
}

// ParseUnitSystem validates a user-supplied unit system name.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(s) {
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	}
	return "", fmt.Errorf("unknown unit system %q (use %q or %q)", s, Metric, Imperial)
}
