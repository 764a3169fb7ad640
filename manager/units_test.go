package manager

import "testing"

func TestResolveUnits(t *testing.T) {
	metric := ResolveUnits(Metric)
	want := Units{TemperatureParam: "celsius", WindParam: "kmh", TemperatureSymbol: "°C", WindSymbol: "km/h"}
	if metric != want {
		t.Fatalf("ResolveUnits(Metric) = %+v, want %+v", metric, want)
	}

	imperial := ResolveUnits(Imperial)
	want = Units{TemperatureParam: "fahrenheit", WindParam: "mph", TemperatureSymbol: "°F", WindSymbol: "mph"}
	if imperial != want {
		t.Fatalf("ResolveUnits(Imperial) = %+v, want %+v", imperial, want)
	}

	// there is no third state: anything else resolves as metric
	if got := ResolveUnits(UnitSystem("nautical")); got != ResolveUnits(Metric) {
		t.Fatalf("unknown system resolved to %+v", got)
	}
}

func TestParseUnitSystem(t *testing.T) {
	if got, err := ParseUnitSystem("metric"); err != nil || got != Metric {
		t.Fatalf("ParseUnitSystem(metric) = %q, %v", got, err)
	}
	if got, err := ParseUnitSystem("imperial"); err != nil || got != Imperial {
		t.Fatalf("ParseUnitSystem(imperial) = %q, %v", got, err)
	}
	if _, err := ParseUnitSystem("kelvin"); err == nil {
		t.Fatal("ParseUnitSystem(kelvin) did not fail")
	}
}
