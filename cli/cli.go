package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"skywatch/config"
	"skywatch/manager"
)

// New builds the command tree: search, current and watch.
func New(forecaster manager.Forecaster, geocoder manager.Geocoder, locator manager.Locator, cfg *config.Config) (*cobra.Command, error) {
	defaultUnits, err := manager.ParseUnitSystem(cfg.Units)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:           "skywatch",
		Short:         "CLI application for current and near-term weather by city or device location",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("units", string(defaultUnits), "unit system: metric or imperial")

	search := &cobra.Command{
		Use:   "search <city>",
		Short: "List places matching a city name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			places, err := geocoder.Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(places) == 0 {
				cmd.Printf("no places match %q\n", query)
				return nil
			}

			for i, place := range places {
				cmd.Printf("%d. %-28s %9.4f %9.4f\n", i+1, place.Label(), place.Latitude, place.Longitude)
			}

			return nil
		},
	}

	current := &cobra.Command{
		Use:   "current [city]",
		Short: "Fetch and print the weather once",
		RunE: func(cmd *cobra.Command, args []string) error {
			place, units, err := resolve(cmd, args, geocoder, locator)
			if err != nil {
				return err
			}

			snapshot, err := forecaster.Fetch(cmd.Context(), place, units)
			if err != nil {
				return fmt.Errorf("could not update weather: %w", err)
			}

			render(cmd, place, units, snapshot, cfg.Refresh.Hours)
			return nil
		},
	}

	watch := &cobra.Command{
		Use:   "watch [city]",
		Short: "Keep the weather fresh, re-fetching every refresh interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			place, units, err := resolve(cmd, args, geocoder, locator)
			if err != nil {
				return err
			}

			session := manager.NewSession(cmd.Context(), forecaster, manager.SessionConfig{
				Units:    units,
				Interval: cfg.Refresh.Every,
				Window:   cfg.Refresh.Hours,
			})
			defer session.Close()

			session.Select(place)

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case state, ok := <-session.Updates():
					if !ok {
						return nil
					}
					renderState(cmd, state, cfg.Refresh.Hours)
				}
			}
		},
	}

	for _, cmd := range []*cobra.Command{current, watch} {
		cmd.Flags().Bool("here", false, "use the device location instead of a city name")
	}

	root.AddCommand(search, current, watch)

	return root, nil
}

// resolve turns the command line into a selected place: either the device
// location (--here) or the best search match for the city arguments.
func resolve(cmd *cobra.Command, args []string, geocoder manager.Geocoder, locator manager.Locator) (manager.Place, manager.UnitSystem, error) {
	unitsFlag, err := cmd.Flags().GetString("units")
	if err != nil {
		return manager.Place{}, "", err
	}
	units, err := manager.ParseUnitSystem(unitsFlag)
	if err != nil {
		return manager.Place{}, "", err
	}

	here, err := cmd.Flags().GetBool("here")
	if err != nil {
		return manager.Place{}, "", err
	}

	if here {
		place, err := locatePlace(cmd.Context(), geocoder, locator)
		if err != nil {
			return manager.Place{}, "", err
		}
		return place, units, nil
	}

	if len(args) == 0 {
		return manager.Place{}, "", fmt.Errorf("pass a city name or --here")
	}
	query := strings.Join(args, " ")

	places, err := geocoder.Search(cmd.Context(), query)
	if err != nil {
		return manager.Place{}, "", err
	}
	if len(places) == 0 {
		return manager.Place{}, "", fmt.Errorf("%w for %q", manager.ErrNoResults, query)
	}

	return places[0], units, nil
}

func locatePlace(ctx context.Context, geocoder manager.Geocoder, locator manager.Locator) (manager.Place, error) {
	latitude, longitude, err := locator.Locate(ctx)
	if err != nil {
		return manager.Place{}, err
	}
	return geocoder.Reverse(ctx, latitude, longitude), nil
}

func renderState(cmd *cobra.Command, state manager.State, hours int) {
	switch state.Status {
	case manager.StatusLoading:
		// quiet; the previous rendering stays valid until a result lands
	case manager.StatusError:
		cmd.Printf("WARN\t\t%s\n", state.Message)
	case manager.StatusReady:
		cmd.Printf("\n")
		render(cmd, state.Place, state.Units, *state.Snapshot, hours)
	}
}

func render(cmd *cobra.Command, place manager.Place, units manager.UnitSystem, snapshot manager.Snapshot, hours int) {
	resolved := manager.ResolveUnits(units)
	current := snapshot.Current

	cmd.Printf("LOCATION\t%s (%.4f, %.4f)\n", place.Label(), place.Latitude, place.Longitude)
	cmd.Printf("UPDATED\t\t%s %s\n", current.ObservedAt.Format("Mon 15:04"), snapshot.Timezone)
	cmd.Printf("SKY\t\t%s\n", manager.DescribeWeatherCode(current.WeatherCode))
	cmd.Printf("TEMP\t\t%.1f%s (feels like %.1f%s)\n",
		current.Temperature, resolved.TemperatureSymbol,
		current.ApparentTemperature, resolved.TemperatureSymbol,
	)
	cmd.Printf("WIND\t\t%.0f %s\n", current.WindSpeed, resolved.WindSymbol)
	cmd.Printf("HUMIDITY\t%.0f%%\n", current.RelativeHumidity)

	window := manager.NextHours(snapshot.Hourly, current.ObservedAt, hours)
	if len(window) == 0 {
		return
	}

	cmd.Printf("HOUR\t\t")
	for _, point := range window {
		cmd.Printf("%3s  ", point.Time.Format("15"))
	}
	cmd.Printf("\nTEMP\t\t")
	for _, point := range window {
		cmd.Printf("%3.0f  ", point.Temperature)
	}
	cmd.Printf("\nRAIN%%\t\t")
	for _, point := range window {
		cmd.Printf("%3.0f  ", point.PrecipitationProbability)
	}
	cmd.Printf("\n")
}
