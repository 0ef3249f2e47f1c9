package cli

import (
	"github.com/Domenick1991/airquery/internal/repository"
	"github.com/Domenick1991/airquery/internal/service/flights"
	"github.com/spf13/cobra"
)

type flightsOptions struct {
	file     string
	text     string
	airlines []string
	minPrice float64
	maxPrice float64
	stops    string
	depFrom  int
	depTo    int
	arrFrom  int
	arrTo    int
	sort     string
}

func newFlightsCmd() *cobra.Command {
	var opts flightsOptions
	cmd := &cobra.Command{
		Use:   "flights",
		Short: "Search flights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := flights.SearchParams{
				Text:     opts.text,
				Airlines: opts.airlines,
				Stops:    opts.stops,
				Sort:     opts.sort,
			}
			if cmd.Flags().Changed("min-price") {
				params.MinPrice = &opts.minPrice
			}
			if cmd.Flags().Changed("max-price") {
				params.MaxPrice = &opts.maxPrice
			}
			if cmd.Flags().Changed("dep-from") || cmd.Flags().Changed("dep-to") {
				params.Departure = &flights.HourRange{From: opts.depFrom, To: opts.depTo}
			}
			if cmd.Flags().Changed("arr-from") || cmd.Flags().Changed("arr-to") {
				params.Arrival = &flights.HourRange{From: opts.arrFrom, To: opts.arrTo}
			}

			service := flights.NewFlightService(repository.NewFileFlightRepository(opts.file), nil)
			result, err := service.Search(cmd.Context(), params)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "i", "", "Flights JSON file (required)")
	cmd.Flags().StringVarP(&opts.text, "query", "q", "", "Free text over airline, flight number, origin and destination")
	cmd.Flags().StringSliceVarP(&opts.airlines, "airline", "a", nil, "Airlines to include (repeatable)")
	cmd.Flags().Float64Var(&opts.minPrice, "min-price", flights.DefaultMinPrice, "Minimum price")
	cmd.Flags().Float64Var(&opts.maxPrice, "max-price", flights.DefaultMaxPrice, "Maximum price")
	cmd.Flags().StringVar(&opts.stops, "stops", flights.StopsAny, "Number of stops or \"any\"")
	cmd.Flags().IntVar(&opts.depFrom, "dep-from", 0, "Earliest departure hour")
	cmd.Flags().IntVar(&opts.depTo, "dep-to", 24, "Latest departure hour")
	cmd.Flags().IntVar(&opts.arrFrom, "arr-from", 0, "Earliest arrival hour")
	cmd.Flags().IntVar(&opts.arrTo, "arr-to", 24, "Latest arrival hour")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", flights.SortPriceAsc, "price-asc, price-desc, duration-asc, departure-asc or arrival-asc")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
