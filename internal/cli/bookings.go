package cli

import (
	"fmt"
	"time"

	"github.com/Domenick1991/airquery/internal/repository"
	"github.com/Domenick1991/airquery/internal/service/booking"
	"github.com/spf13/cobra"
)

func newBookingsCmd() *cobra.Command {
	var (
		file   string
		params booking.ListParams
	)
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List bookings as the booking table does",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service := booking.NewBookingService(repository.NewFileBookingRepository(file), nil)
			result, err := service.List(cmd.Context(), params)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.PersistentFlags().StringVarP(&file, "file", "i", "", "Bookings JSON file, plain array or API envelope (required)")
	_ = cmd.MarkPersistentFlagRequired("file")
	cmd.Flags().StringVarP(&params.Search, "query", "q", "", "Free text over booking id, passenger name, origin and destination")
	cmd.Flags().StringVar(&params.Status, "status", booking.StatusAll, "Booking status or \"all\"")
	cmd.Flags().StringVarP(&params.SortKey, "sort", "s", "", "Sort field (default booking_date_time, newest first)")
	cmd.Flags().StringVarP(&params.Direction, "direction", "d", "", "asc or desc")

	cmd.AddCommand(newManageCmd(&file), newFindCmd(&file))
	return cmd
}

func newManageCmd(file *string) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "manage",
		Short: "Split bookings into upcoming, past and cancelled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := parseNow(at)
			if err != nil {
				return err
			}
			service := booking.NewBookingService(repository.NewFileBookingRepository(*file), nil)
			view, err := service.Manage(cmd.Context(), now)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().StringVar(&at, "now", "", "Reference time in RFC 3339 (default current time)")
	return cmd
}

func newFindCmd(file *string) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "find REFERENCE",
		Short: "Look up one booking by reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now, err := parseNow(at)
			if err != nil {
				return err
			}
			service := booking.NewBookingService(repository.NewFileBookingRepository(*file), nil,
				booking.WithClock(func() time.Time { return now }))
			found, err := service.Find(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), found)
		},
	}
	cmd.Flags().StringVar(&at, "now", "", "Reference time in RFC 3339 (default current time)")
	return cmd
}

func parseNow(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: %w", value, err)
	}
	return t, nil
}
