package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xiaot623/neuralthreads/internal/adapter/stylist"
	"github.com/xiaot623/neuralthreads/internal/domain"
)

const bookLongDesc string = `Request a session with a designer.

The booking is created as pending.

Examples:
  neuralthreads book --customer c1 --designer d7 --service fitting --date 2030-05-01T10:00:00Z`

type bookCommander struct {
	server  string
	req     domain.BookingRequest
	timeout time.Duration
}

func newBookCmd() *cobra.Command {
	cmder := &bookCommander{}

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a designer",
		Long:  bookLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&cmder.server, "server", "s", "http://localhost:8080", "Stylist backend URL")
	cmd.Flags().DurationVar(&cmder.timeout, "timeout", 30*time.Second, "Request timeout")
	cmd.Flags().StringVar(&cmder.req.CustomerID, "customer", "", "Customer user id")
	cmd.Flags().StringVar(&cmder.req.DesignerID, "designer", "", "Designer user id")
	cmd.Flags().StringVar(&cmder.req.ServiceType, "service", "", "Service type")
	cmd.Flags().StringVar(&cmder.req.BookingDate, "date", "", "Booking date (ISO-8601)")
	cmd.Flags().StringVar(&cmder.req.Notes, "notes", "", "Notes for the designer")
	for _, name := range []string{"customer", "designer", "service", "date"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func (c *bookCommander) run(ctx context.Context, out io.Writer) error {
	var missing []string
	for flag, value := range map[string]string{
		"customer": c.req.CustomerID,
		"designer": c.req.DesignerID,
		"service":  c.req.ServiceType,
		"date":     c.req.BookingDate,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, "--"+flag)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}

	client := stylist.NewClient(c.server, c.timeout)
	booking, err := client.CreateBooking(ctx, c.req)
	if err != nil {
		return fmt.Errorf("could not create booking: %w", err)
	}

	fmt.Fprintf(out, "%s %s\n", boldGreen("Booked:"), booking.ID)
	fmt.Fprintf(out, "  designer: %s\n  service:  %s\n  date:     %s\n  status:   %s\n",
		booking.DesignerID, booking.ServiceType, booking.BookingDate.Format(time.RFC1123), booking.Status)
	return nil
}
