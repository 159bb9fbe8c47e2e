package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/noguchitomoya/Google-meet/internal/config"
	"github.com/noguchitomoya/Google-meet/internal/meeting"
	"github.com/spf13/cobra"
)

// calendarAdmin is the slice of meeting.GoogleProvider the commands use.
type calendarAdmin interface {
	Calendar(ctx context.Context) (*meeting.CalendarInfo, error)
	Subscribe(ctx context.Context) (*meeting.CalendarInfo, error)
}

var (
	requestTimeout time.Duration

	newCalendarAdmin = defaultCalendarAdmin
)

var rootCmd = &cobra.Command{
	Use:   "calendarctl",
	Short: "Inspect the Google Calendar used for coaching sessions",
	Long: `calendarctl checks that the service account configured through
GOOGLE_SERVICE_ACCOUNT_EMAIL, GOOGLE_SERVICE_ACCOUNT_KEY and GOOGLE_CALENDAR_ID
can reach the coaching calendar, and subscribes it when needed.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&requestTimeout, "timeout", 15*time.Second, "timeout for each Google API request")
}

func defaultCalendarAdmin(ctx context.Context) (calendarAdmin, error) {
	cfg := config.LoadMeetingConfig()
	if meeting.SelectKind(cfg) != meeting.KindGoogle {
		return nil, fmt.Errorf("%w: set GOOGLE_SERVICE_ACCOUNT_EMAIL, GOOGLE_SERVICE_ACCOUNT_KEY and GOOGLE_CALENDAR_ID",
			meeting.ErrGoogleNotConfigured)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return meeting.NewGoogleProvider(ctx, cfg, logger)
}

func runWithAdmin(cmd *cobra.Command, action func(context.Context, calendarAdmin) (*meeting.CalendarInfo, error)) (*meeting.CalendarInfo, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	admin, err := newCalendarAdmin(ctx)
	if err != nil {
		return nil, err
	}
	return action(ctx, admin)
}

func printCalendar(cmd *cobra.Command, info *meeting.CalendarInfo) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID: %s\n", info.ID)
	fmt.Fprintf(out, "Summary: %s\n", info.Summary)
	fmt.Fprintf(out, "Time zone: %s\n", info.TimeZone)
}
