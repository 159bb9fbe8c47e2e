package main

import (
	"context"
	"fmt"

	"github.com/noguchitomoya/Google-meet/internal/meeting"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch the configured calendar",
	Long:  `Fetch the configured calendar to confirm the service account can read it.`,
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	info, err := runWithAdmin(cmd, func(ctx context.Context, admin calendarAdmin) (*meeting.CalendarInfo, error) {
		return admin.Calendar(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to fetch calendar: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Calendar is reachable")
	printCalendar(cmd, info)
	return nil
}
