package main

import (
	"context"
	"fmt"

	"github.com/noguchitomoya/Google-meet/internal/meeting"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add the configured calendar to the service account's calendar list",
	Long: `Subscribe the service account to the configured calendar. A calendar
shared with a service account is not listed for it until this runs once.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	info, err := runWithAdmin(cmd, func(ctx context.Context, admin calendarAdmin) (*meeting.CalendarInfo, error) {
		return admin.Subscribe(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to add calendar: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Calendar added to the calendar list")
	printCalendar(cmd, info)
	return nil
}
