package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/noguchitomoya/Google-meet/internal/meeting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCalendarAdmin struct {
	info       *meeting.CalendarInfo
	err        error
	subscribed bool
}

func (s *stubCalendarAdmin) Calendar(context.Context) (*meeting.CalendarInfo, error) {
	return s.info, s.err
}

func (s *stubCalendarAdmin) Subscribe(context.Context) (*meeting.CalendarInfo, error) {
	s.subscribed = true
	return s.info, s.err
}

func useAdmin(t *testing.T, admin calendarAdmin, err error) {
	t.Helper()
	original := newCalendarAdmin
	newCalendarAdmin = func(context.Context) (calendarAdmin, error) { return admin, err }
	t.Cleanup(func() { newCalendarAdmin = original })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCheckPrintsCalendar(t *testing.T) {
	admin := &stubCalendarAdmin{info: &meeting.CalendarInfo{ID: "coaching@group.calendar.google.com", Summary: "Coaching", TimeZone: "Asia/Tokyo"}}
	useAdmin(t, admin, nil)

	out, err := execute(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Calendar is reachable")
	assert.Contains(t, out, "ID: coaching@group.calendar.google.com")
	assert.Contains(t, out, "Time zone: Asia/Tokyo")
	assert.False(t, admin.subscribed)
}

func TestAddSubscribesCalendar(t *testing.T) {
	admin := &stubCalendarAdmin{info: &meeting.CalendarInfo{ID: "coaching@group.calendar.google.com", Summary: "Coaching"}}
	useAdmin(t, admin, nil)

	out, err := execute(t, "add")
	require.NoError(t, err)
	assert.True(t, admin.subscribed)
	assert.Contains(t, out, "Calendar added")
}

func TestCheckReportsAPIError(t *testing.T) {
	apiErr := errors.New("googleapi: Error 404: Not Found")
	useAdmin(t, &stubCalendarAdmin{err: apiErr}, nil)

	_, err := execute(t, "check")
	assert.ErrorIs(t, err, apiErr)
}

func TestCommandsRequireGoogleConfiguration(t *testing.T) {
	useAdmin(t, nil, meeting.ErrGoogleNotConfigured)

	_, err := execute(t, "add")
	assert.ErrorIs(t, err, meeting.ErrGoogleNotConfigured)
}
