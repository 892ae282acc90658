package model

import (
	"errors"
	"testing"
)

func TestNextStatusLegal(t *testing.T) {
	cases := []struct {
		from Status
		ev   Event
		want Status
	}{
		{StatusPending, EventGatewaySuccessful, StatusCompleted},
		{StatusPending, EventGatewayFailed, StatusFailed},
		{StatusPending, EventGatewayPending, StatusPending},
		{StatusPending, EventGatewayMismatch, StatusPendingManual},
		{StatusPendingManual, EventAdminConfirmed, StatusCompleted},
		{StatusPendingManual, EventAdminRejected, StatusFailed},
	}
	for _, tc := range cases {
		got, err := NextStatus(tc.from, tc.ev)
		if err != nil {
			t.Errorf("NextStatus(%s, %s): %v", tc.from, tc.ev, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NextStatus(%s, %s) = %s, want %s", tc.from, tc.ev, got, tc.want)
		}
	}
}

func TestNextStatusTerminal(t *testing.T) {
	for _, from := range []Status{StatusCompleted, StatusFailed} {
		for _, ev := range []Event{
			EventGatewaySuccessful, EventGatewayFailed, EventGatewayPending,
			EventGatewayMismatch, EventAdminConfirmed, EventAdminRejected,
		} {
			got, err := NextStatus(from, ev)
			if !errors.Is(err, ErrIllegalTransition) {
				t.Errorf("NextStatus(%s, %s) err = %v, want ErrIllegalTransition", from, ev, err)
			}
			if got != from {
				t.Errorf("NextStatus(%s, %s) moved to %s on error", from, ev, got)
			}
		}
	}
}

func TestNextStatusCrossedEvents(t *testing.T) {
	// gateway events never settle a bank-transfer row
	if _, err := NextStatus(StatusPendingManual, EventGatewaySuccessful); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("pending_manual on gateway event: err = %v, want ErrIllegalTransition", err)
	}
	if _, err := NextStatus(StatusPendingManual, EventGatewayMismatch); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("pending_manual on mismatch event: err = %v, want ErrIllegalTransition", err)
	}
	// admin events never settle a gateway row
	if _, err := NextStatus(StatusPending, EventAdminConfirmed); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("pending on admin event: err = %v, want ErrIllegalTransition", err)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusPendingManual, StatusCompleted, StatusFailed} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("refunded").Valid() {
		t.Error("unknown status should not be valid")
	}
}
