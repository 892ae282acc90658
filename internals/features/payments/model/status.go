package model

import (
	"errors"
	"fmt"
)

/* =========================================================
   Payment status state machine

   pending        --gateway successful--> completed
   pending        --gateway failed------> failed
   pending        --gateway pending-----> pending (no-op)
   pending        --charge mismatch-----> pending_manual
   pending_manual --admin confirmed-----> completed
   pending_manual --admin rejected------> failed
   completed/failed are terminal.
========================================================= */

type Status string

const (
	StatusPending       Status = "pending"
	StatusPendingManual Status = "pending_manual"
	StatusCompleted     Status = "completed"
	StatusFailed        Status = "failed"
)

type Event string

const (
	EventGatewaySuccessful Event = "gateway_successful"
	EventGatewayFailed     Event = "gateway_failed"
	EventGatewayPending    Event = "gateway_pending"
	// verified charge does not cover the stored amount/currency
	EventGatewayMismatch Event = "gateway_mismatch"
	EventAdminConfirmed  Event = "admin_confirmed"
	EventAdminRejected   Event = "admin_rejected"
)

var ErrIllegalTransition = errors.New("illegal payment status transition")

var transitions = map[Status]map[Event]Status{
	StatusPending: {
		EventGatewaySuccessful: StatusCompleted,
		EventGatewayFailed:     StatusFailed,
		EventGatewayPending:    StatusPending,
		EventGatewayMismatch:   StatusPendingManual,
	},
	StatusPendingManual: {
		// bank-transfer rows only move on explicit admin action
		EventAdminConfirmed: StatusCompleted,
		EventAdminRejected:  StatusFailed,
	},
}

// NextStatus is the single transition function. Every status write in the
// reconciliation path goes through it.
func NextStatus(current Status, ev Event) (Status, error) {
	evs, ok := transitions[current]
	if !ok {
		return current, fmt.Errorf("%w: %s is terminal (event %s)", ErrIllegalTransition, current, ev)
	}
	next, ok := evs[ev]
	if !ok {
		return current, fmt.Errorf("%w: %s on %s", ErrIllegalTransition, ev, current)
	}
	return next, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPendingManual, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
