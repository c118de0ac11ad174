package order

import (
	"fmt"
	"testing"
	"time"
)

func TestGenerateOrderNumber(t *testing.T) {
	o := Order{ID: 42}

	want := fmt.Sprintf("ORD-%s-00042", time.Now().Format("20060102"))
	if got := o.GenerateOrderNumber(); got != want {
		t.Errorf("order number = %q, want %q", got, want)
	}
}

func TestCanBeCancelled(t *testing.T) {
	cases := map[Status]bool{
		StatusPending:    true,
		StatusConfirmed:  true,
		StatusPreparing:  false,
		StatusDelivering: false,
		StatusCompleted:  false,
		StatusCancelled:  false,
	}

	for status, want := range cases {
		o := Order{Status: status}
		if got := o.CanBeCancelled(); got != want {
			t.Errorf("CanBeCancelled with status %s = %v, want %v", status, got, want)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to Status
	}{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusPreparing},
		{StatusPreparing, StatusDelivering},
		{StatusDelivering, StatusCompleted},
	}
	for _, tc := range allowed {
		o := Order{Status: tc.from}
		if !o.CanTransitionTo(tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct {
		from, to Status
	}{
		{StatusPending, StatusDelivering},
		{StatusDelivering, StatusCancelled},
		{StatusCompleted, StatusPending},
		{StatusCancelled, StatusConfirmed},
	}
	for _, tc := range forbidden {
		o := Order{Status: tc.from}
		if o.CanTransitionTo(tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestIsFinal(t *testing.T) {
	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		o := Order{Status: status}
		if !o.IsFinal() {
			t.Errorf("expected %s to be final", status)
		}
	}
	for _, status := range []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusDelivering} {
		o := Order{Status: status}
		if o.IsFinal() {
			t.Errorf("expected %s not to be final", status)
		}
	}
}
