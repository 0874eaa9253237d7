package booking

import (
	"testing"

	"urbanset/models"
)

func TestStrictTransitions(t *testing.T) {
	p := StrictTransitions{}
	cases := []struct {
		from, to models.BookingStatus
		want     bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusPending, false},
		{models.StatusCompleted, models.StatusPending, false},
		{models.StatusCompleted, models.StatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := p.Allows(tc.from, tc.to); got != tc.want {
			t.Errorf("Allows(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestPolicyFor(t *testing.T) {
	if PolicyFor(true).Name() != "strict" || PolicyFor(false).Name() != "permissive" {
		t.Fatal("unexpected policy selection")
	}
	if PolicyFor(false).Allows(models.StatusCompleted, "cancelled") {
		t.Fatal("permissive policy must still reject unknown statuses")
	}
}
