package entities

import "testing"

func TestEventCanTransitionTo(t *testing.T) {
	cases := []struct {
		from EventStatus
		to   EventStatus
		want bool
	}{
		{EventStatusDraft, EventStatusPending, true},
		{EventStatusPending, EventStatusPublished, true},
		{EventStatusDraft, EventStatusPublished, false},
		{EventStatusPending, EventStatusDraft, false},
		{EventStatusPublished, EventStatusPending, false},
		{EventStatusPublished, EventStatusDraft, false},
		{EventStatusPublished, EventStatusPublished, false},
	}

	for _, tc := range cases {
		event := Event{Status: tc.from}
		if got := event.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}
