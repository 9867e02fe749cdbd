package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func intPtr(i int) *int { return &i }

func TestDecideJoin(t *testing.T) {
	testCases := []struct {
		name               string
		isPrivate          bool
		maxParticipants    *int
		current            int
		alreadyParticipant bool
		want               JoinOutcome
	}{
		{"public plan with space", false, intPtr(10), 3, false, JoinAccepted},
		{"public plan at capacity", false, intPtr(10), 10, false, JoinFull},
		{"public plan over capacity", false, intPtr(10), 11, false, JoinFull},
		{"public plan unbounded", false, nil, 5000, false, JoinAccepted},
		{"private plan with space", true, intPtr(10), 3, false, JoinPending},
		{"private plan at capacity", true, intPtr(10), 10, false, JoinPending},
		{"already participant public", false, intPtr(10), 3, true, JoinNoop},
		{"already participant at capacity", false, intPtr(10), 10, true, JoinNoop},
		{"already participant private", true, intPtr(10), 3, true, JoinNoop},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plan := Plan{
				IsPrivate:           tc.isPrivate,
				MaxParticipants:     tc.maxParticipants,
				CurrentParticipants: tc.current,
			}
			got := plan.DecideJoin(tc.alreadyParticipant)
			if got != tc.want {
				t.Errorf("DecideJoin(%v) = %v; want %v", tc.alreadyParticipant, got, tc.want)
			}
		})
	}
}

func TestDecideLeave(t *testing.T) {
	organizerID := uuid.New()
	memberID := uuid.New()
	strangerID := uuid.New()

	plan := Plan{OrganizerID: organizerID}

	testCases := []struct {
		name          string
		userID        uuid.UUID
		isParticipant bool
		wantErr       error
	}{
		{"organizer cannot leave", organizerID, true, ErrOrganizerLeave},
		{"member leaves", memberID, true, nil},
		{"non-member cannot leave", strangerID, false, ErrNotParticipant},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := plan.DecideLeave(tc.userID, tc.isParticipant)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("DecideLeave() = %v; want %v", err, tc.wantErr)
			}
		})
	}
}

func TestIsFull(t *testing.T) {
	testCases := []struct {
		name            string
		maxParticipants *int
		current         int
		want            bool
	}{
		{"below capacity", intPtr(5), 4, false},
		{"at capacity", intPtr(5), 5, true},
		{"over capacity", intPtr(5), 6, true},
		{"unbounded", nil, 1000000, false},
		{"capacity of one", intPtr(1), 1, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plan := Plan{MaxParticipants: tc.maxParticipants, CurrentParticipants: tc.current}
			if got := plan.IsFull(); got != tc.want {
				t.Errorf("IsFull() = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestParticipantCounter(t *testing.T) {
	t.Run("add increments", func(t *testing.T) {
		plan := Plan{CurrentParticipants: 2}
		plan.AddParticipant()
		if plan.CurrentParticipants != 3 {
			t.Errorf("CurrentParticipants = %d; want 3", plan.CurrentParticipants)
		}
	})

	t.Run("remove decrements", func(t *testing.T) {
		plan := Plan{CurrentParticipants: 2}
		plan.RemoveParticipant()
		if plan.CurrentParticipants != 1 {
			t.Errorf("CurrentParticipants = %d; want 1", plan.CurrentParticipants)
		}
	})

	t.Run("remove clamps at zero", func(t *testing.T) {
		plan := Plan{CurrentParticipants: 0}
		plan.RemoveParticipant()
		if plan.CurrentParticipants != 0 {
			t.Errorf("CurrentParticipants = %d; want 0", plan.CurrentParticipants)
		}
	})
}
