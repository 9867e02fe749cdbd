package model

import "testing"

func TestDecideFollowToggle(t *testing.T) {
	testCases := []struct {
		name             string
		alreadyFollowing bool
		targetPrivate    bool
		want             FollowOutcome
	}{
		{"not following public target", false, false, FollowAdded},
		{"not following private target", false, true, FollowRequested},
		{"following public target", true, false, FollowRemoved},
		{"following private target", true, true, FollowRemoved},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecideFollowToggle(tc.alreadyFollowing, tc.targetPrivate)
			if got != tc.want {
				t.Errorf("DecideFollowToggle(%v, %v) = %v; want %v",
					tc.alreadyFollowing, tc.targetPrivate, got, tc.want)
			}
		})
	}
}
