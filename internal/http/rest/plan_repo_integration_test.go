package rest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/peakfolk/peakfolk_api/internal/db"
	deps "github.com/peakfolk/peakfolk_api/internal/debs"
	"github.com/peakfolk/peakfolk_api/internal/model"
	"github.com/peakfolk/peakfolk_api/util"
)

// Integration tests against a throwaway Postgres, gated on TEST_DATABASE_DSN.

var testSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id UUID PRIMARY KEY,
        email TEXT NOT NULL DEFAULT '',
        username TEXT,
        is_private BOOLEAN NOT NULL DEFAULT FALSE,
        is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
        follower_count INT NOT NULL DEFAULT 0,
        following_count INT NOT NULL DEFAULT 0,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS plans (
        id UUID PRIMARY KEY,
        organizer_id UUID NOT NULL,
        title TEXT NOT NULL,
        description TEXT,
        image_url TEXT,
        location TEXT NOT NULL,
        date_time TIMESTAMPTZ NOT NULL,
        max_participants INT,
        current_participants INT NOT NULL DEFAULT 0,
        cost_per_head DOUBLE PRECISION NOT NULL DEFAULT 0,
        currency TEXT NOT NULL DEFAULT 'USD',
        is_private BOOLEAN NOT NULL DEFAULT FALSE,
        status TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS plan_participants (
        plan_id UUID NOT NULL,
        user_id UUID NOT NULL,
        joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        PRIMARY KEY (plan_id, user_id)
    )`,
	`CREATE TABLE IF NOT EXISTS plan_join_requests (
        plan_id UUID NOT NULL,
        user_id UUID NOT NULL,
        message TEXT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        PRIMARY KEY (plan_id, user_id)
    )`,
	`CREATE TABLE IF NOT EXISTS notifications (
        id UUID PRIMARY KEY,
        user_id UUID NOT NULL,
        actor_id UUID,
        type TEXT NOT NULL,
        title TEXT NOT NULL,
        body TEXT NOT NULL,
        ref_type TEXT,
        ref_id UUID,
        is_read BOOLEAN NOT NULL DEFAULT FALSE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
}

func newTestAPI(t *testing.T) *API {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	database, err := db.New(dsn)
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	t.Cleanup(database.Close)

	ctx := context.Background()
	for _, stmt := range testSchema {
		if _, err := database.Pool().Exec(ctx, stmt); err != nil {
			t.Fatalf("creating test schema: %v", err)
		}
	}

	return &API{Deps: &deps.Dependencies{DB: database}}
}

func createTestUser(t *testing.T, api *API) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := api.Deps.DB.Pool().Exec(context.Background(), `
        INSERT INTO users (id, email) VALUES ($1, $2)
    `, id, fmt.Sprintf("%s@example.com", id))
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return id
}

func createTestPlan(t *testing.T, api *API, organizerID uuid.UUID, maxParticipants int, isPrivate bool) model.Plan {
	t.Helper()

	plan, err := api.CreatePlanRepo(context.Background(), model.Plan{
		OrganizerID:     organizerID,
		Title:           "Sunrise hike",
		Location:        "Trailhead parking lot",
		DateTime:        time.Now().Add(48 * time.Hour),
		MaxParticipants: util.IntPtr(maxParticipants),
		Currency:        "USD",
		IsPrivate:       isPrivate,
	})
	if err != nil {
		t.Fatalf("creating test plan: %v", err)
	}
	return plan
}

func assertCounterMatchesSet(t *testing.T, api *API, planID uuid.UUID, want int) {
	t.Helper()

	ctx := context.Background()
	var counter int
	if err := api.Deps.DB.Pool().QueryRow(ctx, `
        SELECT current_participants FROM plans WHERE id = $1
    `, planID).Scan(&counter); err != nil {
		t.Fatalf("reading counter: %v", err)
	}

	var members int
	if err := api.Deps.DB.Pool().QueryRow(ctx, `
        SELECT COUNT(*) FROM plan_participants WHERE plan_id = $1
    `, planID).Scan(&members); err != nil {
		t.Fatalf("counting participants: %v", err)
	}

	if counter != members {
		t.Errorf("current_participants = %d, participant rows = %d; counter must equal set size", counter, members)
	}
	if counter != want {
		t.Errorf("current_participants = %d; want %d", counter, want)
	}
}

// Many joiners race for the last free slot; exactly one may win and the
// counter must land exactly on the capacity.
func TestJoinPlanRepoConcurrentLastSlot(t *testing.T) {
	api := newTestAPI(t)

	organizer := createTestUser(t, api)
	plan := createTestPlan(t, api, organizer, 2, false)

	const joiners = 8
	userIDs := make([]uuid.UUID, joiners)
	for i := range userIDs {
		userIDs[i] = createTestUser(t, api)
	}

	errs := make([]error, joiners)
	var wg sync.WaitGroup
	for i := range userIDs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = api.JoinPlanRepo(context.Background(), plan.ID, userIDs[i])
		}(i)
	}
	wg.Wait()

	var joined, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			joined++
		case errors.Is(err, model.ErrPlanFull):
			rejected++
		default:
			t.Fatalf("unexpected join error: %v", err)
		}
	}

	if joined != 1 {
		t.Errorf("successful joins = %d; want exactly 1", joined)
	}
	if rejected != joiners-1 {
		t.Errorf("rejected joins = %d; want %d", rejected, joiners-1)
	}

	assertCounterMatchesSet(t, api, plan.ID, 2)
}

// A join request queued while the plan was private survives the organizer
// flipping it public; if the requester then joins directly, approving the
// stale request must not move the counter.
func TestApproveStaleJoinRequest(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	organizer := createTestUser(t, api)
	requester := createTestUser(t, api)
	plan := createTestPlan(t, api, organizer, 5, true)

	result, err := api.JoinPlanRepo(ctx, plan.ID, requester)
	if err != nil {
		t.Fatalf("requesting to join: %v", err)
	}
	if !result.Pending {
		t.Fatalf("join result = %+v; want pending", result)
	}

	// Plan goes public while the request is still queued
	if _, err := api.Deps.DB.Pool().Exec(ctx, `
        UPDATE plans SET is_private = FALSE WHERE id = $1
    `, plan.ID); err != nil {
		t.Fatalf("making plan public: %v", err)
	}

	result, err = api.JoinPlanRepo(ctx, plan.ID, requester)
	if err != nil {
		t.Fatalf("joining public plan: %v", err)
	}
	if !result.Joined {
		t.Fatalf("join result = %+v; want joined", result)
	}

	if err := api.ApproveJoinRequestRepo(ctx, plan.ID, organizer, requester); err != nil {
		t.Fatalf("approving stale request: %v", err)
	}

	// Organizer + requester, counted once each
	assertCounterMatchesSet(t, api, plan.ID, 2)

	// The stale request is gone; approving again reports not-found
	err = api.ApproveJoinRequestRepo(ctx, plan.ID, organizer, requester)
	if !errors.Is(err, model.ErrRequestNotFound) {
		t.Errorf("second approval error = %v; want %v", err, model.ErrRequestNotFound)
	}
}

// Join is idempotent for a current participant and leave keeps the counter
// in lockstep with the set.
func TestJoinLeaveCounterConsistency(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	organizer := createTestUser(t, api)
	member := createTestUser(t, api)
	plan := createTestPlan(t, api, organizer, 10, false)

	if _, err := api.JoinPlanRepo(ctx, plan.ID, member); err != nil {
		t.Fatalf("joining: %v", err)
	}
	// Repeat join is a no-op
	result, err := api.JoinPlanRepo(ctx, plan.ID, member)
	if err != nil {
		t.Fatalf("repeat join: %v", err)
	}
	if !result.Joined || result.Pending {
		t.Fatalf("repeat join result = %+v; want joined, not pending", result)
	}
	assertCounterMatchesSet(t, api, plan.ID, 2)

	if err := api.LeavePlanRepo(ctx, plan.ID, member); err != nil {
		t.Fatalf("leaving: %v", err)
	}
	assertCounterMatchesSet(t, api, plan.ID, 1)

	if err := api.LeavePlanRepo(ctx, plan.ID, organizer); !errors.Is(err, model.ErrOrganizerLeave) {
		t.Errorf("organizer leave error = %v; want %v", err, model.ErrOrganizerLeave)
	}
}
