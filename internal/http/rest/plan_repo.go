package rest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peakfolk/peakfolk_api/internal/model"
)

const planColumns = `id, organizer_id, title, description, image_url, location, date_time,
       max_participants, current_participants, cost_per_head, currency, is_private,
       status, created_at, updated_at`

func scanPlan(row pgx.Row) (model.Plan, error) {
	var plan model.Plan
	err := row.Scan(
		&plan.ID, &plan.OrganizerID, &plan.Title, &plan.Description, &plan.ImageURL,
		&plan.Location, &plan.DateTime, &plan.MaxParticipants, &plan.CurrentParticipants,
		&plan.CostPerHead, &plan.Currency, &plan.IsPrivate, &plan.Status,
		&plan.CreatedAt, &plan.UpdatedAt,
	)
	return plan, err
}

// getPlanForUpdateTx reads the plan row under a row lock. Every
// read-decide-write over the participant set must go through this so
// concurrent writers are serialized on the plan row.
func (api *API) getPlanForUpdateTx(ctx context.Context, tx pgx.Tx, planID uuid.UUID) (model.Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM plans WHERE id = $1 FOR UPDATE`, planColumns)

	plan, err := scanPlan(tx.QueryRow(ctx, query, planID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Plan{}, model.ErrPlanNotFound
		}
		return model.Plan{}, fmt.Errorf("locking plan: %w", err)
	}
	return plan, nil
}

func userExistsTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND is_deleted = FALSE)`, userID).Scan(&exists)
	return exists, err
}

func isParticipantTx(ctx context.Context, tx pgx.Tx, planID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM plan_participants WHERE plan_id = $1 AND user_id = $2)`, planID, userID).Scan(&exists)
	return exists, err
}

func (api *API) CreatePlanRepo(ctx context.Context, plan model.Plan) (model.Plan, error) {
	var createdPlan model.Plan

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		plan.ID = uuid.New()
		plan.Status = model.PlanStatusUpcoming
		plan.CreatedAt = time.Now()
		plan.UpdatedAt = plan.CreatedAt

		query := fmt.Sprintf(`
            INSERT INTO plans (id, organizer_id, title, description, image_url, location, date_time,
                               max_participants, current_participants, cost_per_head, currency,
                               is_private, status, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9, $10, $11, $12, $13, $14)
            RETURNING %s
        `, planColumns)

		var err error
		createdPlan, err = scanPlan(tx.QueryRow(ctx, query,
			plan.ID, plan.OrganizerID, plan.Title, plan.Description, plan.ImageURL,
			plan.Location, plan.DateTime, plan.MaxParticipants, plan.CostPerHead,
			plan.Currency, plan.IsPrivate, plan.Status, plan.CreatedAt, plan.UpdatedAt,
		))
		if err != nil {
			return err
		}

		// The organizer is always the first participant
		_, err = tx.Exec(ctx, `
            INSERT INTO plan_participants (plan_id, user_id, joined_at)
            VALUES ($1, $2, NOW())
        `, createdPlan.ID, createdPlan.OrganizerID)
		return err
	})

	if err != nil {
		log.Println("error creating plan or adding organizer as participant", err)
		return model.Plan{}, err
	}

	return createdPlan, nil
}

// JoinPlanRepo runs the join decision table inside one transaction with the
// plan row locked: membership check first (idempotent no-op), then privacy
// (queue a pending request), then capacity, then the actual join. Two
// concurrent joiners racing for the last slot are serialized by the row
// lock; the second sees the full plan and gets ErrPlanFull.
func (api *API) JoinPlanRepo(ctx context.Context, planID, userID uuid.UUID) (model.JoinResult, error) {
	var result model.JoinResult

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		plan, err := api.getPlanForUpdateTx(ctx, tx, planID)
		if err != nil {
			return err
		}

		exists, err := userExistsTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrUserNotFound
		}

		if plan.Status == model.PlanStatusCancelled {
			return model.ErrPlanCancelled
		}

		alreadyParticipant, err := isParticipantTx(ctx, tx, planID, userID)
		if err != nil {
			return err
		}

		switch plan.DecideJoin(alreadyParticipant) {
		case model.JoinNoop:
			result = model.JoinResult{Joined: true, Pending: false}
			return nil

		case model.JoinPending:
			ct, err := tx.Exec(ctx, `
                INSERT INTO plan_join_requests (plan_id, user_id, created_at)
                VALUES ($1, $2, NOW())
                ON CONFLICT (plan_id, user_id) DO NOTHING
            `, planID, userID)
			if err != nil {
				return err
			}
			// Notify the organizer only on the first request, repeats are no-ops
			if ct.RowsAffected() > 0 {
				if err := insertNotificationTx(ctx, tx, model.Notification{
					UserID:  plan.OrganizerID,
					ActorID: &userID,
					Type:    model.NotificationJoinRequested,
					Title:   "New join request",
					Body:    fmt.Sprintf("Someone asked to join %q", plan.Title),
					RefType: refTypePlan(),
					RefID:   &planID,
				}); err != nil {
					return err
				}
			}
			result = model.JoinResult{Joined: false, Pending: true}
			return nil

		case model.JoinFull:
			return model.ErrPlanFull

		default: // model.JoinAccepted
			_, err = tx.Exec(ctx, `
                INSERT INTO plan_participants (plan_id, user_id, joined_at)
                VALUES ($1, $2, NOW())
            `, planID, userID)
			if err != nil {
				return err
			}

			plan.AddParticipant()
			_, err = tx.Exec(ctx, `
                UPDATE plans SET current_participants = $2, updated_at = $3 WHERE id = $1
            `, planID, plan.CurrentParticipants, plan.UpdatedAt)
			if err != nil {
				return err
			}

			if userID != plan.OrganizerID {
				if err := insertNotificationTx(ctx, tx, model.Notification{
					UserID:  plan.OrganizerID,
					ActorID: &userID,
					Type:    model.NotificationPlanJoined,
					Title:   "New participant",
					Body:    fmt.Sprintf("Someone joined %q", plan.Title),
					RefType: refTypePlan(),
					RefID:   &planID,
				}); err != nil {
					return err
				}
			}
			result = model.JoinResult{Joined: true, Pending: false}
			return nil
		}
	})

	return result, err
}

// LeavePlanRepo removes a participant and decrements the counter in the
// same transaction. No notification is sent on leave.
func (api *API) LeavePlanRepo(ctx context.Context, planID, userID uuid.UUID) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		plan, err := api.getPlanForUpdateTx(ctx, tx, planID)
		if err != nil {
			return err
		}

		isParticipant, err := isParticipantTx(ctx, tx, planID, userID)
		if err != nil {
			return err
		}

		if err := plan.DecideLeave(userID, isParticipant); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
            DELETE FROM plan_participants WHERE plan_id = $1 AND user_id = $2
        `, planID, userID)
		if err != nil {
			return err
		}

		plan.RemoveParticipant()
		_, err = tx.Exec(ctx, `
            UPDATE plans SET current_participants = $2, updated_at = $3 WHERE id = $1
        `, planID, plan.CurrentParticipants, plan.UpdatedAt)
		return err
	})
}

func (api *API) GetPlanByIDRepo(ctx context.Context, planID uuid.UUID) (model.Plan, error) {
	query := fmt.Sprintf(`SELECT %s FROM plans WHERE id = $1`, planColumns)

	plan, err := scanPlan(api.Deps.DB.Pool().QueryRow(ctx, query, planID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.Plan{}, model.ErrPlanNotFound
		}
		return model.Plan{}, fmt.Errorf("getting plan: %w", err)
	}

	rows, err := api.Deps.DB.Pool().Query(ctx, `
        SELECT user_id FROM plan_participants WHERE plan_id = $1 ORDER BY joined_at
    `, planID)
	if err != nil {
		return model.Plan{}, fmt.Errorf("getting plan participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var participantID uuid.UUID
		if err := rows.Scan(&participantID); err != nil {
			return model.Plan{}, fmt.Errorf("scanning participant: %w", err)
		}
		plan.ParticipantIDs = append(plan.ParticipantIDs, participantID)
	}

	return plan, rows.Err()
}

func (api *API) ListPlansRepo(ctx context.Context, params model.ListPlansParams) ([]model.Plan, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM plans
        WHERE ($1 = '' OR status = $1)
        ORDER BY date_time
        LIMIT $2 OFFSET $3
    `, planColumns)

	offset := (params.Page - 1) * params.PageSize
	rows, err := api.Deps.DB.Pool().Query(ctx, query, params.Status, params.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var plans []model.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

// UpdatePlanRepo rewrites the editable fields and notifies every current
// non-organizer participant, all in one transaction.
func (api *API) UpdatePlanRepo(ctx context.Context, planID, actorID uuid.UUID, req model.UpdatePlanRequest) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		plan, err := api.getPlanForUpdateTx(ctx, tx, planID)
		if err != nil {
			return err
		}
		if plan.OrganizerID != actorID {
			return model.ErrNotOrganizer
		}

		_, err = tx.Exec(ctx, `
            UPDATE plans
            SET title = $2, description = $3, image_url = NULLIF($4, ''), location = $5,
                date_time = $6, max_participants = $7, cost_per_head = $8, currency = $9,
                is_private = $10, updated_at = NOW()
            WHERE id = $1
        `, planID, req.Title, req.Description, req.ImageURL, req.Location,
			req.DateTime, req.MaxParticipants, req.CostPerHead, req.Currency, req.IsPrivate)
		if err != nil {
			return err
		}

		return api.notifyParticipantsTx(ctx, tx, plan, model.Notification{
			ActorID: &actorID,
			Type:    model.NotificationPlanUpdated,
			Title:   "Plan updated",
			Body:    fmt.Sprintf("%q has been updated", req.Title),
			RefType: refTypePlan(),
			RefID:   &planID,
		})
	})
}

// CancelPlanRepo flips the status and notifies participants with the
// optional reason.
func (api *API) CancelPlanRepo(ctx context.Context, planID, actorID uuid.UUID, reason string) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		plan, err := api.getPlanForUpdateTx(ctx, tx, planID)
		if err != nil {
			return err
		}
		if plan.OrganizerID != actorID {
			return model.ErrNotOrganizer
		}

		_, err = tx.Exec(ctx, `
            UPDATE plans SET status = $2, updated_at = NOW() WHERE id = $1
        `, planID, model.PlanStatusCancelled)
		if err != nil {
			return err
		}

		body := fmt.Sprintf("%q has been cancelled", plan.Title)
		if reason != "" {
			body = fmt.Sprintf("%q has been cancelled: %s", plan.Title, reason)
		}

		return api.notifyParticipantsTx(ctx, tx, plan, model.Notification{
			ActorID: &actorID,
			Type:    model.NotificationPlanCancelled,
			Title:   "Plan cancelled",
			Body:    body,
			RefType: refTypePlan(),
			RefID:   &planID,
		})
	})
}

// DeletePlanRepo removes the plan and all of its dependent records as one
// atomic unit, so a crash can never leave orphaned messages behind.
func (api *API) DeletePlanRepo(ctx context.Context, planID, actorID uuid.UUID) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		plan, err := api.getPlanForUpdateTx(ctx, tx, planID)
		if err != nil {
			return err
		}
		if plan.OrganizerID != actorID {
			return model.ErrNotOrganizer
		}

		for _, stmt := range []string{
			`DELETE FROM plan_messages WHERE plan_id = $1`,
			`DELETE FROM plan_join_requests WHERE plan_id = $1`,
			`DELETE FROM plan_participants WHERE plan_id = $1`,
			`DELETE FROM plans WHERE id = $1`,
		} {
			if _, err := tx.Exec(ctx, stmt, planID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (api *API) ListJoinRequestsRepo(ctx context.Context, planID, actorID uuid.UUID) ([]model.PlanJoinRequest, error) {
	plan, err := api.GetPlanByIDRepo(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.OrganizerID != actorID {
		return nil, model.ErrNotOrganizer
	}

	rows, err := api.Deps.DB.Pool().Query(ctx, `
        SELECT r.plan_id, r.user_id, u.username, r.message, r.created_at
        FROM plan_join_requests r
        JOIN users u ON u.id = r.user_id
        WHERE r.plan_id = $1
        ORDER BY r.created_at
    `, planID)
	if err != nil {
		return nil, fmt.Errorf("querying join requests: %w", err)
	}
	defer rows.Close()

	var requests []model.PlanJoinRequest
	for rows.Next() {
		var req model.PlanJoinRequest
		if err := rows.Scan(&req.PlanID, &req.UserID, &req.Username, &req.Message, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning join request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// ApproveJoinRequestRepo converts a pending request into a membership under
// the same capacity arbitration as a direct join.
func (api *API) ApproveJoinRequestRepo(ctx context.Context, planID, actorID, requesterID uuid.UUID) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		plan, err := api.getPlanForUpdateTx(ctx, tx, planID)
		if err != nil {
			return err
		}
		if plan.OrganizerID != actorID {
			return model.ErrNotOrganizer
		}

		ct, err := tx.Exec(ctx, `
            DELETE FROM plan_join_requests WHERE plan_id = $1 AND user_id = $2
        `, planID, requesterID)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return model.ErrRequestNotFound
		}

		// A request can outlive a membership: the plan goes public and the
		// requester joins directly before the organizer approves. Clearing
		// the stale row must not touch the counter.
		alreadyParticipant, err := isParticipantTx(ctx, tx, planID, requesterID)
		if err != nil {
			return err
		}
		if alreadyParticipant {
			return nil
		}

		if plan.IsFull() {
			return model.ErrPlanFull
		}

		ins, err := tx.Exec(ctx, `
            INSERT INTO plan_participants (plan_id, user_id, joined_at)
            VALUES ($1, $2, NOW())
            ON CONFLICT (plan_id, user_id) DO NOTHING
        `, planID, requesterID)
		if err != nil {
			return err
		}

		// Counter moves only when the set actually grew
		if ins.RowsAffected() > 0 {
			plan.AddParticipant()
			_, err = tx.Exec(ctx, `
                UPDATE plans SET current_participants = $2, updated_at = $3 WHERE id = $1
            `, planID, plan.CurrentParticipants, plan.UpdatedAt)
			if err != nil {
				return err
			}
		}

		return insertNotificationTx(ctx, tx, model.Notification{
			UserID:  requesterID,
			ActorID: &actorID,
			Type:    model.NotificationJoinApproved,
			Title:   "Request approved",
			Body:    fmt.Sprintf("You are in! Your request to join %q was approved", plan.Title),
			RefType: refTypePlan(),
			RefID:   &planID,
		})
	})
}

func (api *API) RejectJoinRequestRepo(ctx context.Context, planID, actorID, requesterID uuid.UUID) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		plan, err := api.getPlanForUpdateTx(ctx, tx, planID)
		if err != nil {
			return err
		}
		if plan.OrganizerID != actorID {
			return model.ErrNotOrganizer
		}

		ct, err := tx.Exec(ctx, `
            DELETE FROM plan_join_requests WHERE plan_id = $1 AND user_id = $2
        `, planID, requesterID)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return model.ErrRequestNotFound
		}

		return insertNotificationTx(ctx, tx, model.Notification{
			UserID:  requesterID,
			ActorID: &actorID,
			Type:    model.NotificationJoinRejected,
			Title:   "Request declined",
			Body:    fmt.Sprintf("Your request to join %q was declined", plan.Title),
			RefType: refTypePlan(),
			RefID:   &planID,
		})
	})
}

func (api *API) UpdatePlanImageRepo(ctx context.Context, planID, actorID uuid.UUID, imageURL string) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		plan, err := api.getPlanForUpdateTx(ctx, tx, planID)
		if err != nil {
			return err
		}
		if plan.OrganizerID != actorID {
			return model.ErrNotOrganizer
		}

		_, err = tx.Exec(ctx, `
            UPDATE plans SET image_url = $2, updated_at = NOW() WHERE id = $1
        `, planID, imageURL)
		return err
	})
}

// notifyParticipantsTx fans a notification out to every current participant
// except the organizer, inside the caller's transaction.
func (api *API) notifyParticipantsTx(ctx context.Context, tx pgx.Tx, plan model.Plan, template model.Notification) error {
	rows, err := tx.Query(ctx, `
        SELECT user_id FROM plan_participants WHERE plan_id = $1 AND user_id <> $2
    `, plan.ID, plan.OrganizerID)
	if err != nil {
		return err
	}

	var recipients []uuid.UUID
	for rows.Next() {
		var recipientID uuid.UUID
		if err := rows.Scan(&recipientID); err != nil {
			rows.Close()
			return err
		}
		recipients = append(recipients, recipientID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, recipientID := range recipients {
		notification := template
		notification.UserID = recipientID
		if err := insertNotificationTx(ctx, tx, notification); err != nil {
			return err
		}
	}
	return nil
}

func refTypePlan() *string {
	refType := "plan"
	return &refType
}
