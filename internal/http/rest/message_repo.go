package rest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peakfolk/peakfolk_api/internal/model"
)

// SendPlanMessageRepo appends a chat message after confirming the sender is
// still a participant. Messages carry no counters, so a single transaction
// around the membership check and insert is enough.
func (api *API) SendPlanMessageRepo(ctx context.Context, planID, senderID uuid.UUID, content string) (model.PlanMessage, error) {
	var message model.PlanMessage

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		var status string
		err := tx.QueryRow(ctx, `
            SELECT status FROM plans WHERE id = $1
        `, planID).Scan(&status)
		if err != nil {
			if err == pgx.ErrNoRows {
				return model.ErrPlanNotFound
			}
			return fmt.Errorf("checking plan: %w", err)
		}

		member, err := isParticipantTx(ctx, tx, planID, senderID)
		if err != nil {
			return err
		}
		if !member {
			return model.ErrNotParticipant
		}

		message = model.PlanMessage{
			ID:       uuid.New(),
			PlanID:   planID,
			SenderID: senderID,
			Content:  content,
		}
		return tx.QueryRow(ctx, `
            INSERT INTO plan_messages (id, plan_id, sender_id, content, created_at)
            VALUES ($1, $2, $3, $4, NOW())
            RETURNING created_at
        `, message.ID, message.PlanID, message.SenderID, message.Content).Scan(&message.CreatedAt)
	})
	if err != nil {
		return model.PlanMessage{}, err
	}

	return message, nil
}

// ListPlanMessagesRepo pages backwards through a plan's chat using a
// created_at cursor, newest first.
func (api *API) ListPlanMessagesRepo(ctx context.Context, planID, userID uuid.UUID, params model.ListMessagesParams) ([]model.PlanMessage, error) {
	var member bool
	err := api.Deps.DB.Pool().QueryRow(ctx, `
        SELECT EXISTS(SELECT 1 FROM plan_participants WHERE plan_id = $1 AND user_id = $2)
    `, planID, userID).Scan(&member)
	if err != nil {
		return nil, fmt.Errorf("checking membership: %w", err)
	}
	if !member {
		return nil, model.ErrNotParticipant
	}

	rows, err := api.Deps.DB.Pool().Query(ctx, `
        SELECT m.id, m.plan_id, m.sender_id, u.username, m.content, m.created_at
        FROM plan_messages m
        JOIN users u ON u.id = m.sender_id
        WHERE m.plan_id = $1 AND ($2::timestamptz IS NULL OR m.created_at < $2)
        ORDER BY m.created_at DESC
        LIMIT $3
    `, planID, params.Before, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("querying plan messages: %w", err)
	}
	defer rows.Close()

	var messages []model.PlanMessage
	for rows.Next() {
		var m model.PlanMessage
		if err := rows.Scan(&m.ID, &m.PlanID, &m.SenderID, &m.Username, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
