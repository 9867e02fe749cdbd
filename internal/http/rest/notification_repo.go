package rest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peakfolk/peakfolk_api/internal/model"
)

// insertNotificationTx appends a fan-out record inside the caller's
// transaction, so a rolled-back mutation never leaves a stray notification.
func insertNotificationTx(ctx context.Context, tx pgx.Tx, n model.Notification) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO notifications (id, user_id, actor_id, type, title, body, ref_type, ref_id, is_read, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, NOW())
    `, uuid.New(), n.UserID, n.ActorID, n.Type, n.Title, n.Body, n.RefType, n.RefID)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

func (api *API) ListNotificationsRepo(ctx context.Context, userID uuid.UUID, params model.ListNotificationsParams) ([]model.Notification, error) {
	query := `
        SELECT id, user_id, actor_id, type, title, body, ref_type, ref_id, is_read, created_at
        FROM notifications
        WHERE user_id = $1 AND ($2 = FALSE OR is_read = FALSE)
        ORDER BY created_at DESC
        LIMIT $3 OFFSET $4
    `

	offset := (params.Page - 1) * params.PageSize
	rows, err := api.Deps.DB.Pool().Query(ctx, query, userID, params.UnreadOnly, params.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.ActorID, &n.Type, &n.Title, &n.Body, &n.RefType, &n.RefID, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkNotificationReadRepo flips is_read; the recipient check is in the
// WHERE clause so users cannot mark each other's notifications.
func (api *API) MarkNotificationReadRepo(ctx context.Context, notificationID, userID uuid.UUID) error {
	ct, err := api.Deps.DB.Pool().Exec(ctx, `
        UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2
    `, notificationID, userID)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrRequestNotFound
	}
	return nil
}

func (api *API) MarkAllNotificationsReadRepo(ctx context.Context, userID uuid.UUID) error {
	_, err := api.Deps.DB.Pool().Exec(ctx, `
        UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE
    `, userID)
	if err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	return nil
}
