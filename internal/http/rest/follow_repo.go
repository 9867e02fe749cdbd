package rest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peakfolk/peakfolk_api/internal/model"
)

type lockedUser struct {
	ID        uuid.UUID
	Username  *string
	IsPrivate bool
}

// lockUserTx reads a user row under a row lock.
func lockUserTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (lockedUser, error) {
	var user lockedUser
	err := tx.QueryRow(ctx, `
        SELECT id, username, is_private FROM users
        WHERE id = $1 AND is_deleted = FALSE
        FOR UPDATE
    `, userID).Scan(&user.ID, &user.Username, &user.IsPrivate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return lockedUser{}, model.ErrUserNotFound
		}
		return lockedUser{}, fmt.Errorf("locking user: %w", err)
	}
	return user, nil
}

// lockUserPairTx locks both user rows in deterministic order so two
// opposite toggles cannot deadlock.
func lockUserPairTx(ctx context.Context, tx pgx.Tx, first, second uuid.UUID) (map[uuid.UUID]lockedUser, error) {
	a, b := first, second
	if b.String() < a.String() {
		a, b = b, a
	}

	users := make(map[uuid.UUID]lockedUser, 2)
	for _, id := range []uuid.UUID{a, b} {
		user, err := lockUserTx(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		users[id] = user
	}
	return users, nil
}

func isFollowingTx(ctx context.Context, tx pgx.Tx, followerID, followingID uuid.UUID) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
        SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)
    `, followerID, followingID).Scan(&exists)
	return exists, err
}

// addFollowTx inserts the edge and bumps both denormalized counters in the
// caller's transaction, keeping the counts in lockstep with the set.
func addFollowTx(ctx context.Context, tx pgx.Tx, followerID, followingID uuid.UUID) error {
	ct, err := tx.Exec(ctx, `
        INSERT INTO follows (follower_id, following_id, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (follower_id, following_id) DO NOTHING
    `, followerID, followingID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return nil
	}

	if _, err = tx.Exec(ctx, `
        UPDATE users SET following_count = following_count + 1, updated_at = NOW() WHERE id = $1
    `, followerID); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
        UPDATE users SET follower_count = follower_count + 1, updated_at = NOW() WHERE id = $1
    `, followingID)
	return err
}

func removeFollowTx(ctx context.Context, tx pgx.Tx, followerID, followingID uuid.UUID) error {
	ct, err := tx.Exec(ctx, `
        DELETE FROM follows WHERE follower_id = $1 AND following_id = $2
    `, followerID, followingID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return nil
	}

	// GREATEST clamps against drift, mirroring the participant counter
	if _, err = tx.Exec(ctx, `
        UPDATE users SET following_count = GREATEST(following_count - 1, 0), updated_at = NOW() WHERE id = $1
    `, followerID); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
        UPDATE users SET follower_count = GREATEST(follower_count - 1, 0), updated_at = NOW() WHERE id = $1
    `, followingID)
	return err
}

// ToggleFollowRepo runs the follow decision table inside one transaction
// with both user rows locked.
func (api *API) ToggleFollowRepo(ctx context.Context, followerID, followingID uuid.UUID) (model.FollowToggleResult, error) {
	if followerID == followingID {
		return model.FollowToggleResult{}, model.ErrSelfFollow
	}

	var result model.FollowToggleResult

	err := api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		users, err := lockUserPairTx(ctx, tx, followerID, followingID)
		if err != nil {
			return err
		}
		target := users[followingID]

		alreadyFollowing, err := isFollowingTx(ctx, tx, followerID, followingID)
		if err != nil {
			return err
		}

		switch model.DecideFollowToggle(alreadyFollowing, target.IsPrivate) {
		case model.FollowRemoved:
			if err := removeFollowTx(ctx, tx, followerID, followingID); err != nil {
				return err
			}
			result = model.FollowToggleResult{Following: false, Pending: false}
			return nil

		case model.FollowRequested:
			ct, err := tx.Exec(ctx, `
                INSERT INTO follow_requests (requester_id, target_id, created_at)
                VALUES ($1, $2, NOW())
                ON CONFLICT (requester_id, target_id) DO NOTHING
            `, followerID, followingID)
			if err != nil {
				return err
			}
			if ct.RowsAffected() > 0 {
				if err := insertNotificationTx(ctx, tx, model.Notification{
					UserID:  followingID,
					ActorID: &followerID,
					Type:    model.NotificationFollowRequested,
					Title:   "Follow request",
					Body:    "Someone wants to follow you",
				}); err != nil {
					return err
				}
			}
			result = model.FollowToggleResult{Following: false, Pending: true}
			return nil

		default: // model.FollowAdded
			if err := addFollowTx(ctx, tx, followerID, followingID); err != nil {
				return err
			}
			if err := insertNotificationTx(ctx, tx, model.Notification{
				UserID:  followingID,
				ActorID: &followerID,
				Type:    model.NotificationNewFollower,
				Title:   "New follower",
				Body:    "You have a new follower",
			}); err != nil {
				return err
			}
			result = model.FollowToggleResult{Following: true, Pending: false}
			return nil
		}
	})

	return result, err
}

// AcceptFollowRequestRepo removes the pending request and creates the edge
// in one transaction, so the two sides can never disagree.
func (api *API) AcceptFollowRequestRepo(ctx context.Context, targetID, requesterID uuid.UUID) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		if _, err := lockUserPairTx(ctx, tx, targetID, requesterID); err != nil {
			return err
		}

		ct, err := tx.Exec(ctx, `
            DELETE FROM follow_requests WHERE requester_id = $1 AND target_id = $2
        `, requesterID, targetID)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return model.ErrRequestNotFound
		}

		if err := addFollowTx(ctx, tx, requesterID, targetID); err != nil {
			return err
		}

		return insertNotificationTx(ctx, tx, model.Notification{
			UserID:  requesterID,
			ActorID: &targetID,
			Type:    model.NotificationFollowAccepted,
			Title:   "Follow request accepted",
			Body:    "Your follow request was accepted",
		})
	})
}

func (api *API) RejectFollowRequestRepo(ctx context.Context, targetID, requesterID uuid.UUID) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `
            DELETE FROM follow_requests WHERE requester_id = $1 AND target_id = $2
        `, requesterID, targetID)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return model.ErrRequestNotFound
		}
		return nil
	})
}

func (api *API) ListFollowRequestsRepo(ctx context.Context, targetID uuid.UUID) ([]model.FollowRequest, error) {
	rows, err := api.Deps.DB.Pool().Query(ctx, `
        SELECT r.requester_id, r.target_id, u.username, r.created_at
        FROM follow_requests r
        JOIN users u ON u.id = r.requester_id
        WHERE r.target_id = $1
        ORDER BY r.created_at
    `, targetID)
	if err != nil {
		return nil, fmt.Errorf("querying follow requests: %w", err)
	}
	defer rows.Close()

	var requests []model.FollowRequest
	for rows.Next() {
		var req model.FollowRequest
		if err := rows.Scan(&req.RequesterID, &req.TargetID, &req.Username, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning follow request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (api *API) ListFollowersRepo(ctx context.Context, userID uuid.UUID) ([]model.FollowUser, error) {
	return api.listFollowEdge(ctx, `
        SELECT u.id, u.username, u.firstname, u.lastname, u.avatar_url
        FROM follows f
        JOIN users u ON u.id = f.follower_id
        WHERE f.following_id = $1
        ORDER BY f.created_at DESC
    `, userID)
}

func (api *API) ListFollowingRepo(ctx context.Context, userID uuid.UUID) ([]model.FollowUser, error) {
	return api.listFollowEdge(ctx, `
        SELECT u.id, u.username, u.firstname, u.lastname, u.avatar_url
        FROM follows f
        JOIN users u ON u.id = f.following_id
        WHERE f.follower_id = $1
        ORDER BY f.created_at DESC
    `, userID)
}

func (api *API) listFollowEdge(ctx context.Context, query string, userID uuid.UUID) ([]model.FollowUser, error) {
	rows, err := api.Deps.DB.Pool().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying follow edge: %w", err)
	}
	defer rows.Close()

	var users []model.FollowUser
	for rows.Next() {
		var user model.FollowUser
		if err := rows.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.AvatarURL); err != nil {
			return nil, fmt.Errorf("scanning follow user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
