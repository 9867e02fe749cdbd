package rest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peakfolk/peakfolk_api/internal/model"
)

func (api *API) UpdateProfileRepo(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) error {
	stmt := `
        UPDATE users SET
            firstname = COALESCE($2, firstname),
            lastname = COALESCE($3, lastname),
            username = COALESCE($4, username),
            bio = COALESCE($5, bio),
            is_private = COALESCE($6, is_private),
            updated_at = NOW()
        WHERE id = $1 AND is_deleted = FALSE
    `
	ct, err := api.Deps.DB.Pool().Exec(ctx, stmt, userID, req.FirstName, req.LastName, req.Username, req.Bio, req.IsPrivate)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (api *API) UpdateLanguageRepo(ctx context.Context, userID uuid.UUID, language string) error {
	ct, err := api.Deps.DB.Pool().Exec(ctx, `
        UPDATE users SET preferred_language = $2, updated_at = NOW()
        WHERE id = $1 AND is_deleted = FALSE
    `, userID, language)
	if err != nil {
		return fmt.Errorf("updating language: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (api *API) UpdateAvatarRepo(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	ct, err := api.Deps.DB.Pool().Exec(ctx, `
        UPDATE users SET avatar_url = $2, updated_at = NOW()
        WHERE id = $1 AND is_deleted = FALSE
    `, userID, avatarURL)
	if err != nil {
		return fmt.Errorf("updating avatar: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// DeleteUserRepo soft-deletes the account and clears its follow edges in one
// transaction, adjusting the counters of everyone on the other side.
func (api *API) DeleteUserRepo(ctx context.Context, userID uuid.UUID) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		if _, err := lockUserTx(ctx, tx, userID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
            UPDATE users SET following_count = GREATEST(following_count - 1, 0), updated_at = NOW()
            WHERE id IN (SELECT follower_id FROM follows WHERE following_id = $1)
        `, userID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
            UPDATE users SET follower_count = GREATEST(follower_count - 1, 0), updated_at = NOW()
            WHERE id IN (SELECT following_id FROM follows WHERE follower_id = $1)
        `, userID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
            DELETE FROM follows WHERE follower_id = $1 OR following_id = $1
        `, userID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
            DELETE FROM follow_requests WHERE requester_id = $1 OR target_id = $1
        `, userID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
            UPDATE users SET is_deleted = TRUE, follower_count = 0, following_count = 0, updated_at = NOW()
            WHERE id = $1
        `, userID)
		return err
	})
}

// canViewFollowLists enforces the private-account rule: the lists are open
// to the owner and to accepted followers only.
func (api *API) canViewFollowLists(ctx context.Context, viewerID, targetID uuid.UUID) (bool, error) {
	if viewerID == targetID {
		return true, nil
	}

	var isPrivate bool
	err := api.Deps.DB.Pool().QueryRow(ctx, `
        SELECT is_private FROM users WHERE id = $1 AND is_deleted = FALSE
    `, targetID).Scan(&isPrivate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, model.ErrUserNotFound
		}
		return false, fmt.Errorf("checking user visibility: %w", err)
	}
	if !isPrivate {
		return true, nil
	}

	var follows bool
	err = api.Deps.DB.Pool().QueryRow(ctx, `
        SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)
    `, viewerID, targetID).Scan(&follows)
	return follows, err
}
