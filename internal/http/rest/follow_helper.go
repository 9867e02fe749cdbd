package rest

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/peakfolk/peakfolk_api/internal/model"
	"github.com/peakfolk/peakfolk_api/util/values"
)

func followErrorStatus(err error) string {
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return values.NotFound
	case errors.Is(err, model.ErrSelfFollow), errors.Is(err, model.ErrRequestNotFound):
		return values.Conflict
	default:
		return values.Error
	}
}

func (api *API) ToggleFollowHelper(ctx context.Context, followerID, followingID uuid.UUID) (model.FollowToggleResult, string, string, error) {
	result, err := api.ToggleFollowRepo(ctx, followerID, followingID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrSelfFollow):
			return model.FollowToggleResult{}, values.Conflict, "You cannot follow yourself", err
		case errors.Is(err, model.ErrUserNotFound):
			return model.FollowToggleResult{}, values.NotFound, "User not found", err
		default:
			return model.FollowToggleResult{}, values.Error, "Failed to toggle follow", err
		}
	}

	message := "Unfollowed successfully"
	if result.Pending {
		message = "Follow request sent"
	} else if result.Following {
		message = "Followed successfully"
	}
	return result, values.Success, message, nil
}

func (api *API) ListFollowRequestsHelper(ctx context.Context, userID uuid.UUID) ([]model.FollowRequest, string, string, error) {
	requests, err := api.ListFollowRequestsRepo(ctx, userID)
	if err != nil {
		return nil, values.Error, "Failed to fetch follow requests", err
	}
	return requests, values.Success, "Follow requests fetched successfully", nil
}

func (api *API) AcceptFollowRequestHelper(ctx context.Context, targetID, requesterID uuid.UUID) (string, string, error) {
	err := api.AcceptFollowRequestRepo(ctx, targetID, requesterID)
	if err != nil {
		return followErrorStatus(err), "Failed to accept follow request", err
	}

	payload, err := json.Marshal(map[string]string{
		"type":    model.NotificationFollowAccepted,
		"user_id": targetID.String(),
	})
	if err == nil {
		api.Deps.WebSocket.NotifyUser(requesterID.String(), payload)
	}

	return values.Success, "Follow request accepted", nil
}

func (api *API) RejectFollowRequestHelper(ctx context.Context, targetID, requesterID uuid.UUID) (string, string, error) {
	err := api.RejectFollowRequestRepo(ctx, targetID, requesterID)
	if err != nil {
		return followErrorStatus(err), "Failed to reject follow request", err
	}
	return values.Success, "Follow request rejected", nil
}
