package rest

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/peakfolk/peakfolk_api/internal/model"
	"github.com/peakfolk/peakfolk_api/util/values"
)

func (api *API) GetProfileHelper(ctx context.Context, userID uuid.UUID) (model.User, string, string, error) {
	user, err := api.GetUserByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, values.NotFound, "User not found", model.ErrUserNotFound
		}
		return model.User{}, values.Error, "Failed to fetch profile", err
	}
	return user, values.Success, "Profile fetched successfully", nil
}

func (api *API) UpdateProfileHelper(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (model.User, string, string, error) {
	if err := api.UpdateProfileRepo(ctx, userID, req); err != nil {
		return model.User{}, followErrorStatus(err), "Failed to update profile", err
	}
	return api.GetProfileHelper(ctx, userID)
}

func (api *API) UpdateLanguageHelper(ctx context.Context, userID uuid.UUID, language string) (string, string, error) {
	if err := api.UpdateLanguageRepo(ctx, userID, language); err != nil {
		return followErrorStatus(err), "Failed to update language", err
	}
	return values.Success, "Language updated successfully", nil
}

func (api *API) UploadAvatarHelper(ctx context.Context, userID uuid.UUID, image string) (string, string, string, error) {
	avatarURL, err := api.Deps.Cloudinary.UploadImage(ctx, image, "avatars")
	if err != nil {
		return "", values.Error, "Failed to upload avatar", err
	}

	if err := api.UpdateAvatarRepo(ctx, userID, avatarURL); err != nil {
		return "", followErrorStatus(err), "Failed to update avatar", err
	}
	return avatarURL, values.Success, "Avatar updated successfully", nil
}

func (api *API) DeleteUserHelper(ctx context.Context, userID uuid.UUID) (string, string, error) {
	if err := api.DeleteUserRepo(ctx, userID); err != nil {
		return followErrorStatus(err), "Failed to delete account", err
	}
	return values.Success, "Account deleted successfully", nil
}

func (api *API) ListFollowersHelper(ctx context.Context, viewerID, targetID uuid.UUID) ([]model.FollowUser, string, string, error) {
	allowed, err := api.canViewFollowLists(ctx, viewerID, targetID)
	if err != nil {
		return nil, followErrorStatus(err), "Failed to fetch followers", err
	}
	if !allowed {
		return nil, values.NotAllowed, "This account is private", errors.New("account is private")
	}

	users, err := api.ListFollowersRepo(ctx, targetID)
	if err != nil {
		return nil, values.Error, "Failed to fetch followers", err
	}
	return users, values.Success, "Followers fetched successfully", nil
}

func (api *API) ListFollowingHelper(ctx context.Context, viewerID, targetID uuid.UUID) ([]model.FollowUser, string, string, error) {
	allowed, err := api.canViewFollowLists(ctx, viewerID, targetID)
	if err != nil {
		return nil, followErrorStatus(err), "Failed to fetch following", err
	}
	if !allowed {
		return nil, values.NotAllowed, "This account is private", errors.New("account is private")
	}

	users, err := api.ListFollowingRepo(ctx, targetID)
	if err != nil {
		return nil, values.Error, "Failed to fetch following", err
	}
	return users, values.Success, "Following fetched successfully", nil
}
