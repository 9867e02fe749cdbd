package rest

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/peakfolk/peakfolk_api/internal/model"
	"github.com/peakfolk/peakfolk_api/util"
	"github.com/peakfolk/peakfolk_api/util/values"
)

// planErrorStatus maps domain errors onto the uniform taxonomy:
// missing entity -> not-found, business-rule violation -> conflict,
// everything else -> internal error.
func planErrorStatus(err error) string {
	switch {
	case errors.Is(err, model.ErrPlanNotFound), errors.Is(err, model.ErrUserNotFound):
		return values.NotFound
	case errors.Is(err, model.ErrPlanFull),
		errors.Is(err, model.ErrPlanCancelled),
		errors.Is(err, model.ErrNotParticipant),
		errors.Is(err, model.ErrOrganizerLeave),
		errors.Is(err, model.ErrNotOrganizer),
		errors.Is(err, model.ErrRequestNotFound):
		return values.Conflict
	default:
		return values.Error
	}
}

func (api *API) CreatePlanHelper(ctx context.Context, req model.CreatePlanRequest, organizerID uuid.UUID) (model.Plan, string, string, error) {
	plan := model.Plan{
		OrganizerID:     organizerID,
		Title:           req.Title,
		Location:        req.Location,
		DateTime:        req.DateTime,
		MaxParticipants: req.MaxParticipants,
		CostPerHead:     req.CostPerHead,
		Currency:        req.Currency,
		IsPrivate:       req.IsPrivate,
	}
	if req.Description != "" {
		plan.Description = util.StrPtr(req.Description)
	}
	if req.ImageURL != "" {
		plan.ImageURL = util.StrPtr(req.ImageURL)
	}

	createdPlan, err := api.CreatePlanRepo(ctx, plan)
	if err != nil {
		return model.Plan{}, values.Error, "Failed to create plan", err
	}
	return createdPlan, values.Created, "Plan created successfully", nil
}

func (api *API) ListPlansHelper(ctx context.Context, params model.ListPlansParams) ([]model.Plan, string, string, error) {
	plans, err := api.ListPlansRepo(ctx, params)
	if err != nil {
		return nil, values.Error, "Failed to fetch plans", err
	}
	return plans, values.Success, "Plans fetched successfully", nil
}

func (api *API) GetPlanHelper(ctx context.Context, planID uuid.UUID) (model.Plan, string, string, error) {
	plan, err := api.GetPlanByIDRepo(ctx, planID)
	if err != nil {
		return model.Plan{}, planErrorStatus(err), "Failed to fetch plan", err
	}
	return plan, values.Success, "Plan fetched successfully", nil
}

func (api *API) JoinPlanHelper(ctx context.Context, planID, userID uuid.UUID) (model.JoinResult, string, string, error) {
	result, err := api.JoinPlanRepo(ctx, planID, userID)
	if err != nil {
		return model.JoinResult{}, planErrorStatus(err), joinErrorMessage(err), err
	}

	message := "Joined plan successfully"
	if result.Pending {
		message = "Join request sent, awaiting organizer approval"
	}
	return result, values.Success, message, nil
}

func joinErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrPlanFull):
		return "Plan is full"
	case errors.Is(err, model.ErrPlanCancelled):
		return "Plan has been cancelled"
	case errors.Is(err, model.ErrPlanNotFound):
		return "Plan not found"
	case errors.Is(err, model.ErrUserNotFound):
		return "User not found"
	default:
		return "Failed to join plan"
	}
}

func (api *API) LeavePlanHelper(ctx context.Context, planID, userID uuid.UUID) (string, string, error) {
	err := api.LeavePlanRepo(ctx, planID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrOrganizerLeave):
			return values.Conflict, "Organizer cannot leave their own plan", err
		case errors.Is(err, model.ErrNotParticipant):
			return values.Conflict, "You are not a participant of this plan", err
		default:
			return planErrorStatus(err), "Failed to leave plan", err
		}
	}
	return values.Success, "Left plan successfully", nil
}

func (api *API) UpdatePlanHelper(ctx context.Context, planID, userID uuid.UUID, req model.UpdatePlanRequest) (string, string, error) {
	err := api.UpdatePlanRepo(ctx, planID, userID, req)
	if err != nil {
		return planErrorStatus(err), "Failed to update plan", err
	}
	return values.Success, "Plan updated successfully", nil
}

func (api *API) CancelPlanHelper(ctx context.Context, planID, userID uuid.UUID, reason string) (string, string, error) {
	err := api.CancelPlanRepo(ctx, planID, userID, reason)
	if err != nil {
		return planErrorStatus(err), "Failed to cancel plan", err
	}
	return values.Success, "Plan cancelled successfully", nil
}

func (api *API) DeletePlanHelper(ctx context.Context, planID, userID uuid.UUID) (string, string, error) {
	err := api.DeletePlanRepo(ctx, planID, userID)
	if err != nil {
		return planErrorStatus(err), "Failed to delete plan", err
	}
	return values.Success, "Plan deleted successfully", nil
}

func (api *API) ListJoinRequestsHelper(ctx context.Context, planID, userID uuid.UUID) ([]model.PlanJoinRequest, string, string, error) {
	requests, err := api.ListJoinRequestsRepo(ctx, planID, userID)
	if err != nil {
		return nil, planErrorStatus(err), "Failed to fetch join requests", err
	}
	return requests, values.Success, "Join requests fetched successfully", nil
}

func (api *API) ApproveJoinRequestHelper(ctx context.Context, planID, userID, requesterID uuid.UUID) (string, string, error) {
	err := api.ApproveJoinRequestRepo(ctx, planID, userID, requesterID)
	if err != nil {
		return planErrorStatus(err), "Failed to approve join request", err
	}

	// Live push for the requester if they are connected. The persisted
	// notification was already written in the approval transaction.
	payload, err := json.Marshal(map[string]string{
		"type":    model.NotificationJoinApproved,
		"plan_id": planID.String(),
	})
	if err == nil {
		api.Deps.WebSocket.NotifyUser(requesterID.String(), payload)
	}

	return values.Success, "Join request approved", nil
}

func (api *API) RejectJoinRequestHelper(ctx context.Context, planID, userID, requesterID uuid.UUID) (string, string, error) {
	err := api.RejectJoinRequestRepo(ctx, planID, userID, requesterID)
	if err != nil {
		return planErrorStatus(err), "Failed to reject join request", err
	}
	return values.Success, "Join request rejected", nil
}

func (api *API) UploadPlanImageHelper(ctx context.Context, planID, userID uuid.UUID, image string) (string, string, string, error) {
	imageURL, err := api.Deps.Cloudinary.UploadImage(ctx, image, "plans")
	if err != nil {
		return "", values.Error, "Failed to upload image", err
	}

	if err := api.UpdatePlanImageRepo(ctx, planID, userID, imageURL); err != nil {
		return "", planErrorStatus(err), "Failed to update plan image", err
	}
	return imageURL, values.Success, "Plan image updated successfully", nil
}
