package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/peakfolk/peakfolk_api/internal/model"
	"github.com/peakfolk/peakfolk_api/util/values"
)

func (api *API) SendPlanMessageHelper(ctx context.Context, planID, senderID uuid.UUID, req model.SendMessageRequest) (model.PlanMessage, string, string, error) {
	message, err := api.SendPlanMessageRepo(ctx, planID, senderID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPlanNotFound):
			return model.PlanMessage{}, values.NotFound, "Plan not found", err
		case errors.Is(err, model.ErrNotParticipant):
			return model.PlanMessage{}, values.Conflict, "You are not a participant of this plan", err
		default:
			return model.PlanMessage{}, values.Error, "Failed to send message", err
		}
	}

	payload, err := json.Marshal(message)
	if err != nil {
		log.Println("failed to marshal plan message for broadcast", err)
	} else {
		api.Deps.WebSocket.BroadcastPlanMessage(planID.String(), payload)
	}

	return message, values.Created, "Message sent successfully", nil
}

func (api *API) GetPlanMessagesHelper(ctx context.Context, planID, userID uuid.UUID, params model.ListMessagesParams) ([]model.PlanMessage, string, string, error) {
	messages, err := api.ListPlanMessagesRepo(ctx, planID, userID, params)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotParticipant):
			return nil, values.Conflict, "You are not a participant of this plan", err
		default:
			return nil, values.Error, "Failed to fetch messages", err
		}
	}
	return messages, values.Success, "Messages fetched successfully", nil
}
