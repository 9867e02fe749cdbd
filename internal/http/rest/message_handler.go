package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/peakfolk/peakfolk_api/internal/model"
	"github.com/peakfolk/peakfolk_api/util"
	"github.com/peakfolk/peakfolk_api/util/tracing"
	"github.com/peakfolk/peakfolk_api/util/values"
)

func (api *API) SendPlanMessage(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	planID, err := util.StringToUUID(chi.URLParam(r, "planID"))
	if err != nil {
		return respondWithError(err, "invalid plan ID", values.BadRequestBody, &tc)
	}

	var req model.SendMessageRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "validation failed", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	message, status, msg, err := api.SendPlanMessageHelper(r.Context(), planID, userID, req)
	if err != nil {
		return respondWithError(err, msg, status, &tc)
	}

	return &ServerResponse{
		Message:    msg,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       message,
	}
}

func (api *API) GetPlanMessages(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	planID, err := util.StringToUUID(chi.URLParam(r, "planID"))
	if err != nil {
		return respondWithError(err, "invalid plan ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	params := model.ListMessagesParams{Limit: 50}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit <= 200 {
		params.Limit = limit
	}
	if before := r.URL.Query().Get("before"); before != "" {
		t, err := time.Parse(time.RFC3339, before)
		if err != nil {
			return respondWithError(err, "invalid before cursor", values.BadRequestBody, &tc)
		}
		params.Before = &t
	}

	messages, status, msg, err := api.GetPlanMessagesHelper(r.Context(), planID, userID, params)
	if err != nil {
		return respondWithError(err, msg, status, &tc)
	}
	if messages == nil {
		messages = []model.PlanMessage{}
	}
	return &ServerResponse{
		Message:    msg,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       messages,
	}
}
