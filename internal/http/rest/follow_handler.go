package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peakfolk/peakfolk_api/internal/model"
	"github.com/peakfolk/peakfolk_api/util"
	"github.com/peakfolk/peakfolk_api/util/tracing"
	"github.com/peakfolk/peakfolk_api/util/values"
)

func (api *API) FollowRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodPost, "/toggle", Handler(api.ToggleFollow))
		r.Method(http.MethodGet, "/requests", Handler(api.ListFollowRequests))
		r.Method(http.MethodPost, "/requests/{requesterID}/accept", Handler(api.AcceptFollowRequest))
		r.Method(http.MethodPost, "/requests/{requesterID}/reject", Handler(api.RejectFollowRequest))
	})

	return mux
}

func (api *API) ToggleFollow(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.FollowToggleRequest
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

	result, status, message, err := api.ToggleFollowHelper(r.Context(), userID, req.FollowingID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       result,
	}
}

func (api *API) ListFollowRequests(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	requests, status, message, err := api.ListFollowRequestsHelper(r.Context(), userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	if requests == nil {
		requests = []model.FollowRequest{}
	}
	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       requests,
	}
}

func (api *API) AcceptFollowRequest(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	requesterID, err := util.StringToUUID(chi.URLParam(r, "requesterID"))
	if err != nil {
		return respondWithError(err, "invalid requester ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.AcceptFollowRequestHelper(r.Context(), userID, requesterID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) RejectFollowRequest(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	requesterID, err := util.StringToUUID(chi.URLParam(r, "requesterID"))
	if err != nil {
		return respondWithError(err, "invalid requester ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.RejectFollowRequestHelper(r.Context(), userID, requesterID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}
