package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peakfolk/peakfolk_api/internal/model"
	"github.com/peakfolk/peakfolk_api/util"
	"github.com/peakfolk/peakfolk_api/util/tracing"
	"github.com/peakfolk/peakfolk_api/util/values"
)

func (api *API) PlanRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodPost, "/", Handler(api.CreatePlan))
		r.Method(http.MethodGet, "/", Handler(api.ListPlans))
		r.Method(http.MethodGet, "/{planID}", Handler(api.GetPlanByID))
		r.Method(http.MethodPut, "/{planID}", Handler(api.UpdatePlan))
		r.Method(http.MethodDelete, "/{planID}", Handler(api.DeletePlan))
		r.Method(http.MethodPost, "/{planID}/cancel", Handler(api.CancelPlan))
		r.Method(http.MethodPost, "/{planID}/join", Handler(api.JoinPlan))
		r.Method(http.MethodDelete, "/{planID}/leave", Handler(api.LeavePlan))
		r.Method(http.MethodPost, "/{planID}/image", Handler(api.UploadPlanImage))

		// Organizer approval flow for private plans
		r.Method(http.MethodGet, "/{planID}/requests", Handler(api.ListJoinRequests))
		r.Method(http.MethodPost, "/{planID}/requests/{userID}/approve", Handler(api.ApproveJoinRequest))
		r.Method(http.MethodPost, "/{planID}/requests/{userID}/reject", Handler(api.RejectJoinRequest))

		// Plan group chat
		r.Method(http.MethodPost, "/{planID}/messages", Handler(api.SendPlanMessage))
		r.Method(http.MethodGet, "/{planID}/messages", Handler(api.GetPlanMessages))
	})

	return mux
}

func (api *API) CreatePlan(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.CreatePlanRequest
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

	plan, status, message, err := api.CreatePlanHelper(r.Context(), req, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       model.CreatePlanResponse{ID: plan.ID},
	}
}

func (api *API) ListPlans(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	page, pageSize := queryPagination(r)

	params := model.ListPlansParams{
		Status:   r.URL.Query().Get("status"),
		Page:     page,
		PageSize: pageSize,
	}

	plans, status, message, err := api.ListPlansHelper(r.Context(), params)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	if plans == nil {
		plans = []model.Plan{}
	}
	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       plans,
	}
}

func (api *API) GetPlanByID(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	planID, err := util.StringToUUID(chi.URLParam(r, "planID"))
	if err != nil {
		return respondWithError(err, "invalid plan ID", values.BadRequestBody, &tc)
	}

	plan, status, message, err := api.GetPlanHelper(r.Context(), planID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       plan,
	}
}

func (api *API) JoinPlan(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	planID, err := util.StringToUUID(chi.URLParam(r, "planID"))
	if err != nil {
		return respondWithError(err, "invalid plan ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	result, status, message, err := api.JoinPlanHelper(r.Context(), planID, userID)
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

func (api *API) LeavePlan(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	planID, err := util.StringToUUID(chi.URLParam(r, "planID"))
	if err != nil {
		return respondWithError(err, "invalid plan ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.LeavePlanHelper(r.Context(), planID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) UpdatePlan(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	planID, err := util.StringToUUID(chi.URLParam(r, "planID"))
	if err != nil {
		return respondWithError(err, "invalid plan ID", values.BadRequestBody, &tc)
	}

	var req model.UpdatePlanRequest
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

	status, message, err := api.UpdatePlanHelper(r.Context(), planID, userID, req)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) CancelPlan(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	planID, err := util.StringToUUID(chi.URLParam(r, "planID"))
	if err != nil {
		return respondWithError(err, "invalid plan ID", values.BadRequestBody, &tc)
	}

	var req model.CancelPlanRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.CancelPlanHelper(r.Context(), planID, userID, req.Reason)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) DeletePlan(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	planID, err := util.StringToUUID(chi.URLParam(r, "planID"))
	if err != nil {
		return respondWithError(err, "invalid plan ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.DeletePlanHelper(r.Context(), planID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) ListJoinRequests(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	planID, err := util.StringToUUID(chi.URLParam(r, "planID"))
	if err != nil {
		return respondWithError(err, "invalid plan ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	requests, status, message, err := api.ListJoinRequestsHelper(r.Context(), planID, userID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	if requests == nil {
		requests = []model.PlanJoinRequest{}
	}
	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       requests,
	}
}

func (api *API) ApproveJoinRequest(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	planID, err := util.StringToUUID(chi.URLParam(r, "planID"))
	if err != nil {
		return respondWithError(err, "invalid plan ID", values.BadRequestBody, &tc)
	}

	requesterID, err := util.StringToUUID(chi.URLParam(r, "userID"))
	if err != nil {
		return respondWithError(err, "invalid user ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.ApproveJoinRequestHelper(r.Context(), planID, userID, requesterID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) RejectJoinRequest(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	planID, err := util.StringToUUID(chi.URLParam(r, "planID"))
	if err != nil {
		return respondWithError(err, "invalid plan ID", values.BadRequestBody, &tc)
	}

	requesterID, err := util.StringToUUID(chi.URLParam(r, "userID"))
	if err != nil {
		return respondWithError(err, "invalid user ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	status, message, err := api.RejectJoinRequestHelper(r.Context(), planID, userID, requesterID)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func (api *API) UploadPlanImage(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	planID, err := util.StringToUUID(chi.URLParam(r, "planID"))
	if err != nil {
		return respondWithError(err, "invalid plan ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	var req struct {
		Image string `json:"image"`
	}
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}
	if !util.NotBlank(req.Image) {
		return respondWithError(nil, "image is required", values.BadRequestBody, &tc)
	}

	imageURL, status, message, err := api.UploadPlanImageHelper(r.Context(), planID, userID, req.Image)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       map[string]string{"image_url": imageURL},
	}
}
