package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peakfolk/peakfolk_api/internal/model"
	"github.com/peakfolk/peakfolk_api/util"
	"github.com/peakfolk/peakfolk_api/util/tracing"
	"github.com/peakfolk/peakfolk_api/util/values"
)

func (api *API) NotificationRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)

		r.Method(http.MethodGet, "/", Handler(api.ListNotifications))
		r.Method(http.MethodPost, "/{notificationID}/read", Handler(api.MarkNotificationRead))
		r.Method(http.MethodPost, "/read-all", Handler(api.MarkAllNotificationsRead))
	})

	return mux
}

func (api *API) ListNotifications(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	page, pageSize := queryPagination(r)

	params := model.ListNotificationsParams{
		UnreadOnly: r.URL.Query().Get("unread") == "true",
		Page:       page,
		PageSize:   pageSize,
	}

	notifications, err := api.ListNotificationsRepo(r.Context(), userID, params)
	if err != nil {
		return respondWithError(err, "failed to get notifications", values.Error, &tc)
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return &ServerResponse{
		Message:    "Notifications retrieved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       notifications,
	}
}

func (api *API) MarkNotificationRead(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	notificationID, err := util.StringToUUID(chi.URLParam(r, "notificationID"))
	if err != nil {
		return respondWithError(err, "invalid notification ID", values.BadRequestBody, &tc)
	}

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	err = api.MarkNotificationReadRepo(r.Context(), notificationID, userID)
	if err != nil {
		if errors.Is(err, model.ErrRequestNotFound) {
			return respondWithError(err, "notification not found", values.NotFound, &tc)
		}
		return respondWithError(err, "failed to mark notification read", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Notification marked as read",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}

func (api *API) MarkAllNotificationsRead(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	err = api.MarkAllNotificationsReadRepo(r.Context(), userID)
	if err != nil {
		return respondWithError(err, "failed to mark notifications read", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "All notifications marked as read",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}
