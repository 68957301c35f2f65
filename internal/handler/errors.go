package handler

import (
	"errors"
	"net/http"

	"trackmygoal/internal/httputil"
	"trackmygoal/internal/logger"
	"trackmygoal/internal/model"
	"trackmygoal/internal/validation"
)

// writeServiceError maps domain errors to their HTTP status. Anything it does
// not recognise is logged with the operation name and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, operation string, err error, fallback string) {
	var ve *validation.Error
	if errors.As(err, &ve) {
		httputil.WriteValidationError(w, ve.Field, ve.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrSelfRequest),
		errors.Is(err, model.ErrInvalidAvatar),
		errors.Is(err, model.ErrInvalidNotification):
		httputil.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrAvatarTooLarge):
		httputil.WriteBadRequestWithCode(w, model.CodeFileTooLarge, "Avatar exceeds the size limit")
	case errors.Is(err, model.ErrInvalidImageType):
		httputil.WriteBadRequestWithCode(w, model.CodeInvalidImageType, "Unsupported image type. Allowed: jpeg, png, gif")
	case errors.Is(err, model.ErrInvalidCredentials):
		httputil.WriteUnauthorized(w, "Invalid username or password")
	case errors.Is(err, model.ErrNotFriends):
		httputil.WriteForbidden(w, err.Error())
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrRequestNotFound),
		errors.Is(err, model.ErrGoalNotFound):
		httputil.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrUsernameExists),
		errors.Is(err, model.ErrEmailExists),
		errors.Is(err, model.ErrRequestAlreadyPending),
		errors.Is(err, model.ErrReverseRequestPending),
		errors.Is(err, model.ErrAlreadyFriends),
		errors.Is(err, model.ErrRequestNotPending):
		httputil.WriteConflict(w, err.Error())
	default:
		logger.Error("Request failed", "operation", operation, "error", err)
		httputil.WriteInternalError(w, fallback)
	}
}

// decodeBody answers 400 itself when the body cannot be decoded.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := httputil.DecodeJSON(w, r, dst); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return false
	}
	return true
}

// pathID answers 400 itself when the parameter is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := httputil.PathInt64(r, name)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid "+name)
		return 0, false
	}
	return id, true
}
