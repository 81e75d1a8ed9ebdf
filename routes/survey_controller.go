package routes

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/surveyline/intake/app"
	"github.com/surveyline/intake/httpx"
	"github.com/surveyline/intake/model"
	"github.com/surveyline/intake/record"
)

func SubmitSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submission := model.SurveySubmission{}
		err := render.DecodeJSON(r.Body, &submission)
		if err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				// valid JSON, wrong field type: a validation problem, not a
				// parse problem
				app.Rejected("validation")
				httpx.ValidationFailed(w, r, &model.ValidationError{Violations: []model.FieldViolation{{
					Field:  typeErr.Field,
					Reason: "must be of type " + typeErr.Type.String(),
				}}})
				return
			}
			app.Rejected("invalid_json")
			httpx.InvalidJSON(w, r, "body must be valid JSON")
			return
		}

		if err := model.ValidateSubmission(submission); err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				app.Rejected("validation")
				httpx.ValidationFailed(w, r, verr)
				return
			}
			httpx.LogInternalError(w, "request.validate", err)
			return
		}

		var userAgent *string
		if ua := r.Header.Get("User-Agent"); ua != "" {
			userAgent = &ua
		}

		rec := record.Derive(submission, time.Now(), clientIP(r), userAgent)
		if err := app.Append(r.Context(), rec); err != nil {
			app.Rejected("storage")
			httpx.LogInternalError(w, "storage.append", err)
			return
		}

		app.Accepted()
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{"status": "ok"})
	}
}

// clientIP prefers the proxy-assigned X-Forwarded-For value, then the host
// part of the connection's peer address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
