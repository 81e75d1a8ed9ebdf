package httpx

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/surveyline/intake/log"
	"github.com/surveyline/intake/model"
)

// ErrorBody is the JSON envelope for client-facing failures.
type ErrorBody struct {
	Error  string `json:"error"`
	Detail any    `json:"detail"`
}

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, code string, err error) {
	log.Errorf("%s: %s", code, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Will log a debug message, and send a 400 response with an invalid_json body
func InvalidJSON(w http.ResponseWriter, r *http.Request, detail string) {
	log.Debugf("request.parse_body: %s", detail)
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorBody{Error: "invalid_json", Detail: detail})
}

// Will log a debug message, and send a 422 response listing every violation
func ValidationFailed(w http.ResponseWriter, r *http.Request, verr *model.ValidationError) {
	log.Debugf("request.validate: %s", verr)
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, ErrorBody{Error: "validation_error", Detail: verr.Violations})
}
