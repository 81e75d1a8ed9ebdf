package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

func Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"status":   "ok",
			"message":  "API is alive",
			"utc_time": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
