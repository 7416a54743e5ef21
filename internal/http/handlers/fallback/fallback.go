// Package fallback отвечает на запросы к несуществующим маршрутам в общем формате ошибок.
package fallback

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auth-service/internal/http/response"
	"github.com/magabrotheeeer/auth-service/internal/lib/apperr"
)

// NotFound отвечает 404 NOT_FOUND.
func NotFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, response.Error(apperr.CodeNotFound, "Route not found"))
}

// MethodNotAllowed отвечает 405 с тем же кодом, что и для неизвестного маршрута.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusMethodNotAllowed)
	render.JSON(w, r, response.Error(apperr.CodeNotFound, "Method not allowed"))
}
