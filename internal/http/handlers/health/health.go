// Package health отвечает на проверку живости сервиса.
package health

import (
	"net/http"

	"github.com/magabrotheeeer/auth-service/internal/http/response"
)

// ServeHTTP godoc
// @Summary Проверка живости
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response "Сервис работает"
// @Router /health [get]
func ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, "Server is running", nil)
}
