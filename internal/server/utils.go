package server

import (
	"net/http"

	"github.com/unrolled/render"
)

func writeJSONResponse(render *render.Render, w http.ResponseWriter, statusCode int, responseModel interface{}) {
	if err := render.JSON(w, statusCode, responseModel); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}
