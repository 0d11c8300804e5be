package http

import (
	"net/http"

	"github.com/cardify/cardify-server/internal/utils"
)

type appInfoResponse struct {
	Version string `json:"version"`
}

func (h *Handler) appInfo(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())
	utils.WriteJSON(w, appInfoResponse{Version: version}, http.StatusOK)
}
