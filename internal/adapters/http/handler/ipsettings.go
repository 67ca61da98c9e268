package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/adapters/http/middleware"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/ipfilter"
)

// IPSettingsHandler は IP フィルタ設定の HTTP ハンドラです。
type IPSettingsHandler struct {
	settings *ipfilter.Service
}

// NewIPSettingsHandler は IPSettingsHandler を生成します。
func NewIPSettingsHandler(settings *ipfilter.Service) *IPSettingsHandler {
	return &IPSettingsHandler{settings: settings}
}

type ipSettingsPayload struct {
	AllowedPublicIPs []string  `json:"allowedPublicIPs"`
	AllowedLocalIPs  []string  `json:"allowedLocalIPs"`
	Enabled          bool      `json:"enabled"`
	UpdatedAt        time.Time `json:"updatedAt"`
	UpdatedBy        string    `json:"updatedBy"`
}

func toIPSettingsPayload(s *ipfilter.Settings) ipSettingsPayload {
	return ipSettingsPayload{
		AllowedPublicIPs: s.AllowedPublicIPs,
		AllowedLocalIPs:  s.AllowedLocalIPs,
		Enabled:          s.Enabled,
		UpdatedAt:        s.UpdatedAt,
		UpdatedBy:        s.UpdatedBy,
	}
}

// Get は現在の IP フィルタ設定を返します。
func (h *IPSettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toIPSettingsPayload(settings))
}

type saveIPSettingsRequest struct {
	AllowedPublicIPs []string `json:"allowedPublicIPs"`
	AllowedLocalIPs  []string `json:"allowedLocalIPs"`
	Enabled          bool     `json:"enabled"`
}

// Put は IP フィルタ設定を保存します。
func (h *IPSettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req saveIPSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	saved, err := h.settings.Save(r.Context(), &ipfilter.Settings{
		AllowedPublicIPs: req.AllowedPublicIPs,
		AllowedLocalIPs:  req.AllowedLocalIPs,
		Enabled:          req.Enabled,
	}, identity.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toIPSettingsPayload(saved))
}
