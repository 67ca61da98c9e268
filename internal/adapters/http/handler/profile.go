package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/adapters/http/middleware"
	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/profile"
)

// ProfileHandler はプロフィール操作の HTTP ハンドラです。
type ProfileHandler struct {
	profiles *profile.Service
}

// NewProfileHandler は ProfileHandler を生成します。
func NewProfileHandler(profiles *profile.Service) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profilePayload struct {
	UID        string    `json:"uid"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toProfilePayload(p *profile.Profile) profilePayload {
	return profilePayload{
		UID:        p.UID,
		Email:      p.Email,
		FullName:   p.FullName,
		Department: p.Department,
		CreatedAt:  p.CreatedAt,
	}
}

// Get は操作者自身のプロフィールを返します。未保存の場合は認証情報から
// 合成した代替プロフィールを返します。
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	p, err := h.profiles.GetOrFallback(r.Context(), identity.UserID, identity.Email, identity.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfilePayload(p))
}

type saveProfileRequest struct {
	FullName   string `json:"fullName"`
	Department string `json:"department"`
}

// Put は操作者自身のプロフィールを保存します。
func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req saveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	saved, err := h.profiles.Save(r.Context(), profile.SaveInput{
		UID:        identity.UserID,
		Email:      identity.Email,
		FullName:   req.FullName,
		Department: req.Department,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfilePayload(saved))
}
