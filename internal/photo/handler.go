package photo

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/photorelay/service/internal/response"
)

// Handler holds HTTP handlers for listing photos.
type Handler struct {
	svc *Service
}

// NewHandler creates a new photo Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List godoc
//
//	@Summary		List a user's photos
//	@Description	Returns every stored upload of the given user, newest first.
//	@Tags			photos
//	@Produce		json
//	@Param			userId	query		string	false	"Owner of the uploads (default-user when empty)"
//	@Success		200		{object}	response.ListEnvelope{data=[]Photo}
//	@Failure		500		{object}	response.Envelope
//	@Router			/get-photos-s3 [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	photos, err := h.svc.List(r.Context(), userID)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("user_id", userID).Msg("list photos failed")
		response.InternalError(w, response.CodeUnexpectedFailure, "failed to list photos", err)
		return
	}

	response.List(w, photos)
}
