package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/photorelay/service/internal/formdata"
	"github.com/photorelay/service/internal/metrics"
	"github.com/photorelay/service/internal/response"
)

// ErrPayloadTooLarge is returned when the request body exceeds the configured cap.
var ErrPayloadTooLarge = errors.New("request body too large")

const successMessage = "file uploaded successfully"

// Handler holds the HTTP handlers for the upload endpoint.
type Handler struct {
	svc      *Service
	maxBytes int64
}

// NewHandler creates an upload Handler. maxBytes <= 0 leaves the body uncapped.
func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

type uploadData struct {
	ID           string    `json:"id"           example:"photo-uploader/alice/1760000000000-0b7c7e4e-2f9c-4a8e-9a57-3f1f7f0c6b11.png"`
	URL          string    `json:"url"          example:"https://d111111abcdef8.cloudfront.net/photo-uploader/alice/1760000000000-0b7c7e4e-2f9c-4a8e-9a57-3f1f7f0c6b11.png"`
	OriginalName string    `json:"originalName" example:"cat.png"`
	Size         int64     `json:"size"         example:"1024"`
	Type         string    `json:"type"         example:"image/png"`
	UploadDate   time.Time `json:"uploadDate"   example:"2026-10-19T09:30:00Z"`
	UserID       string    `json:"userId"       example:"alice"`
	StorageKey   string    `json:"storageKey"   example:"photo-uploader/alice/1760000000000-0b7c7e4e-2f9c-4a8e-9a57-3f1f7f0c6b11.png"`
	Bucket       string    `json:"bucket"       example:"photo-uploader-media"`
}

func newUploadData(obj *StoredObject) uploadData {
	return uploadData{
		ID:           obj.Key,
		URL:          obj.URL,
		OriginalName: obj.OriginalName,
		Size:         obj.Size,
		Type:         obj.ContentType,
		UploadDate:   obj.CreatedAt,
		UserID:       obj.UserID,
		StorageKey:   obj.Key,
		Bucket:       obj.Bucket,
	}
}

// Upload godoc
//
//	@Summary		Upload a photo or video
//	@Description	Accepts a multipart/form-data body with a "file" part (image/* or video/*) and an optional "userId" field, stores the file in object storage and returns its public URL.
//	@Tags			uploads
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"Image or video file"
//	@Param			userId	formData	string	false	"Owner of the upload (default-user when empty)"
//	@Success		200		{object}	response.Envelope{data=uploadData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		405		{object}	response.Envelope
//	@Failure		413		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/upload-s3 [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())
	contentType := r.Header.Get("Content-Type")
	log.Debug().Str("content_type", contentType).Msg("upload request received")

	if _, err := formdata.Boundary(contentType); err != nil {
		h.fail(w, r, err)
		return
	}

	body, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	form, err := formdata.Decode(contentType, body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	log.Debug().Strs("fields", form.FieldNames()).Int("files", len(form.Files)).Msg("form decoded")

	v, err := Validate(form)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	log.Info().
		Str("name", v.Filename).
		Str("type", v.ContentType).
		Int("size", len(v.Data)).
		Str("user_id", v.UserID).
		Msg("file accepted")

	obj, err := h.svc.Store(r.Context(), v)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	metrics.ObserveUpload(metrics.OutcomeSuccess)
	response.OK(w, successMessage, newUploadData(obj))
}

// Preflight answers OPTIONS requests for the upload endpoint.
func (h *Handler) Preflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := r.Body
	if h.maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrPayloadTooLarge, tooLarge.Limit)
		}
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return data, nil
}

// fail maps a pipeline error to its status code and error code.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log := zerolog.Ctx(r.Context())

	switch {
	case errors.Is(err, formdata.ErrMissingBoundary):
		metrics.ObserveUpload(metrics.OutcomeMissingBoundary)
		response.BadRequest(w, response.CodeMissingBoundary, err.Error())
	case errors.Is(err, ErrNoFileProvided):
		metrics.ObserveUpload(metrics.OutcomeNoFileProvided)
		response.BadRequest(w, response.CodeNoFileProvided, err.Error())
	case errors.Is(err, ErrUnsupportedMediaType):
		metrics.ObserveUpload(metrics.OutcomeUnsupportedMediaType)
		response.BadRequest(w, response.CodeUnsupportedMediaType, err.Error())
	case errors.Is(err, ErrPayloadTooLarge):
		metrics.ObserveUpload(metrics.OutcomePayloadTooLarge)
		response.Fail(w, http.StatusRequestEntityTooLarge, response.CodePayloadTooLarge, ErrPayloadTooLarge.Error(), err.Error())
	case errors.Is(err, ErrStorageWriteFailed):
		metrics.ObserveUpload(metrics.OutcomeStorageWriteFailed)
		log.Error().Err(err).Msg("storage write failed")
		response.InternalError(w, response.CodeStorageWriteFailed, "failed to upload file", err)
	default:
		metrics.ObserveUpload(metrics.OutcomeUnexpectedFailure)
		log.Error().Err(err).Msg("upload failed")
		response.InternalError(w, response.CodeUnexpectedFailure, "failed to upload file", err)
	}
}
