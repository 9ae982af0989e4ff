// Package upload validates decoded upload forms, writes the file to object
// storage and serves the upload endpoint.
package upload

import (
	"errors"
	"strings"

	"github.com/photorelay/service/internal/formdata"
)

// Form field names read by the upload endpoint.
const (
	FileField   = "file"
	UserIDField = "userId"
)

// DefaultUserID is used when the form carries no userId.
const DefaultUserID = "default-user"

// ErrNoFileProvided is returned when the form has no file part named "file".
var ErrNoFileProvided = errors.New("no file provided")

// ErrUnsupportedMediaType is returned for files that are neither images nor videos.
var ErrUnsupportedMediaType = errors.New("only image and video files are supported")

var allowedTypePrefixes = []string{"image/", "video/"}

// Validated is an upload that passed validation.
type Validated struct {
	Data        []byte
	ContentType string
	Filename    string
	UserID      string
}

// Validate checks that form carries an image or video under "file" and
// resolves the uploading user. The user id is taken on trust.
func Validate(form *formdata.Form) (*Validated, error) {
	file, ok := form.File(FileField)
	if !ok {
		return nil, ErrNoFileProvided
	}
	if !isAllowedType(file.ContentType) {
		return nil, ErrUnsupportedMediaType
	}

	userID := form.Value(UserIDField)
	if userID == "" {
		userID = DefaultUserID
	}

	return &Validated{
		Data:        file.Data,
		ContentType: file.ContentType,
		Filename:    file.Filename,
		UserID:      userID,
	}, nil
}

func isAllowedType(contentType string) bool {
	for _, prefix := range allowedTypePrefixes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}
