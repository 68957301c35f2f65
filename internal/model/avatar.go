package model

import "errors"

const (
	AvatarWidth   = 200
	AvatarHeight  = 200
	AvatarQuality = 85
	// AvatarDataURLPrefix marks a stored avatar as a base64 JPEG data URL.
	AvatarDataURLPrefix = "data:image/jpeg;base64,"
)

// Supported image content types for avatar validation
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
)

var allowedImageTypes = map[string]struct{}{
	ContentTypeJPEG: {},
	ContentTypePNG:  {},
	ContentTypeGIF:  {},
}

// IsAllowedImageType reports whether contentType can be used as an avatar.
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// Error codes for HTTP responses
const (
	CodeFileTooLarge     = "FILE_TOO_LARGE"
	CodeInvalidImageType = "INVALID_IMAGE_TYPE"
)

var (
	ErrAvatarTooLarge   = errors.New("avatar too large")
	ErrInvalidImageType = errors.New("invalid image type")
	ErrInvalidAvatar    = errors.New("avatar is not valid base64 image data")
)
