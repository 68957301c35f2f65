package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"

	"trackmygoal/internal/model"
)

// AvatarService turns an uploaded avatar (base64, optionally a data URL) into
// the stored form: a 200x200 JPEG data URL.
type AvatarService struct {
	maxBytes int
}

func NewAvatarService(maxBytes int) *AvatarService {
	return &AvatarService{maxBytes: maxBytes}
}

// Normalize returns nil for an empty input, which clears the avatar.
func (s *AvatarService) Normalize(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	data, err := decodeAvatar(raw)
	if err != nil {
		return nil, err
	}
	if len(data) > s.maxBytes {
		return nil, model.ErrAvatarTooLarge
	}

	contentType := http.DetectContentType(data[:min(len(data), 512)])
	if !model.IsAllowedImageType(contentType) {
		return nil, model.ErrInvalidImageType
	}

	resized, err := resizeToJPEG(data, model.AvatarWidth, model.AvatarHeight, model.AvatarQuality)
	if err != nil {
		return nil, model.ErrInvalidAvatar
	}

	encoded := model.AvatarDataURLPrefix + base64.StdEncoding.EncodeToString(resized)
	return &encoded, nil
}

// decodeAvatar strips an optional "data:<type>;base64," header.
func decodeAvatar(raw string) ([]byte, error) {
	if strings.HasPrefix(raw, "data:") {
		idx := strings.Index(raw, ",")
		if idx == -1 || !strings.HasSuffix(raw[:idx], ";base64") {
			return nil, model.ErrInvalidAvatar
		}
		raw = raw[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(raw)
	}
	if err != nil || len(data) == 0 {
		return nil, model.ErrInvalidAvatar
	}
	return data, nil
}

// resizeToJPEG centers/crops to target size and encodes as JPEG.
func resizeToJPEG(data []byte, width, height, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}
