// Package media converts inbound binary image attachments into storable
// records and back into transport-safe base64 payloads. It is a pure
// transform: no network or storage side effects.
package media

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/renthome/renter-service/internal/renting/domain"
)

const (
	// MaxFileSize is the per-attachment ceiling, 5 MiB.
	MaxFileSize = 5 << 20
	// MaxFiles is the attachment count ceiling for one submission.
	MaxFiles = 5
)

// File is one raw multipart attachment as received from the transport.
type File struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Decode validates one attachment and turns it into an embeddable Image.
// The declared content type must be in the image/* family and the payload
// must not exceed MaxFileSize.
func Decode(raw []byte, contentType, filename string) (domain.Image, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return domain.Image{}, fmt.Errorf("%w: content type %q is not an image", domain.ErrInvalidMedia, contentType)
	}
	if len(raw) > MaxFileSize {
		return domain.Image{}, fmt.Errorf("%w: file %q exceeds %d bytes", domain.ErrInvalidMedia, filename, MaxFileSize)
	}
	return domain.Image{
		Data:        raw,
		ContentType: contentType,
		Filename:    filename,
	}, nil
}

// DecodeAll decodes a whole submission's attachments, enforcing the count
// ceiling before touching any individual file.
func DecodeAll(files []File) ([]domain.Image, error) {
	if len(files) > MaxFiles {
		return nil, fmt.Errorf("%w: %d attachments exceeds limit of %d", domain.ErrInvalidMedia, len(files), MaxFiles)
	}
	images := make([]domain.Image, 0, len(files))
	for _, f := range files {
		img, err := Decode(f.Data, f.ContentType, f.Filename)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// EncodedImage is the client-displayable form of an Image. Base64 is nil
// (serialized as JSON null) when the stored payload is missing, never omitted.
type EncodedImage struct {
	Base64      *string `json:"base64"`
	ContentType string  `json:"contentType"`
	Filename    string  `json:"filename,omitempty"`
}

// Encode produces the transport representation of an Image. It is total over
// well-formed images: Encode(Decode(b, t, n)).Base64 decodes back to b.
func Encode(img domain.Image) EncodedImage {
	enc := EncodedImage{
		ContentType: img.ContentType,
		Filename:    img.Filename,
	}
	if img.Data != nil {
		b64 := base64.StdEncoding.EncodeToString(img.Data)
		enc.Base64 = &b64
	}
	return enc
}

// EncodeAll encodes a listing's image sequence. A listing with no images
// yields an empty slice, not nil, so the JSON field is always an array.
func EncodeAll(images []domain.Image) []EncodedImage {
	encoded := make([]EncodedImage, 0, len(images))
	for _, img := range images {
		encoded = append(encoded, Encode(img))
	}
	return encoded
}
