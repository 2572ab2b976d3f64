package backend

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/smartsight-ai/sightchat/internal/domain"
)

// BuildForm assembles a draft into the multipart submission the backend
// expects: a query field (possibly empty), the session id, and one file part
// per image. Parts are named by pending-list position so order survives the
// wire. Text-only and images-only submissions go through the same path.
func BuildForm(query, sessionID string, images []domain.ImageData) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	if err := w.WriteField("query", query); err != nil {
		return nil, "", fmt.Errorf("failed to write query field: %w", err)
	}
	if err := w.WriteField("session_id", sessionID); err != nil {
		return nil, "", fmt.Errorf("failed to write session_id field: %w", err)
	}

	for i, img := range images {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="file"; filename="image_%d%s"`, i, extForMIME(img.MIME)))
		header.Set("Content-Type", img.MIME)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create image part %d: %w", i, err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write image part %d: %w", i, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

func extForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
