package authstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// uploadResponse is the edge function reply carrying the public blob URL.
type uploadResponse struct {
	PublicURL string `json:"publicUrl"`
}

type imageUploadRequest struct {
	Base64   string `json:"base64"`
	FileName string `json:"fileName"`
	UserID   string `json:"userId"`
}

type audioUploadRequest struct {
	Base64      string `json:"base64"`
	FileName    string `json:"fileName"`
	UserID      string `json:"userId"`
	ContentType string `json:"contentType"`
}

// UploadImage sends a base64 image data URL to the upload-image edge function
// and returns the public URL of the stored blob. Image blobs are stored as
// jpg regardless of the source MIME subtype.
func (c *Client) UploadImage(ctx context.Context, dataURL, userID string) (string, error) {
	if !strings.HasPrefix(dataURL, "data:image") {
		return "", fmt.Errorf("expected image data URL starting with data:image")
	}
	_, b64, err := splitDataURL(dataURL)
	if err != nil {
		return "", err
	}

	req := imageUploadRequest{
		Base64:   b64,
		FileName: "image-" + uuid.NewString() + ".jpg",
		UserID:   userID,
	}
	var resp uploadResponse
	if err := c.doJSON(ctx, "POST", "/functions/v1/upload-image", req, &resp, 200); err != nil {
		return "", err
	}
	if resp.PublicURL == "" {
		return "", fmt.Errorf("upload-image returned no public URL")
	}
	uploadsTotal.WithLabelValues("image").Inc()
	return resp.PublicURL, nil
}

// UploadAudio sends a base64 audio data URL to the upload-audio edge function
// and returns the public URL of the stored blob. The file extension is
// derived from the data URL's MIME subtype, defaulting to mp3.
func (c *Client) UploadAudio(ctx context.Context, dataURL, userID string) (string, error) {
	if !strings.HasPrefix(dataURL, "data:audio") {
		return "", fmt.Errorf("expected audio data URL starting with data:audio")
	}
	contentType, b64, err := splitDataURL(dataURL)
	if err != nil {
		return "", err
	}

	ext := "mp3"
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 && parts[1] != "" {
		ext = parts[1]
	}

	req := audioUploadRequest{
		Base64:      b64,
		FileName:    "audio-" + uuid.NewString() + "." + ext,
		UserID:      userID,
		ContentType: contentType,
	}
	var resp uploadResponse
	if err := c.doJSON(ctx, "POST", "/functions/v1/upload-audio", req, &resp, 200); err != nil {
		return "", err
	}
	if resp.PublicURL == "" {
		return "", fmt.Errorf("upload-audio returned no public URL")
	}
	uploadsTotal.WithLabelValues("audio").Inc()
	return resp.PublicURL, nil
}

// DeleteUpload removes a stored blob given its public URL. Used by the
// compensating cleanup queue after a partially failed multi-image create.
func (c *Client) DeleteUpload(ctx context.Context, publicURL string) error {
	bucket, objectPath, err := parsePublicURL(publicURL)
	if err != nil {
		return err
	}
	path := "/storage/v1/object/" + bucket + "/" + objectPath
	if err := c.doJSON(ctx, "DELETE", path, nil, nil, 200, 204); err != nil {
		return err
	}
	uploadDeletesTotal.Inc()
	return nil
}

// splitDataURL separates "data:<mime>;base64,<payload>" into its MIME type
// and raw base64 payload.
func splitDataURL(dataURL string) (contentType, b64 string, err error) {
	meta, payload, ok := strings.Cut(dataURL, ";base64,")
	if !ok || payload == "" {
		return "", "", fmt.Errorf("malformed data URL: missing base64 payload")
	}
	return strings.TrimPrefix(meta, "data:"), payload, nil
}

// parsePublicURL extracts bucket and object path from a storage public URL of
// the form {base}/storage/v1/object/public/{bucket}/{path...}.
func parsePublicURL(publicURL string) (bucket, objectPath string, err error) {
	const marker = "/storage/v1/object/public/"
	idx := strings.Index(publicURL, marker)
	if idx < 0 {
		return "", "", fmt.Errorf("not a storage public URL: %s", publicURL)
	}
	rest := publicURL[idx+len(marker):]
	bucket, objectPath, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || objectPath == "" {
		return "", "", fmt.Errorf("not a storage public URL: %s", publicURL)
	}
	return bucket, objectPath, nil
}
