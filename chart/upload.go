package chart

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/pkg/errors"
)

// Uploader pushes a rendered chart to Cloudinary using a signed upload
// and returns the public URL the report embeds.
type Uploader struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string

	// Client defaults to http.DefaultClient.
	Client *http.Client
	// now is overridable for tests.
	now func() time.Time
}

func (u *Uploader) client() *http.Client {
	if u.Client != nil {
		return u.Client
	}
	return http.DefaultClient
}

func (u *Uploader) timestamp() int64 {
	if u.now != nil {
		return u.now().Unix()
	}
	return time.Now().Unix()
}

func (u *Uploader) uploadURL() string {
	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", u.CloudName)
}

// signature signs the upload parameters the way Cloudinary expects:
// the sorted parameter string with the API secret appended, SHA-1 hashed.
func (u *Uploader) signature(timestamp int64) string {
	toSign := fmt.Sprintf("folder=%s&timestamp=%d%s", u.Folder, timestamp, u.APISecret)
	return fmt.Sprintf("%x", sha1.Sum([]byte(toSign)))
}

// Upload posts the PNG and returns its secure URL.
func (u *Uploader) Upload(png []byte, name string) (string, error) {
	ts := u.timestamp()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return "", errors.Wrap(err, "building upload request")
	}
	if _, err := part.Write(png); err != nil {
		return "", errors.Wrap(err, "building upload request")
	}
	fields := map[string]string{
		"api_key":   u.APIKey,
		"timestamp": fmt.Sprintf("%d", ts),
		"signature": u.signature(ts),
		"folder":    u.Folder,
	}
	for field, value := range fields {
		if err := w.WriteField(field, value); err != nil {
			return "", errors.Wrap(err, "building upload request")
		}
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "building upload request")
	}

	req, err := http.NewRequest(http.MethodPost, u.uploadURL(), &body)
	if err != nil {
		return "", errors.Wrap(err, "building upload request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.client().Do(req)
	if err != nil {
		return "", errors.Wrap(err, "uploading chart")
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading upload response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("chart upload failed: %s: %s", resp.Status, payload)
	}

	var doc interface{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return "", errors.Wrap(err, "parsing upload response")
	}
	url, err := jsonpath.Get("$.secure_url", doc)
	if err != nil {
		return "", errors.Wrap(err, "upload response has no secure_url")
	}
	s, ok := url.(string)
	if !ok || s == "" {
		return "", errors.Errorf("upload response secure_url is %v, want a URL", url)
	}
	return s, nil
}
