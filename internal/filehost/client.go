package filehost

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Client talks to the image-hosting provider. Uploads happen directly from
// the browser with a short-lived signature issued here; deletes are
// authenticated server-side with the private key.
type Client struct {
	baseURL    string
	privateKey string
	timeout    time.Duration
	httpClient *http.Client
}

// UploadSignature is the token/signature pair a client needs for a direct
// signed upload.
type UploadSignature struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

func NewClient(baseURL, privateKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		privateKey: privateKey,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewUploadSignature issues a signature valid for the given TTL.
func (c *Client) NewUploadSignature(ttl time.Duration) UploadSignature {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	token := uuid.NewString()
	expire := time.Now().Add(ttl).Unix()

	mac := hmac.New(sha1.New, []byte(c.privateKey))
	mac.Write([]byte(token + strconv.FormatInt(expire, 10)))

	return UploadSignature{
		Token:     token,
		Expire:    expire,
		Signature: hex.EncodeToString(mac.Sum(nil)),
	}
}

// Delete removes a hosted file by id. A 404 means the file is already gone
// and is treated as success so deletes stay idempotent.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	if fileID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/files/"+fileID, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.privateKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("file host delete: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("file host delete: status %d", resp.StatusCode)
	}
}
