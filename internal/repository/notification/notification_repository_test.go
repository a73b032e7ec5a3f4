package notification

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(baseURL string) *MailjetRepository {
	return NewMailjetRepository(MailjetConfig{
		MailjetBaseURL:           baseURL,
		MailjetBasicAuthUsername: "api-key",
		MailjetBasicAuthPassword: "api-secret",
		MailjetSenderEmail:       "noreply@tourguide.example",
		MailjetSenderName:        "Tour Guide",
	})
}

func TestSendEmailPayload(t *testing.T) {
	var got sendEmailPayload
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3.1/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := newTestRepository(srv.URL)

	err := repo.SendEmail("Ayu", "ayu@example.com", "Activate Your Account!", "click the link")
	require.NoError(t, err)

	require.Len(t, got.Messages, 1)
	msg := got.Messages[0]
	assert.Equal(t, "noreply@tourguide.example", msg.From.Email)
	assert.Equal(t, "Tour Guide", msg.From.Name)
	require.Len(t, msg.To, 1)
	assert.Equal(t, "ayu@example.com", msg.To[0].Email)
	assert.Equal(t, "Activate Your Account!", msg.Subject)
	assert.Equal(t, "click the link", msg.TextPart)
	assert.Equal(t, msg.TextPart, msg.HTMLPart)

	// Basic base64("api-key:api-secret")
	assert.Equal(t, "Basic YXBpLWtleTphcGktc2VjcmV0", auth)
}

func TestSendEmailRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	repo := newTestRepository(srv.URL)

	err := repo.SendEmail("Ayu", "ayu@example.com", "subject", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
