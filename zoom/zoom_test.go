package zoom

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewportal/config"
)

func TestSignatureDeterministic(t *testing.T) {
	base := signatureAt("key", "secret", "123456789", 0, 1700000000000)

	assert.Equal(t, base, signatureAt("key", "secret", "123456789", 0, 1700000000000))

	assert.NotEqual(t, base, signatureAt("key2", "secret", "123456789", 0, 1700000000000))
	assert.NotEqual(t, base, signatureAt("key", "secret2", "123456789", 0, 1700000000000))
	assert.NotEqual(t, base, signatureAt("key", "secret", "987654321", 0, 1700000000000))
	assert.NotEqual(t, base, signatureAt("key", "secret", "123456789", 1, 1700000000000))
	assert.NotEqual(t, base, signatureAt("key", "secret", "123456789", 0, 1700000000001))
}

func TestSignatureComposite(t *testing.T) {
	sig := signatureAt("key", "secret", "123456789", 1, 1700000000000)

	decoded, err := base64.StdEncoding.DecodeString(sig)
	require.NoError(t, err)

	parts := strings.Split(string(decoded), ".")
	require.Len(t, parts, 5)
	assert.Equal(t, "key", parts[0])
	assert.Equal(t, "123456789", parts[1])
	assert.Equal(t, "1700000000000", parts[2])
	assert.Equal(t, "1", parts[3])

	msg := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s%s%d%d", "key", "123456789", int64(1700000000000), 1)))
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte(msg))
	assert.Equal(t, base64.StdEncoding.EncodeToString(mac.Sum(nil)), parts[4])
}

func TestGenerateSignature(t *testing.T) {
	c := NewClient(config.ZoomConfig{APIKey: "key", APISecret: "secret"}, nil)

	sig := c.GenerateSignature("123456789", 0)
	assert.Equal(t, "123456789", sig.MeetingNumber)
	assert.Equal(t, "key", sig.APIKey)
	assert.NotEmpty(t, sig.Signature)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.ZoomConfig{
		APIKey:     "key",
		APISecret:  "secret",
		AccountID:  "acc-1",
		OAuthURL:   srv.URL + "/oauth/token",
		APIBaseURL: srv.URL + "/v2",
	}
	return NewClient(cfg, nil), srv
}

func TestAccessToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "account_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "acc-1", r.PostForm.Get("account_id"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-123",
			"expires_in":   3600,
		})
	})

	c, _ := newTestClient(t, mux)

	tok, err := c.AccessToken(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
}

func TestAccessTokenUpstreamFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"reason":"invalid client"}`, http.StatusUnauthorized)
	})

	c, _ := newTestClient(t, mux)

	_, err := c.AccessToken(t.Context())
	assert.Error(t, err)
}

func TestCreateMeeting(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-123",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/v2/users/me/meetings", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var req MeetingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Interview with Ada for Backend Engineer", req.Topic)
		assert.Equal(t, 2, req.Type)
		assert.Equal(t, "UTC", req.Timezone)
		assert.Equal(t, 60, req.Duration)
		assert.True(t, req.Settings.MuteUponEntry)
		assert.False(t, req.Settings.JoinBeforeHost)
		assert.Equal(t, "both", req.Settings.Audio)
		assert.Equal(t, "none", req.Settings.AutoRecording)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":        int64(987654321),
			"topic":     req.Topic,
			"password":  req.Password,
			"join_url":  "https://zoom.example/j/987654321",
			"start_url": "https://zoom.example/s/987654321",
		})
	})

	c, _ := newTestClient(t, mux)

	meeting, err := c.CreateMeeting(t.Context(), &MeetingRequest{
		Topic:     "Interview with Ada for Backend Engineer",
		Type:      2,
		StartTime: "2026-09-10T14:00:00Z",
		Duration:  60,
		Timezone:  "UTC",
		Password:  "pw123456",
		Settings:  DefaultSettings(),
	})
	require.NoError(t, err)

	assert.Equal(t, "987654321", meeting.MeetingID())
	assert.Equal(t, "https://zoom.example/j/987654321", meeting.JoinURL)
	assert.Equal(t, "https://zoom.example/s/987654321", meeting.StartURL)
}

type memCache struct {
	m map[string]string
}

func newMemCache() *memCache { return &memCache{m: map[string]string{}} }

func (c *memCache) Get(ctx context.Context, key string) (string, error) { return c.m[key], nil }
func (c *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.m[key] = value
	return nil
}
func (c *memCache) Delete(ctx context.Context, key string) error {
	delete(c.m, key)
	return nil
}

func TestAccessTokenTruncatedErrorBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "512")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"reason":`))
	})

	c, _ := newTestClient(t, mux)

	_, err := c.AccessToken(t.Context())
	require.Error(t, err)
	assert.ErrorContains(t, err, "zoom token body")
}

func TestCreateMeetingInvalidatesCachedTokenOnAuthFailure(t *testing.T) {
	var tokenCalls int
	var rejectMeetings bool

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": fmt.Sprintf("tok-%d", tokenCalls),
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/v2/users/me/meetings", func(w http.ResponseWriter, r *http.Request) {
		if rejectMeetings {
			http.Error(w, `{"code":124,"message":"access token expired"}`, http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": int64(1)})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := config.ZoomConfig{
		APIKey:     "key",
		APISecret:  "secret",
		AccountID:  "acc-1",
		OAuthURL:   srv.URL + "/oauth/token",
		APIBaseURL: srv.URL + "/v2",
	}
	mem := newMemCache()
	c := NewClient(cfg, mem)

	_, err := c.CreateMeeting(t.Context(), &MeetingRequest{Settings: DefaultSettings()})
	require.NoError(t, err)
	require.Equal(t, 1, tokenCalls)

	// second call reuses the cached token
	_, err = c.CreateMeeting(t.Context(), &MeetingRequest{Settings: DefaultSettings()})
	require.NoError(t, err)
	require.Equal(t, 1, tokenCalls)

	// upstream rejects the token: the cache entry must go
	rejectMeetings = true
	_, err = c.CreateMeeting(t.Context(), &MeetingRequest{Settings: DefaultSettings()})
	require.Error(t, err)
	assert.Empty(t, mem.m[accessTokenCacheKey])

	// next call exchanges credentials again
	rejectMeetings = false
	_, err = c.CreateMeeting(t.Context(), &MeetingRequest{Settings: DefaultSettings()})
	require.NoError(t, err)
	assert.Equal(t, 2, tokenCalls)
}

func TestCreateMeetingUpstreamFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-123",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/v2/users/me/meetings", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":300,"message":"bad request"}`, http.StatusBadRequest)
	})

	c, _ := newTestClient(t, mux)

	_, err := c.CreateMeeting(t.Context(), &MeetingRequest{Settings: DefaultSettings()})
	assert.Error(t, err)
}
