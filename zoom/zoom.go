// Package zoom bridges to the video-conferencing provider: the
// client-credentials token exchange, meeting creation, and the client-SDK
// join signature.
package zoom

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"interviewportal/config"
)

const accessTokenCacheKey = "zoom:access_token"

// TokenCache holds the short-lived OAuth token between calls. cache.Client
// satisfies it.
type TokenCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Client struct {
	apiKey    string
	apiSecret string
	accountID string
	oauthURL  string
	baseURL   string

	httpClient *http.Client
	cache      TokenCache
}

// NewClient builds the provider client. The cache may be nil; tokens are
// then exchanged on every call, which is what the provider-side rate limits
// tolerate anyway.
func NewClient(cfg config.ZoomConfig, c TokenCache) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		accountID:  cfg.AccountID,
		oauthURL:   cfg.OAuthURL,
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      c,
	}
}

func (c *Client) APIKey() string { return c.apiKey }

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessToken performs the account-credentials exchange, reusing a cached
// token while it is still comfortably within its lifetime.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if c.cache != nil {
		if tok, _ := c.cache.Get(ctx, accessTokenCacheKey); tok != "" {
			return tok, nil
		}
	}

	form := url.Values{}
	form.Set("grant_type", "account_credentials")
	form.Set("account_id", c.accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.oauthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("zoom token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("zoom token body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zoom token exchange failed (%d): %s", resp.StatusCode, body)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("zoom token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("zoom token exchange returned empty token")
	}

	if c.cache != nil {
		if ttl := time.Duration(tr.ExpiresIn-60) * time.Second; ttl > 0 {
			_ = c.cache.Set(ctx, accessTokenCacheKey, tr.AccessToken, ttl)
		}
	}

	return tr.AccessToken, nil
}

type MeetingSettings struct {
	HostVideo        bool   `json:"host_video"`
	ParticipantVideo bool   `json:"participant_video"`
	JoinBeforeHost   bool   `json:"join_before_host"`
	MuteUponEntry    bool   `json:"mute_upon_entry"`
	WaitingRoom      bool   `json:"waiting_room"`
	ApprovalType     int    `json:"approval_type"`
	Audio            string `json:"audio"`
	AutoRecording    string `json:"auto_recording"`
}

type MeetingRequest struct {
	Topic     string          `json:"topic"`
	Type      int             `json:"type"`
	StartTime string          `json:"start_time"`
	Duration  int             `json:"duration"`
	Timezone  string          `json:"timezone"`
	Password  string          `json:"password"`
	Settings  MeetingSettings `json:"settings"`
}

// DefaultSettings is the fixed bundle applied to every scheduled interview
// meeting.
func DefaultSettings() MeetingSettings {
	return MeetingSettings{
		HostVideo:        true,
		ParticipantVideo: true,
		JoinBeforeHost:   false,
		MuteUponEntry:    true,
		WaitingRoom:      false,
		ApprovalType:     0,
		Audio:            "both",
		AutoRecording:    "none",
	}
}

type Meeting struct {
	ID        int64  `json:"id"`
	Topic     string `json:"topic"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Timezone  string `json:"timezone"`
	Password  string `json:"password"`
	JoinURL   string `json:"join_url"`
	StartURL  string `json:"start_url"`
}

func (m *Meeting) MeetingID() string {
	return strconv.FormatInt(m.ID, 10)
}

func (c *Client) CreateMeeting(ctx context.Context, req *MeetingRequest) (*Meeting, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/me/meetings", strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("zoom create meeting: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("zoom meeting body: %w", err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized && c.cache != nil {
			// The cached token was rejected upstream; drop it so the next
			// call performs a fresh exchange.
			_ = c.cache.Delete(ctx, accessTokenCacheKey)
		}
		return nil, fmt.Errorf("zoom create meeting failed (%d): %s", resp.StatusCode, body)
	}

	var meeting Meeting
	if err := json.Unmarshal(body, &meeting); err != nil {
		return nil, fmt.Errorf("zoom meeting response: %w", err)
	}
	return &meeting, nil
}

type Signature struct {
	Signature     string `json:"signature"`
	MeetingNumber string `json:"meetingNumber"`
	APIKey        string `json:"apiKey"`
}

// GenerateSignature computes the client-SDK join signature for a meeting and
// role (0=participant, 1=host). The timestamp is backdated 30 seconds, the
// provider enforces the validity window.
func (c *Client) GenerateSignature(meetingNumber string, role int) Signature {
	ts := time.Now().UnixMilli() - 30000
	return Signature{
		Signature:     signatureAt(c.apiKey, c.apiSecret, meetingNumber, role, ts),
		MeetingNumber: meetingNumber,
		APIKey:        c.apiKey,
	}
}

func signatureAt(apiKey, apiSecret, meetingNumber string, role int, ts int64) string {
	msg := base64.StdEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%s%s%d%d", apiKey, meetingNumber, ts, role)),
	)

	mac := hmac.New(sha256.New, []byte(apiSecret))
	mac.Write([]byte(msg))
	hash := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	composite := fmt.Sprintf("%s.%s.%d.%d.%s", apiKey, meetingNumber, ts, role, hash)
	return base64.StdEncoding.EncodeToString([]byte(composite))
}
