package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sigorta_portal/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrMissingIdentityAdminURL = errors.New("missing IDENTITY_ADMIN_URL")
	ErrMissingIdentityAdminKey = errors.New("missing IDENTITY_ADMIN_KEY")
)

// HTTPIdentityProvider talks to the identity platform's admin REST surface.
// Only provisioning uses it, always with the service credential; regular
// request authentication never goes through here.

type HTTPIdentityProvider struct {
	baseURL  string
	adminKey string
	client   *http.Client
	log      *zap.Logger
}

var _ interfaces.IIdentityProvider = (*HTTPIdentityProvider)(nil)

func NewHTTPIdentityProvider(baseURL, adminKey string, log *zap.Logger) (*HTTPIdentityProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrMissingIdentityAdminURL
	}
	if strings.TrimSpace(adminKey) == "" {
		return nil, ErrMissingIdentityAdminKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPIdentityProvider{
		baseURL:  baseURL,
		adminKey: adminKey,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}, nil
}

type createUserRequest struct {
	Email        string            `json:"email"`
	Password     string            `json:"password"`
	EmailConfirm bool              `json:"email_confirm"`
	UserMetadata map[string]string `json:"user_metadata"`
}

type createUserResponse struct {
	ID string `json:"id"`
}

func (p *HTTPIdentityProvider) CreateUser(ctx context.Context, account interfaces.NewAccount) (string, error) {
	body, err := json.Marshal(createUserRequest{
		Email:        account.Email,
		Password:     account.Password,
		EmailConfirm: true,
		UserMetadata: map[string]string{
			"full_name": account.FullName,
			"role":      string(account.Role),
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/admin/users", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.adminKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error("identity admin call failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.log.Error("identity admin rejected user creation",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody))
		return "", fmt.Errorf("identity admin: unexpected status %d", resp.StatusCode)
	}

	var out createUserResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("identity admin: response missing user id")
	}
	return out.ID, nil
}
