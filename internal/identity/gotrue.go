package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	auth "github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"

	"github.com/njprem/HeritageBites_Reset_API/internal/util"
)

const serviceTokenTTL = 5 * time.Minute

// auth-go reports non-2xx replies as "response status code N: <body>".
var statusErrorPattern = regexp.MustCompile(`(?s)^response status code (\d+)(?::\s*(.*))?$`)

// GoTrueProvider updates passwords through the GoTrue (Supabase Auth) admin
// API. It authenticates with the configured service key, or mints a
// short-lived service_role token from the JWT secret when no key is set.
type GoTrueProvider struct {
	client     auth.Client
	serviceKey string
	signer     *util.JWTManager
}

func NewGoTrueProvider(baseURL, serviceKey, jwtSecret string) (*GoTrueProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("gotrue: base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("gotrue: invalid base url: %w", err)
	}
	serviceKey = strings.TrimSpace(serviceKey)
	provider := &GoTrueProvider{
		client: auth.New("", serviceKey).
			WithCustomAuthURL(baseURL).
			WithClient(http.Client{Timeout: 10 * time.Second}),
		serviceKey: serviceKey,
	}
	if serviceKey == "" {
		if strings.TrimSpace(jwtSecret) == "" {
			return nil, errors.New("gotrue: service key or jwt secret is required")
		}
		provider.signer = util.NewJWTManager(jwtSecret, serviceTokenTTL, "heritage-bites-reset")
	}
	return provider, nil
}

func (p *GoTrueProvider) SetPassword(ctx context.Context, identityID uuid.UUID, newPassword string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	bearer, err := p.bearerToken()
	if err != nil {
		return err
	}

	_, err = p.client.WithToken(bearer).AdminUpdateUser(types.AdminUpdateUserRequest{
		UserID:   identityID,
		Password: newPassword,
	})
	if err != nil {
		return providerError(err)
	}
	return nil
}

func (p *GoTrueProvider) bearerToken() (string, error) {
	if p.serviceKey != "" {
		return p.serviceKey, nil
	}
	token, _, err := p.signer.GenerateServiceToken()
	if err != nil {
		return "", fmt.Errorf("gotrue: sign service token: %w", err)
	}
	return token, nil
}

// providerError turns a rejection reported by GoTrue into a ProviderError.
// Transport failures are wrapped as they are.
func providerError(err error) error {
	m := statusErrorPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return fmt.Errorf("gotrue: update user: %w", err)
	}
	status, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return fmt.Errorf("gotrue: update user: %w", err)
	}
	return &ProviderError{StatusCode: status, Message: errorMessage(status, []byte(m[2]))}
}

// errorMessage pulls the human readable message out of a GoTrue error body.
// Different GoTrue versions use different keys.
func errorMessage(status int, body []byte) string {
	var parsed struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, candidate := range []string{parsed.Msg, parsed.Message, parsed.ErrorDescription, parsed.Error} {
			if strings.TrimSpace(candidate) != "" {
				return strings.TrimSpace(candidate)
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "identity provider error"
}
