package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/soffa-projects/record-api/schema"
)

const GoogleProviderName = "google"

// Provider is a federated identity provider: it sends the user away to log
// in, then turns the returned authorization code into a profile.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (*schema.Profile, error)
}

type FederatedConfig struct {
	ClientId     string
	ClientSecret string
	AuthUrl      string
	TokenUrl     string
	CallbackUrl  string
	UserInfoUrl  string
	Scopes       []string
}

type googleProvider struct {
	config      *oauth2.Config
	userInfoUrl string
}

func NewGoogleProvider(cfg FederatedConfig) Provider {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"profile", "email"}
	}
	return &googleProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientId,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackUrl,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthUrl,
				TokenURL: cfg.TokenUrl,
			},
		},
		userInfoUrl: cfg.UserInfoUrl,
	}
}

func (p *googleProvider) Name() string {
	return GoogleProviderName
}

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *googleProvider) FetchProfile(ctx context.Context, code string) (*schema.Profile, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	client := p.config.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoUrl, nil)
	if err != nil {
		return nil, err
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	//goland:noinspection ALL
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", res.StatusCode)
	}
	var payload struct {
		Id    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err = json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &schema.Profile{
		Provider:   GoogleProviderName,
		ProviderId: payload.Id,
		Email:      payload.Email,
		Name:       payload.Name,
	}, nil
}
