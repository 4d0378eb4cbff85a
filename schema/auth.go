package schema

type TokenResponse struct {
	Token string `json:"token"`
}

// Profile is what a federated provider returns about the logged-in principal.
type Profile struct {
	Provider   string `json:"provider"`
	ProviderId string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
}

type LoginInput struct {
	ClientId     string `query:"client_id" json:"client_id" validate:"required"`
	ClientSecret string `query:"client_secret" json:"client_secret"`
}

type CallbackInput struct {
	Code  string `query:"code" json:"code" validate:"required"`
	State string `query:"state" json:"state" validate:"required"`
}
