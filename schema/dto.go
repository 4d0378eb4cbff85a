package schema

type CreateAuthClientInput struct {
	ClientId    string `json:"client_id" validate:"required"`
	Secret      string `json:"secret" validate:"required"`
	RedirectUrl string `json:"redirect_url" validate:"required"`
	TokenTtl    int64  `json:"token_ttl" validate:"gte=0"`
}

type UpdateAuthClientInput struct {
	Id          *string `param:"id" json:"id" validate:"required"`
	Secret      string  `json:"secret"`
	RedirectUrl string  `json:"redirect_url"`
	TokenTtl    int64   `json:"token_ttl"`
}

type CreateRoleInput struct {
	Key         string     `json:"key" validate:"required"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Permissions StringList `json:"permissions"`
}

type UpdateRoleInput struct {
	Id          *string    `param:"id" json:"id" validate:"required"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Permissions StringList `json:"permissions"`
}

type CreateUserInput struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name"`
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phone_number"`
	Username     string `json:"username"`
	AuthProvider string `json:"auth_provider" validate:"required"`
	RoleKey      string `json:"role_key"`
	CustomerId   *string `json:"customer_id"`
}

type UpdateUserInput struct {
	Id          *string `param:"id" json:"id" validate:"required"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber string  `json:"phone_number"`
	Username    string  `json:"username"`
	RoleKey     string  `json:"role_key"`
	CustomerId  *string `json:"customer_id"`
}

type CreateCustomerInput struct {
	Name    string `json:"name" validate:"required"`
	Website string `json:"website"`
	Address string `json:"address"`
}

type UpdateCustomerInput struct {
	Id      *string `param:"id" json:"id" validate:"required"`
	Name    string  `json:"name"`
	Website string  `json:"website"`
	Address string  `json:"address"`
}
