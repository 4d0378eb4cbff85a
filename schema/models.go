package schema

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is stored as a json-encoded text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	out, err := json.Marshal(l)
	return string(out), err
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("unsupported column type: %T", value)
	}
}

// AuthClient is a registered calling application. The secret is never serialized.
type AuthClient struct {
	Id          *string `json:"id" gorm:"primaryKey" prefix:"acl"`
	ClientId    string  `json:"client_id" gorm:"uniqueIndex"`
	Secret      string  `json:"-"`
	RedirectUrl string  `json:"redirect_url"`
	// TokenTtl is the lifetime in seconds of tokens issued to this client.
	TokenTtl int64 `json:"token_ttl"`
}

type Role struct {
	Id          *string    `json:"id" gorm:"primaryKey" prefix:"rol"`
	Key         string     `json:"key" gorm:"uniqueIndex"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Permissions StringList `json:"permissions" gorm:"type:text"`
}

type User struct {
	Id          *string `json:"id" gorm:"primaryKey" prefix:"usr"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email" gorm:"uniqueIndex"`
	PhoneNumber string  `json:"phone_number,omitempty"`
	Username    string  `json:"username,omitempty"`
	// AuthProvider is the federated provider this user signs in with (e.g. "google").
	AuthProvider string `json:"auth_provider"`
	AuthId       string `json:"-"`
	AuthToken    string `json:"-"`
	// Roles are linked by string key, never by numeric id.
	RoleKey    string  `json:"role_key"`
	Role       *Role   `json:"role,omitempty" gorm:"-"`
	CustomerId *string `json:"customer_id,omitempty"`
}

// Permissions returns the role-derived permission set. Users without a
// resolved role are granted nothing.
func (u *User) Permissions() []string {
	if u.Role == nil {
		return []string{}
	}
	return u.Role.Permissions
}

type Customer struct {
	Id      *string `json:"id" gorm:"primaryKey" prefix:"cus"`
	Name    string  `json:"name"`
	Website string  `json:"website,omitempty"`
	Address string  `json:"address,omitempty"`
}
