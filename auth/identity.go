package auth

import (
	gerrors "errors"

	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/schema"
)

// IdentityResolver maps a token subject or provider profile to a local user,
// with the role and its permission set attached.
type IdentityResolver interface {
	FindByEmail(email string) (*schema.User, error)
}

type identityResolver struct {
	db core.DataSource
}

func NewIdentityResolver(db core.DataSource) IdentityResolver {
	return &identityResolver{db: db}
}

func (r *identityResolver) FindByEmail(email string) (*schema.User, error) {
	var user schema.User
	err := r.db.First(&user, core.Query{W: "email = ?", Args: []any{email}})
	if err != nil {
		if gerrors.Is(err, core.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if user.RoleKey != "" {
		var role schema.Role
		err = r.db.First(&role, core.Query{W: "key = ?", Args: []any{user.RoleKey}})
		if err != nil && !gerrors.Is(err, core.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			user.Role = &role
		}
	}
	return &user, nil
}
