package auth

import (
	gerrors "errors"

	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/schema"
)

// ClientRegistry exposes registered caller identities to the token issuer.
// The pipeline only ever reads from it; clients are managed by the CRUD surface.
type ClientRegistry interface {
	FindByClientId(clientId string) (*schema.AuthClient, error)
}

type clientRegistry struct {
	db core.DataSource
}

func NewClientRegistry(db core.DataSource) ClientRegistry {
	return &clientRegistry{db: db}
}

func (r *clientRegistry) FindByClientId(clientId string) (*schema.AuthClient, error) {
	var client schema.AuthClient
	err := r.db.First(&client, core.Query{W: "client_id = ?", Args: []any{clientId}})
	if err != nil {
		if gerrors.Is(err, core.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}
