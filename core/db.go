package core

import (
	"io/fs"

	"github.com/soffa-projects/record-api/util/errors"
)

const DefaultMigrationsTable = "z_migrations"

type DataSource interface {
	IsPostgres() bool
	Migrate(fs fs.FS, location string, migrationsTable string)
	Transaction(func(tx DataSource) error) error
	Close()
	Save(target any) error
	Create(target any) error
	Ping() error
	Delete(any, Query) (int64, error)
	Exists(any, Query) (bool, error)
	First(any, Query) error
	Find(any, Query) error
	Count(any, Query) (int64, error)
	Patch(model any, id string, data map[string]interface{}) (int64, error)
}

var ErrRecordNotFound = errors.Functional("record not found")

type Query struct {
	Model  any
	Raw    string
	W      string
	Sort   string
	Args   []any
	Select string
	Offset int64
	Limit  int64
}
