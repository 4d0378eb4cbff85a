package adapters

import (
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/soffa-projects/record-api/core"
)

type gormAdapter struct {
	core.DataSource
	internal *gorm.DB
	url      string
}

func (a gormAdapter) IsPostgres() bool {
	return strings.HasPrefix(a.url, "postgres")
}

func (a gormAdapter) Create(model interface{}) error {
	return a.internal.Create(model).Error
}

func (a gormAdapter) Save(model interface{}) error {
	return a.internal.Save(model).Error
}

func (a gormAdapter) Exists(model any, q core.Query) (bool, error) {
	var count int64
	res := a.buildQuery(model, q).Count(&count)
	return count > 0, res.Error
}

func (a gormAdapter) Find(target any, q core.Query) error {
	builder := a.buildQuery(target, q)
	if q.Limit > 0 {
		builder = builder.Offset(int(q.Offset)).Limit(int(q.Limit))
	}
	res := builder.Find(target)
	return res.Error
}

func (a gormAdapter) First(model any, q core.Query) error {
	res := a.buildQuery(model, q).First(model)
	if res.Error == gorm.ErrRecordNotFound {
		return core.ErrRecordNotFound
	}
	if res.Error == nil && res.RowsAffected == 0 {
		return core.ErrRecordNotFound
	}
	return res.Error
}

func (a gormAdapter) Count(model any, q core.Query) (int64, error) {
	var count int64
	res := a.buildQuery(model, q).Count(&count)
	return count, res.Error
}

func (a gormAdapter) Delete(model any, q core.Query) (int64, error) {
	res := a.buildQuery(model, q).Delete(model)
	return res.RowsAffected, res.Error
}

func (a gormAdapter) buildQuery(model any, q core.Query) *gorm.DB {
	var builder *gorm.DB
	if q.Model != nil {
		builder = a.internal.Model(q.Model)
	} else {
		builder = a.internal.Model(model)
	}

	if q.Raw != "" {
		builder = builder.Raw(strings.TrimSpace(q.Raw), q.Args...)
	} else {
		if q.W != "" {
			builder = builder.Where(strings.TrimSpace(q.W), q.Args...)
		}
		if q.Sort != "" {
			builder = builder.Order(q.Sort)
		}
		if q.Select != "" {
			builder = builder.Select(q.Select)
		}
	}

	return builder
}

func (a gormAdapter) Patch(model interface{}, id string, data map[string]interface{}) (int64, error) {
	res := a.internal.Model(model).Where("id=?", id).Updates(data)
	return res.RowsAffected, res.Error
}

func (a gormAdapter) Ping() error {
	return a.internal.Exec("SELECT 1").Error
}

func (a gormAdapter) Transaction(cb func(tx core.DataSource) error) error {
	return a.internal.Transaction(func(tx *gorm.DB) error {
		return cb(&gormAdapter{
			internal: tx,
			url:      a.url,
		})
	})
}

func (a gormAdapter) Close() {
	sqlDB, err := a.internal.DB()
	if err != nil {
		log.Printf("unable to close database: %s", err)
	} else {
		_ = sqlDB.Close()
	}
}

func (a gormAdapter) Migrate(fs fs.FS, location string, migrationsTable string) {
	goose.SetBaseFS(fs)
	goose.SetTableName(migrationsTable)
	if err := goose.SetDialect(a.internal.Dialector.Name()); err != nil {
		log.Fatalf("unable to set dialect: %s", err)
	}
	cnx, err := a.internal.DB()
	if err != nil {
		log.Fatalf("unable to get database connection: %s", err)
	}
	if err = goose.Up(cnx, location, goose.WithAllowMissing()); err != nil {
		log.Fatal(err)
	}
}

func NewGormAdapter(url string) core.DataSource {
	db := createLink(url)
	return &gormAdapter{
		internal: db,
		url:      url,
	}
}

func createLink(url string) *gorm.DB {
	var dialector gorm.Dialector
	normalized := url
	if strings.HasPrefix(url, "postgres") || strings.HasPrefix(url, "pg:") || strings.HasPrefix(url, "postgresql") {
		normalized = strings.ReplaceAll(normalized, "pg:", "postgres:")
		normalized = strings.ReplaceAll(normalized, "postgresql:", "postgres:")
		dialector = postgres.Open(normalized)
	} else if strings.HasPrefix(normalized, "file:") || strings.HasSuffix(normalized, ".db") {
		dialector = sqlite.Open(normalized)
	} else {
		log.Fatalf("unsupported database type: %s", normalized)
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second * 1,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: dbLogger,
	})

	if err != nil {
		log.Fatalf("unable to connect to database: %s", err)
	}

	return gdb
}
