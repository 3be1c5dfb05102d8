package store

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/NikhilAnand12/BOT-GPT/internal/model"
	dbopts "github.com/NikhilAnand12/BOT-GPT/pkg/options/db"
)

// datastore implements the Factory interface on top of GORM.
type datastore struct {
	db *gorm.DB
}

// NewDB opens a database connection for the configured driver.
func NewDB(opts *dbopts.Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case dbopts.DriverSQLite:
		dialector = sqlite.Open(opts.DSN)
	case dbopts.DriverMySQL:
		dialector = mysql.Open(opts.DSN)
	case dbopts.DriverPostgres:
		dialector = postgres.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported db driver: %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	return db, nil
}

// NewFactory creates a storage factory on an open database connection
// and migrates the schema.
func NewFactory(db *gorm.DB) (Factory, error) {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Conversation{},
		&model.Message{},
		&model.Document{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &datastore{db: db}, nil
}

// Users returns the user store.
func (ds *datastore) Users() UserStore {
	return newUsers(ds.db)
}

// Conversations returns the conversation store.
func (ds *datastore) Conversations() ConversationStore {
	return newConversations(ds.db)
}

// Messages returns the message store.
func (ds *datastore) Messages() MessageStore {
	return newMessages(ds.db)
}

// Documents returns the document store.
func (ds *datastore) Documents() DocumentStore {
	return newDocuments(ds.db)
}

// Tx runs fn inside a transaction.
func (ds *datastore) Tx(ctx context.Context, fn func(Factory) error) error {
	return ds.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&datastore{db: tx})
	})
}

// Close closes the underlying connection.
func (ds *datastore) Close() error {
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
