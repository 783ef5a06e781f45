package database

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/40acres/walletconsole/database/models"
	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// EmbeddedHost makes New start a local postgres under the data path instead
// of connecting to an external server.
const EmbeddedHost = "embedded"

type Database struct {
	host     string
	username string
	password string
	database string
	port     uint32
	dataPath string
	embedded *embeddedpostgres.EmbeddedPostgres
	orm      *gorm.DB
}

// New connects to the database, starting the embedded server first when host
// is EmbeddedHost. The returned function closes the connection and stops the
// embedded server.
func New(username, password, database string, port uint32, dataPath, host string) (*Database, func() error, error) {
	d := &Database{
		host:     host,
		username: username,
		password: password,
		database: database,
		port:     port,
		dataPath: dataPath,
	}

	if d.host == EmbeddedHost {
		if err := d.startEmbedded(); err != nil {
			return nil, nil, err
		}
	}

	if err := d.ping(); err != nil {
		d.stopEmbedded()

		return nil, nil, err
	}

	orm, err := gorm.Open(postgres.Open(d.GetConnectionURL()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		d.stopEmbedded()

		return nil, nil, fmt.Errorf("error connecting gorm: %w", err)
	}
	d.orm = orm

	closeFn := func() error {
		sqlDB, err := d.orm.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Close(); err != nil {
			return err
		}
		if d.embedded != nil {
			return d.embedded.Stop()
		}

		return nil
	}

	return d, closeFn, nil
}

func (d *Database) GetConnectionURL() string {
	host := d.host
	if host == EmbeddedHost {
		host = "localhost"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", d.username, d.password, host, d.port, d.database)
}

func (d *Database) startEmbedded() error {
	d.embedded = embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Username(d.username).
			Password(d.password).
			Database(d.database).
			Port(d.port).
			DataPath(filepath.Join(d.dataPath, "data")).
			RuntimePath(filepath.Join(d.dataPath, "runtime")).
			Logger(log.StandardLogger().WriterLevel(log.DebugLevel)),
	)
	if err := d.embedded.Start(); err != nil {
		d.embedded = nil

		return fmt.Errorf("error starting embedded database: %w", err)
	}
	log.WithField("port", d.port).Info("embedded database started")

	return nil
}

func (d *Database) stopEmbedded() {
	if d.embedded == nil {
		return
	}
	if err := d.embedded.Stop(); err != nil {
		log.WithError(err).Error("error stopping embedded database")
	}
}

func (d *Database) ping() error {
	conn, err := sql.Open("postgres", d.GetConnectionURL())
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer conn.Close()

	if err := conn.Ping(); err != nil {
		return fmt.Errorf("could not reach database: %w", err)
	}

	return nil
}

func (d *Database) ORM() *gorm.DB {
	return d.orm
}

// MigrateDatabase creates or updates the tables the console owns.
func (d *Database) MigrateDatabase() error {
	if err := d.orm.AutoMigrate(&models.InvoiceCursor{}); err != nil {
		return fmt.Errorf("error migrating models: %w", err)
	}
	log.Info("database migrated")

	return nil
}
