package store

import (
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
)

// collectionRow persists one collection payload per key.
type collectionRow struct {
	Key     string `gorm:"primary_key;column:key"`
	Payload []byte `gorm:"column:payload"`
}

func (collectionRow) TableName() string {
	return "collections"
}

// SQLStore is a Store backed by a relational database through gorm. The
// dialect is chosen by the caller: "sqlite3" with a file path, or
// "postgres" with a DSN.
type SQLStore struct {
	db *gorm.DB
}

// OpenSQL connects to the database and migrates the collections table.
func OpenSQL(dialect, dsn string) (*SQLStore, error) {
	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&collectionRow{}).Error; err != nil {
		db.Close()
		return nil, err
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(key string) ([]byte, bool, error) {
	var row collectionRow
	err := s.db.Where("key = ?", key).First(&row).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return row.Payload, true, nil
}

func (s *SQLStore) Set(key string, value []byte) error {
	row := collectionRow{Key: key, Payload: value}
	return s.db.Where(collectionRow{Key: key}).
		Assign(collectionRow{Payload: value}).
		FirstOrCreate(&row).Error
}

// Close releases the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
