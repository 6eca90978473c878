package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to postgres or dies; services cannot run without a DB.
func Open(dsn string) *gorm.DB {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true, // map driver errors to gorm.ErrDuplicatedKey etc.
	})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	return gdb
}
