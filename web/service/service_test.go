package service

import (
	"os"

	"tradedesk/database"
	"tradedesk/logger"

	"github.com/op/go-logging"
)

func setup() {
	os.Setenv("TD_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)

	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}
