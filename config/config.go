package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("TD_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("TD_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("TD_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/tradedesk"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("TD_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetUploadFolder is where deposit screenshots are written. Served back under
// /uploads/screenshots.
func GetUploadFolder() string {
	uploadFolderPath := os.Getenv("TD_UPLOAD_FOLDER")
	if uploadFolderPath == "" {
		uploadFolderPath = "uploads/screenshots"
	}
	return uploadFolderPath
}

func GetListen() string {
	return os.Getenv("TD_LISTEN")
}

func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("TD_PORT"))
	if err != nil || port <= 0 {
		return 3000
	}
	return port
}

func GetWebDomain() string {
	return os.Getenv("TD_WEB_DOMAIN")
}

func GetSessionSecret() string {
	secret := os.Getenv("TD_SESSION_SECRET")
	if secret == "" {
		secret = "supersecret"
	}
	return secret
}

// GetBaseURL is the externally reachable origin used when building
// password-reset links.
func GetBaseURL() string {
	base := os.Getenv("TD_BASE_URL")
	if base == "" {
		base = fmt.Sprintf("http://localhost:%d", GetPort())
	}
	return strings.TrimRight(base, "/")
}

func GetAdminUsername() string {
	return os.Getenv("ADMIN_USERNAME")
}

func GetAdminEmail() string {
	return os.Getenv("ADMIN_EMAIL")
}

func GetAdminPassword() string {
	return os.Getenv("ADMIN_PASSWORD")
}
