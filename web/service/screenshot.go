package service

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"tradedesk/database"
	"tradedesk/database/model"
	"tradedesk/util/random"
)

var ErrBadFileType = errors.New("only image files are allowed")

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

type ScreenshotService struct{}

// ValidateExtension checks the upload's extension against the allow-list.
// Extension check only, no content sniffing.
func (s *ScreenshotService) ValidateExtension(filename string) error {
	ext := strings.ToLower(path.Ext(filename))
	if !allowedExtensions[ext] {
		return ErrBadFileType
	}
	return nil
}

// StoredFilename builds the on-disk name: <userId>-<timestamp>-<random>.<ext>.
func (s *ScreenshotService) StoredFilename(userId uint, original string) string {
	ext := strings.ToLower(path.Ext(original))
	return fmt.Sprintf("%d-%d-%s%s", userId, time.Now().UnixMilli(), random.Seq(9), ext)
}

// AddScreenshot appends a reference row once the file is on disk. References
// are never deleted.
func (s *ScreenshotService) AddScreenshot(userId uint, publicPath string) (*model.Screenshot, error) {
	db := database.GetDB()

	screenshot := &model.Screenshot{
		UserId:     userId,
		Filename:   publicPath,
		UploadedAt: time.Now(),
	}
	if err := db.Create(screenshot).Error; err != nil {
		return nil, err
	}
	return screenshot, nil
}
