package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateExtension(t *testing.T) {
	service := ScreenshotService{}

	tests := []struct {
		filename string
		ok       bool
	}{
		{"proof.png", true},
		{"proof.PNG", true},
		{"proof.jpg", true},
		{"proof.jpeg", true},
		{"proof.gif", true},
		{"proof.exe", false},
		{"proof.png.exe", false},
		{"proof", false},
		{"proof.pdf", false},
	}

	for _, tc := range tests {
		err := service.ValidateExtension(tc.filename)
		if tc.ok {
			assert.NoError(t, err, tc.filename)
		} else {
			assert.ErrorIs(t, err, ErrBadFileType, tc.filename)
		}
	}
}

func TestStoredFilename(t *testing.T) {
	service := ScreenshotService{}

	name := service.StoredFilename(42, "My Proof.PNG")
	assert.True(t, strings.HasPrefix(name, "42-"))
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.NotEqual(t, name, service.StoredFilename(42, "My Proof.PNG"))
}

func TestAddScreenshotAppendsOneReference(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}
	user, err := userService.Register("alice", "alice@example.com", "secret123")
	assert.NoError(t, err)

	service := ScreenshotService{}
	_, err = service.AddScreenshot(user.Id, "/uploads/screenshots/1-1-abc.png")
	assert.NoError(t, err)

	full, err := userService.GetUserFull(user.Id)
	assert.NoError(t, err)
	assert.Len(t, full.Screenshots, 1)
	assert.Equal(t, "/uploads/screenshots/1-1-abc.png", full.Screenshots[0].Filename)
}
