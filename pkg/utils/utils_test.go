package utils

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	tests := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		10000:    "10,000",
		1234567:  "1,234,567",
		-1500:    "-1,500",
		-999:     "-999",
		15000000: "15,000,000",
	}

	for n, want := range tests {
		assert.Equal(t, want, FormatNumber(n), "FormatNumber(%d)", n)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "0초 전"},
		{30 * time.Second, "30초 전"},
		{5 * time.Minute, "5분 전"},
		{3 * time.Hour, "3시간 전"},
		{49 * time.Hour, "2일 전"},
		{72 * time.Hour, "3일 전"},
		{5 * 24 * time.Hour, "2024년 03월 05일"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeTime(now.Add(-tt.ago), now), "ago %s", tt.ago)
	}

	// clock skew never renders a negative age
	assert.Equal(t, "0초 전", RelativeTime(now.Add(time.Minute), now))
}

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		start, count int
		ok           bool
	}{
		{0, 1, true},
		{0, 50, true},
		{100, 10, true},
		{0, 51, false},
		{0, 0, false},
		{-1, 10, false},
	}

	for _, tt := range tests {
		err := ValidateWindow(tt.start, tt.count)
		if tt.ok {
			assert.NoError(t, err, "start=%d count=%d", tt.start, tt.count)
		} else {
			assert.True(t, errors.Is(err, ErrInvalidWindow), "start=%d count=%d", tt.start, tt.count)
		}
	}
}

func TestParseInt(t *testing.T) {
	n, ok := ParseInt("", 10)
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	n, ok = ParseInt("25", 10)
	assert.True(t, ok)
	assert.Equal(t, 25, n)

	_, ok = ParseInt("ten", 10)
	assert.False(t, ok)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("secret124", hash))
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, "", strings.Trim(code, "0123456789"))

	code, err = GenerateCode(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}

func TestGenerateFileName(t *testing.T) {
	a := GenerateFileName(".png")
	b := GenerateFileName(".png")

	assert.True(t, strings.HasSuffix(a, ".png"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, filepath.Base(a))
}

func TestValidateStruct(t *testing.T) {
	type body struct {
		Email string `validate:"required,email"`
		Phone string `validate:"required,numeric,min=10,max=11"`
	}

	assert.Nil(t, ValidateStruct(body{Email: "a@example.com", Phone: "01012345678"}))

	errs := ValidateStruct(body{Email: "nope", Phone: "abc"})
	assert.Equal(t, "Invalid email format", errs["Email"])
	assert.Contains(t, errs, "Phone")
	assert.Contains(t, FormatValidationErrors(errs), "Email: Invalid email format")
}

func TestRequestIDContext(t *testing.T) {
	_, ok := GetRequestIDFromContext(context.Background())
	assert.False(t, ok)

	ctx := SetRequestIDContext(context.Background(), "abc")
	id, ok := GetRequestIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "memory", config.Session.Backend)
	assert.Equal(t, "local", config.Storage.Backend)
	assert.Equal(t, "log", config.Email.Backend)
	assert.Equal(t, 300, config.Email.CodeTTLSeconds)
	assert.Equal(t, int64(5*1024*1024), config.Storage.MaxImageBytes)
	assert.Equal(t, int32(10), config.Database.MaxConns)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "DB_NAME=market\nSESSION_BACKEND=redis\nAPI_KEY=from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("API_KEY", "from-env")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "market", config.Database.Name)
	assert.Equal(t, "redis", config.Session.Backend)
	assert.Equal(t, "from-env", config.App.APIKey)
}

func TestInitLogger(t *testing.T) {
	dir := t.TempDir()

	logger, err := InitLogger(dir, true)
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	_, err = os.Stat(filepath.Join(dir, "marketplace.log"))
	assert.NoError(t, err)
}
