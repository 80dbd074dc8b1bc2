package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiltek/catalog-backend/internal/config"
)

func TestSetupWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	closer := Setup(config.LogConfig{Level: "debug", Format: "json", File: path})
	defer logrus.SetOutput(os.Stdout)

	logrus.WithField("route", "GET /api/products").Info("request served")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"route":"GET /api/products"`)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetupFallsBackToInfo(t *testing.T) {
	closer := Setup(config.LogConfig{Level: "loud"})
	assert.NoError(t, closer.Close())
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
