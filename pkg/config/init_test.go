package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vihackerframework/vihacker-go/model"
)

func resetModels(t *testing.T) {
	app, jwt, doc, common := *AppInfo, *JWTInfo, *DocInfo, *CommonInfo
	t.Cleanup(func() {
		*AppInfo, *JWTInfo, *DocInfo, *CommonInfo = app, jwt, doc, common
	})
}

func writeConf(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "vihacker.conf")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMapsSections(t *testing.T) {
	resetModels(t)

	path := writeConf(t, `
[app]
DBPath = /tmp/vihacker
HTTPAddr = 0.0.0.0:9090

[jwt]
Secret = s3cret
IssueCode = 424242

[doc]
Title = Event Service
Email = ops@vihacker.top
`)
	require.NoError(t, Load(path))

	assert.Equal(t, "/tmp/vihacker", AppInfo.DBPath)
	assert.Equal(t, "0.0.0.0:9090", AppInfo.HTTPAddr)
	assert.Equal(t, "vihacker", AppInfo.LogSaveName, "unset keys keep defaults")
	assert.Equal(t, "s3cret", JWTInfo.Secret)
	assert.Equal(t, "424242", JWTInfo.IssueCode)
	assert.Equal(t, "Event Service", DocInfo.Title)
	assert.True(t, DocInfo.Enable, "doc is enabled when the key is absent")
}

func TestLoadDisablesDoc(t *testing.T) {
	resetModels(t)

	require.NoError(t, Load(writeConf(t, "[doc]\nEnable = false\n")))
	assert.False(t, DocInfo.Enable)
}

func TestLoadValidates(t *testing.T) {
	resetModels(t)

	err := Load(writeConf(t, "[doc]\nEmail = not-an-email\n"))
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestLoadDefaults(t *testing.T) {
	resetModels(t)

	require.NoError(t, Load(""))
	assert.Equal(t, model.DocModel{
		Enable:              true,
		BasePath:            "/",
		Title:               "ViHacker API",
		Description:         "ViHacker service API",
		DescriptionFontSize: "14",
		DescriptionColor:    "#666666",
		Version:             "1.0.0",
		SecurityPathRegex:   "/.*",
	}, *DocInfo)

	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.conf")))
}
