package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) *Loader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	loader, err := NewLoader(path)
	require.NoError(t, err)
	return loader
}

func TestLoadProfiles(t *testing.T) {
	loader := writeConfig(t, `
[sso-session corp]
sso_start_url = https://corp.awsapps.com/start
sso_region = eu-west-1

[profile dev]
sso_session = corp
sso_account_id = 111111111111
sso_role_name = Developer

[profile prod]
sso_session = corp
sso_account_id = 222222222222
sso_role_name = ReadOnly
`)

	profiles, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, "dev", profiles[0].Name)
	assert.Equal(t, "corp", profiles[0].Session.Name)
	assert.Equal(t, "https://corp.awsapps.com/start", profiles[0].Session.StartURL)
	assert.Equal(t, "eu-west-1", profiles[0].Session.Region)
	assert.Equal(t, "111111111111", profiles[0].AccountID)
	assert.Equal(t, "Developer", profiles[0].RoleName)
	assert.Equal(t, "prod", profiles[1].Name)
}

func TestLoadExcludesInvalidProfiles(t *testing.T) {
	loader := writeConfig(t, `
[sso-session corp]
sso_start_url = https://corp.awsapps.com/start
sso_region = eu-west-1

[profile no-session]
sso_account_id = 111111111111
sso_role_name = Developer

[profile dangling-session]
sso_session = missing
sso_account_id = 111111111111
sso_role_name = Developer

[profile no-account]
sso_session = corp
sso_role_name = Developer

[profile no-role]
sso_session = corp
sso_account_id = 111111111111

[profile ok]
sso_session = corp
sso_account_id = 111111111111
sso_role_name = Developer
`)

	profiles, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "ok", profiles[0].Name)
}

func TestLoadExcludesIncompleteSessions(t *testing.T) {
	loader := writeConfig(t, `
[sso-session no-region]
sso_start_url = https://corp.awsapps.com/start

[profile dev]
sso_session = no-region
sso_account_id = 111111111111
sso_role_name = Developer
`)

	profiles, err := loader.Load()
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestLoadMissingFile(t *testing.T) {
	loader, err := NewLoader(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)

	profiles, err := loader.Load()
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestProfileSet(t *testing.T) {
	set := NewProfileSet([]Profile{
		{Name: "dev", AccountID: "111"},
		{Name: "prod", AccountID: "222"},
		{Name: "dev", AccountID: "333"}, // duplicate name, first wins
	})

	assert.Equal(t, []string{"dev", "prod"}, set.Names())

	p, ok := set.Profile("dev")
	require.True(t, ok)
	assert.Equal(t, "111", p.AccountID)

	_, ok = set.Profile("staging")
	assert.False(t, ok)
}
