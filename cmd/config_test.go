package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"db-migcheck/internal/secrets"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadYAML(t *testing.T, doc string) *viper.Viper {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	return v
}

const twoSides = `
databases:
  - name: legacy
    role: Source
    driver: mssql
    secret_id: prod/legacy
    options:
      encrypt: disable
  - name: cloud
    role: target
    driver: postgres
    host: pg.internal
    database: erp
    username: app
    prompt_password: true
settings:
  file_format: JSON
  exact_row_counts: true
`

func TestGetSideConfigs(t *testing.T) {
	v := loadYAML(t, twoSides)

	src, tgt, err := GetSideConfigs(v)
	require.NoError(t, err)
	assert.Equal(t, "legacy", src.Name)
	assert.Equal(t, roleSource, src.Role)
	assert.Equal(t, "prod/legacy", src.SecretID)
	assert.Equal(t, map[string]string{"encrypt": "disable"}, src.Options)
	assert.Equal(t, "cloud", tgt.Name)
	assert.True(t, tgt.PromptPassword)
}

func TestGetSideConfigs_Invalid(t *testing.T) {
	cases := map[string]string{
		"no target": `
databases:
  - {name: a, role: source, driver: mysql, dsn: "x"}`,
		"two sources": `
databases:
  - {name: a, role: source, driver: mysql, dsn: "x"}
  - {name: b, role: source, driver: mysql, dsn: "y"}
  - {name: c, role: target, driver: mysql, dsn: "z"}`,
		"bad role": `
databases:
  - {name: a, role: primary, driver: mysql, dsn: "x"}`,
		"no driver": `
databases:
  - {name: a, role: source, dsn: "x"}
  - {name: b, role: target, driver: mysql, dsn: "y"}`,
		"no connection": `
databases:
  - {name: a, role: source, driver: mysql}
  - {name: b, role: target, driver: mysql, dsn: "y"}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := GetSideConfigs(loadYAML(t, doc))
			assert.Error(t, err)
		})
	}
}

func TestGetSettings(t *testing.T) {
	s, err := GetSettings(loadYAML(t, twoSides))
	require.NoError(t, err)
	assert.Equal(t, Settings{
		FileFormat:     "json",
		OutputDir:      "output",
		Parallel:       true,
		Region:         "us-east-1",
		ExactRowCounts: true,
	}, s)

	_, err = GetSettings(loadYAML(t, "settings:\n  file_format: xlsx\n"))
	assert.Error(t, err)
}

type fakeStore map[string]secrets.Credentials

func (f fakeStore) Credentials(ctx context.Context, id string) (secrets.Credentials, error) {
	c, ok := f[id]
	if !ok {
		return c, errors.New("secret not found")
	}
	return c, nil
}

func noPrompt(t *testing.T) passwordPrompter {
	return func(label string) (string, error) {
		t.Fatalf("unexpected password prompt for %s", label)
		return "", nil
	}
}

func TestResolveParams_Secret(t *testing.T) {
	store := fakeStore{"prod/legacy": {Host: "legacy.db", Port: 1433, Username: "sa", Password: "pw", Database: "erp"}}

	p, err := resolveParams(context.Background(), DBConfig{Role: roleSource, SecretID: "prod/legacy", Database: "erp_copy"}, store, noPrompt(t))
	require.NoError(t, err)
	assert.Equal(t, "legacy.db", p.Host)
	assert.Equal(t, 1433, p.Port)
	assert.Equal(t, "sa", p.Username)
	assert.Equal(t, "pw", p.Password)
	assert.Equal(t, "erp_copy", p.Database, "config wins over the secret")

	_, err = resolveParams(context.Background(), DBConfig{SecretID: "missing"}, store, noPrompt(t))
	assert.Error(t, err)

	_, err = resolveParams(context.Background(), DBConfig{SecretID: "prod/legacy"}, nil, noPrompt(t))
	assert.Error(t, err)
}

func TestResolveParams_Prompt(t *testing.T) {
	var asked []string
	prompt := func(label string) (string, error) {
		asked = append(asked, label)
		return "typed", nil
	}

	p, err := resolveParams(context.Background(), DBConfig{Name: "cloud", Host: "pg", PromptPassword: true}, nil, prompt)
	require.NoError(t, err)
	assert.Equal(t, "typed", p.Password)
	assert.Equal(t, []string{"cloud"}, asked)

	p, err = resolveParams(context.Background(), DBConfig{Name: "cloud", Password: "set", PromptPassword: true}, nil, prompt)
	require.NoError(t, err)
	assert.Equal(t, "set", p.Password)
	assert.Len(t, asked, 1)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = newLogger("loud")
	assert.Error(t, err)
}
