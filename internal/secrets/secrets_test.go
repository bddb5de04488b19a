package secrets_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"db-migcheck/internal/secrets"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	values map[string]string
	err    error
	asked  []string
}

func (f *fakeAPI) GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	id := aws.ToString(in.SecretId)
	f.asked = append(f.asked, id)
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.values[id]
	if !ok {
		return &secretsmanager.GetSecretValueOutput{}, nil
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(v)}, nil
}

func TestStore_Credentials(t *testing.T) {
	api := &fakeAPI{values: map[string]string{
		"prod/legacy": `{"host":"legacy.db","port":1433,"username":"sa","password":"pw","database_name":"erp"}`,
		"prod/new":    `{"host":"new.db","port":"5432","username":"app","password":"pw2","database_name":"erp","engine":"postgres"}`,
	}}
	store := secrets.NewStore(api)

	c, err := store.Credentials(context.Background(), "prod/legacy")
	require.NoError(t, err)
	assert.Equal(t, secrets.Credentials{Host: "legacy.db", Port: 1433, Username: "sa", Password: "pw", Database: "erp"}, c)

	c, err = store.Credentials(context.Background(), "prod/new")
	require.NoError(t, err)
	assert.Equal(t, 5432, c.Port)

	assert.Equal(t, []string{"prod/legacy", "prod/new"}, api.asked)
}

func TestStore_EmptyAndFailing(t *testing.T) {
	store := secrets.NewStore(&fakeAPI{})
	_, err := store.Credentials(context.Background(), "nothing")
	assert.True(t, errors.Is(err, secrets.ErrEmptySecret))

	boom := errors.New("access denied")
	store = secrets.NewStore(&fakeAPI{err: boom})
	_, err = store.Credentials(context.Background(), "prod/legacy")
	assert.True(t, errors.Is(err, boom))
}

func TestParse_MissingKeys(t *testing.T) {
	_, err := secrets.Parse("prod/x", `{"host":"h","username":"u","port":null}`)
	require.Error(t, err)

	var missing *secrets.MissingKeysError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"database_name", "password", "port"}, missing.Keys)
	assert.Contains(t, err.Error(), "prod/x")
}

func TestParse_Invalid(t *testing.T) {
	_, err := secrets.Parse("a", `not json`)
	assert.Error(t, err)

	_, err = secrets.Parse("a", `{"host":"h","port":"abc","username":"u","password":"p","database_name":"d"}`)
	assert.Error(t, err)
}

func TestPromptPassword_NoTerminal(t *testing.T) {
	// go test runs without a terminal on stdin
	var out bytes.Buffer
	_, err := secrets.PromptPassword(&out, "source")
	if err == nil {
		t.Skip("stdin is a terminal")
	}
	assert.True(t, errors.Is(err, secrets.ErrNoTerminal))
	assert.Empty(t, out.String())
}
