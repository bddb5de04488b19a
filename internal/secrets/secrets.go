// Package secrets resolves database credentials from AWS Secrets Manager
// or the terminal.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Credentials are the connection fields a database secret carries.
type Credentials struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

// RequiredKeys must all be present in a database secret.
var RequiredKeys = []string{"host", "port", "username", "password", "database_name"}

// ErrEmptySecret is returned for a secret with no string payload.
var ErrEmptySecret = errors.New("secret has no string value")

// MissingKeysError lists the required keys a secret lacks.
type MissingKeysError struct {
	SecretID string
	Keys     []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("secret %s is missing keys: %s", e.SecretID, strings.Join(e.Keys, ", "))
}

// API is the part of the Secrets Manager client the store uses.
type API interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Store fetches credentials by secret id.
type Store struct {
	api API
}

func NewStore(api API) *Store {
	return &Store{api: api}
}

// NewStoreForRegion builds a store from the default AWS credential chain.
func NewStoreForRegion(ctx context.Context, region string) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewStore(secretsmanager.NewFromConfig(cfg)), nil
}

// Credentials fetches and verifies one secret.
func (s *Store) Credentials(ctx context.Context, secretID string) (Credentials, error) {
	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(secretID)})
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to get secret %s: %w", secretID, err)
	}
	if out.SecretString == nil || *out.SecretString == "" {
		return Credentials{}, fmt.Errorf("secret %s: %w", secretID, ErrEmptySecret)
	}
	return Parse(secretID, *out.SecretString)
}

// Parse decodes a JSON secret payload and checks every required key.
func Parse(secretID, payload string) (Credentials, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return Credentials{}, fmt.Errorf("secret %s is not a JSON object: %w", secretID, err)
	}

	var missing []string
	for _, k := range RequiredKeys {
		if v, ok := fields[k]; !ok || v == nil {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Credentials{}, &MissingKeysError{SecretID: secretID, Keys: missing}
	}

	port, err := portValue(fields["port"])
	if err != nil {
		return Credentials{}, fmt.Errorf("secret %s: %w", secretID, err)
	}
	return Credentials{
		Host:     fmt.Sprint(fields["host"]),
		Port:     port,
		Username: fmt.Sprint(fields["username"]),
		Password: fmt.Sprint(fields["password"]),
		Database: fmt.Sprint(fields["database_name"]),
	}, nil
}

// portValue accepts the port as a JSON number or a numeric string.
func portValue(v interface{}) (int, error) {
	switch p := v.(type) {
	case float64:
		return int(p), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, fmt.Errorf("invalid port %q", p)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("invalid port %v", v)
	}
}
