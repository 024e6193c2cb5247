package ledgersync

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Credentials is a Google service account key.
type Credentials struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`

	raw []byte
}

// ParseCredentials validates a service account JSON key. Escaped "\n"
// sequences in the private key are turned into real newlines, which is how
// keys pasted into environment variables usually arrive.
func ParseCredentials(data []byte) (*Credentials, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("no service account credentials configured")
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("credentials are not valid JSON: %w", err)
	}
	if pk, ok := fields["private_key"].(string); ok {
		fields["private_key"] = strings.ReplaceAll(pk, `\n`, "\n")
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	creds := &Credentials{raw: raw}
	if err := json.Unmarshal(raw, creds); err != nil {
		return nil, fmt.Errorf("credentials are not valid JSON: %w", err)
	}

	var missing []string
	if creds.Type != "service_account" {
		return nil, fmt.Errorf("credentials type is %q, want \"service_account\"", creds.Type)
	}
	if creds.ClientEmail == "" {
		missing = append(missing, "client_email")
	}
	if creds.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("credentials missing %s", strings.Join(missing, ", "))
	}

	if _, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(creds.PrivateKey)); err != nil {
		return nil, fmt.Errorf("credentials private_key: %w", err)
	}

	return creds, nil
}

// JSON returns the normalized key, suitable for the Google client libraries.
func (c *Credentials) JSON() []byte {
	return c.raw
}
