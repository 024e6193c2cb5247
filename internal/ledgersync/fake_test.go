package ledgersync

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"strings"
	"sync"
	"testing"
)

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu      sync.Mutex
	sheets  map[string][][]string // name -> rows
	ensured int

	// appendErrs are returned by successive AppendRow calls. An entry
	// wrapped in landedError is returned after the row was written.
	appendErrs []error
	lookupErr  error
	block      bool
}

type landedError struct{ error }

func newFakeStore() *fakeStore {
	return &fakeStore{sheets: make(map[string][][]string)}
}

func (f *fakeStore) Lookup(ctx context.Context, name string) (Handle, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return Handle{}, false, f.lookupErr
	}
	_, ok := f.sheets[name]
	return Handle{SpreadsheetID: name}, ok, nil
}

func (f *fakeStore) EnsureSheet(ctx context.Context, name string, header []string) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return Handle{}, f.lookupErr
	}
	f.ensured++
	if _, ok := f.sheets[name]; !ok {
		f.sheets[name] = [][]string{header}
	}
	return Handle{SpreadsheetID: name}, nil
}

func (f *fakeStore) AppendRow(ctx context.Context, h Handle, row []string) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.appendErrs) > 0 {
		err := f.appendErrs[0]
		f.appendErrs = f.appendErrs[1:]
		var landed landedError
		if errors.As(err, &landed) {
			f.sheets[h.SpreadsheetID] = append(f.sheets[h.SpreadsheetID], row)
			return landed.error
		}
		if err != nil {
			return err
		}
	}
	f.sheets[h.SpreadsheetID] = append(f.sheets[h.SpreadsheetID], row)
	return nil
}

func (f *fakeStore) HasTransaction(ctx context.Context, h Handle, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.sheets[h.SpreadsheetID][1:] {
		if row[0] == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CountRows(ctx context.Context, h Handle) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sheets[h.SpreadsheetID]) - 1, nil
}

func (f *fakeStore) rows(name string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sheets[name]
}

func (f *fakeStore) factory() StoreFactory {
	return func(context.Context, *Credentials, string) (Store, error) {
		return f, nil
	}
}

var (
	testKeyOnce sync.Once
	testKeyPEM  string
)

// testCredentials returns a service account key with a real RSA key.
func testCredentials(t *testing.T) []byte {
	t.Helper()
	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testKeyPEM = string(pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(key),
		}))
	})

	data, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   "kasir-test",
		"client_email": "pos@kasir-test.iam.gserviceaccount.com",
		// Escaped newlines, the way keys arrive through env vars.
		"private_key": strings.ReplaceAll(testKeyPEM, "\n", `\n`),
		"token_uri":   "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		t.Fatalf("failed to encode credentials: %v", err)
	}
	return data
}
