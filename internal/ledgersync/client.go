package ledgersync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/googleapis/gax-go/v2"

	"github.com/mmynk/kasir/internal/models"
)

const (
	DefaultSheetName = "POS_Transaction_Log"
	DefaultTimeout   = 10 * time.Second
)

// Mode describes whether the client replicates or runs local-only.
type Mode string

const (
	ModeRemote    Mode = "remote"
	ModeLocalOnly Mode = "local-only"
)

// Config configures a Client.
type Config struct {
	// SheetName is the remote spreadsheet name. Defaults to DefaultSheetName.
	SheetName string

	// Credentials is a service account JSON key. When empty the client runs
	// local-only; this surfaces as ErrConfiguration on the first sync.
	Credentials []byte

	// ShareWith is the email a newly created sheet is shared with.
	// Defaults to the service account email.
	ShareWith string

	// Timeout bounds every remote call, retries included.
	// Defaults to DefaultTimeout.
	Timeout time.Duration

	// MaxAttempts is the number of append attempts per sync. Values below 2
	// disable retries.
	MaxAttempts int

	// Backoff spaces out retries.
	Backoff gax.Backoff
}

// StoreFactory builds the remote store once credentials are validated.
type StoreFactory func(ctx context.Context, creds *Credentials, shareWith string) (Store, error)

// Client is the long-lived handle to the remote ledger. It is created once
// at startup and connects lazily: credentials are validated on the first
// sync or health check, and the sheet is opened (or created) on the first
// successful connect. A configuration error is sticky and puts the client
// in local-only mode for the rest of the process.
type Client struct {
	cfg     Config
	factory StoreFactory

	mu        sync.Mutex
	store     Store
	handle    *Handle
	configErr error
}

// NewClient returns a client that connects through factory. A nil factory
// selects the Google Sheets store.
func NewClient(cfg Config, factory StoreFactory) *Client {
	if cfg.SheetName == "" {
		cfg.SheetName = DefaultSheetName
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if factory == nil {
		factory = NewSheetsStoreFactory()
	}
	return &Client{cfg: cfg, factory: factory}
}

// Connect validates credentials and opens the remote sheet, creating it if
// needed. Calling it at startup is optional.
func (c *Client) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	_, _, err := c.connect(ctx)
	return err
}

// Mode reports whether the client has fallen back to local-only mode.
func (c *Client) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErr != nil {
		return ModeLocalOnly
	}
	return ModeRemote
}

// Sync appends tx to the remote sheet. With retries enabled, every retry
// first checks whether a previous attempt already landed.
func (c *Client) Sync(ctx context.Context, tx *models.Transaction) error {
	return c.sync(ctx, tx, false)
}

// Replay re-sends tx after an earlier failure. It always checks for an
// existing row first, so replaying a transaction that did reach the sheet
// is harmless.
func (c *Client) Replay(ctx context.Context, tx *models.Transaction) error {
	return c.sync(ctx, tx, true)
}

func (c *Client) sync(ctx context.Context, tx *models.Transaction, checkFirst bool) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	store, h, err := c.connect(ctx)
	if err != nil {
		return err
	}

	row := FormatRow(tx)
	id := strconv.FormatInt(tx.ID, 10)
	attempt := 0

	call := func(ctx context.Context, _ gax.CallSettings) error {
		attempt++
		if checkFirst || attempt > 1 {
			found, err := store.HasTransaction(ctx, h, id)
			if err != nil {
				return err
			}
			if found {
				slog.Debug("Transaction already in remote sheet", "transaction_id", tx.ID, "attempt", attempt)
				return nil
			}
		}
		return store.AppendRow(ctx, h, row)
	}

	var opts []gax.CallOption
	if c.cfg.MaxAttempts > 1 {
		opts = append(opts, gax.WithRetry(c.retryer))
	}

	if err := gax.Invoke(ctx, call, opts...); err != nil {
		if errors.Is(err, ErrConfiguration) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrSyncUnavailable, err)
	}
	return nil
}

// Health describes the remote ledger as seen from this process.
type Health struct {
	Mode          Mode
	Connected     bool
	SheetName     string
	SheetExists   bool
	SpreadsheetID string
	LoggedRows    int
	Error         string
}

// Health checks connectivity, whether the sheet exists and how many
// transactions it holds. It never creates the sheet.
func (c *Client) Health(ctx context.Context) Health {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	health := Health{Mode: ModeRemote, SheetName: c.cfg.SheetName}

	store, err := c.ensureStore(ctx)
	if err != nil {
		health.Mode = c.Mode()
		health.Error = err.Error()
		return health
	}

	h, found, err := store.Lookup(ctx, c.cfg.SheetName)
	if err != nil {
		health.Error = fmt.Errorf("%w: %w", ErrSyncUnavailable, err).Error()
		return health
	}
	health.Connected = true
	if !found {
		return health
	}
	health.SheetExists = true
	health.SpreadsheetID = h.SpreadsheetID

	rows, err := store.CountRows(ctx, h)
	if err != nil {
		health.Error = fmt.Errorf("%w: %w", ErrSyncUnavailable, err).Error()
		return health
	}
	health.LoggedRows = rows
	return health
}

func (c *Client) connect(ctx context.Context) (Store, Handle, error) {
	store, err := c.ensureStore(ctx)
	if err != nil {
		return nil, Handle{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != nil {
		return store, *c.handle, nil
	}

	h, err := store.EnsureSheet(ctx, c.cfg.SheetName, Header)
	if err != nil {
		if errors.Is(err, ErrConfiguration) {
			return nil, Handle{}, err
		}
		return nil, Handle{}, fmt.Errorf("%w: open sheet %q: %w", ErrSyncUnavailable, c.cfg.SheetName, err)
	}
	c.handle = &h
	slog.Info("Remote ledger connected", "sheet", c.cfg.SheetName, "spreadsheet_id", h.SpreadsheetID)
	return store, h, nil
}

func (c *Client) ensureStore(ctx context.Context) (Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.configErr != nil {
		return nil, c.configErr
	}
	if c.store != nil {
		return c.store, nil
	}

	creds, err := ParseCredentials(c.cfg.Credentials)
	if err != nil {
		c.configErr = fmt.Errorf("%w: %w", ErrConfiguration, err)
		slog.Warn("Remote ledger disabled, running local-only", "error", c.configErr)
		return nil, c.configErr
	}

	shareWith := c.cfg.ShareWith
	if shareWith == "" {
		shareWith = creds.ClientEmail
	}

	// The store outlives this call, so it must not inherit its deadline.
	store, err := c.factory(context.WithoutCancel(ctx), creds, shareWith)
	if err != nil {
		if errors.Is(err, ErrConfiguration) {
			c.configErr = err
			slog.Warn("Remote ledger disabled, running local-only", "error", err)
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrSyncUnavailable, err)
	}
	c.store = store
	return store, nil
}

func (c *Client) retryer() gax.Retryer {
	return &boundedRetryer{
		inner: gax.OnErrorFunc(c.cfg.Backoff, retryable),
		left:  c.cfg.MaxAttempts - 1,
	}
}

func retryable(err error) bool {
	return !errors.Is(err, ErrConfiguration) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

// boundedRetryer caps the number of retries of an inner retryer.
type boundedRetryer struct {
	inner gax.Retryer
	left  int
}

func (r *boundedRetryer) Retry(err error) (time.Duration, bool) {
	if r.left <= 0 {
		return 0, false
	}
	r.left--
	return r.inner.Retry(err)
}
