package ledgersync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetMIMEType = "application/vnd.google-apps.spreadsheet"

// SheetsStore is a Store backed by Google Sheets. Drive is used to find
// spreadsheets by name and to share newly created ones.
type SheetsStore struct {
	sheets    *sheets.Service
	drive     *drive.Service
	shareWith string
}

var _ Store = (*SheetsStore)(nil)

// NewSheetsStoreFactory returns a StoreFactory building SheetsStores.
// Extra client options are appended after the credentials, which lets
// tests point the store at a fake endpoint.
func NewSheetsStoreFactory(opts ...option.ClientOption) StoreFactory {
	return func(ctx context.Context, creds *Credentials, shareWith string) (Store, error) {
		clientOpts := []option.ClientOption{
			option.WithCredentialsJSON(creds.JSON()),
			option.WithScopes(sheets.SpreadsheetsScope, drive.DriveScope),
		}
		clientOpts = append(clientOpts, opts...)
		return NewSheetsStore(ctx, shareWith, clientOpts...)
	}
}

// NewSheetsStore creates the Sheets and Drive clients.
func NewSheetsStore(ctx context.Context, shareWith string, opts ...option.ClientOption) (*SheetsStore, error) {
	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: sheets client: %w", ErrConfiguration, err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: drive client: %w", ErrConfiguration, err)
	}
	return &SheetsStore{sheets: sheetsSvc, drive: driveSvc, shareWith: shareWith}, nil
}

// Lookup finds a spreadsheet by exact name.
func (s *SheetsStore) Lookup(ctx context.Context, name string) (Handle, bool, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), spreadsheetMIMEType)

	list, err := s.drive.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return Handle{}, false, classify("list spreadsheets", err)
	}
	if len(list.Files) == 0 {
		return Handle{}, false, nil
	}
	return Handle{SpreadsheetID: list.Files[0].Id}, true, nil
}

// EnsureSheet opens the spreadsheet called name, creating and sharing it
// when missing. A header row is written whenever the first row is empty.
func (s *SheetsStore) EnsureSheet(ctx context.Context, name string, header []string) (Handle, error) {
	h, found, err := s.Lookup(ctx, name)
	if err != nil {
		return Handle{}, err
	}

	if !found {
		created, err := s.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
			Properties: &sheets.SpreadsheetProperties{Title: name},
		}).Context(ctx).Do()
		if err != nil {
			return Handle{}, classify("create spreadsheet", err)
		}
		h = Handle{SpreadsheetID: created.SpreadsheetId}
		slog.Info("Created remote ledger spreadsheet", "sheet", name, "spreadsheet_id", h.SpreadsheetID)
		s.share(ctx, h)
	}

	first, err := s.sheets.Spreadsheets.Values.Get(h.SpreadsheetID, "A1:I1").Context(ctx).Do()
	if err != nil {
		return Handle{}, classify("read header", err)
	}
	if len(first.Values) == 0 {
		if err := s.AppendRow(ctx, h, header); err != nil {
			return Handle{}, err
		}
	}
	return h, nil
}

// AppendRow appends row below the last row of the first sheet.
func (s *SheetsStore) AppendRow(ctx context.Context, h Handle, row []string) error {
	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}

	_, err := s.sheets.Spreadsheets.Values.Append(h.SpreadsheetID, "A1", &sheets.ValueRange{
		Values: [][]any{values},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return classify("append row", err)
	}
	return nil
}

// HasTransaction scans the ID column for id.
func (s *SheetsStore) HasTransaction(ctx context.Context, h Handle, id string) (bool, error) {
	ids, err := s.idColumn(ctx, h)
	if err != nil {
		return false, err
	}
	for _, v := range ids {
		if v == id {
			return true, nil
		}
	}
	return false, nil
}

// CountRows returns the number of rows below the header.
func (s *SheetsStore) CountRows(ctx context.Context, h Handle) (int, error) {
	ids, err := s.idColumn(ctx, h)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// idColumn returns column A without the header.
func (s *SheetsStore) idColumn(ctx context.Context, h Handle) ([]string, error) {
	resp, err := s.sheets.Spreadsheets.Values.Get(h.SpreadsheetID, "A:A").Context(ctx).Do()
	if err != nil {
		return nil, classify("read transaction ids", err)
	}

	var ids []string
	for i, row := range resp.Values {
		if i == 0 || len(row) == 0 {
			continue
		}
		ids = append(ids, fmt.Sprint(row[0]))
	}
	return ids, nil
}

func (s *SheetsStore) share(ctx context.Context, h Handle) {
	if s.shareWith == "" {
		return
	}
	_, err := s.drive.Permissions.Create(h.SpreadsheetID, &drive.Permission{
		Type:         "user",
		Role:         "writer",
		EmailAddress: s.shareWith,
	}).SendNotificationEmail(false).Context(ctx).Do()
	if err != nil {
		slog.Warn("Failed to share remote ledger spreadsheet", "spreadsheet_id", h.SpreadsheetID, "email", s.shareWith, "error", err)
	}
}

// classify marks authentication and permission failures as configuration
// problems; everything else is treated as transient.
func classify(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
		return fmt.Errorf("%w: %s: %w", ErrConfiguration, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
