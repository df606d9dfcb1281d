package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gulshanb/expenseman/internal/common"
	"github.com/gulshanb/expenseman/internal/service"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client fetches tab data from one spreadsheet using an API key.
type Client struct {
	svc           *sheetsapi.Service
	logger        *slog.Logger
	spreadsheetID string
	retryOpts     service.RetryOptions
}

// NewClient creates a Sheets client for the configured spreadsheet.
func NewClient(ctx context.Context, config Config, logger *slog.Logger) (*Client, error) {
	if !config.Configured() {
		return nil, common.ErrMissingConfig
	}

	spreadsheetID, err := ExtractSpreadsheetID(config.SheetURL)
	if err != nil {
		return nil, err
	}

	svc, err := sheetsapi.NewService(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		svc:           svc,
		logger:        logger,
		spreadsheetID: spreadsheetID,
		retryOpts: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Second,
			MaxDelay:     15 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// FetchTab implements service.TabFetcher. It returns every row of the tab,
// header included; cells come back as strings exactly as the API formats them.
func (c *Client) FetchTab(ctx context.Context, tab string) ([][]string, error) {
	var resp *sheetsapi.ValueRange

	err := common.WithRetry(ctx, func() error {
		var callErr error
		resp, callErr = c.svc.Spreadsheets.Values.
			Get(c.spreadsheetID, fmt.Sprintf("%s!%s", tab, fetchRange)).
			Context(ctx).
			Do()
		return c.classifyAPIError(callErr)
	}, c.retryOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrTabFetch, tab, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, v := range raw {
			row = append(row, fmt.Sprint(v))
		}
		rows = append(rows, row)
	}

	c.logger.Debug("fetched tab", "tab", tab, "rows", len(rows))
	return rows, nil
}

// TestConnection implements service.TabFetcher. It performs a read-only
// metadata probe and checks that every required tab exists.
func (c *Client) TestConnection(ctx context.Context) service.TestResult {
	meta, err := c.svc.Spreadsheets.
		Get(c.spreadsheetID).
		Fields("properties.title", "sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return service.TestResult{OK: false, Message: connectionFailureMessage(err)}
	}

	titles := make(map[string]bool, len(meta.Sheets))
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			titles[sh.Properties.Title] = true
		}
	}

	var missing []string
	for _, tab := range RequiredTabs {
		if !titles[tab] {
			missing = append(missing, tab)
		}
	}
	if len(missing) > 0 {
		return service.TestResult{
			OK:      false,
			Message: fmt.Sprintf("connected to %q but missing required tabs: %s", meta.Properties.Title, strings.Join(missing, ", ")),
		}
	}

	return service.TestResult{
		OK:      true,
		Message: fmt.Sprintf("connected to %q, all required tabs present", meta.Properties.Title),
	}
}

// classifyAPIError marks client errors (4xx) as non-retryable so WithRetry
// gives up immediately on bad credentials instead of hammering the API.
func (c *Client) classifyAPIError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return common.ErrRateLimit
		}
		if apiErr.Code >= 400 && apiErr.Code < 500 {
			return &common.RetryableError{Err: err, Retryable: false}
		}
	}
	return err
}

func connectionFailureMessage(err error) string {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "API key is invalid or the Google Sheets API is not enabled for it"
		case http.StatusNotFound:
			return "spreadsheet not found; check the URL and make sure the sheet is shared publicly"
		default:
			return fmt.Sprintf("Google Sheets API error (HTTP %d): %s", apiErr.Code, apiErr.Message)
		}
	}
	return fmt.Sprintf("network error reaching Google Sheets: %v", err)
}
