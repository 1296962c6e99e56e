package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/drivewatch/internal/common/errorwrapper"
	"github.com/aleister1102/drivewatch/internal/httpclient"
)

const (
	defaultBaseURL  = "https://www.googleapis.com/drive/v3"
	defaultPageSize = 100
	listFileFields  = "files(id,name,size,mimeType,modifiedTime,createdTime,owners(emailAddress),webViewLink)"
)

// Client is a FileSource backed by the Drive v3 REST API.
type Client struct {
	logger      zerolog.Logger
	httpClient  *http.Client
	retryPolicy httpclient.RetryPolicy
	baseURL     string
	accessToken string
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = client }
}

// NewClient creates a Drive API client authorized by a bearer token.
func NewClient(accessToken string, logger zerolog.Logger, opts ...ClientOption) (*Client, error) {
	if accessToken == "" {
		return nil, errorwrapper.NewValidationError("access_token", accessToken, "access token is required")
	}

	client := &Client{
		logger:      logger.With().Str("module", "DriveClient").Logger(),
		httpClient:  httpclient.NewHTTPClient(httpclient.DefaultHTTPClientConfig()),
		retryPolicy: httpclient.NewRetryPolicy(3, 2*time.Second),
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// fileResource mirrors the subset of the Drive file resource we request.
type fileResource struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         string `json:"size"` // the API serializes int64 as string
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime"`
	CreatedTime  string `json:"createdTime"`
	WebViewLink  string `json:"webViewLink"`
	Owners       []struct {
		EmailAddress string `json:"emailAddress"`
	} `json:"owners"`
}

type fileListResponse struct {
	Files []fileResource `json:"files"`
}

// GetFolder fetches the id and display name of a folder.
func (c *Client) GetFolder(ctx context.Context, folderID string) (FolderInfo, error) {
	endpoint := fmt.Sprintf("%s/files/%s?fields=id,name&supportsAllDrives=true", c.baseURL, url.PathEscape(folderID))

	var resource fileResource
	if err := c.getJSON(ctx, endpoint, &resource); err != nil {
		return FolderInfo{}, errorwrapper.WrapError(err, fmt.Sprintf("failed to fetch folder %s", folderID))
	}

	return FolderInfo{ID: resource.ID, Name: resource.Name}, nil
}

// ListFiles lists files in a folder modified after opts.ModifiedSince, capped
// at opts.Limit.
func (c *Client) ListFiles(ctx context.Context, folderID string, opts ListOptions) ([]FileMetadata, error) {
	pageSize := opts.Limit
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	query := fmt.Sprintf("'%s' in parents and trashed = false", folderID)
	if !opts.ModifiedSince.IsZero() {
		query += fmt.Sprintf(" and modifiedTime > '%s'", opts.ModifiedSince.UTC().Format(time.RFC3339))
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("fields", listFileFields)
	params.Set("orderBy", "modifiedTime desc")
	params.Set("supportsAllDrives", "true")
	params.Set("includeItemsFromAllDrives", "true")

	endpoint := fmt.Sprintf("%s/files?%s", c.baseURL, params.Encode())

	var response fileListResponse
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, errorwrapper.WrapError(err, fmt.Sprintf("failed to list files in folder %s", folderID))
	}

	files := make([]FileMetadata, 0, len(response.Files))
	for _, resource := range response.Files {
		meta, err := resource.toMetadata()
		if err != nil {
			c.logger.Warn().Err(err).Str("file_id", resource.ID).Msg("Skipping file with unparsable metadata")
			continue
		}
		files = append(files, meta)
	}

	c.logger.Debug().Str("folder_id", folderID).Int("file_count", len(files)).Msg("Listed folder files")
	return files, nil
}

// getJSON performs a GET request with bearer auth and bounded retry, decoding
// the response body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	return c.retryPolicy.Execute(ctx, func(ctx context.Context) (bool, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return false, err
		}
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return true, errorwrapper.NewNetworkError(endpoint, "request failed", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return true, errorwrapper.NewError("drive API returned status %d: %s", resp.StatusCode, string(body))
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return false, errorwrapper.NewError("drive API returned status %d: %s", resp.StatusCode, string(body))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, errorwrapper.WrapError(err, "failed to decode drive API response")
		}
		return false, nil
	})
}

func (r fileResource) toMetadata() (FileMetadata, error) {
	modified, err := time.Parse(time.RFC3339, r.ModifiedTime)
	if err != nil {
		return FileMetadata{}, fmt.Errorf("invalid modifiedTime %q: %w", r.ModifiedTime, err)
	}

	// createdTime is occasionally absent for items owned by other drives.
	var created time.Time
	if r.CreatedTime != "" {
		created, err = time.Parse(time.RFC3339, r.CreatedTime)
		if err != nil {
			return FileMetadata{}, fmt.Errorf("invalid createdTime %q: %w", r.CreatedTime, err)
		}
	}

	var size int64
	if r.Size != "" {
		size, err = strconv.ParseInt(r.Size, 10, 64)
		if err != nil {
			return FileMetadata{}, fmt.Errorf("invalid size %q: %w", r.Size, err)
		}
	}

	owner := ""
	if len(r.Owners) > 0 {
		owner = r.Owners[0].EmailAddress
	}

	return FileMetadata{
		ID:           r.ID,
		Name:         r.Name,
		Size:         size,
		MimeType:     r.MimeType,
		LastModified: modified,
		CreatedDate:  created,
		Owner:        owner,
		WebViewLink:  r.WebViewLink,
	}, nil
}
