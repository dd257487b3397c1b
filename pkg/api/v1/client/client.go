// Package client provides the API client for interacting with the Shopkeeper API
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"shopkeeper/internal/db/models"
	"shopkeeper/internal/filter"
	"shopkeeper/internal/types"
	"shopkeeper/pkg/api/v1/routes"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Listing Endpoints
	ListListings(ctx context.Context, criteria filter.Criteria, defaults filter.Defaults, opts *models.ListOptions) (types.ListResponse[types.ListingResponse], error)
	GetListing(ctx context.Context, id uint) (types.ListingResponse, error)
	CreateListing(ctx context.Context, req types.CreateListingRequest) (types.ListingResponse, error)
	EditListing(ctx context.Context, id uint, req types.EditListingRequest) (types.ListingResponse, error)
	HideListing(ctx context.Context, id uint) error

	// Image Endpoints
	HideImage(ctx context.Context, id uint) error

	// User Endpoints
	GetCurrentUser(ctx context.Context) (models.Viewer, error)
	GetIssueCount(ctx context.Context) (types.IssueCountResponse, error)
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// AuthToken is the bearer session token sent with each request
	AuthToken string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL   string
	timeout   time.Duration
	AuthToken string
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &APIClient{
		baseURL:   opts.BaseURL,
		timeout:   opts.Timeout,
		AuthToken: opts.AuthToken,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPatch:
		agent = fiber.Patch(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")
	if c.AuthToken != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.AuthToken)
	}

	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	if statusCode < 200 || statusCode >= 300 {
		// Surface the error message the API sent, fall back to the raw body
		var apiErr types.ErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
			return &fiber.Error{Code: statusCode, Message: apiErr.Error}
		}
		return &fiber.Error{Code: statusCode, Message: string(body)}
	}

	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.doRequest(agent, response)
}

// HealthCheck checks the API health status
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	var response map[string]string
	err := c.executeRequest(ctx, http.MethodGet, routes.HealthCheckURL(), nil, &response)
	return response, err
}

// ListListings retrieves listings matching the filter criteria. Criteria are
// serialized against the given defaults so default-equal fields stay out of
// the query string.
func (c *APIClient) ListListings(ctx context.Context, criteria filter.Criteria, defaults filter.Defaults, opts *models.ListOptions) (types.ListResponse[types.ListingResponse], error) {
	query := filter.Serialize(criteria, defaults)
	if opts != nil {
		if opts.Limit > 0 {
			query.Set("limit", strconv.Itoa(opts.Limit))
		}
		if opts.Offset > 0 {
			query.Set("offset", strconv.Itoa(opts.Offset))
		}
	}

	var response types.ListResponse[types.ListingResponse]
	err := c.executeRequest(ctx, http.MethodGet, routes.ListingsURL(query), nil, &response)
	return response, err
}

// GetListing retrieves a single listing by ID
func (c *APIClient) GetListing(ctx context.Context, id uint) (types.ListingResponse, error) {
	var response types.ListingResponse
	endpoint := routes.ListingURL(strconv.FormatUint(uint64(id), 10))
	err := c.executeRequest(ctx, http.MethodGet, endpoint, nil, &response)
	return response, err
}

// CreateListing creates a new listing owned by the authenticated viewer
func (c *APIClient) CreateListing(ctx context.Context, req types.CreateListingRequest) (types.ListingResponse, error) {
	var response types.ListingResponse
	err := c.executeRequest(ctx, http.MethodPost, routes.ListingsURL(nil), req, &response)
	return response, err
}

// EditListing applies a partial edit to a listing
func (c *APIClient) EditListing(ctx context.Context, id uint, req types.EditListingRequest) (types.ListingResponse, error) {
	var response types.ListingResponse
	endpoint := routes.ListingURL(strconv.FormatUint(uint64(id), 10))
	err := c.executeRequest(ctx, http.MethodPatch, endpoint, req, &response)
	return response, err
}

// HideListing hides a listing from public views. Requires a moderator session.
func (c *APIClient) HideListing(ctx context.Context, id uint) error {
	endpoint := routes.ListingURL(strconv.FormatUint(uint64(id), 10))
	return c.executeRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// HideImage hides a listing image. Requires a moderator session.
func (c *APIClient) HideImage(ctx context.Context, id uint) error {
	endpoint := routes.ImageURL(strconv.FormatUint(uint64(id), 10))
	return c.executeRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// GetCurrentUser returns the viewer behind the session token
func (c *APIClient) GetCurrentUser(ctx context.Context) (models.Viewer, error) {
	var response models.Viewer
	err := c.executeRequest(ctx, http.MethodGet, routes.CurrentUserURL(), nil, &response)
	return response, err
}

// GetIssueCount returns how many of the viewer's open listings have issues
func (c *APIClient) GetIssueCount(ctx context.Context) (types.IssueCountResponse, error) {
	var response types.IssueCountResponse
	err := c.executeRequest(ctx, http.MethodGet, routes.IssueCountURL(), nil, &response)
	return response, err
}
