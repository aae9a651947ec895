// Package client is a small typed HTTP client for the emre coordination API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/emresys/emre/internal/model"
	"github.com/emresys/emre/internal/repository"
	"github.com/emresys/emre/internal/service"
	"github.com/google/uuid"
)

// Config represents the configuration for the API client
type Config struct {
	// BaseURL is the base URL of the coordination service
	BaseURL string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout is the default request timeout
	Timeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:8080",
		HTTPClient: http.DefaultClient,
		Timeout:    10 * time.Second,
	}
}

// Client is the coordination service client. After Login it sends the bearer
// token on every request; SetToken installs an externally obtained one.
type Client struct {
	config *Config
	client *http.Client
	token  string
}

// NewClient creates a new API client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		config: config,
		client: client,
	}
}

// SetToken installs a bearer token obtained outside this client.
func (c *Client) SetToken(token string) {
	c.token = token
}

// TokenResponse represents a successful login response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token and stores it on the client
// for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	endpoint := fmt.Sprintf("%s/api/v1/auth/login", c.config.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, decodeAPIError(httpResp)
	}

	var resp TokenResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.token = resp.AccessToken
	return &resp, nil
}

// RefreshToken exchanges the current token for a fresh one and stores it.
func (c *Client) RefreshToken(ctx context.Context) (*TokenResponse, error) {
	var resp TokenResponse
	endpoint := fmt.Sprintf("%s/api/v1/auth/refresh-token", c.config.BaseURL)
	if err := c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		return nil, err
	}
	c.token = resp.AccessToken
	return &resp, nil
}

// Register creates a new user account. No token is required.
func (c *Client) Register(ctx context.Context, req service.RegisterInput) (*model.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/users", c.config.BaseURL)
	var user model.User
	if err := c.post(ctx, endpoint, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the authenticated user's profile with membership info.
func (c *Client) Me(ctx context.Context) (*model.UserProfile, error) {
	endpoint := fmt.Sprintf("%s/api/v1/users/me", c.config.BaseURL)
	var profile model.UserProfile
	if err := c.get(ctx, endpoint, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateMe applies a partial update to the authenticated user's profile.
func (c *Client) UpdateMe(ctx context.Context, req service.UpdateProfileInput) (*model.User, error) {
	endpoint := fmt.Sprintf("%s/api/v1/users/me", c.config.BaseURL)
	var user model.User
	if err := c.put(ctx, endpoint, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateOrganization creates an organization; the caller becomes its admin.
func (c *Client) CreateOrganization(ctx context.Context, req service.CreateOrganizationInput) (*model.Organization, error) {
	if req.Name == "" || req.Type == "" {
		return nil, errors.New("name and type are required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/organizations", c.config.BaseURL)
	var org model.Organization
	if err := c.post(ctx, endpoint, req, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// ListOrganizations lists organizations, optionally filtered by visibility.
func (c *Client) ListOrganizations(ctx context.Context, visibility *model.Visibility) ([]*model.Organization, error) {
	endpoint := fmt.Sprintf("%s/api/v1/organizations", c.config.BaseURL)
	if visibility != nil {
		endpoint += "?visibility=" + url.QueryEscape(string(*visibility))
	}

	var orgs []*model.Organization
	if err := c.get(ctx, endpoint, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// GetOrganization returns the organization detail view.
func (c *Client) GetOrganization(ctx context.Context, orgID uuid.UUID) (*model.OrganizationDetail, error) {
	endpoint := fmt.Sprintf("%s/api/v1/organizations/%s", c.config.BaseURL, orgID)
	var detail model.OrganizationDetail
	if err := c.get(ctx, endpoint, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// RequestMembership asks to join an organization; the membership starts
// pending until an admin approves it.
func (c *Client) RequestMembership(ctx context.Context, orgID uuid.UUID) (*model.OrganizationMembership, error) {
	endpoint := fmt.Sprintf("%s/api/v1/organizations/%s/members/request", c.config.BaseURL, orgID)
	var membership model.OrganizationMembership
	if err := c.post(ctx, endpoint, struct{}{}, &membership); err != nil {
		return nil, err
	}
	return &membership, nil
}

// ApproveMembership activates a pending membership. Org admin only.
func (c *Client) ApproveMembership(ctx context.Context, orgID, userID uuid.UUID) error {
	endpoint := fmt.Sprintf("%s/api/v1/organizations/%s/members/%s/approve", c.config.BaseURL, orgID, userID)
	var resp struct {
		Message string `json:"message"`
	}
	return c.post(ctx, endpoint, struct{}{}, &resp)
}

// CreateTeam creates a team; the caller becomes its leader.
func (c *Client) CreateTeam(ctx context.Context, req service.CreateTeamInput) (*model.Team, error) {
	if req.Name == "" || req.OrganizationID == uuid.Nil {
		return nil, errors.New("name and organization_id are required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/teams", c.config.BaseURL)
	var team model.Team
	if err := c.post(ctx, endpoint, req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// GetTeam returns the team detail view.
func (c *Client) GetTeam(ctx context.Context, teamID uuid.UUID) (*model.TeamDetail, error) {
	endpoint := fmt.Sprintf("%s/api/v1/teams/%s", c.config.BaseURL, teamID)
	var detail model.TeamDetail
	if err := c.get(ctx, endpoint, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// AddTeamMember adds an org member to a team. Role defaults to member.
func (c *Client) AddTeamMember(ctx context.Context, teamID, userID uuid.UUID, role model.TeamRole) (*model.TeamMembership, error) {
	endpoint := fmt.Sprintf("%s/api/v1/teams/%s/members/%s", c.config.BaseURL, teamID, userID)
	req := struct {
		Role model.TeamRole `json:"role,omitempty"`
	}{Role: role}

	var membership model.TeamMembership
	if err := c.post(ctx, endpoint, req, &membership); err != nil {
		return nil, err
	}
	return &membership, nil
}

// RemoveTeamMember removes a member from a team.
func (c *Client) RemoveTeamMember(ctx context.Context, teamID, userID uuid.UUID) error {
	endpoint := fmt.Sprintf("%s/api/v1/teams/%s/members/%s", c.config.BaseURL, teamID, userID)
	return c.delete(ctx, endpoint)
}

// CreateIncident opens an incident in an organization the caller belongs to.
func (c *Client) CreateIncident(ctx context.Context, req service.CreateIncidentInput) (*model.Incident, error) {
	if req.Title == "" || req.OrganizationID == uuid.Nil {
		return nil, errors.New("title and organization_id are required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/incidents", c.config.BaseURL)
	var incident model.Incident
	if err := c.post(ctx, endpoint, req, &incident); err != nil {
		return nil, err
	}
	return &incident, nil
}

// IncidentListOptions narrows ListIncidents. Zero values are ignored.
type IncidentListOptions struct {
	OrganizationID uuid.UUID
	TeamID         uuid.UUID
	Status         model.IncidentStatus
	Priority       model.IncidentPriority
}

// ListIncidents lists incidents matching the options, newest first.
func (c *Client) ListIncidents(ctx context.Context, opts IncidentListOptions) ([]*model.Incident, error) {
	query := url.Values{}
	if opts.OrganizationID != uuid.Nil {
		query.Set("organization_id", opts.OrganizationID.String())
	}
	if opts.TeamID != uuid.Nil {
		query.Set("team_id", opts.TeamID.String())
	}
	if opts.Status != "" {
		query.Set("status", string(opts.Status))
	}
	if opts.Priority != "" {
		query.Set("priority", string(opts.Priority))
	}

	endpoint := fmt.Sprintf("%s/api/v1/incidents", c.config.BaseURL)
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var incidents []*model.Incident
	if err := c.get(ctx, endpoint, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// GetIncident returns the incident detail view.
func (c *Client) GetIncident(ctx context.Context, incidentID uuid.UUID) (*model.IncidentDetail, error) {
	endpoint := fmt.Sprintf("%s/api/v1/incidents/%s", c.config.BaseURL, incidentID)
	var detail model.IncidentDetail
	if err := c.get(ctx, endpoint, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateIncident applies a partial update to an incident.
func (c *Client) UpdateIncident(ctx context.Context, incidentID uuid.UUID, req service.UpdateIncidentInput) (*model.Incident, error) {
	endpoint := fmt.Sprintf("%s/api/v1/incidents/%s", c.config.BaseURL, incidentID)
	var incident model.Incident
	if err := c.put(ctx, endpoint, req, &incident); err != nil {
		return nil, err
	}
	return &incident, nil
}

// AddIncidentUpdate appends an entry to the incident's update log.
func (c *Client) AddIncidentUpdate(ctx context.Context, incidentID uuid.UUID, req service.AddUpdateInput) (*model.IncidentUpdate, error) {
	if req.Content == "" {
		return nil, errors.New("content is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/incidents/%s/updates", c.config.BaseURL, incidentID)
	var update model.IncidentUpdate
	if err := c.post(ctx, endpoint, req, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// ListIncidentUpdates returns the incident's update log in chronological
// order.
func (c *Client) ListIncidentUpdates(ctx context.Context, incidentID uuid.UUID, page repository.Pagination) ([]*model.IncidentUpdate, error) {
	endpoint := fmt.Sprintf("%s/api/v1/incidents/%s/updates?skip=%d&limit=%d", c.config.BaseURL, incidentID, page.Skip, page.Limit)
	var updates []*model.IncidentUpdate
	if err := c.get(ctx, endpoint, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// CreateResource registers a resource in an organization's inventory.
func (c *Client) CreateResource(ctx context.Context, req service.CreateResourceInput) (*model.Resource, error) {
	if req.Name == "" || req.OrganizationID == uuid.Nil {
		return nil, errors.New("name and organization_id are required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/resources", c.config.BaseURL)
	var resource model.Resource
	if err := c.post(ctx, endpoint, req, &resource); err != nil {
		return nil, err
	}
	return &resource, nil
}

// GetResource returns the resource detail view with live availability.
func (c *Client) GetResource(ctx context.Context, resourceID uuid.UUID) (*model.ResourceDetail, error) {
	endpoint := fmt.Sprintf("%s/api/v1/resources/%s", c.config.BaseURL, resourceID)
	var detail model.ResourceDetail
	if err := c.get(ctx, endpoint, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// AssignResource checks out units of a resource against an incident.
func (c *Client) AssignResource(ctx context.Context, resourceID uuid.UUID, req service.AssignResourceInput) (*model.ResourceAssignment, error) {
	if req.IncidentID == uuid.Nil {
		return nil, errors.New("incident_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/resources/%s/assign", c.config.BaseURL, resourceID)
	var assignment model.ResourceAssignment
	if err := c.post(ctx, endpoint, req, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ReturnResource marks an assignment as returned.
func (c *Client) ReturnResource(ctx context.Context, resourceID, assignmentID uuid.UUID) (*model.ResourceAssignment, error) {
	if assignmentID == uuid.Nil {
		return nil, errors.New("assignment_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/v1/resources/%s/return", c.config.BaseURL, resourceID)
	req := struct {
		AssignmentID uuid.UUID `json:"assignment_id"`
	}{AssignmentID: assignmentID}

	var assignment model.ResourceAssignment
	if err := c.post(ctx, endpoint, req, &assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListResourceAssignments returns a resource's checkout history.
func (c *Client) ListResourceAssignments(ctx context.Context, resourceID uuid.UUID, page repository.Pagination) ([]*model.ResourceAssignment, error) {
	endpoint := fmt.Sprintf("%s/api/v1/resources/%s/assignments?skip=%d&limit=%d", c.config.BaseURL, resourceID, page.Skip, page.Limit)
	var assignments []*model.ResourceAssignment
	if err := c.get(ctx, endpoint, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// APIError is an error response from the API
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

func decodeAPIError(httpResp *http.Response) error {
	var apiErr APIError
	if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
		return &APIError{
			StatusCode: httpResp.StatusCode,
			Message:    fmt.Sprintf("request failed with status code %d", httpResp.StatusCode),
		}
	}

	apiErr.StatusCode = httpResp.StatusCode
	return &apiErr
}

// post performs a POST request to the specified endpoint with the given request and unmarshals the response into the specified response object
func (c *Client) post(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	return c.send(ctx, http.MethodPost, endpoint, req, resp)
}

// put performs a PUT request to the specified endpoint with the given request and unmarshals the response into the specified response object
func (c *Client) put(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	return c.send(ctx, http.MethodPut, endpoint, req, resp)
}

func (c *Client) send(ctx context.Context, method, endpoint string, req interface{}, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	// Marshal request to JSON
	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	// Send request
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	// Check for non-success status code
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return decodeAPIError(httpResp)
	}

	// Decode response
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// get performs a GET request to the specified endpoint and unmarshals the response into the specified response object
func (c *Client) get(ctx context.Context, endpoint string, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	c.authorize(httpReq)

	// Send request
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	// Check for non-success status code
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return decodeAPIError(httpResp)
	}

	// Decode response
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// delete performs a DELETE request to the specified endpoint
func (c *Client) delete(ctx context.Context, endpoint string) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(httpReq)

	// Send request
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	// Check for non-success status code
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return decodeAPIError(httpResp)
	}

	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
