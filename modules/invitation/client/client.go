// Package client is a typed HTTP client for the invitations API. Every
// operation is a single attempt: transport failures surface as errors,
// rejections come back as error results carrying the status code, and a
// success response with a malformed body fails loudly as a ProtocolError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"wedding-invitations/core/constants"
	"wedding-invitations/core/httpresult"
	"wedding-invitations/modules/invitation/model"
)

// ProtocolError reports a success-status response whose body does not match
// the agreed schema. It means the service breached its contract; it is never
// folded into an error result.
type ProtocolError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: cannot decode success response (status %d): %v", e.Operation, e.StatusCode, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default transport, e.g. to control timeouts.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New returns a client for the invitations API at baseURL. The client holds
// no state beyond the transport handle; operations may be issued
// concurrently.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: constants.DefaultRequestTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateInvitation submits the definition and returns the new invitation's
// id from the service's Reference acknowledgment.
func (c *Client) CreateInvitation(ctx context.Context, definition model.InvitationDefinition) (httpresult.Result[string], error) {
	resp, err := c.postJSON(ctx, "/invitations", definition)
	if err != nil {
		return httpresult.Result[string]{}, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return httpresult.Error[string](resp.StatusCode), nil
	}

	var reference *model.Reference
	if err := json.NewDecoder(resp.Body).Decode(&reference); err != nil {
		return httpresult.Result[string]{}, &ProtocolError{Operation: "CreateInvitation", StatusCode: resp.StatusCode, Err: err}
	}
	if reference == nil {
		return httpresult.Result[string]{}, &ProtocolError{Operation: "CreateInvitation", StatusCode: resp.StatusCode, Err: fmt.Errorf("body is not a Reference")}
	}

	return httpresult.Success(resp.StatusCode, reference.ID), nil
}

// GetInvitation fetches a single invitation by id.
func (c *Client) GetInvitation(ctx context.Context, invitationID string) (httpresult.Result[model.Invitation], error) {
	resp, err := c.get(ctx, "/invitations/"+invitationID)
	if err != nil {
		return httpresult.Result[model.Invitation]{}, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return httpresult.Error[model.Invitation](resp.StatusCode), nil
	}

	var invitation *model.Invitation
	if err := json.NewDecoder(resp.Body).Decode(&invitation); err != nil {
		return httpresult.Result[model.Invitation]{}, &ProtocolError{Operation: "GetInvitation", StatusCode: resp.StatusCode, Err: err}
	}
	if invitation == nil {
		return httpresult.Result[model.Invitation]{}, &ProtocolError{Operation: "GetInvitation", StatusCode: resp.StatusCode, Err: fmt.Errorf("body is not an Invitation")}
	}

	return httpresult.Success(resp.StatusCode, *invitation), nil
}

// GetInvitations fetches the full collection in whatever order the service
// returns it.
func (c *Client) GetInvitations(ctx context.Context) (httpresult.Result[[]model.Invitation], error) {
	resp, err := c.get(ctx, "/invitations")
	if err != nil {
		return httpresult.Result[[]model.Invitation]{}, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return httpresult.Error[[]model.Invitation](resp.StatusCode), nil
	}

	var invitations []model.Invitation
	if err := json.NewDecoder(resp.Body).Decode(&invitations); err != nil {
		return httpresult.Result[[]model.Invitation]{}, &ProtocolError{Operation: "GetInvitations", StatusCode: resp.StatusCode, Err: err}
	}
	if invitations == nil {
		return httpresult.Result[[]model.Invitation]{}, &ProtocolError{Operation: "GetInvitations", StatusCode: resp.StatusCode, Err: fmt.Errorf("body is not a list of Invitation")}
	}

	return httpresult.Success(resp.StatusCode, invitations), nil
}

// SendEmail asks the service to send the notification email for an
// invitation. The success body is an empty object and is not inspected.
func (c *Client) SendEmail(ctx context.Context, invitationID string) (httpresult.Result[struct{}], error) {
	resp, err := c.postJSON(ctx, "/invitations/"+invitationID+"/actions/send-invitation-email", struct{}{})
	if err != nil {
		return httpresult.Result[struct{}]{}, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return httpresult.Error[struct{}](resp.StatusCode), nil
	}

	return httpresult.Success(resp.StatusCode, struct{}{}), nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode <= 299
}
