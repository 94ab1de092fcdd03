package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-invitations/modules/invitation/client"
	"wedding-invitations/modules/invitation/controller"
	"wedding-invitations/modules/invitation/entity"
	"wedding-invitations/modules/invitation/model"
	"wedding-invitations/modules/invitation/repository"
	"wedding-invitations/modules/invitation/router"
	"wedding-invitations/modules/invitation/service"
)

// The controller is exercised through the typed client so the two ends of
// the wire contract are checked against each other.

type memoryRepo struct {
	mu          sync.Mutex
	invitations map[string]*entity.Invitation
}

var _ service.InvitationRepositoryInterface = (*memoryRepo)(nil)

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{invitations: make(map[string]*entity.Invitation)}
}

func (r *memoryRepo) Create(_ context.Context, invitation *entity.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *invitation
	clone.Invitees = append([]entity.Invitee(nil), invitation.Invitees...)
	r.invitations[invitation.ID] = &clone
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*entity.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	invitation, ok := r.invitations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *invitation
	clone.Invitees = append([]entity.Invitee(nil), invitation.Invitees...)
	return &clone, nil
}

func (r *memoryRepo) GetByCode(_ context.Context, code string) (*entity.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, invitation := range r.invitations {
		if invitation.Code == code {
			clone := *invitation
			clone.Invitees = append([]entity.Invitee(nil), invitation.Invitees...)
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryRepo) List(_ context.Context) ([]entity.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]entity.Invitation, 0, len(r.invitations))
	for _, invitation := range r.invitations {
		clone := *invitation
		clone.Invitees = append([]entity.Invitee(nil), invitation.Invitees...)
		result = append(result, clone)
	}
	return result, nil
}

func (r *memoryRepo) MarkEmailSent(_ context.Context, id string, sentAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	invitation, ok := r.invitations[id]
	if !ok {
		return repository.ErrNotFound
	}
	invitation.EmailSent = true
	invitation.SentAt = &sentAt
	if invitation.Status == string(model.InvitationStatusDraft) {
		invitation.Status = string(model.InvitationStatusEmailSent)
	}
	return nil
}

func (r *memoryRepo) SaveResponse(_ context.Context, invitation *entity.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.invitations[invitation.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Status == string(model.InvitationStatusResponseReceived) {
		return repository.ErrAlreadyResponded
	}
	clone := *invitation
	clone.Invitees = append([]entity.Invitee(nil), invitation.Invitees...)
	r.invitations[invitation.ID] = &clone
	return nil
}

// syncEnqueuer delivers "immediately": it marks the email sent in place of
// the background worker so transitions are observable within one test.
type syncEnqueuer struct {
	svc *service.InvitationService
}

func (e *syncEnqueuer) EnqueueSendInvitationEmail(ctx context.Context, invitationID string) error {
	if appErr := e.svc.MarkEmailSent(ctx, invitationID); appErr != nil {
		return appErr
	}
	return nil
}

func strptr(s string) *string { return &s }

func newTestServer(t *testing.T) (*httptest.Server, *client.Client) {
	t.Helper()

	repo := newMemoryRepo()
	enqueuer := &syncEnqueuer{}
	svc := service.NewInvitationService(repo, enqueuer, nil)
	enqueuer.svc = svc

	e := echo.New()
	api := e.Group("/api/v1")
	router.NewInvitationRouter(controller.NewInvitationController(svc)).Register(api)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return server, client.New(server.URL + "/api/v1")
}

func definition() model.InvitationDefinition {
	return model.InvitationDefinition{
		Code:         "Ab1",
		Type:         model.InvitationTypeFullDay,
		AddressedTo:  "A & B",
		EmailAddress: strptr("ab@example.com"),
		Invitees: []model.InviteeDefinition{
			{Name: strptr("A"), RequiresFood: true},
		},
	}
}

func TestCreateThenGetThroughTheAPI(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	createResult, err := c.CreateInvitation(ctx, definition())
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, createResult.StatusCode())

	id, ok := createResult.Value()
	require.True(t, ok)
	require.NotEmpty(t, id)

	getResult, err := c.GetInvitation(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, getResult.StatusCode())

	invitation, ok := getResult.Value()
	require.True(t, ok)
	assert.Equal(t, "Ab1", invitation.Code)
	assert.Equal(t, model.InvitationTypeFullDay, invitation.Type)
	assert.Equal(t, "A & B", invitation.AddressedTo)
	assert.Equal(t, model.InvitationStatusDraft, invitation.Status)
	require.Len(t, invitation.Invitees, 1)
	assert.Equal(t, model.InviteeStatusPending, invitation.Invitees[0].Status)
	assert.Nil(t, invitation.Invitees[0].FoodOption)
}

func TestGetUnknownInvitationIs404(t *testing.T) {
	_, c := newTestServer(t)

	result, err := c.GetInvitation(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, result.StatusCode())
	_, ok := result.Value()
	assert.False(t, ok)
}

func TestListStartsEmpty(t *testing.T) {
	_, c := newTestServer(t)

	result, err := c.GetInvitations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode())

	invitations, ok := result.Value()
	assert.True(t, ok)
	assert.Empty(t, invitations)
}

func TestDuplicateCodeIsConflict(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	_, err := c.CreateInvitation(ctx, definition())
	require.NoError(t, err)

	result, err := c.CreateInvitation(ctx, definition())
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, result.StatusCode())
}

func TestSendEmailTransitionIsObservable(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	createResult, err := c.CreateInvitation(ctx, definition())
	require.NoError(t, err)
	id, _ := createResult.Value()

	before, err := c.GetInvitation(ctx, id)
	require.NoError(t, err)
	invitation, _ := before.Value()
	assert.False(t, invitation.EmailSent)
	assert.Nil(t, invitation.SentAt)

	sendResult, err := c.SendEmail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, sendResult.StatusCode())

	after, err := c.GetInvitation(ctx, id)
	require.NoError(t, err)
	invitation, _ = after.Value()
	assert.True(t, invitation.EmailSent)
	require.NotNil(t, invitation.SentAt)
	assert.Equal(t, model.InvitationStatusEmailSent, invitation.Status)
}

func TestSendEmailForUnknownInvitationIsAnErrorResult(t *testing.T) {
	_, c := newTestServer(t)

	result, err := c.SendEmail(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, result.StatusCode())
	assert.False(t, result.IsSuccess())
}

func TestRSVPOverTheWire(t *testing.T) {
	server, c := newTestServer(t)
	ctx := context.Background()

	createResult, err := c.CreateInvitation(ctx, definition())
	require.NoError(t, err)
	id, _ := createResult.Value()

	getResult, err := c.GetInvitation(ctx, id)
	require.NoError(t, err)
	invitation, _ := getResult.Value()

	submission := model.RSVPSubmission{
		ContactInformation: strptr("My number is 0123456789"),
		Invitees: []model.InviteeResponse{
			{
				ID:         invitation.Invitees[0].ID,
				Attending:  true,
				FoodOption: foodptr(model.FoodOptionStandard),
			},
		},
	}

	resp := postJSON(t, server.URL+"/api/v1/invitations/code/Ab1/actions/submit-rsvp", submission)
	assert.Equal(t, http.StatusOK, resp)

	afterResult, err := c.GetInvitation(ctx, id)
	require.NoError(t, err)
	after, _ := afterResult.Value()
	assert.Equal(t, model.InvitationStatusResponseReceived, after.Status)
	require.NotNil(t, after.RespondedAt)
	require.NotNil(t, after.ContactInformation)
	require.NotNil(t, after.Invitees[0].FoodOption)
	assert.Equal(t, model.FoodOptionStandard, *after.Invitees[0].FoodOption)

	// A second submission is rejected by the service.
	resp = postJSON(t, server.URL+"/api/v1/invitations/code/Ab1/actions/submit-rsvp", submission)
	assert.Equal(t, http.StatusConflict, resp)
}

func foodptr(option model.FoodOption) *model.FoodOption { return &option }

func postJSON(t *testing.T, url string, body any) int {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode
}
