package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/SscSPs/solar_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/solar_backoffice/internal/core/ports/services"
	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Mock SyncInboxService ---
type MockSyncInboxService struct {
	mock.Mock
}

func (m *MockSyncInboxService) Ingest(ctx context.Context, orgID string, userID string, entity string, env dto.SyncEnvelope) (*dto.SyncAck, error) {
	args := m.Called(ctx, orgID, userID, entity, env)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SyncAck), args.Error(1)
}

var _ portssvc.SyncInboxSvc = (*MockSyncInboxService)(nil)

func (suite *APIHandlerTestSuite) TestSyncTimeEntry_DuplicateAcknowledged() {
	offlineID := uuid.NewString()
	env := map[string]any{
		"action":            "clock_in",
		"data":              map[string]any{"ts": "2025-03-10T08:00:00Z"},
		"offline_timestamp": "2025-03-10T08:00:00Z",
		"offline_id":        offlineID,
	}
	suite.inbox.On("Ingest", mock.Anything, suite.orgID, suite.userID, domain.SyncEntityTimeEntry,
		mock.MatchedBy(func(e dto.SyncEnvelope) bool { return e.OfflineID == offlineID })).
		Return(&dto.SyncAck{OfflineID: offlineID, Duplicate: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/sync/time-entries", env)

	suite.Equal(http.StatusOK, w.Code)
	var ack dto.SyncAck
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &ack))
	suite.True(ack.Duplicate)
	suite.Equal(offlineID, ack.OfflineID)
	suite.inbox.AssertExpectations(suite.T())
}

func (suite *APIHandlerTestSuite) TestSyncLead_MissingOfflineID() {
	env := map[string]any{
		"action":            "create",
		"data":              map[string]any{"name": "Roof survey"},
		"offline_timestamp": "2025-03-10T08:00:00Z",
	}

	w := suite.do(http.MethodPost, "/api/v1/sync/leads", env)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.inbox.AssertNotCalled(suite.T(), "Ingest", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
