//go:generate mockgen -source=client.go -destination=mocks/mocks.go -package=mocks Fetcher

package licenses_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"portal/internal/licenses"
	"portal/internal/licenses/metrics"
	"portal/internal/licenses/mocks"
	"portal/internal/notices"
	"portal/internal/partner"
	"portal/internal/platform/wpcom"
	"portal/internal/state"
	audit "portal/pkg/platform/audit"
	"portal/pkg/platform/audit/store/memory"
	"portal/pkg/requestcontext"
)

type recordingDispatcher struct {
	mu      sync.Mutex
	actions []state.Action
}

func (r *recordingDispatcher) Dispatch(_ context.Context, a state.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
}

func (r *recordingDispatcher) Actions() []state.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]state.Action(nil), r.actions...)
}

type HandlerSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	fetcher    *mocks.MockFetcher
	metrics    *metrics.Metrics
	auditStore *memory.InMemoryStore
	handler    *licenses.Handler
	dispatcher *recordingDispatcher
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.fetcher = mocks.NewMockFetcher(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.auditStore = memory.NewInMemoryStore()
	s.dispatcher = &recordingDispatcher{}

	h, err := licenses.NewHandler(s.fetcher,
		licenses.WithMetrics(s.metrics),
		licenses.WithAuditor(auditAdapter{s.auditStore}),
	)
	s.Require().NoError(err)
	s.handler = h
}

type auditAdapter struct{ store *memory.InMemoryStore }

func (a auditAdapter) Emit(ctx context.Context, e audit.Event) error {
	return a.store.Append(ctx, e)
}

func (s *HandlerSuite) auditActions(subject string) []string {
	events, err := s.auditStore.ListBySubject(context.Background(), subject)
	s.Require().NoError(err)
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Action)
	}
	return out
}

func (s *HandlerSuite) TestNewHandlerRequiresFetcher() {
	_, err := licenses.NewHandler(nil)
	s.Error(err)
}

func (s *HandlerSuite) TestSuccessfulFetch() {
	s.Run("dispatches one normalized receipt", func() {
		records := []licenses.APILicense{
			{LicenseID: 1, LicenseKey: "a", AttachedAt: "2021-01-01"},
			{LicenseID: 2, LicenseKey: "b"},
		}
		s.fetcher.EXPECT().FetchLicenses(gomock.Any(), partner.KeyID(5)).Return(records, nil)

		ctx := requestcontext.WithRequestID(context.Background(), "req-1")
		s.handler.Handle(ctx, licenses.Request(5), s.dispatcher)
		s.handler.Wait()

		actions := s.dispatcher.Actions()
		s.Require().Len(actions, 1)
		s.Equal(licenses.Receive(licenses.Normalize(records)), actions[0])

		s.Equal([]string{
			string(audit.EventLicensesRequested),
			string(audit.EventLicensesReceived),
		}, s.auditActions("key:5"))

		s.Equal(1.0, testutil.ToFloat64(s.metrics.FetchTotal.WithLabelValues(metrics.OutcomeSuccess, "")))
		s.Equal(2.0, testutil.ToFloat64(s.metrics.LastCount))
	})
}

func (s *HandlerSuite) TestFailedFetch() {
	s.Run("dispatches an error notice then the failure", func() {
		apiErr := &wpcom.APIError{Category: wpcom.ErrorOutage, StatusCode: 503, Message: "down"}
		s.fetcher.EXPECT().FetchLicenses(gomock.Any(), partner.NoKey).Return(nil, apiErr)

		s.handler.Handle(context.Background(), licenses.Request(partner.NoKey), s.dispatcher)
		s.handler.Wait()

		actions := s.dispatcher.Actions()
		s.Require().Len(actions, 2)

		create, ok := actions[0].(notices.CreateAction)
		s.Require().True(ok, "first action is a notice")
		s.Equal(notices.StatusError, create.Notice.Status)
		s.Equal(licenses.FetchErrorMessage, create.Notice.Text)

		failure, ok := actions[1].(licenses.FailureAction)
		s.Require().True(ok, "second action is the failure receipt")
		s.True(errors.Is(failure.Err, apiErr))

		s.Equal([]string{
			string(audit.EventLicensesRequested),
			string(audit.EventLicensesRequestFailed),
		}, s.auditActions("key:none"))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.FetchTotal.WithLabelValues(metrics.OutcomeFailure, string(wpcom.ErrorOutage))))
	})
}

func (s *HandlerSuite) TestOneFetchPerIntent() {
	s.fetcher.EXPECT().FetchLicenses(gomock.Any(), partner.KeyID(1)).Return(nil, nil).Times(3)

	for range 3 {
		s.handler.Handle(context.Background(), licenses.Request(1), s.dispatcher)
	}
	s.handler.Wait()

	s.Len(s.dispatcher.Actions(), 3)
}

func (s *HandlerSuite) TestIgnoresOtherActions() {
	s.handler.Handle(context.Background(), licenses.Receive(nil), s.dispatcher)
	s.handler.Handle(context.Background(), notices.Info("hi"), s.dispatcher)
	s.handler.Wait()

	s.Empty(s.dispatcher.Actions())
}

func (s *HandlerSuite) TestFetchSurvivesCanceledRequest() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.fetcher.EXPECT().FetchLicenses(gomock.Any(), partner.KeyID(9)).
		DoAndReturn(func(ctx context.Context, _ partner.KeyID) ([]licenses.APILicense, error) {
			s.NoError(ctx.Err())
			return []licenses.APILicense{}, nil
		})

	s.handler.Handle(ctx, licenses.Request(9), s.dispatcher)
	s.handler.Wait()
	s.Len(s.dispatcher.Actions(), 1)
}
