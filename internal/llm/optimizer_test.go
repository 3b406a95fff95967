package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirelle/gloss/internal/common"
	"github.com/mirelle/gloss/internal/model"
	"github.com/mirelle/gloss/internal/service"
)

// mockClient counts calls and returns canned responses.
type mockClient struct {
	proposal      ProposalResponse
	audit         AuditResponse
	err           error
	failuresLeft  int
	proposalCalls int
	auditCalls    int
}

func (m *mockClient) ProposeStructure(_ context.Context, _ string) (ProposalResponse, error) {
	m.proposalCalls++
	if m.failuresLeft > 0 {
		m.failuresLeft--
		return ProposalResponse{}, &common.RetryableError{Err: errors.New("transient"), Retryable: true}
	}
	if m.err != nil {
		return ProposalResponse{}, m.err
	}
	return m.proposal, nil
}

func (m *mockClient) AuditPricelist(_ context.Context, _ string) (AuditResponse, error) {
	m.auditCalls++
	if m.err != nil {
		return AuditResponse{}, m.err
	}
	return m.audit, nil
}

func newTestOptimizer(client Client) *Optimizer {
	return &Optimizer{
		client:  client,
		cache:   newResponseCache(1 * time.Hour),
		limiter: newRateLimiter(600),
		retryOpts: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 1 * time.Millisecond,
			MaxDelay:     10 * time.Millisecond,
			Multiplier:   2.0,
		},
	}
}

func testPricelist() *model.Pricelist {
	return &model.Pricelist{
		SalonName: "Studio Bella",
		Categories: []model.Category{
			{
				Name: "Usługi",
				Services: []model.Service{
					{Name: "Strzyżenie damskie", Price: "od 120 zł"},
					{Name: "Baleyage", Price: "od 250 zł"},
				},
			},
		},
	}
}

func TestOptimizerProposeStructure(t *testing.T) {
	mock := &mockClient{
		proposal: ProposalResponse{
			Categories: []model.Category{{Name: "Koloryzacja"}},
			Changes: []model.ChangeRecord{
				{Type: model.ChangeSplitCategory, Description: "Wydzielono koloryzację"},
			},
		},
	}
	opt := newTestOptimizer(mock)
	defer opt.Close()

	resp, err := opt.ProposeStructure(context.Background(), testPricelist())
	require.NoError(t, err)
	assert.Equal(t, "Koloryzacja", resp.Categories[0].Name)
	assert.Len(t, resp.Changes, 1)
	assert.Equal(t, 1, mock.proposalCalls)
}

func TestOptimizerCachesByPrompt(t *testing.T) {
	mock := &mockClient{
		proposal: ProposalResponse{Categories: []model.Category{{Name: "Koloryzacja"}}},
	}
	opt := newTestOptimizer(mock)
	defer opt.Close()

	pricelist := testPricelist()

	_, err := opt.ProposeStructure(context.Background(), pricelist)
	require.NoError(t, err)
	_, err = opt.ProposeStructure(context.Background(), pricelist)
	require.NoError(t, err)

	assert.Equal(t, 1, mock.proposalCalls, "second run hits the cache")

	// A different pricelist misses the cache.
	other := testPricelist()
	other.Categories[0].Services = other.Categories[0].Services[:1]
	_, err = opt.ProposeStructure(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, 2, mock.proposalCalls)
}

func TestOptimizerRetriesTransientFailures(t *testing.T) {
	mock := &mockClient{
		failuresLeft: 2,
		proposal:     ProposalResponse{Categories: []model.Category{{Name: "Koloryzacja"}}},
	}
	opt := newTestOptimizer(mock)
	defer opt.Close()

	_, err := opt.ProposeStructure(context.Background(), testPricelist())
	require.NoError(t, err)
	assert.Equal(t, 3, mock.proposalCalls)
}

func TestOptimizerGivesUpAfterMaxAttempts(t *testing.T) {
	mock := &mockClient{failuresLeft: 10}
	opt := newTestOptimizer(mock)
	defer opt.Close()

	_, err := opt.ProposeStructure(context.Background(), testPricelist())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrOptimizerFailure)
	assert.Equal(t, 3, mock.proposalCalls)
}

func TestOptimizerRejectsEmptyPricelist(t *testing.T) {
	mock := &mockClient{}
	opt := newTestOptimizer(mock)
	defer opt.Close()

	_, err := opt.ProposeStructure(context.Background(), &model.Pricelist{SalonName: "Pusty"})
	assert.ErrorIs(t, err, common.ErrEmptyPricelist)
	assert.Zero(t, mock.proposalCalls)

	_, err = opt.AuditPricelist(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrEmptyPricelist)
}

func TestOptimizerAudit(t *testing.T) {
	mock := &mockClient{
		audit: AuditResponse{
			Summary: "Opisy wymagają pracy",
			Findings: []model.AuditFinding{
				{Category: "Usługi", Service: "Baleyage", Note: "Brak opisu"},
			},
		},
	}
	opt := newTestOptimizer(mock)
	defer opt.Close()

	resp, err := opt.AuditPricelist(context.Background(), testPricelist())
	require.NoError(t, err)
	assert.Equal(t, "Opisy wymagają pracy", resp.Summary)
	require.Len(t, resp.Findings, 1)

	_, err = opt.AuditPricelist(context.Background(), testPricelist())
	require.NoError(t, err)
	assert.Equal(t, 1, mock.auditCalls, "audit responses are cached too")
}

func TestNewOptimizerUnknownProvider(t *testing.T) {
	_, err := NewOptimizer(Config{Provider: "gemini", APIKey: "key"})
	assert.Error(t, err)
}

func TestNewOptimizerRequiresAPIKey(t *testing.T) {
	_, err := NewOptimizer(Config{Provider: "anthropic"})
	assert.Error(t, err)

	_, err = NewOptimizer(Config{Provider: "openai"})
	assert.Error(t, err)
}
