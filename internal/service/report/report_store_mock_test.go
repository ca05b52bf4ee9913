package report

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

var _ reportStore = &reportStoreMock{}

type reportStoreMock struct {
	CreateFunc        func(ctx context.Context, r *domain.Report) error
	ListFunc          func(ctx context.Context, f domain.ReportFilter) ([]domain.ReportSummary, error)
	GetAttachmentFunc func(ctx context.Context, id uuid.UUID, index int) (*domain.Attachment, error)
	StatsFunc         func(ctx context.Context) (*domain.ReportStats, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			R   *domain.Report
		}
		List []struct {
			Ctx context.Context
			F   domain.ReportFilter
		}
		GetAttachment []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Index int
		}
		Stats []struct {
			Ctx context.Context
		}
	}
	lockCreate        sync.RWMutex
	lockList          sync.RWMutex
	lockGetAttachment sync.RWMutex
	lockStats         sync.RWMutex
}

func (mock *reportStoreMock) Create(ctx context.Context, r *domain.Report) error {
	if mock.CreateFunc == nil {
		panic("reportStoreMock.CreateFunc: method is nil but reportStore.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		R   *domain.Report
	}{Ctx: ctx, R: r}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, r)
}

func (mock *reportStoreMock) CreateCalls() []struct {
	Ctx context.Context
	R   *domain.Report
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *reportStoreMock) List(ctx context.Context, f domain.ReportFilter) ([]domain.ReportSummary, error) {
	if mock.ListFunc == nil {
		panic("reportStoreMock.ListFunc: method is nil but reportStore.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.ReportFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *reportStoreMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.ReportFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *reportStoreMock) GetAttachment(ctx context.Context, id uuid.UUID, index int) (*domain.Attachment, error) {
	if mock.GetAttachmentFunc == nil {
		panic("reportStoreMock.GetAttachmentFunc: method is nil but reportStore.GetAttachment was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Index int
	}{Ctx: ctx, ID: id, Index: index}
	mock.lockGetAttachment.Lock()
	mock.calls.GetAttachment = append(mock.calls.GetAttachment, callInfo)
	mock.lockGetAttachment.Unlock()
	return mock.GetAttachmentFunc(ctx, id, index)
}

func (mock *reportStoreMock) GetAttachmentCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Index int
} {
	mock.lockGetAttachment.RLock()
	calls := mock.calls.GetAttachment
	mock.lockGetAttachment.RUnlock()
	return calls
}

func (mock *reportStoreMock) Stats(ctx context.Context) (*domain.ReportStats, error) {
	if mock.StatsFunc == nil {
		panic("reportStoreMock.StatsFunc: method is nil but reportStore.Stats was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx)
}

func (mock *reportStoreMock) StatsCalls() []struct {
	Ctx context.Context
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}
