package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
	"github.com/heartmarshall/pollution-reporter/internal/service/report"
)

var _ reportService = &reportServiceMock{}

type reportServiceMock struct {
	SubmitFunc        func(ctx context.Context, input report.SubmitInput) (*domain.Report, error)
	ListFunc          func(ctx context.Context, input report.ListInput) ([]domain.ReportSummary, error)
	GetAttachmentFunc func(ctx context.Context, id uuid.UUID, index int) (*domain.Attachment, error)
	StatsFunc         func(ctx context.Context) (*domain.ReportStats, error)

	calls struct {
		Submit []struct {
			Ctx   context.Context
			Input report.SubmitInput
		}
		List []struct {
			Ctx   context.Context
			Input report.ListInput
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
	lockSubmit        sync.RWMutex
	lockList          sync.RWMutex
	lockGetAttachment sync.RWMutex
	lockStats         sync.RWMutex
}

func (mock *reportServiceMock) Submit(ctx context.Context, input report.SubmitInput) (*domain.Report, error) {
	if mock.SubmitFunc == nil {
		panic("reportServiceMock.SubmitFunc: method is nil but reportService.Submit was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input report.SubmitInput
	}{Ctx: ctx, Input: input}
	mock.lockSubmit.Lock()
	mock.calls.Submit = append(mock.calls.Submit, callInfo)
	mock.lockSubmit.Unlock()
	return mock.SubmitFunc(ctx, input)
}

func (mock *reportServiceMock) SubmitCalls() []struct {
	Ctx   context.Context
	Input report.SubmitInput
} {
	mock.lockSubmit.RLock()
	calls := mock.calls.Submit
	mock.lockSubmit.RUnlock()
	return calls
}

func (mock *reportServiceMock) List(ctx context.Context, input report.ListInput) ([]domain.ReportSummary, error) {
	if mock.ListFunc == nil {
		panic("reportServiceMock.ListFunc: method is nil but reportService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input report.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *reportServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input report.ListInput
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *reportServiceMock) GetAttachment(ctx context.Context, id uuid.UUID, index int) (*domain.Attachment, error) {
	if mock.GetAttachmentFunc == nil {
		panic("reportServiceMock.GetAttachmentFunc: method is nil but reportService.GetAttachment was just called")
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

func (mock *reportServiceMock) GetAttachmentCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Index int
} {
	mock.lockGetAttachment.RLock()
	calls := mock.calls.GetAttachment
	mock.lockGetAttachment.RUnlock()
	return calls
}

func (mock *reportServiceMock) Stats(ctx context.Context) (*domain.ReportStats, error) {
	if mock.StatsFunc == nil {
		panic("reportServiceMock.StatsFunc: method is nil but reportService.Stats was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx)
}

func (mock *reportServiceMock) StatsCalls() []struct {
	Ctx context.Context
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}
