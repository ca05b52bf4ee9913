package report

import (
	"context"
	"sync"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

var _ StatsCache = &statsCacheMock{}

type statsCacheMock struct {
	GetFunc        func(ctx context.Context) (*domain.ReportStats, int64, error)
	SetFunc        func(ctx context.Context, gen int64, stats *domain.ReportStats) error
	InvalidateFunc func(ctx context.Context) error

	calls struct {
		Get []struct {
			Ctx context.Context
		}
		Set []struct {
			Ctx   context.Context
			Gen   int64
			Stats *domain.ReportStats
		}
		Invalidate []struct {
			Ctx context.Context
		}
	}
	lockGet        sync.RWMutex
	lockSet        sync.RWMutex
	lockInvalidate sync.RWMutex
}

func (mock *statsCacheMock) Get(ctx context.Context) (*domain.ReportStats, int64, error) {
	if mock.GetFunc == nil {
		panic("statsCacheMock.GetFunc: method is nil but StatsCache.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx)
}

func (mock *statsCacheMock) GetCalls() []struct {
	Ctx context.Context
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *statsCacheMock) Set(ctx context.Context, gen int64, stats *domain.ReportStats) error {
	if mock.SetFunc == nil {
		panic("statsCacheMock.SetFunc: method is nil but StatsCache.Set was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Gen   int64
		Stats *domain.ReportStats
	}{Ctx: ctx, Gen: gen, Stats: stats}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, gen, stats)
}

func (mock *statsCacheMock) SetCalls() []struct {
	Ctx   context.Context
	Gen   int64
	Stats *domain.ReportStats
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}

func (mock *statsCacheMock) Invalidate(ctx context.Context) error {
	if mock.InvalidateFunc == nil {
		panic("statsCacheMock.InvalidateFunc: method is nil but StatsCache.Invalidate was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockInvalidate.Lock()
	mock.calls.Invalidate = append(mock.calls.Invalidate, callInfo)
	mock.lockInvalidate.Unlock()
	return mock.InvalidateFunc(ctx)
}

func (mock *statsCacheMock) InvalidateCalls() []struct {
	Ctx context.Context
} {
	mock.lockInvalidate.RLock()
	calls := mock.calls.Invalidate
	mock.lockInvalidate.RUnlock()
	return calls
}
