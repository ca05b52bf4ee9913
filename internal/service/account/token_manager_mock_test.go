package account

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pollution-reporter/internal/auth"
	"github.com/heartmarshall/pollution-reporter/internal/domain"
)

var _ tokenManager = &tokenManagerMock{}

type tokenManagerMock struct {
	IssueFunc    func(accountID uuid.UUID, role domain.AccountRole) (string, time.Time, error)
	ValidateFunc func(token string) (*auth.Claims, error)

	calls struct {
		Issue []struct {
			AccountID uuid.UUID
			Role      domain.AccountRole
		}
		Validate []struct {
			Token string
		}
	}
	lockIssue    sync.RWMutex
	lockValidate sync.RWMutex
}

func (mock *tokenManagerMock) Issue(accountID uuid.UUID, role domain.AccountRole) (string, time.Time, error) {
	if mock.IssueFunc == nil {
		panic("tokenManagerMock.IssueFunc: method is nil but tokenManager.Issue was just called")
	}
	callInfo := struct {
		AccountID uuid.UUID
		Role      domain.AccountRole
	}{AccountID: accountID, Role: role}
	mock.lockIssue.Lock()
	mock.calls.Issue = append(mock.calls.Issue, callInfo)
	mock.lockIssue.Unlock()
	return mock.IssueFunc(accountID, role)
}

func (mock *tokenManagerMock) IssueCalls() []struct {
	AccountID uuid.UUID
	Role      domain.AccountRole
} {
	mock.lockIssue.RLock()
	calls := mock.calls.Issue
	mock.lockIssue.RUnlock()
	return calls
}

func (mock *tokenManagerMock) Validate(token string) (*auth.Claims, error) {
	if mock.ValidateFunc == nil {
		panic("tokenManagerMock.ValidateFunc: method is nil but tokenManager.Validate was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockValidate.Lock()
	mock.calls.Validate = append(mock.calls.Validate, callInfo)
	mock.lockValidate.Unlock()
	return mock.ValidateFunc(token)
}

func (mock *tokenManagerMock) ValidateCalls() []struct {
	Token string
} {
	mock.lockValidate.RLock()
	calls := mock.calls.Validate
	mock.lockValidate.RUnlock()
	return calls
}
