package cancel_hold

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeHoldRepo struct {
	calls []call
	err   error
}

type call struct {
	id    int64
	token string
}

func (f *fakeHoldRepo) DeleteByIDAndToken(_ context.Context, id int64, token string) error {
	f.calls = append(f.calls, call{id: id, token: token})
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_ReleasesHold(t *testing.T) {
	repo := &fakeHoldRepo{}
	uc := NewUseCase(repo, nopLogger{})

	err := uc.Execute(context.Background(), &Request{HoldID: 42, SessionToken: "secret"})
	assert.NoError(t, err)
	assert.Equal(t, []call{{id: 42, token: "secret"}}, repo.calls)
}

func TestExecute_IsIdempotent(t *testing.T) {
	// Репозиторий не возвращает ошибку для уже удалённого hold'а,
	// повторная отмена выглядит так же успешной
	repo := &fakeHoldRepo{}
	uc := NewUseCase(repo, nopLogger{})

	req := &Request{HoldID: 42, SessionToken: "secret"}
	assert.NoError(t, uc.Execute(context.Background(), req))
	assert.NoError(t, uc.Execute(context.Background(), req))
	assert.Len(t, repo.calls, 2)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeHoldRepo{}, nopLogger{})

	err := uc.Execute(context.Background(), &Request{HoldID: 0, SessionToken: "secret"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = uc.Execute(context.Background(), &Request{HoldID: 42})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeHoldRepo{err: errors.New("connection refused")}
	uc := NewUseCase(repo, nopLogger{})

	err := uc.Execute(context.Background(), &Request{HoldID: 42, SessionToken: "secret"})
	assert.ErrorIs(t, err, ErrInternal)
}
