package currency_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/currency"
	"github.com/MrJamesThe3rd/fintrack/internal/database/databasetest"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params currency.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *currency.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{params: currency.CreateParams{Code: "EUR", Name: "Euro", Symbol: "€"}},
			setupMock: func(m *currency.MockRepository) {
				m.EXPECT().
					CreateCurrency(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *currency.Currency) error {
						assert.Equal(t, "EUR", c.Code)
						return nil
					})
			},
		},
		{
			name:    "InvalidCode",
			args:    args{params: currency.CreateParams{Code: "euro", Name: "Euro", Symbol: "€"}},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "AlreadyExists",
			args: args{params: currency.CreateParams{Code: "EUR", Name: "Euro", Symbol: "€"}},
			setupMock: func(m *currency.MockRepository) {
				m.EXPECT().CreateCurrency(gomock.Any(), gomock.Any()).Return(currency.ErrAlreadyExists)
			},
			wantErr: currency.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := currency.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := currency.NewService(repo, databasetest.Passthrough(ctrl))
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *currency.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *currency.MockRepository) {
				m.EXPECT().GetCurrency(gomock.Any(), id).Return(&currency.Currency{ID: id}, nil)
				m.EXPECT().DeleteCurrency(gomock.Any(), id).Return(nil)
			},
		},
		{
			name: "NotFound",
			setupMock: func(m *currency.MockRepository) {
				m.EXPECT().GetCurrency(gomock.Any(), id).Return(nil, currency.ErrNotFound)
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name: "StillReferenced",
			setupMock: func(m *currency.MockRepository) {
				m.EXPECT().GetCurrency(gomock.Any(), id).Return(&currency.Currency{ID: id}, nil)
				m.EXPECT().DeleteCurrency(gomock.Any(), id).Return(currency.ErrNotDeletable)
			},
			wantErr: currency.ErrNotDeletable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := currency.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := currency.NewService(repo, databasetest.Passthrough(ctrl))
			err := svc.Delete(context.Background(), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := currency.NewMockRepository(ctrl)
	repo.EXPECT().ListCurrencies(gomock.Any()).Return([]*currency.Currency{{Code: "EUR"}, {Code: "USD"}}, nil)

	svc := currency.NewService(repo, databasetest.Passthrough(ctrl))
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_List_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := currency.NewMockRepository(ctrl)
	repo.EXPECT().ListCurrencies(gomock.Any()).Return(nil, errors.New("db error"))

	svc := currency.NewService(repo, databasetest.Passthrough(ctrl))
	_, err := svc.List(context.Background())

	assert.Error(t, err)
}
