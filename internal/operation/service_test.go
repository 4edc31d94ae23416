package operation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/database"
	"github.com/MrJamesThe3rd/fintrack/internal/database/databasetest"
	"github.com/MrJamesThe3rd/fintrack/internal/operation"
)

func TestService_Create(t *testing.T) {
	type args struct {
		name string
		typ  operation.Type
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *operation.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{name: "Salary", typ: operation.TypeIncome},
			setupMock: func(m *operation.MockRepository) {
				m.EXPECT().
					CreateOperation(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, op *operation.Operation) error {
						assert.Equal(t, "Salary", op.Name)
						assert.Equal(t, operation.TypeIncome, op.Type)
						return nil
					})
			},
		},
		{
			name:    "InvalidType",
			args:    args{name: "Salary", typ: "bonus"},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "AlreadyExists",
			args: args{name: "Salary", typ: operation.TypeIncome},
			setupMock: func(m *operation.MockRepository) {
				m.EXPECT().CreateOperation(gomock.Any(), gomock.Any()).Return(operation.ErrAlreadyExists)
			},
			wantErr: operation.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := operation.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := operation.NewService(repo, databasetest.Passthrough(ctrl))
			got, err := svc.Create(context.Background(), tt.args.name, tt.args.typ)

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
		setupMock func(m *operation.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *operation.MockRepository) {
				m.EXPECT().GetOperation(gomock.Any(), id).Return(&operation.Operation{ID: id}, nil)
				m.EXPECT().DeleteOperation(gomock.Any(), id).Return(nil)
			},
		},
		{
			name: "NotFound",
			setupMock: func(m *operation.MockRepository) {
				m.EXPECT().GetOperation(gomock.Any(), id).Return(nil, operation.ErrNotFound)
			},
			wantErr: operation.ErrNotFound,
		},
		{
			name: "ReferencedByCategory",
			setupMock: func(m *operation.MockRepository) {
				m.EXPECT().GetOperation(gomock.Any(), id).Return(&operation.Operation{ID: id}, nil)
				m.EXPECT().DeleteOperation(gomock.Any(), id).Return(operation.ErrNotDeletable)
			},
			wantErr: apperr.ErrNotDeletable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := operation.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := operation.NewService(repo, databasetest.Passthrough(ctrl))
			err := svc.Delete(context.Background(), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Delete_RunsInsideTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := operation.NewMockRepository(ctrl)
	tx := database.NewMockTransactor(ctrl)

	txErr := errors.New("begin transaction: connection refused")
	tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).Return(txErr)

	svc := operation.NewService(repo, tx)
	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, txErr)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := operation.NewMockRepository(ctrl)
	repo.EXPECT().ListOperations(gomock.Any()).Return([]*operation.Operation{{Name: "Salary"}}, nil)

	svc := operation.NewService(repo, databasetest.Passthrough(ctrl))
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 1)
}
