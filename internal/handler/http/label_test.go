package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/rookgm/cargolabel/internal/handler/http/mocks"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/rookgm/cargolabel/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func testSummary() models.BatchSummary {
	return models.BatchSummary{
		Kind:          models.BatchCreate,
		Requested:     3,
		Eligible:      2,
		Skipped:       1,
		Total:         decimal.RequireFromString("97.40"),
		BalanceBefore: decimal.NewFromInt(100),
		BalanceAfter:  decimal.RequireFromString("2.60"),
		Affordable:    true,
	}
}

func TestLabelHandler_PreviewLabels(t *testing.T) {
	tests := []struct {
		name           string
		token          *models.TokenPayload
		body           string
		setup          func(t *testing.T) *mocks.MockLabelService
		wantStatusCode int
		wantBody       *models.BatchSummary
	}{
		{
			name:  "valid_request_return_200",
			token: &models.TokenPayload{OperatorID: 1},
			body:  `{"order_ids":["A-1","A-2","A-3"]}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().PlanLabels(gomock.Any(), uint64(1), []string{"A-1", "A-2", "A-3"}).Return(testSummary(), nil)
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody: func() *models.BatchSummary {
				s := testSummary()
				return &s
			}(),
		},
		{
			name:  "all_labeled_return_422",
			token: &models.TokenPayload{OperatorID: 1},
			body:  `{"order_ids":["A-1"]}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().PlanLabels(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.BatchSummary{}, models.ErrAllAlreadyLabeled)
				return svcMock
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:  "bad_json_return_400",
			token: &models.TokenPayload{OperatorID: 1},
			body:  `{"order_ids":`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().PlanLabels(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "unauthorized_request_return_401",
			body: `{"order_ids":["A-1"]}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().PlanLabels(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/labels/preview", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)
			ctx := withOperatorSession(req.Context(), tt.token)

			handler := NewLabelHandler(st)
			h := handler.PreviewLabels()
			h(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			if tt.wantBody != nil {
				var got models.BatchSummary
				require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
				if diff := cmp.Diff(*tt.wantBody, got, decimalEqual); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

// declineWith makes the mocked batch consult the handler's confirmation like the service does
func declineWith(summary models.BatchSummary) func(context.Context, service.CreateLabelsRequest) (*service.CreateLabelsResult, error) {
	return func(ctx context.Context, req service.CreateLabelsRequest) (*service.CreateLabelsResult, error) {
		ok, err := req.Confirm.Confirm(ctx, summary)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, models.ErrDeclined
		}
		return &service.CreateLabelsResult{Success: true, SuccessCount: summary.Eligible}, nil
	}
}

func TestLabelHandler_CreateLabels(t *testing.T) {
	tests := []struct {
		name           string
		token          *models.TokenPayload
		body           string
		setup          func(t *testing.T) *mocks.MockLabelService
		wantStatusCode int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:  "confirmed_batch_return_200",
			token: &models.TokenPayload{OperatorID: 1},
			body:  `{"order_ids":["A-1","A-2"],"confirm":true}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().CreateLabels(gomock.Any(), gomock.Any()).DoAndReturn(declineWith(testSummary()))
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got service.CreateLabelsResult
				require.NoError(t, json.Unmarshal(body, &got))
				assert.True(t, got.Success)
				assert.Equal(t, 2, got.SuccessCount)
			},
		},
		{
			name:  "unconfirmed_batch_return_409_with_summary",
			token: &models.TokenPayload{OperatorID: 1},
			body:  `{"order_ids":["A-1","A-2"]}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().CreateLabels(gomock.Any(), gomock.Any()).DoAndReturn(declineWith(testSummary()))
				return svcMock
			},
			wantStatusCode: http.StatusConflict,
			check: func(t *testing.T, body []byte) {
				var got models.BatchSummary
				require.NoError(t, json.Unmarshal(body, &got))
				if diff := cmp.Diff(testSummary(), got, decimalEqual); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:  "insufficient_funds_return_402",
			token: &models.TokenPayload{OperatorID: 1},
			body:  `{"order_ids":["A-1"],"confirm":true}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().CreateLabels(gomock.Any(), gomock.Any()).Return(nil, &models.InsufficientFundsError{
					Balance:  decimal.NewFromInt(10),
					Required: decimal.RequireFromString("42.50"),
				})
				return svcMock
			},
			wantStatusCode: http.StatusPaymentRequired,
			check: func(t *testing.T, body []byte) {
				var got errorResponse
				require.NoError(t, json.Unmarshal(body, &got))
				require.NotNil(t, got.Balance)
				require.NotNil(t, got.Required)
				assert.Equal(t, "10", got.Balance.String())
				assert.Equal(t, "42.5", got.Required.String())
			},
		},
		{
			name:  "batch_in_progress_return_423",
			token: &models.TokenPayload{OperatorID: 1},
			body:  `{"order_ids":["A-1"],"confirm":true}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().CreateLabels(gomock.Any(), gomock.Any()).Return(nil, models.ErrBatchInProgress)
				return svcMock
			},
			wantStatusCode: http.StatusLocked,
		},
		{
			name:  "no_sender_return_422",
			token: &models.TokenPayload{OperatorID: 1},
			body:  `{"order_ids":["A-1"],"confirm":true}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().CreateLabels(gomock.Any(), gomock.Any()).Return(nil, models.ErrNoSenderAddress)
				return svcMock
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:  "empty_selection_return_400",
			token: &models.TokenPayload{OperatorID: 1},
			body:  `{"order_ids":[],"confirm":true}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().CreateLabels(gomock.Any(), gomock.Any()).Return(nil, models.ErrNoOrdersSelected)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:  "unsettled_balance_return_500_with_result",
			token: &models.TokenPayload{OperatorID: 1},
			body:  `{"order_ids":["A-1"],"confirm":true}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().CreateLabels(gomock.Any(), gomock.Any()).Return(&service.CreateLabelsResult{
					Success:      true,
					SuccessCount: 1,
					TotalSpent:   decimal.RequireFromString("42.50"),
				}, models.ErrBalanceNotSettled)
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
			check: func(t *testing.T, body []byte) {
				var got service.CreateLabelsResult
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, 1, got.SuccessCount)
			},
		},
		{
			name:  "internal_error_return_500",
			token: &models.TokenPayload{OperatorID: 1},
			body:  `{"order_ids":["A-1"],"confirm":true}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().CreateLabels(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/labels", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)
			ctx := withOperatorSession(req.Context(), tt.token)

			handler := NewLabelHandler(st)
			h := handler.CreateLabels()
			h(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			if tt.check != nil {
				tt.check(t, w.Body.Bytes())
			}
		})
	}
}

func TestLabelHandler_CancelLabels(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(t *testing.T) *mocks.MockLabelService
		wantStatusCode int
	}{
		{
			name: "confirmed_batch_return_200",
			body: `{"order_ids":["A-1"],"confirm":true,"note":"damaged"}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().CancelLabels(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req service.CancelLabelsRequest) (*service.CancelLabelsResult, error) {
						assert.Equal(t, "damaged", req.Note)
						assert.Equal(t, uint64(1), req.OperatorID)
						return &service.CancelLabelsResult{Success: true, CanceledCount: 1}, nil
					})
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "too_many_orders_return_422",
			body: `{"order_ids":["1","2","3","4","5","6","7","8","9","10","11"],"confirm":true}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().CancelLabels(gomock.Any(), gomock.Any()).Return(nil, models.ErrCancelBatchTooLarge)
				return svcMock
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name: "nothing_to_cancel_return_422",
			body: `{"order_ids":["A-1"],"confirm":true}`,
			setup: func(t *testing.T) *mocks.MockLabelService {
				ctrl := gomock.NewController(t)

				svcMock := mocks.NewMockLabelService(ctrl)
				svcMock.EXPECT().CancelLabels(gomock.Any(), gomock.Any()).Return(nil, models.ErrNothingToCancel)
				return svcMock
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/labels/cancel", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)
			ctx := withOperatorSession(req.Context(), &models.TokenPayload{OperatorID: 1})

			handler := NewLabelHandler(st)
			h := handler.CancelLabels()
			h(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestLabelHandler_CancelOrderLabel(t *testing.T) {
	summary := models.BatchSummary{
		Kind:          models.BatchCancel,
		Requested:     1,
		Eligible:      1,
		Total:         decimal.RequireFromString("42.50"),
		BalanceBefore: decimal.NewFromInt(10),
		BalanceAfter:  decimal.RequireFromString("52.50"),
		Affordable:    true,
	}
	cancelWith := func(t *testing.T) func(context.Context, service.CancelLabelsRequest) (*service.CancelLabelsResult, error) {
		return func(ctx context.Context, req service.CancelLabelsRequest) (*service.CancelLabelsResult, error) {
			assert.Equal(t, []string{"A-7"}, req.OrderIDs)
			ok, err := req.Confirm.Confirm(ctx, summary)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, models.ErrDeclined
			}
			return &service.CancelLabelsResult{Success: true, CanceledCount: 1, TotalRefund: summary.Total}, nil
		}
	}

	tests := []struct {
		name           string
		body           string
		wantStatusCode int
	}{
		{name: "empty_body_is_unconfirmed_return_409", body: "", wantStatusCode: http.StatusConflict},
		{name: "confirmed_return_200", body: `{"confirm":true}`, wantStatusCode: http.StatusOK},
		{name: "bad_json_return_400", body: `{"confirm":`, wantStatusCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/orders/A-7/label/cancel", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}
			req = withURLParam(req, "id", "A-7")

			ctrl := gomock.NewController(t)
			svcMock := mocks.NewMockLabelService(ctrl)
			svcMock.EXPECT().CancelLabel(gomock.Any(), gomock.Any()).DoAndReturn(cancelWith(t)).MaxTimes(1)

			w := httptest.NewRecorder()
			ctx := withOperatorSession(req.Context(), &models.TokenPayload{OperatorID: 1})

			handler := NewLabelHandler(svcMock)
			h := handler.CancelOrderLabel()
			h(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}
