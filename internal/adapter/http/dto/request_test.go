package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/usecase"
)

func TestRegisterRequest_ToUseCaseInput(t *testing.T) {
	req := &RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Smith",
		Password: "s3cret-pass",
	}

	got := req.ToUseCaseInput()
	want := usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Smith",
		Password: "s3cret-pass",
	}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestLoginRequest_ToUseCaseInput(t *testing.T) {
	req := &LoginRequest{Username: "alice", Password: "s3cret-pass"}

	got := req.ToUseCaseInput()
	want := usecase.AuthenticateInput{Username: "alice", Password: "s3cret-pass"}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestDepositRequest_DecodesStringAndNumericAmounts(t *testing.T) {
	tests := []struct {
		name string
		body string
		want decimal.Decimal
	}{
		{
			name: "string amount",
			body: `{"account_id":"acc-1","amount":"250.50"}`,
			want: decimal.RequireFromString("250.50"),
		},
		{
			name: "numeric amount",
			body: `{"account_id":"acc-1","amount":250.5}`,
			want: decimal.RequireFromString("250.5"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req DepositRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}

			if req.AccountID != "acc-1" || !req.Amount.Equal(tt.want) {
				t.Fatalf("unexpected request: %+v", req)
			}
		})
	}
}

func TestTransferRequest_RejectsMalformedAmount(t *testing.T) {
	body := `{"from_account_id":"acc-1","to_account_number":"111122223333","amount":"not-a-number"}`

	var req TransferRequest
	if err := json.Unmarshal([]byte(body), &req); err == nil {
		t.Fatalf("expected decode error for malformed amount")
	}
}
