package service

import (
	"errors"
	"testing"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

func TestSettleResult(t *testing.T) {
	amount := decimal.NewFromInt(20)

	tests := []struct {
		name        string
		net         decimal.Decimal
		resolveErr  error
		wantStatus  domain.BetStatus
		wantWinloss decimal.Decimal
	}{
		{"positive net wins", decimal.NewFromInt(700), nil, domain.BetStatusWon, decimal.NewFromInt(700)},
		{"negative net loses the stake", amount.Neg(), nil, domain.BetStatusLost, decimal.NewFromInt(-20)},
		{"zero net loses the stake", decimal.Zero, nil, domain.BetStatusLost, decimal.NewFromInt(-20)},
		{"resolver error loses the stake", decimal.Zero, errors.New("bad bet"), domain.BetStatusLost, decimal.NewFromInt(-20)},
		// A resolver must never return a positive result alongside an error,
		// but if it did the error wins and the bet is a loss.
		{"error beats positive net", decimal.NewFromInt(5), errors.New("bad bet"), domain.BetStatusLost, decimal.NewFromInt(-20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, winloss := settleResult(amount, tt.net, tt.resolveErr)
			if status != tt.wantStatus {
				t.Errorf("status = %s, want %s", status, tt.wantStatus)
			}
			if !winloss.Equal(tt.wantWinloss) {
				t.Errorf("winloss = %s, want %s", winloss, tt.wantWinloss)
			}
		})
	}
}
