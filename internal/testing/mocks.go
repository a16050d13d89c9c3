package testing

import (
	"context"

	"github.com/aristath/tactical/internal/clients/alphavantage"
	"github.com/stretchr/testify/mock"
)

// MockDataSource is a testify mock of the Alpha Vantage lookups used by the
// metrics fetcher.
type MockDataSource struct {
	mock.Mock
}

// GetCompanyOverview returns the configured overview
func (m *MockDataSource) GetCompanyOverview(ctx context.Context, symbol string) (*alphavantage.CompanyOverview, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*alphavantage.CompanyOverview), args.Error(1)
}

// GetDailyPrices returns the configured daily bars
func (m *MockDataSource) GetDailyPrices(ctx context.Context, symbol string) ([]alphavantage.DailyPrice, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]alphavantage.DailyPrice), args.Error(1)
}
