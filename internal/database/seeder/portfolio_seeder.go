package seeder

import (
	"context"
	"fmt"

	"portfolio-api/internal/domain/portfolio"
)

type PortfolioInitializer interface {
	InitializePortfolio(ctx context.Context) (portfolio.Portfolio, error)
}

// PortfolioSeeder seeds the portfolio at start-up instead of on first read.
type PortfolioSeeder struct {
	Service PortfolioInitializer
}

func (PortfolioSeeder) Name() string {
	return "portfolio"
}

func (s PortfolioSeeder) Run(ctx context.Context) error {
	if s.Service == nil {
		return fmt.Errorf("nil portfolio service")
	}
	_, err := s.Service.InitializePortfolio(ctx)
	return err
}
