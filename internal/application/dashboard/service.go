package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"equitie-backend/internal/domain"
	"equitie-backend/internal/pkg/currency"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CacheKey holds the last computed Stats as JSON.
const CacheKey = "dashboard:stats"

const recentLimit = 5

type FeeTotals struct {
	Agreed decimal.Decimal `json:"agreed"`
	Due    decimal.Decimal `json:"due"`
	Paid   decimal.Decimal `json:"paid"`
}

type RecentTransaction struct {
	TransactionID    string          `json:"transaction_id"`
	TransactionDate  string          `json:"transaction_date"`
	ProjectName      *string         `json:"project_name"`
	NetCapitalCommit decimal.Decimal `json:"net_capital_commit"`
	Display          string          `json:"net_capital_commit_display"`
}

type Stats struct {
	TotalProjects           int64               `json:"total_projects"`
	ActiveProjects          int64               `json:"active_projects"`
	TotalTransactions       int64               `json:"total_transactions"`
	TotalEntities           int64               `json:"total_entities"`
	CommittedCapital        decimal.Decimal     `json:"committed_capital"`
	CommittedCapitalDisplay string              `json:"committed_capital_display"`
	FeesByStatus            FeeTotals           `json:"fees_by_status"`
	ProjectsByType          map[string]int64    `json:"projects_by_type"`
	RecentTransactions      []RecentTransaction `json:"recent_transactions"`
	GeneratedAt             time.Time           `json:"generated_at"`
}

// Service computes the dashboard summary. Rdb is optional; without it every
// call reads the database.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
	TTL time.Duration
}

// Stats returns the cached summary when fresh, otherwise recomputes and caches it.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if cached := s.cached(ctx); cached != nil {
		return cached, nil
	}
	st, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, st)
	return st, nil
}

// Invalidate drops the cached summary; writers call it after changing data.
func (s *Service) Invalidate(ctx context.Context) {
	if s == nil || s.Rdb == nil {
		return
	}
	if err := s.Rdb.Del(ctx, CacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache invalidate")
	}
}

func (s *Service) cached(ctx context.Context) *Stats {
	if s.Rdb == nil {
		return nil
	}
	raw, err := s.Rdb.Get(ctx, CacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("dashboard: cache read")
		}
		return nil
	}
	var st Stats
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil
	}
	return &st
}

func (s *Service) store(ctx context.Context, st *Stats) {
	if s.Rdb == nil || s.TTL <= 0 {
		return
	}
	b, err := json.Marshal(st)
	if err != nil {
		return
	}
	if err := s.Rdb.Set(ctx, CacheKey, b, s.TTL).Err(); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache write")
	}
}

func (s *Service) compute(ctx context.Context) (*Stats, error) {
	st := &Stats{ProjectsByType: map[string]int64{}, GeneratedAt: time.Now().UTC()}
	var (
		projects []domain.Project
		fees     []domain.Fee
		recent   []domain.Transaction
	)
	// the first failed aggregate cancels the others
	g, gctx := errgroup.WithContext(ctx)
	db := s.DB.WithContext(gctx)
	g.Go(func() error {
		return db.Select("project_type", "project_committed_capital_usd", "status").Find(&projects).Error
	})
	g.Go(func() error {
		return db.Select("fee_status", "amount").Find(&fees).Error
	})
	g.Go(func() error {
		return db.Model(&domain.Transaction{}).Count(&st.TotalTransactions).Error
	})
	g.Go(func() error {
		return db.Model(&domain.Entity{}).Count(&st.TotalEntities).Error
	})
	g.Go(func() error {
		return db.Preload("Project").Order("transaction_date DESC").Limit(recentLimit).Find(&recent).Error
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("dashboard: compute")
		return nil, err
	}

	st.TotalProjects = int64(len(projects))
	for _, p := range projects {
		if p.ProjectCommittedCapitalUSD.Valid {
			st.CommittedCapital = st.CommittedCapital.Add(p.ProjectCommittedCapitalUSD.Decimal)
		}
		if p.Status == domain.ProjectStatusActive {
			st.ActiveProjects++
		}
		st.ProjectsByType[p.ProjectType]++
	}
	st.CommittedCapitalDisplay = currency.Format(st.CommittedCapital, domain.DefaultCurrency)

	for _, f := range fees {
		switch f.FeeStatus {
		case domain.FeeStatusAgreed:
			st.FeesByStatus.Agreed = st.FeesByStatus.Agreed.Add(f.Amount)
		case domain.FeeStatusDue:
			st.FeesByStatus.Due = st.FeesByStatus.Due.Add(f.Amount)
		case domain.FeeStatusPaid:
			st.FeesByStatus.Paid = st.FeesByStatus.Paid.Add(f.Amount)
		}
	}

	st.RecentTransactions = make([]RecentTransaction, len(recent))
	for i, t := range recent {
		rt := RecentTransaction{
			TransactionID:    t.TransactionID,
			TransactionDate:  domain.FormatDate(t.TransactionDate),
			NetCapitalCommit: t.NetCapitalCommit,
			Display:          currency.Format(t.NetCapitalCommit, domain.DefaultCurrency),
		}
		if t.Project != nil {
			name := t.Project.ProjectName
			rt.ProjectName = &name
		}
		st.RecentTransactions[i] = rt
	}
	return st, nil
}
