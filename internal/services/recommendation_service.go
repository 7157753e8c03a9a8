package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"clinicBack/internal/models"
)

// TreatmentFinder is the slice of the treatment repository the resolver
// needs.
type TreatmentFinder interface {
	GetTreatmentsByIDs(ctx context.Context, ids []int) ([]models.Treatment, error)
	GetTreatmentsFlatByIDs(ctx context.Context, ids []int) ([]models.Treatment, error)
}

type CategoryRelationFinder interface {
	TreatmentIDsForCategories(ctx context.Context, categoryIDs []int) ([]int, error)
}

// RecommendationService resolves a patient's selected improvement categories
// to the treatments linked to any of them (OR semantics).
type RecommendationService struct {
	RelationRepo  CategoryRelationFinder
	TreatmentRepo TreatmentFinder
	Cache         *redis.Client // optional; nil disables caching
	CacheTTL      time.Duration
	ErrorLog      *log.Logger
}

func (s *RecommendationService) Resolve(ctx context.Context, categoryIDs []int) ([]models.Treatment, error) {
	// Empty selection is a precondition failure, rejected before any store
	// or cache access; the kiosk redirects back to the selection screen.
	if len(categoryIDs) == 0 {
		return nil, models.ErrNoCategoriesSelected
	}

	key := recommendationCacheKey(categoryIDs)
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, key).Bytes(); err == nil {
			var cached []models.Treatment
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	treatmentIDs, err := s.RelationRepo.TreatmentIDsForCategories(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	// No linked treatments is an empty-state screen, not an error.
	if len(treatmentIDs) == 0 {
		return []models.Treatment{}, nil
	}

	treatments, err := s.TreatmentRepo.GetTreatmentsByIDs(ctx, treatmentIDs)
	if err != nil {
		// Nested price fetch failed; degrade to flat treatment rows so the
		// list still renders.
		s.logWarn("nested treatment fetch failed, falling back to flat rows: %v", err)
		treatments, err = s.TreatmentRepo.GetTreatmentsFlatByIDs(ctx, treatmentIDs)
		if err != nil {
			return nil, err
		}
	}

	for i := range treatments {
		models.SortPriceOptions(treatments[i].PriceOptions)
	}

	if s.Cache != nil {
		if data, err := json.Marshal(treatments); err == nil {
			s.Cache.Set(ctx, key, data, s.ttl())
		}
	}

	return treatments, nil
}

// InvalidateCache drops every cached recommendation list. Called after any
// admin write that can change what the kiosk recommends. Cache errors are
// swallowed; the cache repopulates on the next resolve.
func (s *RecommendationService) InvalidateCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}

	iter := s.Cache.Scan(ctx, 0, "reco:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logWarn("recommendation cache scan failed: %v", err)
		return
	}
	if len(keys) > 0 {
		s.Cache.Del(ctx, keys...)
	}
}

func (s *RecommendationService) ttl() time.Duration {
	if s.CacheTTL > 0 {
		return s.CacheTTL
	}
	return time.Minute
}

func (s *RecommendationService) logWarn(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
	}
}

// recommendationCacheKey canonicalizes the selection (sorted, deduplicated)
// so {c1,c2} and {c2,c1} share a cache entry.
func recommendationCacheKey(categoryIDs []int) string {
	ids := make([]int, 0, len(categoryIDs))
	seen := make(map[int]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "reco:" + strings.Join(parts, ",")
}
