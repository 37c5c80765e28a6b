package storage

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"charizard.ecotrip.dev/internal/emissions"
	"charizard.ecotrip.dev/internal/models"
)

type apiKeyRecord struct {
	keyHash []byte
	appName string
}

// MemoryStore is the in-memory Store backend. All state is guarded by a
// single RWMutex; critical sections are short and never block on I/O. The
// summary cache locks itself, so recomputation happens outside the store
// lock and relies on the cache's generation marker for consistency.
type MemoryStore struct {
	mu      sync.RWMutex
	events  map[string][]models.TransitEvent
	apiKeys map[string]apiKeyRecord
	factors map[string]models.EmissionFactor
	logs    []models.APILogRecord

	cache *SummaryCache
	calc  *emissions.Calculator
}

// NewMemoryStore creates an empty in-memory store. The store is its own
// factor source: resolver lookups hit the persisted factor map first and
// fall back to the built-in tables.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		events:  make(map[string][]models.TransitEvent),
		apiKeys: make(map[string]apiKeyRecord),
		factors: make(map[string]models.EmissionFactor),
		cache:   NewSummaryCache(),
	}
	s.calc = emissions.NewCalculator(emissions.NewResolver(s))
	return s
}

func (s *MemoryStore) SetAPIKey(ctx context.Context, userID, key, appName string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKeys[userID] = apiKeyRecord{keyHash: hash, appName: appName}
	return nil
}

func (s *MemoryStore) CheckAPIKey(ctx context.Context, userID, key string) (bool, error) {
	s.mu.RLock()
	rec, ok := s.apiKeys[userID]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword(rec.keyHash, []byte(key)) == nil, nil
}

func (s *MemoryStore) AddEvent(ctx context.Context, ev models.TransitEvent) error {
	s.mu.Lock()
	s.events[ev.UserID] = append(s.events[ev.UserID], ev)
	s.mu.Unlock()

	s.cache.Invalidate(ev.UserID)
	return nil
}

func (s *MemoryStore) GetEvents(ctx context.Context, userID string) ([]models.TransitEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]models.TransitEvent, len(s.events[userID]))
	copy(events, s.events[userID])
	return events, nil
}

func (s *MemoryStore) Summarize(ctx context.Context, userID string) (models.FootprintSummary, error) {
	cached, generation, ok := s.cache.Get(userID)
	if ok {
		return cached, nil
	}

	events, err := s.GetEvents(ctx, userID)
	if err != nil {
		return models.FootprintSummary{}, err
	}

	summary, err := SummarizeEvents(ctx, s.calc, events, time.Now().Unix())
	if err != nil {
		return models.FootprintSummary{}, err
	}

	s.cache.Put(userID, summary, generation)
	return summary, nil
}

func (s *MemoryStore) GlobalAverageWeekly(ctx context.Context) (float64, error) {
	weekStart := time.Now().Unix() - WeekWindowSeconds

	s.mu.RLock()
	byUser := make(map[string][]models.TransitEvent, len(s.events))
	for userID, events := range s.events {
		byUser[userID] = append([]models.TransitEvent(nil), events...)
	}
	s.mu.RUnlock()

	var total float64
	var activeUsers int
	for _, events := range byUser {
		var userWeek float64
		active := false
		for _, ev := range events {
			if ev.TS < weekStart {
				continue
			}
			kg, err := s.calc.CalculateEvent(ctx, ev)
			if err != nil {
				return 0, err
			}
			userWeek += kg
			active = true
		}
		// Users with no qualifying events are excluded from the denominator,
		// not counted as zero.
		if active {
			total += userWeek
			activeUsers++
		}
	}

	if activeUsers == 0 {
		return 0, nil
	}
	return total / float64(activeUsers), nil
}

func (s *MemoryStore) StoreEmissionFactor(ctx context.Context, factor models.EmissionFactor) error {
	s.mu.Lock()
	s.factors[factor.Key()] = factor
	s.mu.Unlock()

	// Summaries computed against the previous factor set are no longer valid.
	s.cache.Clear()
	return nil
}

func (s *MemoryStore) GetEmissionFactor(ctx context.Context, mode, fuelType, vehicleSize string) (*models.EmissionFactor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	factor, ok := s.factors[models.FactorKey(mode, fuelType, vehicleSize)]
	if !ok {
		return nil, nil
	}
	return &factor, nil
}

func (s *MemoryStore) GetAllEmissionFactors(ctx context.Context) ([]models.EmissionFactor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	factors := make([]models.EmissionFactor, 0, len(s.factors))
	for _, factor := range s.factors {
		factors = append(factors, factor)
	}
	return factors, nil
}

func (s *MemoryStore) ClearEmissionFactors(ctx context.Context) error {
	s.mu.Lock()
	s.factors = make(map[string]models.EmissionFactor)
	s.mu.Unlock()

	// Cached summaries may embed resolved factor values.
	s.cache.Clear()
	return nil
}

func (s *MemoryStore) AppendLog(ctx context.Context, rec models.APILogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, rec)
	return nil
}

func (s *MemoryStore) GetLogs(ctx context.Context, limit int) ([]models.APILogRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.logs) {
		limit = len(s.logs)
	}
	logs := make([]models.APILogRecord, limit)
	copy(logs, s.logs[:limit])
	return logs, nil
}

func (s *MemoryStore) ClearLogs(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = nil
	return nil
}

func (s *MemoryStore) GetClients(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clients := make([]string, 0, len(s.events))
	for userID := range s.events {
		clients = append(clients, userID)
	}
	return clients, nil
}

func (s *MemoryStore) GetClientData(ctx context.Context, clientID string) ([]models.TransitEvent, error) {
	return s.GetEvents(ctx, clientID)
}

func (s *MemoryStore) ClearEvents(ctx context.Context) error {
	s.mu.Lock()
	s.events = make(map[string][]models.TransitEvent)
	s.mu.Unlock()

	s.cache.Clear()
	return nil
}

func (s *MemoryStore) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	s.events = make(map[string][]models.TransitEvent)
	s.apiKeys = make(map[string]apiKeyRecord)
	s.factors = make(map[string]models.EmissionFactor)
	s.logs = nil
	s.mu.Unlock()

	s.cache.Clear()
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
