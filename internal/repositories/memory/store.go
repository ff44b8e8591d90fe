// Package memory holds a process-local implementation of every ledger repository.
// It backs tests and the demo mode, and follows the same locking contract as the
// PostgreSQL repositories by serializing all writes behind one mutex.
package memory

import (
	"sync"
	"time"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/domain"
	portsrepo "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/repositories"
)

// Store keeps accounts, periods, transactions and ratios in maps.
type Store struct {
	mu sync.RWMutex

	accounts     map[string]domain.Account
	periods      map[string]domain.Period
	transactions map[string]domain.JournalTransaction
	ratios       map[string]domain.Ratio
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		periods:      make(map[string]domain.Period),
		transactions: make(map[string]domain.JournalTransaction),
		ratios:       make(map[string]domain.Ratio),
	}
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.PeriodRepositoryFacade  = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade = (*Store)(nil)
	_ portsrepo.ReportingRepository     = (*Store)(nil)
	_ portsrepo.RatioRepositoryFacade   = (*Store)(nil)
)

// NewRepositoryProvider wires a single store behind every repository interface.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   store,
		PeriodRepo:    store,
		JournalRepo:   store,
		ReportingRepo: store,
		RatioRepo:     store,
	}
}

// inRange reports whether d lies in [from,to]. A nil from means no lower bound.
func inRange(d time.Time, from *time.Time, to time.Time) bool {
	d = domain.DateOnly(d)
	if from != nil && d.Before(domain.DateOnly(*from)) {
		return false
	}
	return !d.After(domain.DateOnly(to))
}

// refSet builds a lookup for optional account filters. A nil set matches everything.
func refSet(refs []string) map[string]struct{} {
	if len(refs) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		set[r] = struct{}{}
	}
	return set
}

func matches(set map[string]struct{}, ref string) bool {
	if set == nil {
		return true
	}
	_, ok := set[ref]
	return ok
}
