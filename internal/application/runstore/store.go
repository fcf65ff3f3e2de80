// Package runstore retiene en memoria los reportes de corridas recientes
// para que el operador los descargue tras la previsualización. No es
// persistencia: el pipeline recalcula todo por corrida y este buffer expira
// solo. Un reinicio del proceso simplemente obliga a repetir la subida.
package runstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Costeo-api/internal/application/reconcile"
)

// Run es una corrida retenida: el resultado del pipeline más los dos
// reportes ya serializados a xlsx (siempre ambos; no hay estado parcial).
type Run struct {
	ID          string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Result      *reconcile.Result
	SummaryXLSX []byte
	LedgerXLSX  []byte
}

// Store buffer de corridas con TTL.
type Store struct {
	mu   sync.RWMutex
	ttl  time.Duration
	runs map[string]*Run
}

// NewStore construye el store.
func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, runs: make(map[string]*Run)}
}

// Save registra una corrida y devuelve su identificador.
func (s *Store) Save(result *reconcile.Result, summaryXLSX, ledgerXLSX []byte) *Run {
	now := time.Now()
	run := &Run{
		ID:          uuid.New().String(),
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
		Result:      result,
		SummaryXLSX: summaryXLSX,
		LedgerXLSX:  ledgerXLSX,
	}
	s.mu.Lock()
	s.runs[run.ID] = run
	s.mu.Unlock()
	return run
}

// Get devuelve la corrida si existe y no expiró.
func (s *Store) Get(id string) (*Run, bool) {
	s.mu.RLock()
	run, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(run.ExpiresAt) {
		s.mu.Lock()
		delete(s.runs, id)
		s.mu.Unlock()
		return nil, false
	}
	return run, true
}

// Len cantidad de corridas retenidas (expiradas incluidas hasta la purga).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// Purge elimina las corridas expiradas y devuelve cuántas quitó.
func (s *Store) Purge() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, run := range s.runs {
		if now.After(run.ExpiresAt) {
			delete(s.runs, id)
			removed++
		}
	}
	return removed
}

// Janitor purga periódicamente hasta que el contexto se cancele.
// Pensado para ejecutarse como goroutine desde main.
func (s *Store) Janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Purge()
		}
	}
}
