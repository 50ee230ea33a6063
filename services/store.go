package services

import (
	"strings"
	"sync"
	"time"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/models"

	"github.com/google/uuid"
)

// SessionStore owns the shared mutable session state. It is injected into
// request handlers so tests can substitute a fresh store per case instead of
// sharing a process-wide map.
type SessionStore interface {
	Create(vehicleID int, raceName string) *models.Session
	Get(id string) (*models.Session, error)
	Close(id string) (*models.Session, error)
	Append(id string, rec models.PredictionRecord) error
	Predictions(id string) ([]models.PredictionRecord, error)
}

// InMemoryStore is the process-lifetime SessionStore. Appends are serialized
// per session so log order reflects request arrival order; different
// sessions' logs are independent.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session models.Session
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*sessionEntry)}
}

func newSessionID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "race_" + hex[:12]
}

func (s *InMemoryStore) Create(vehicleID int, raceName string) *models.Session {
	entry := &sessionEntry{
		session: models.Session{
			SessionID: newSessionID(),
			VehicleID: vehicleID,
			RaceName:  raceName,
			CreatedAt: time.Now().UTC(),
			Status:    models.SessionActive,
		},
	}

	s.mu.Lock()
	s.sessions[entry.session.SessionID] = entry
	s.mu.Unlock()

	snap := entry.snapshot()
	return &snap
}

func (s *InMemoryStore) lookup(id string) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return entry, nil
}

func (s *InMemoryStore) Get(id string) (*models.Session, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	snap := entry.snapshot()
	return &snap, nil
}

// Close transitions the session to closed. Re-closing an already closed
// session is idempotent: it re-confirms the closed status without error.
func (s *InMemoryStore) Close(id string) (*models.Session, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	entry.session.Status = models.SessionClosed
	entry.mu.Unlock()

	snap := entry.snapshot()
	return &snap, nil
}

// Append adds a record to the session's ordered log. Appending to a closed
// session is permitted: closing freezes the status, not the log.
func (s *InMemoryStore) Append(id string, rec models.PredictionRecord) error {
	entry, err := s.lookup(id)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	entry.session.Predictions = append(entry.session.Predictions, rec)
	entry.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Predictions(id string) ([]models.PredictionRecord, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	out := make([]models.PredictionRecord, len(entry.session.Predictions))
	copy(out, entry.session.Predictions)
	entry.mu.Unlock()
	return out, nil
}

// snapshot copies the session without its log, which Predictions serves
// separately.
func (e *sessionEntry) snapshot() models.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := e.session
	snap.Predictions = nil
	return snap
}
