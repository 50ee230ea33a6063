package services

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/KRISHNASAKTHIESWAR/Lap-Lens/models"
)

func lapRecord(lap int, lapTime, confidence float64) models.PredictionRecord {
	return models.PredictionRecord{
		Type:      models.PredictionLapTime,
		Timestamp: time.Now().UTC(),
		Result: models.LapTimeResult{
			Lap:              lap,
			PredictedLapTime: lapTime,
			Confidence:       confidence,
		},
	}
}

func TestCreateSession(t *testing.T) {
	store := NewInMemoryStore()

	session := store.Create(7, "Monza GP")
	if session.SessionID == "" {
		t.Fatal("session id should not be empty")
	}
	if !strings.HasPrefix(session.SessionID, "race_") {
		t.Errorf("session id = %q, want race_ prefix", session.SessionID)
	}
	if session.VehicleID != 7 {
		t.Errorf("VehicleID = %d, want 7", session.VehicleID)
	}
	if session.Status != models.SessionActive {
		t.Errorf("Status = %q, want %q", session.Status, models.SessionActive)
	}
}

func TestCreateSessionUniqueIDs(t *testing.T) {
	store := NewInMemoryStore()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := store.Create(1, "Race 1")
		if seen[s.SessionID] {
			t.Fatalf("duplicate session id %q", s.SessionID)
		}
		seen[s.SessionID] = true
	}
}

func TestGetSession(t *testing.T) {
	store := NewInMemoryStore()
	created := store.Create(3, "Spa")

	got, err := store.Get(created.SessionID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.SessionID != created.SessionID {
		t.Errorf("SessionID = %q, want %q", got.SessionID, created.SessionID)
	}
	if got.Status != models.SessionActive {
		t.Errorf("Status = %q, want active", got.Status)
	}
}

func TestGetUnknownSession(t *testing.T) {
	store := NewInMemoryStore()
	if _, err := store.Get("race_missing"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("Get unknown = %v, want ErrSessionNotFound", err)
	}
}

func TestCloseSession(t *testing.T) {
	store := NewInMemoryStore()
	created := store.Create(1, "Race 1")

	closed, err := store.Close(created.SessionID)
	if err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if closed.Status != models.SessionClosed {
		t.Errorf("Status = %q, want closed", closed.Status)
	}

	// Idempotent: re-closing confirms closed status without error.
	again, err := store.Close(created.SessionID)
	if err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if again.Status != models.SessionClosed {
		t.Errorf("Status after re-close = %q, want closed", again.Status)
	}
}

func TestCloseUnknownSession(t *testing.T) {
	store := NewInMemoryStore()
	if _, err := store.Close("race_missing"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("Close unknown = %v, want ErrSessionNotFound", err)
	}
}

func TestAppendAndPredictions(t *testing.T) {
	store := NewInMemoryStore()
	s := store.Create(1, "Race 1")

	for i := 1; i <= 3; i++ {
		if err := store.Append(s.SessionID, lapRecord(i, 80.0+float64(i), 0.9)); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
		records, err := store.Predictions(s.SessionID)
		if err != nil {
			t.Fatalf("Predictions failed: %v", err)
		}
		if len(records) != i {
			t.Fatalf("log length = %d after %d appends", len(records), i)
		}
	}

	records, _ := store.Predictions(s.SessionID)
	for i, rec := range records {
		result := rec.Result.(models.LapTimeResult)
		if result.Lap != i+1 {
			t.Errorf("record %d lap = %d, want %d (insertion order)", i, result.Lap, i+1)
		}
	}
}

func TestAppendUnknownSession(t *testing.T) {
	store := NewInMemoryStore()
	if err := store.Append("race_missing", lapRecord(1, 80, 0.9)); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("Append unknown = %v, want ErrSessionNotFound", err)
	}
}

func TestAppendAfterClose(t *testing.T) {
	store := NewInMemoryStore()
	s := store.Create(1, "Race 1")

	if _, err := store.Close(s.SessionID); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Closing freezes the status, not the log.
	if err := store.Append(s.SessionID, lapRecord(1, 80, 0.9)); err != nil {
		t.Fatalf("Append after close failed: %v", err)
	}
	records, _ := store.Predictions(s.SessionID)
	if len(records) != 1 {
		t.Errorf("log length = %d, want 1", len(records))
	}
}

func TestConcurrentAppends(t *testing.T) {
	store := NewInMemoryStore()
	s := store.Create(1, "Race 1")
	other := store.Create(2, "Race 1")

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(lap int) {
			defer wg.Done()
			store.Append(s.SessionID, lapRecord(lap, 80, 0.9))
		}(i)
		go func(lap int) {
			defer wg.Done()
			store.Append(other.SessionID, lapRecord(lap, 81, 0.9))
		}(i)
	}
	wg.Wait()

	for _, id := range []string{s.SessionID, other.SessionID} {
		records, err := store.Predictions(id)
		if err != nil {
			t.Fatalf("Predictions failed: %v", err)
		}
		if len(records) != n {
			t.Errorf("session %s log length = %d, want %d", id, len(records), n)
		}
	}
}

func TestPredictionsReturnsCopy(t *testing.T) {
	store := NewInMemoryStore()
	s := store.Create(1, "Race 1")
	store.Append(s.SessionID, lapRecord(1, 80, 0.9))

	records, _ := store.Predictions(s.SessionID)
	records[0] = lapRecord(99, 1, 0.1)

	fresh, _ := store.Predictions(s.SessionID)
	if fresh[0].Result.(models.LapTimeResult).Lap != 1 {
		t.Error("mutating the returned slice should not affect the store")
	}
}
