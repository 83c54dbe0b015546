package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/repos"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

func newTestSessionService(t *testing.T) SessionService {
	t.Helper()
	db := newTestDB(t)
	log := logger.NewNop()
	return NewSessionService(db, log,
		repos.NewLearningSessionRepo(db, log),
		repos.NewSessionAnalyticsRepo(db, log))
}

func sampleResult() types.AllContainers {
	return types.AllContainers{
		Narrative: *fixtureNarrative(),
		Learn:     types.ContainerContent{Container: types.ContainerLearn, Title: "Learn"},
		Metadata: types.GenerationMetadata{
			Strategy:     types.StrategyFull,
			CacheHit:     true,
			GenerationMs: 42,
			CostEstimate: 0.04,
		},
	}
}

func TestRecordGenerationPersistsSessionAndEvent(t *testing.T) {
	svc := newTestSessionService(t)

	req := types.StudentRequest{
		StudentID:   uuid.New(),
		StudentName: "Alex",
		Grade:       "3",
		Career:      "Chef",
		Subject:     "math",
		Skill:       "Fractions",
	}

	session, err := svc.RecordGeneration(context.Background(), req, sampleResult())
	if err != nil {
		t.Fatalf("RecordGeneration error: %v", err)
	}
	if session.ID == uuid.Nil {
		t.Fatal("session must get an id")
	}
	if session.Strategy != types.StrategyFull || !session.CacheHit {
		t.Fatalf("metadata not carried onto the session: %+v", session)
	}
	if len(session.Containers) == 0 {
		t.Fatal("containers payload must be stored")
	}

	listed, err := svc.ListByStudent(context.Background(), req.StudentID, 10)
	if err != nil {
		t.Fatalf("ListByStudent error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != session.ID {
		t.Fatalf("listed = %v", listed)
	}
}

func TestListByStudentRequiresStudent(t *testing.T) {
	svc := newTestSessionService(t)

	if _, err := svc.ListByStudent(context.Background(), uuid.Nil, 10); err == nil {
		t.Fatal("nil student must error")
	}
}

func TestListByStudentLimit(t *testing.T) {
	svc := newTestSessionService(t)
	studentID := uuid.New()
	req := types.StudentRequest{
		StudentID: studentID, Grade: "3", Career: "Chef", Subject: "math", Skill: "Fractions",
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.RecordGeneration(context.Background(), req, sampleResult()); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	listed, err := svc.ListByStudent(context.Background(), studentID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed %d sessions, want 2", len(listed))
	}
}

func TestDeleteSessionsOnlyTouchesOwnRows(t *testing.T) {
	svc := newTestSessionService(t)
	owner := uuid.New()
	other := uuid.New()

	record := func(studentID uuid.UUID) uuid.UUID {
		t.Helper()
		req := types.StudentRequest{
			StudentID: studentID, Grade: "3", Career: "Chef", Subject: "math", Skill: "Fractions",
		}
		session, err := svc.RecordGeneration(context.Background(), req, sampleResult())
		if err != nil {
			t.Fatalf("seed session: %v", err)
		}
		return session.ID
	}

	ownerFirst := record(owner)
	ownerSecond := record(owner)
	otherSession := record(other)

	// The other student's id rides along in the request but must survive.
	deleted, err := svc.DeleteSessions(context.Background(), owner,
		[]uuid.UUID{ownerFirst, ownerSecond, otherSession})
	if err != nil {
		t.Fatalf("DeleteSessions error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}

	remaining, err := svc.ListByStudent(context.Background(), owner, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 0 {
		t.Fatalf("owner still has %d sessions", len(remaining))
	}

	kept, err := svc.ListByStudent(context.Background(), other, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(kept) != 1 || kept[0].ID != otherSession {
		t.Fatalf("other student's session was touched: %v", kept)
	}
}

func TestDeleteSessionsRequiresStudent(t *testing.T) {
	svc := newTestSessionService(t)

	if _, err := svc.DeleteSessions(context.Background(), uuid.Nil, []uuid.UUID{uuid.New()}); err == nil {
		t.Fatal("nil student must error")
	}
}
