package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
	"github.com/pathfinity/pathfinity-backend/internal/repos"
	"github.com/pathfinity/pathfinity-backend/internal/types"
)

// AssignmentResult is the response envelope this service has always used:
// failures are reported in-band, not thrown.
type AssignmentResult struct {
	Success     bool                     `json:"success"`
	Error       string                   `json:"error,omitempty"`
	Assignments []*types.DailyAssignment `json:"assignments,omitempty"`
}

// AssignmentService hands out the day's assignments per student,
// creating them on first request. A short-lived in-process memo avoids
// re-querying the same student's list within a session; completion
// invalidates it.
type AssignmentService interface {
	GetTodaysAssignments(ctx context.Context, studentID uuid.UUID, grade string) AssignmentResult
	MarkAssignment(ctx context.Context, studentID, assignmentID uuid.UUID, status string) AssignmentResult
}

var defaultSubjects = []string{"Math", "ELA", "Science", "Social Studies"}

type memoEntry struct {
	assignments []*types.DailyAssignment
	storedAt    time.Time
}

type assignmentService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.DailyAssignmentRepo

	mu      sync.Mutex
	memo    map[string]memoEntry
	memoTTL time.Duration
	clock   func() time.Time
}

func NewAssignmentService(db *gorm.DB, baseLog *logger.Logger, repo repos.DailyAssignmentRepo) AssignmentService {
	return &assignmentService{
		db:      db,
		log:     baseLog.With("service", "AssignmentService"),
		repo:    repo,
		memo:    make(map[string]memoEntry),
		memoTTL: 5 * time.Minute,
		clock:   time.Now,
	}
}

func (s *assignmentService) GetTodaysAssignments(ctx context.Context, studentID uuid.UUID, grade string) AssignmentResult {
	if studentID == uuid.Nil {
		return AssignmentResult{Success: false, Error: "student id required"}
	}

	today := s.clock().Format("2006-01-02")
	memoKey := studentID.String() + ":" + today

	if cached, ok := s.memoLookup(memoKey); ok {
		return AssignmentResult{Success: true, Assignments: cached}
	}

	existing, err := s.repo.GetByStudentAndDate(ctx, nil, studentID, today)
	if err != nil {
		s.log.Error("Failed to load assignments", "student_id", studentID, "error", err)
		return AssignmentResult{Success: false, Error: err.Error()}
	}

	if len(existing) == 0 {
		existing, err = s.createForDay(ctx, studentID, grade, today)
		if err != nil {
			s.log.Error("Failed to create assignments", "student_id", studentID, "error", err)
			return AssignmentResult{Success: false, Error: err.Error()}
		}
	}

	s.memoStore(memoKey, existing)
	return AssignmentResult{Success: true, Assignments: existing}
}

func (s *assignmentService) MarkAssignment(ctx context.Context, studentID, assignmentID uuid.UUID, status string) AssignmentResult {
	if studentID == uuid.Nil || assignmentID == uuid.Nil {
		return AssignmentResult{Success: false, Error: "student id and assignment id required"}
	}
	switch status {
	case types.AssignmentStatusStarted, types.AssignmentStatusCompleted:
	default:
		return AssignmentResult{Success: false, Error: "invalid status " + status}
	}

	now := s.clock()
	rows, err := s.repo.MarkStatus(ctx, nil, studentID, assignmentID, status, now)
	if err != nil {
		s.log.Error("Failed to mark assignment", "assignment_id", assignmentID, "error", err)
		return AssignmentResult{Success: false, Error: err.Error()}
	}
	if rows == 0 {
		return AssignmentResult{Success: false, Error: "assignment not found for student"}
	}

	// The day's list changed; drop the memo so the next read is fresh.
	s.mu.Lock()
	delete(s.memo, studentID.String()+":"+now.Format("2006-01-02"))
	s.mu.Unlock()

	return AssignmentResult{Success: true}
}

func (s *assignmentService) createForDay(ctx context.Context, studentID uuid.UUID, grade, date string) ([]*types.DailyAssignment, error) {
	now := s.clock()
	assignments := make([]*types.DailyAssignment, 0, len(defaultSubjects))
	for _, subject := range defaultSubjects {
		assignments = append(assignments, &types.DailyAssignment{
			ID:           uuid.New(),
			StudentID:    studentID,
			AssignedDate: date,
			Subject:      subject,
			Skill:        starterSkill(subject, grade),
			Status:       types.AssignmentStatusAssigned,
			EstimatedMin: 15,
			Metadata:     datatypes.JSON([]byte(`{}`)),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.UpsertByStudentDay(ctx, tx, assignments)
	})
	if err != nil {
		return nil, err
	}

	// A concurrent first request may have won some of the inserts, so the
	// canonical rows come from a reread rather than the local slice.
	return s.repo.GetByStudentAndDate(ctx, nil, studentID, date)
}

func (s *assignmentService) memoLookup(key string) ([]*types.DailyAssignment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.memo[key]
	if !ok {
		return nil, false
	}
	if s.clock().Sub(entry.storedAt) > s.memoTTL {
		delete(s.memo, key)
		return nil, false
	}
	return entry.assignments, true
}

func (s *assignmentService) memoStore(key string, assignments []*types.DailyAssignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memo[key] = memoEntry{assignments: assignments, storedAt: s.clock()}
}

// starterSkill is the seed curriculum per subject and band; richer skill
// sequencing lives upstream of this service.
func starterSkill(subject, grade string) string {
	band := gradeBand(grade)
	seeds := map[string]map[string]string{
		"Math": {
			"K-2":  "Counting to 100",
			"3-5":  "Multiplication facts",
			"6-8":  "Ratios and proportions",
			"9-12": "Linear equations",
		},
		"ELA": {
			"K-2":  "Sight words",
			"3-5":  "Main idea and details",
			"6-8":  "Textual evidence",
			"9-12": "Rhetorical analysis",
		},
		"Science": {
			"K-2":  "Living and nonliving things",
			"3-5":  "The water cycle",
			"6-8":  "Cells and organisms",
			"9-12": "Chemical reactions",
		},
		"Social Studies": {
			"K-2":  "Community helpers",
			"3-5":  "Map skills",
			"6-8":  "Ancient civilizations",
			"9-12": "Civics and government",
		},
	}
	if bySubject, ok := seeds[subject]; ok {
		if skill, ok := bySubject[band]; ok {
			return skill
		}
	}
	return "Review and practice"
}
