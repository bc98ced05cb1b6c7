package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/thetarnished/academy-backend/internal/apierr"
	"github.com/thetarnished/academy-backend/internal/types"
)

func TestCompleteLessonProgression(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)
	enrollment := te.seedEnrollment(t, student.ID, course.ID)

	lessons := make([]*types.Lesson, 4)
	for i := range lessons {
		lessons[i] = te.seedLesson(t, course.ID, nil, i+1, types.LessonStatusReady)
	}

	ps := te.progressService()

	steps := []struct {
		lesson  int
		wantPct int
	}{
		{0, 25},
		{1, 50},
		{2, 75},
		{3, 100},
	}
	for _, step := range steps {
		result, err := ps.CompleteLesson(ctx, enrollment.ID, lessons[step.lesson].ID, nil)
		if err != nil {
			t.Fatalf("CompleteLesson: %v", err)
		}
		if result.Enrollment.ProgressPercentage == nil {
			t.Fatalf("expected percentage, got nil")
		}
		if got := *result.Enrollment.ProgressPercentage; got != step.wantPct {
			t.Fatalf("after lesson %d: got %d%%, want %d%%", step.lesson, got, step.wantPct)
		}
	}

	stored, err := te.enrollmentRepo.GetByID(ctx, nil, enrollment.ID)
	if err != nil {
		t.Fatalf("reload enrollment: %v", err)
	}
	if stored.ProgressPercentage == nil || *stored.ProgressPercentage != 100 {
		t.Fatalf("persisted percentage = %v, want 100", stored.ProgressPercentage)
	}
}

func TestCompleteLessonRoundsToNearest(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)
	enrollment := te.seedEnrollment(t, student.ID, course.ID)

	first := te.seedLesson(t, course.ID, nil, 1, types.LessonStatusReady)
	te.seedLesson(t, course.ID, nil, 2, types.LessonStatusReady)
	te.seedLesson(t, course.ID, nil, 3, types.LessonStatusReady)

	result, err := te.progressService().CompleteLesson(ctx, enrollment.ID, first.ID, nil)
	if err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	if got := *result.Enrollment.ProgressPercentage; got != 33 {
		t.Fatalf("1 of 3 lessons: got %d%%, want 33%%", got)
	}
}

func TestCompleteLessonIdempotent(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)
	enrollment := te.seedEnrollment(t, student.ID, course.ID)
	lesson := te.seedLesson(t, course.ID, nil, 1, types.LessonStatusReady)
	te.seedLesson(t, course.ID, nil, 2, types.LessonStatusReady)

	ps := te.progressService()

	first, err := ps.CompleteLesson(ctx, enrollment.ID, lesson.ID, nil)
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	watched := 120
	second, err := ps.CompleteLesson(ctx, enrollment.ID, lesson.ID, &watched)
	if err != nil {
		t.Fatalf("second completion: %v", err)
	}

	if got := *second.Enrollment.ProgressPercentage; got != 50 {
		t.Fatalf("percentage after re-completion = %d%%, want 50%%", got)
	}
	if !second.Progress.CompletedAt.After(first.Progress.CompletedAt) {
		t.Fatalf("re-completion did not refresh completed_at: %v !> %v",
			second.Progress.CompletedAt, first.Progress.CompletedAt)
	}
	if second.Progress.WatchedDurationSeconds == nil || *second.Progress.WatchedDurationSeconds != 120 {
		t.Fatalf("watched duration not refreshed: %v", second.Progress.WatchedDurationSeconds)
	}

	var count int64
	if err := te.db.Model(&types.LessonProgress{}).Where("enrollment_id = ?", enrollment.ID).Count(&count).Error; err != nil {
		t.Fatalf("count progress rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("progress rows = %d, want 1", count)
	}
}

func TestCompleteLessonKeepsWatchedDuration(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)
	enrollment := te.seedEnrollment(t, student.ID, course.ID)
	lesson := te.seedLesson(t, course.ID, nil, 1, types.LessonStatusReady)

	ps := te.progressService()

	watched := 300
	if _, err := ps.CompleteLesson(ctx, enrollment.ID, lesson.ID, &watched); err != nil {
		t.Fatalf("first completion: %v", err)
	}

	// A re-completion without a duration keeps the recorded value.
	second, err := ps.CompleteLesson(ctx, enrollment.ID, lesson.ID, nil)
	if err != nil {
		t.Fatalf("second completion: %v", err)
	}
	if second.Progress.WatchedDurationSeconds == nil || *second.Progress.WatchedDurationSeconds != 300 {
		t.Fatalf("watched duration lost on re-completion: %v", second.Progress.WatchedDurationSeconds)
	}
}

func TestCompleteLessonIgnoresNonReadyInDenominator(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)
	enrollment := te.seedEnrollment(t, student.ID, course.ID)

	ready := te.seedLesson(t, course.ID, nil, 1, types.LessonStatusReady)
	te.seedLesson(t, course.ID, nil, 2, types.LessonStatusDraft)
	te.seedLesson(t, course.ID, nil, 3, types.LessonStatusProcessing)

	result, err := te.progressService().CompleteLesson(ctx, enrollment.ID, ready.ID, nil)
	if err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	if got := *result.Enrollment.ProgressPercentage; got != 100 {
		t.Fatalf("only ready lessons count: got %d%%, want 100%%", got)
	}
}

func TestCompleteLessonZeroReadyKeepsNullPercentage(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)
	enrollment := te.seedEnrollment(t, student.ID, course.ID)
	draft := te.seedLesson(t, course.ID, nil, 1, types.LessonStatusDraft)

	result, err := te.progressService().CompleteLesson(ctx, enrollment.ID, draft.ID, nil)
	if err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}
	if result.Enrollment.ProgressPercentage != nil {
		t.Fatalf("zero ready lessons: percentage = %v, want nil", *result.Enrollment.ProgressPercentage)
	}
}

func TestCompleteLessonMissingEnrollment(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	lesson := te.seedLesson(t, course.ID, nil, 1, types.LessonStatusReady)

	_, err := te.progressService().CompleteLesson(ctx, uuid.New(), lesson.ID, nil)
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("missing enrollment: status = %d, want 404", apierr.StatusOf(err))
	}
}

func TestCompleteLessonFromOtherCourse(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	enrolled := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	other := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)
	enrollment := te.seedEnrollment(t, student.ID, enrolled.ID)
	foreign := te.seedLesson(t, other.ID, nil, 1, types.LessonStatusReady)

	_, err := te.progressService().CompleteLesson(ctx, enrollment.ID, foreign.ID, nil)
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("foreign lesson: status = %d, want 404", apierr.StatusOf(err))
	}

	var count int64
	if err := te.db.Model(&types.LessonProgress{}).Count(&count).Error; err != nil {
		t.Fatalf("count progress rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected completion left %d progress rows", count)
	}
}
