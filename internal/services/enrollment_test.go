package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/thetarnished/academy-backend/internal/apierr"
	"github.com/thetarnished/academy-backend/internal/types"
)

func TestListAvailableCoursesFiltersUnpublished(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	published := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	te.seedCourse(t, professor.ID, types.CourseStatusDraft)
	te.seedCourse(t, professor.ID, types.CourseStatusArchived)

	courses, err := te.enrollmentService().ListAvailableCourses(ctx)
	if err != nil {
		t.Fatalf("ListAvailableCourses: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("got %d courses, want 1 published", len(courses))
	}
	if courses[0].ID != published.ID {
		t.Fatalf("got course %s, want %s", courses[0].ID, published.ID)
	}
	if courses[0].ProfessorName != "Test User" {
		t.Fatalf("professor name = %q, want %q", courses[0].ProfessorName, "Test User")
	}
}

func TestListAvailableCoursesCountsOnlyReadyLessons(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	te.seedLesson(t, course.ID, nil, 1, types.LessonStatusReady)
	te.seedLesson(t, course.ID, nil, 2, types.LessonStatusReady)
	te.seedLesson(t, course.ID, nil, 3, types.LessonStatusDraft)

	courses, err := te.enrollmentService().ListAvailableCourses(ctx)
	if err != nil {
		t.Fatalf("ListAvailableCourses: %v", err)
	}
	if courses[0].LessonsCount != 2 {
		t.Fatalf("lessons count = %d, want 2 (draft excluded)", courses[0].LessonsCount)
	}
}

func TestEnrollOnce(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)

	es := te.enrollmentService()

	enrollment, err := es.Enroll(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if enrollment.ProgressPercentage != nil {
		t.Fatalf("new enrollment percentage = %v, want nil", *enrollment.ProgressPercentage)
	}

	if _, err := es.Enroll(ctx, student.ID, course.ID); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("duplicate enroll: status = %d, want 400", apierr.StatusOf(err))
	}

	var count int64
	if err := te.db.Model(&types.Enrollment{}).Count(&count).Error; err != nil {
		t.Fatalf("count enrollments: %v", err)
	}
	if count != 1 {
		t.Fatalf("enrollments = %d, want 1", count)
	}
}

func TestEnrollMissingCourse(t *testing.T) {
	te := newTestEnv(t)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)

	_, err := te.enrollmentService().Enroll(context.Background(), student.ID, uuid.New())
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("missing course: status = %d, want 404", apierr.StatusOf(err))
	}
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	te := newTestEnv(t)
	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusDraft)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)

	_, err := te.enrollmentService().Enroll(context.Background(), student.ID, course.ID)
	if apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("draft course: status = %d, want 400", apierr.StatusOf(err))
	}
}

func TestCheckEnrollment(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)

	es := te.enrollmentService()

	found, err := es.CheckEnrollment(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("CheckEnrollment: %v", err)
	}
	if found != nil {
		t.Fatalf("expected no enrollment before enrolling")
	}

	te.seedEnrollment(t, student.ID, course.ID)
	found, err = es.CheckEnrollment(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("CheckEnrollment: %v", err)
	}
	if found == nil {
		t.Fatalf("expected enrollment after enrolling")
	}
}

func TestGetCoursePreviewShowsReadyLessonsOfAnyCourseStatus(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	// A draft course still previews; the catalog listing is what filters.
	course := te.seedCourse(t, professor.ID, types.CourseStatusDraft)
	te.seedLesson(t, course.ID, nil, 1, types.LessonStatusReady)
	te.seedLesson(t, course.ID, nil, 2, types.LessonStatusDraft)

	preview, err := te.enrollmentService().GetCoursePreview(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetCoursePreview: %v", err)
	}
	if len(preview.Lessons) != 1 {
		t.Fatalf("preview lessons = %d, want 1 ready", len(preview.Lessons))
	}
	if preview.LessonsCount != 1 {
		t.Fatalf("preview lessons_count = %d, want 1", preview.LessonsCount)
	}
}

func TestGetCoursePreviewMissing(t *testing.T) {
	te := newTestEnv(t)
	_, err := te.enrollmentService().GetCoursePreview(context.Background(), uuid.New())
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("missing course: status = %d, want 404", apierr.StatusOf(err))
	}
}

func TestGetEnrolledCourseDetails(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)
	enrollment := te.seedEnrollment(t, student.ID, course.ID)

	ms := te.moduleService()
	moduleA, err := ms.Add(ctx, AddModuleInput{CourseID: course.ID, Title: "Basics"})
	if err != nil {
		t.Fatalf("add module: %v", err)
	}

	inModule := te.seedLesson(t, course.ID, &moduleA.ID, 1, types.LessonStatusReady)
	loose := te.seedLesson(t, course.ID, nil, 1, types.LessonStatusReady)
	loose.StorageKey = "videos/123-intro.mp4"
	if err := te.db.Save(loose).Error; err != nil {
		t.Fatalf("set storage key: %v", err)
	}

	if _, err := te.progressService().CompleteLesson(ctx, enrollment.ID, inModule.ID, nil); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	detail, err := te.enrollmentService().GetEnrolledCourseDetails(ctx, student.ID, course.ID)
	if err != nil {
		t.Fatalf("GetEnrolledCourseDetails: %v", err)
	}
	if detail.EnrollmentID != enrollment.ID {
		t.Fatalf("enrollment id = %s, want %s", detail.EnrollmentID, enrollment.ID)
	}
	if len(detail.Lessons) != 2 {
		t.Fatalf("lessons = %d, want 2", len(detail.Lessons))
	}
	// Module-grouped lessons first, module-less last.
	if detail.Lessons[0].ID != inModule.ID || detail.Lessons[1].ID != loose.ID {
		t.Fatalf("lesson order wrong: got [%s %s]", detail.Lessons[0].ID, detail.Lessons[1].ID)
	}
	if !detail.Lessons[0].IsCompleted {
		t.Fatalf("completed lesson not flagged")
	}
	if detail.Lessons[1].IsCompleted {
		t.Fatalf("uncompleted lesson flagged completed")
	}
	if detail.Lessons[1].VideoURL != "https://signed.example.com/videos/123-intro.mp4" {
		t.Fatalf("video url not resolved: %q", detail.Lessons[1].VideoURL)
	}
	if detail.ProgressPercentage == nil || *detail.ProgressPercentage != 50 {
		t.Fatalf("header percentage = %v, want 50", detail.ProgressPercentage)
	}
}

func TestGetEnrolledCourseDetailsRequiresEnrollment(t *testing.T) {
	te := newTestEnv(t)

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)

	_, err := te.enrollmentService().GetEnrolledCourseDetails(context.Background(), student.ID, course.ID)
	if apierr.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("unenrolled access: status = %d, want 403", apierr.StatusOf(err))
	}

	_, err = te.enrollmentService().GetEnrolledCourseDetails(context.Background(), student.ID, uuid.New())
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("missing course: status = %d, want 404", apierr.StatusOf(err))
	}
}

func TestGetStudentEnrollmentsSummary(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()

	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)
	enrollment := te.seedEnrollment(t, student.ID, course.ID)

	lesson := te.seedLesson(t, course.ID, nil, 1, types.LessonStatusReady)
	te.seedLesson(t, course.ID, nil, 2, types.LessonStatusReady)
	if _, err := te.progressService().CompleteLesson(ctx, enrollment.ID, lesson.ID, nil); err != nil {
		t.Fatalf("complete lesson: %v", err)
	}

	summaries, err := te.enrollmentService().GetStudentEnrollments(ctx, student.ID)
	if err != nil {
		t.Fatalf("GetStudentEnrollments: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	s := summaries[0]
	if s.TotalLessons != 2 || s.CompletedLessons != 1 {
		t.Fatalf("counts = %d/%d, want 1/2", s.CompletedLessons, s.TotalLessons)
	}
	if s.ProgressPercentage == nil || *s.ProgressPercentage != 50 {
		t.Fatalf("percentage = %v, want 50", s.ProgressPercentage)
	}
}
