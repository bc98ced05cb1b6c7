package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/thetarnished/academy-backend/internal/apierr"
	"github.com/thetarnished/academy-backend/internal/types"
)

func TestCreateCourseDefaultsToPublished(t *testing.T) {
	te := newTestEnv(t)
	_, professor := te.seedProfessor(t, "prof@example.com")

	course, err := te.courseService().Create(context.Background(), CreateCourseInput{
		ProfessorID: professor.ID,
		Title:       "Intro to Testing",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if course.Status != types.CourseStatusPublished {
		t.Fatalf("default status = %q, want published", course.Status)
	}
}

func TestCreateCourseUnknownProfessor(t *testing.T) {
	te := newTestEnv(t)
	_, err := te.courseService().Create(context.Background(), CreateCourseInput{
		ProfessorID: uuid.New(),
		Title:       "Orphan",
	})
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("unknown professor: status = %d, want 404", apierr.StatusOf(err))
	}
}

func TestUpdateCourseMergesFields(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	originalTitle := course.Title

	newDescription := "now with more detail"
	updated, err := te.courseService().Update(ctx, course.ID, UpdateCourseInput{
		Description: &newDescription,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != originalTitle {
		t.Fatalf("absent field overwritten: title = %q, want %q", updated.Title, originalTitle)
	}
	if updated.Description != newDescription {
		t.Fatalf("description = %q, want %q", updated.Description, newDescription)
	}

	status := types.CourseStatusArchived
	updated, err = te.courseService().Update(ctx, course.ID, UpdateCourseInput{Status: &status})
	if err != nil {
		t.Fatalf("Update status: %v", err)
	}
	if updated.Status != types.CourseStatusArchived || updated.Description != newDescription {
		t.Fatalf("merge lost fields: %+v", updated)
	}
}

func TestUpdateCourseRejectsBadStatus(t *testing.T) {
	te := newTestEnv(t)
	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)

	bad := "retired"
	_, err := te.courseService().Update(context.Background(), course.ID, UpdateCourseInput{Status: &bad})
	if apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("bad status: status = %d, want 400", apierr.StatusOf(err))
	}
}

func TestDeleteCourseMissing(t *testing.T) {
	te := newTestEnv(t)
	err := te.courseService().Delete(context.Background(), uuid.New())
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("missing course: status = %d, want 404", apierr.StatusOf(err))
	}
}

func TestModuleOrderIndexAutoAssigns(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	ms := te.moduleService()

	first, err := ms.Add(ctx, AddModuleInput{CourseID: course.ID, Title: "One"})
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	second, err := ms.Add(ctx, AddModuleInput{CourseID: course.ID, Title: "Two"})
	if err != nil {
		t.Fatalf("add second: %v", err)
	}
	if first.OrderIndex != 1 || second.OrderIndex != 2 {
		t.Fatalf("order indexes = %d, %d; want 1, 2", first.OrderIndex, second.OrderIndex)
	}

	// An explicit index is honored, and the next auto value follows the max.
	five := 5
	fifth, err := ms.Add(ctx, AddModuleInput{CourseID: course.ID, Title: "Five", OrderIndex: &five})
	if err != nil {
		t.Fatalf("add explicit: %v", err)
	}
	if fifth.OrderIndex != 5 {
		t.Fatalf("explicit order index = %d, want 5", fifth.OrderIndex)
	}
	next, err := ms.Add(ctx, AddModuleInput{CourseID: course.ID, Title: "Six"})
	if err != nil {
		t.Fatalf("add after gap: %v", err)
	}
	if next.OrderIndex != 6 {
		t.Fatalf("order index after gap = %d, want 6", next.OrderIndex)
	}
}

func TestLessonOrderIndexScopes(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)

	module, err := te.moduleService().Add(ctx, AddModuleInput{CourseID: course.ID, Title: "M"})
	if err != nil {
		t.Fatalf("add module: %v", err)
	}

	ls := te.lessonService(nil)

	inModule1, err := ls.Create(ctx, CreateLessonInput{CourseID: course.ID, ModuleID: &module.ID, Title: "a"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	inModule2, err := ls.Create(ctx, CreateLessonInput{CourseID: course.ID, ModuleID: &module.ID, Title: "b"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Module-less lessons order independently of the module's sequence.
	loose, err := ls.Create(ctx, CreateLessonInput{CourseID: course.ID, Title: "c"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if inModule1.OrderIndex != 1 || inModule2.OrderIndex != 2 {
		t.Fatalf("module-scoped indexes = %d, %d; want 1, 2", inModule1.OrderIndex, inModule2.OrderIndex)
	}
	if loose.OrderIndex != 3 {
		t.Fatalf("course-scoped index = %d, want 3", loose.OrderIndex)
	}
	if loose.DurationMinutes != types.DefaultLessonDurationMinutes {
		t.Fatalf("default duration = %d, want %d", loose.DurationMinutes, types.DefaultLessonDurationMinutes)
	}
	if loose.Status != types.LessonStatusDraft {
		t.Fatalf("default status = %q, want draft", loose.Status)
	}
}

func TestCreateLessonRejectsForeignModule(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	_, professor := te.seedProfessor(t, "prof@example.com")
	courseA := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	courseB := te.seedCourse(t, professor.ID, types.CourseStatusPublished)

	module, err := te.moduleService().Add(ctx, AddModuleInput{CourseID: courseA.ID, Title: "M"})
	if err != nil {
		t.Fatalf("add module: %v", err)
	}

	_, err = te.lessonService(nil).Create(ctx, CreateLessonInput{
		CourseID: courseB.ID,
		ModuleID: &module.ID,
		Title:    "crosswired",
	})
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("foreign module: status = %d, want 404", apierr.StatusOf(err))
	}
}

func TestGetCourseDetailGroupsLessons(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)

	module, err := te.moduleService().Add(ctx, AddModuleInput{CourseID: course.ID, Title: "M"})
	if err != nil {
		t.Fatalf("add module: %v", err)
	}
	te.seedLesson(t, course.ID, &module.ID, 1, types.LessonStatusReady)
	te.seedLesson(t, course.ID, nil, 1, types.LessonStatusDraft)

	detail, err := te.courseService().GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(detail.Modules) != 2 {
		t.Fatalf("module groups = %d, want 2 (module + unassigned)", len(detail.Modules))
	}
	if len(detail.Modules[0].Lessons) != 1 || len(detail.Modules[1].Lessons) != 1 {
		t.Fatalf("lesson grouping wrong: %d, %d", len(detail.Modules[0].Lessons), len(detail.Modules[1].Lessons))
	}
	if detail.Modules[1].ID != uuid.Nil {
		t.Fatalf("unassigned group should have nil module id")
	}
}

func TestDeleteModuleKeepsLessons(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)

	module, err := te.moduleService().Add(ctx, AddModuleInput{CourseID: course.ID, Title: "M"})
	if err != nil {
		t.Fatalf("add module: %v", err)
	}
	lesson := te.seedLesson(t, course.ID, &module.ID, 1, types.LessonStatusReady)

	if err := te.moduleService().Delete(ctx, module.ID); err != nil {
		t.Fatalf("delete module: %v", err)
	}

	survivor, err := te.lessonRepo.GetByID(ctx, nil, lesson.ID)
	if err != nil {
		t.Fatalf("reload lesson: %v", err)
	}
	if survivor == nil {
		t.Fatalf("lesson deleted with its module")
	}
}

func TestListByProfessorCounts(t *testing.T) {
	te := newTestEnv(t)
	ctx := context.Background()
	_, professor := te.seedProfessor(t, "prof@example.com")
	course := te.seedCourse(t, professor.ID, types.CourseStatusPublished)
	te.seedLesson(t, course.ID, nil, 1, types.LessonStatusReady)
	student := te.seedUser(t, "student@example.com", types.RoleStudent)
	te.seedEnrollment(t, student.ID, course.ID)

	courses, err := te.courseService().GetByProfessor(ctx, professor.ID)
	if err != nil {
		t.Fatalf("GetByProfessor: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("courses = %d, want 1", len(courses))
	}
	if courses[0].LessonsCount != 1 || courses[0].EnrollmentsCount != 1 {
		t.Fatalf("counts = %d lessons / %d enrollments, want 1/1",
			courses[0].LessonsCount, courses[0].EnrollmentsCount)
	}
}
