package pgdb

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

type courseRow struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Code          string         `db:"code"`
	Description   string         `db:"description"`
	Category      string         `db:"category"`
	Level         string         `db:"level"`
	Credits       int            `db:"credits"`
	DurationWeeks int            `db:"duration_weeks"`
	InstructorID  sql.NullString `db:"instructor_id"`
	Capacity      int            `db:"capacity"`
	EnrolledCount int            `db:"enrolled_count"`
	StartDate     sql.NullTime   `db:"start_date"`
	EndDate       sql.NullTime   `db:"end_date"`
	DaysOfWeek    pq.StringArray `db:"days_of_week"`
	ScheduleTime  string         `db:"schedule_time"`
	Price         float64        `db:"price"`
	Currency      string         `db:"currency"`
	Status        string         `db:"status"`
	Thumbnail     string         `db:"thumbnail"`
	IsActive      bool           `db:"is_active"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func newCourseRow(crs course.Course) courseRow {
	row := courseRow{
		ID:            crs.ID,
		Title:         crs.Title,
		Code:          crs.Code,
		Description:   crs.Description,
		Category:      crs.Category,
		Level:         crs.Level,
		Credits:       crs.Credits,
		DurationWeeks: crs.DurationWeeks,
		Capacity:      crs.Capacity,
		EnrolledCount: crs.EnrolledCount,
		DaysOfWeek:    crs.Schedule.DaysOfWeek,
		ScheduleTime:  crs.Schedule.Time,
		Price:         crs.Price,
		Currency:      crs.Currency,
		Status:        crs.Status,
		Thumbnail:     crs.Thumbnail,
		IsActive:      crs.IsActive,
		CreatedAt:     crs.CreatedAt,
		UpdatedAt:     crs.UpdatedAt,
	}
	if crs.Instructor.ID != "" {
		row.InstructorID = sql.NullString{String: crs.Instructor.ID, Valid: true}
	}
	if !crs.Schedule.StartDate.IsZero() {
		row.StartDate = sql.NullTime{Time: crs.Schedule.StartDate, Valid: true}
	}
	if !crs.Schedule.EndDate.IsZero() {
		row.EndDate = sql.NullTime{Time: crs.Schedule.EndDate, Valid: true}
	}
	return row
}

func (row courseRow) course() course.Course {
	crs := course.Course{
		ID:            row.ID,
		Title:         row.Title,
		Code:          row.Code,
		Description:   row.Description,
		Category:      row.Category,
		Level:         row.Level,
		Credits:       row.Credits,
		DurationWeeks: row.DurationWeeks,
		Instructor:    course.TeacherRef{ID: row.InstructorID.String},
		Capacity:      row.Capacity,
		EnrolledCount: row.EnrolledCount,
		Schedule: course.Schedule{
			StartDate:  row.StartDate.Time,
			EndDate:    row.EndDate.Time,
			DaysOfWeek: row.DaysOfWeek,
			Time:       row.ScheduleTime,
		},
		Price:     row.Price,
		Currency:  row.Currency,
		Status:    row.Status,
		Thumbnail: row.Thumbnail,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	return crs
}

// populate resolves relationship edges into denormalized refs. Inner joins
// skip references whose entity has been deleted.
func (repo *courseRepository) populate(crs course.Course) (course.Course, error) {
	if crs.Instructor.ID != "" {
		var instr struct {
			ID        string `db:"id"`
			FirstName string `db:"first_name"`
			LastName  string `db:"last_name"`
			Email     string `db:"email"`
		}
		err := repo.db.Get(&instr, `SELECT id, first_name, last_name, email FROM teachers WHERE id = $1`, crs.Instructor.ID)
		if err == nil {
			crs.Instructor = course.TeacherRef(instr)
		} else if err != sql.ErrNoRows {
			return crs, errors.Wrap(err, "loading instructor")
		}
	}

	students := []course.StudentRef{}
	err := repo.db.Select(&students, `
		SELECT s.id, s.first_name AS firstname, s.last_name AS lastname, s.student_id AS studentid
		FROM course_students cs
		JOIN students s ON s.id = cs.student_id
		WHERE cs.course_id = $1`, crs.ID)
	if err != nil {
		return crs, errors.Wrap(err, "loading students")
	}
	crs.Students = students

	assistants := []course.TeacherRef{}
	err = repo.db.Select(&assistants, `
		SELECT t.id, t.first_name AS firstname, t.last_name AS lastname, t.email
		FROM course_assistants ca
		JOIN teachers t ON t.id = ca.teacher_id
		WHERE ca.course_id = $1`, crs.ID)
	if err != nil {
		return crs, errors.Wrap(err, "loading assistants")
	}
	crs.Assistants = assistants

	prereqs := []course.Ref{}
	err = repo.db.Select(&prereqs, `
		SELECT c.id, c.title, c.code
		FROM course_prerequisites cp
		JOIN courses c ON c.id = cp.prerequisite_id
		WHERE cp.course_id = $1`, crs.ID)
	if err != nil {
		return crs, errors.Wrap(err, "loading prerequisites")
	}
	crs.Prerequisites = prereqs
	return crs, nil
}

func (repo *courseRepository) get(id string) (course.Course, error) {
	var row courseRow
	if err := repo.db.Get(&row, `SELECT * FROM courses WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "getting course")
	}
	return repo.populate(row.course())
}

func (repo *courseRepository) CheckCodeUniqueness(code string, excludedCourses ...course.Course) error {
	query := `SELECT COUNT(*) FROM courses WHERE code = $1`
	args := []interface{}{code}
	if len(excludedCourses) > 0 {
		ids := make([]string, 0, len(excludedCourses))
		for _, crs := range excludedCourses {
			ids = append(ids, crs.ID)
		}
		query += ` AND NOT (id = ANY($2))`
		args = append(args, pq.StringArray(ids))
	}

	var count int
	if err := repo.db.Get(&count, query, args...); err != nil {
		return errors.Wrap(err, "checking code uniqueness")
	}
	if count > 0 {
		return course.ErrCodeExists
	}
	return nil
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	crs.ID = uuid.NewString()
	row := newCourseRow(crs)
	_, err := repo.db.NamedExec(`
		INSERT INTO courses (
			id, title, code, description, category, level, credits, duration_weeks,
			instructor_id, capacity, enrolled_count, start_date, end_date, days_of_week,
			schedule_time, price, currency, status, thumbnail, is_active, created_at, updated_at
		) VALUES (
			:id, :title, :code, :description, :category, :level, :credits, :duration_weeks,
			:instructor_id, :capacity, :enrolled_count, :start_date, :end_date, :days_of_week,
			:schedule_time, :price, :currency, :status, :thumbnail, :is_active, :created_at, :updated_at
		)`, row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	return repo.populate(crs)
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	var rows []courseRow
	if err := repo.db.Select(&rows, `SELECT * FROM courses ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}

	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		crs, err := repo.populate(row.course())
		if err != nil {
			return nil, err
		}
		courses = append(courses, crs)
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(id string) (course.Course, error) {
	return repo.get(id)
}

func (repo *courseRepository) CourseExists(id string) (bool, error) {
	var exists bool
	err := repo.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM courses WHERE id = $1)`, id)
	return exists, errors.Wrap(err, "checking course")
}

func (repo *courseRepository) UpdateCourse(crs course.Course) (course.Course, error) {
	row := newCourseRow(crs)
	res, err := repo.db.NamedExec(`
		UPDATE courses SET
			title = :title, code = :code, description = :description, category = :category,
			level = :level, credits = :credits, duration_weeks = :duration_weeks,
			instructor_id = :instructor_id, capacity = :capacity, start_date = :start_date,
			end_date = :end_date, days_of_week = :days_of_week, schedule_time = :schedule_time,
			price = :price, currency = :currency, status = :status, thumbnail = :thumbnail,
			is_active = :is_active, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return repo.get(crs.ID)
}

func (repo *courseRepository) UpdateCourseStatus(id, status string) (course.Course, error) {
	res, err := repo.db.Exec(`UPDATE courses SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course status")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return repo.get(id)
}

func (repo *courseRepository) DeleteCourse(id string) error {
	res, err := repo.db.Exec(`DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return course.ErrNotFound
	}
	_, err = repo.db.Exec(`DELETE FROM course_students WHERE course_id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting course students")
	}
	return nil
}

// refreshEnrolledCount recomputes the stored count from the course side of the edge.
func (repo *courseRepository) refreshEnrolledCount(courseID string) error {
	_, err := repo.db.Exec(`
		UPDATE courses
		SET enrolled_count = (SELECT COUNT(*) FROM course_students WHERE course_id = $1)
		WHERE id = $1`, courseID)
	return errors.Wrap(err, "refreshing enrolled count")
}

func (repo *courseRepository) AddStudent(courseID, studentID string) (course.Course, error) {
	if err := repo.exists(courseID); err != nil {
		return course.Course{}, err
	}
	_, err := repo.db.Exec(`
		INSERT INTO course_students (course_id, student_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, courseID, studentID)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "adding student")
	}
	if err = repo.refreshEnrolledCount(courseID); err != nil {
		return course.Course{}, err
	}
	return repo.get(courseID)
}

func (repo *courseRepository) RemoveStudent(courseID, studentID string) (course.Course, error) {
	if err := repo.exists(courseID); err != nil {
		return course.Course{}, err
	}
	_, err := repo.db.Exec(`DELETE FROM course_students WHERE course_id = $1 AND student_id = $2`, courseID, studentID)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "removing student")
	}
	if err = repo.refreshEnrolledCount(courseID); err != nil {
		return course.Course{}, err
	}
	return repo.get(courseID)
}

func (repo *courseRepository) AddAssistant(courseID, teacherID string) (course.Course, error) {
	if err := repo.exists(courseID); err != nil {
		return course.Course{}, err
	}
	_, err := repo.db.Exec(`
		INSERT INTO course_assistants (course_id, teacher_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, courseID, teacherID)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "adding assistant")
	}
	return repo.get(courseID)
}

func (repo *courseRepository) RemoveAssistant(courseID, teacherID string) (course.Course, error) {
	if err := repo.exists(courseID); err != nil {
		return course.Course{}, err
	}
	_, err := repo.db.Exec(`DELETE FROM course_assistants WHERE course_id = $1 AND teacher_id = $2`, courseID, teacherID)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "removing assistant")
	}
	return repo.get(courseID)
}

func (repo *courseRepository) AddPrerequisite(courseID, prerequisiteID string) (course.Course, error) {
	if err := repo.exists(courseID); err != nil {
		return course.Course{}, err
	}
	_, err := repo.db.Exec(`
		INSERT INTO course_prerequisites (course_id, prerequisite_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, courseID, prerequisiteID)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "adding prerequisite")
	}
	return repo.get(courseID)
}

func (repo *courseRepository) RemovePrerequisite(courseID, prerequisiteID string) (course.Course, error) {
	if err := repo.exists(courseID); err != nil {
		return course.Course{}, err
	}
	_, err := repo.db.Exec(`DELETE FROM course_prerequisites WHERE course_id = $1 AND prerequisite_id = $2`, courseID, prerequisiteID)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "removing prerequisite")
	}
	return repo.get(courseID)
}

func (repo *courseRepository) exists(id string) error {
	ok, err := repo.CourseExists(id)
	if err != nil {
		return err
	}
	if !ok {
		return course.ErrNotFound
	}
	return nil
}
