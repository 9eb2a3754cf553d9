package pgdb

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/subject"
)

type subjectRepository struct {
	db *sqlx.DB
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *sqlx.DB) *subjectRepository {
	return &subjectRepository{db: db}
}

type subjectRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Code        string    `db:"code"`
	Description string    `db:"description"`
	Department  string    `db:"department"`
	Level       string    `db:"level"`
	CreditHours int       `db:"credit_hours"`
	Status      string    `db:"status"`
	IsElective  bool      `db:"is_elective"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func newSubjectRow(sub subject.Subject) subjectRow {
	return subjectRow{
		ID:          sub.ID,
		Name:        sub.Name,
		Code:        sub.Code,
		Description: sub.Description,
		Department:  sub.Department,
		Level:       sub.Level,
		CreditHours: sub.CreditHours,
		Status:      sub.Status,
		IsElective:  sub.IsElective,
		CreatedAt:   sub.CreatedAt,
		UpdatedAt:   sub.UpdatedAt,
	}
}

func (row subjectRow) subject() subject.Subject {
	return subject.Subject{
		ID:          row.ID,
		Name:        row.Name,
		Code:        row.Code,
		Description: row.Description,
		Department:  row.Department,
		Level:       row.Level,
		CreditHours: row.CreditHours,
		Status:      row.Status,
		IsElective:  row.IsElective,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func (repo *subjectRepository) populate(sub subject.Subject) (subject.Subject, error) {
	teachers := []subject.TeacherRef{}
	err := repo.db.Select(&teachers, `
		SELECT t.id, t.first_name AS firstname, t.last_name AS lastname, t.email
		FROM subject_teachers st
		JOIN teachers t ON t.id = st.teacher_id
		WHERE st.subject_id = $1`, sub.ID)
	if err != nil {
		return sub, errors.Wrap(err, "loading teachers")
	}
	sub.Teachers = teachers

	courses := []subject.CourseRef{}
	err = repo.db.Select(&courses, `
		SELECT c.id, c.title, c.code
		FROM subject_courses sc
		JOIN courses c ON c.id = sc.course_id
		WHERE sc.subject_id = $1`, sub.ID)
	if err != nil {
		return sub, errors.Wrap(err, "loading courses")
	}
	sub.Courses = courses

	prereqs := []subject.Ref{}
	err = repo.db.Select(&prereqs, `
		SELECT s.id, s.name, s.code
		FROM subject_prerequisites sp
		JOIN subjects s ON s.id = sp.prerequisite_id
		WHERE sp.subject_id = $1`, sub.ID)
	if err != nil {
		return sub, errors.Wrap(err, "loading prerequisites")
	}
	sub.Prerequisites = prereqs
	return sub, nil
}

func (repo *subjectRepository) get(id string) (subject.Subject, error) {
	var row subjectRow
	if err := repo.db.Get(&row, `SELECT * FROM subjects WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, errors.Wrap(err, "getting subject")
	}
	return repo.populate(row.subject())
}

func (repo *subjectRepository) CheckCodeUniqueness(code string, excludedSubjects ...subject.Subject) error {
	query := `SELECT COUNT(*) FROM subjects WHERE code = $1`
	args := []interface{}{code}
	if len(excludedSubjects) > 0 {
		ids := make([]string, 0, len(excludedSubjects))
		for _, sub := range excludedSubjects {
			ids = append(ids, sub.ID)
		}
		query += ` AND NOT (id = ANY($2))`
		args = append(args, pq.StringArray(ids))
	}

	var count int
	if err := repo.db.Get(&count, query, args...); err != nil {
		return errors.Wrap(err, "checking code uniqueness")
	}
	if count > 0 {
		return subject.ErrCodeExists
	}
	return nil
}

func (repo *subjectRepository) CreateSubject(sub subject.Subject) (subject.Subject, error) {
	sub.ID = uuid.NewString()
	row := newSubjectRow(sub)
	_, err := repo.db.NamedExec(`
		INSERT INTO subjects (
			id, name, code, description, department, level, credit_hours, status,
			is_elective, created_at, updated_at
		) VALUES (
			:id, :name, :code, :description, :department, :level, :credit_hours, :status,
			:is_elective, :created_at, :updated_at
		)`, row)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "creating subject")
	}
	return repo.populate(sub)
}

func (repo *subjectRepository) QueryAllSubjects() ([]subject.Subject, error) {
	var rows []subjectRow
	if err := repo.db.Select(&rows, `SELECT * FROM subjects ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}

	subjects := make([]subject.Subject, 0, len(rows))
	for _, row := range rows {
		sub, err := repo.populate(row.subject())
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, sub)
	}
	return subjects, nil
}

func (repo *subjectRepository) GetSubjectByID(id string) (subject.Subject, error) {
	return repo.get(id)
}

func (repo *subjectRepository) SubjectExists(id string) (bool, error) {
	var exists bool
	err := repo.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM subjects WHERE id = $1)`, id)
	return exists, errors.Wrap(err, "checking subject")
}

func (repo *subjectRepository) UpdateSubject(sub subject.Subject) (subject.Subject, error) {
	row := newSubjectRow(sub)
	res, err := repo.db.NamedExec(`
		UPDATE subjects SET
			name = :name, code = :code, description = :description, department = :department,
			level = :level, credit_hours = :credit_hours, status = :status,
			is_elective = :is_elective, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "updating subject")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return subject.Subject{}, subject.ErrNotFound
	}
	return repo.get(sub.ID)
}

func (repo *subjectRepository) UpdateSubjectStatus(id, status string) (subject.Subject, error) {
	res, err := repo.db.Exec(`UPDATE subjects SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "updating subject status")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return subject.Subject{}, subject.ErrNotFound
	}
	return repo.get(id)
}

func (repo *subjectRepository) DeleteSubject(id string) error {
	res, err := repo.db.Exec(`DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return subject.ErrNotFound
	}
	return nil
}

func (repo *subjectRepository) AddTeacher(subjectID, teacherID string) (subject.Subject, error) {
	if err := repo.exists(subjectID); err != nil {
		return subject.Subject{}, err
	}
	_, err := repo.db.Exec(`
		INSERT INTO subject_teachers (subject_id, teacher_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, subjectID, teacherID)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "adding teacher")
	}
	return repo.get(subjectID)
}

func (repo *subjectRepository) RemoveTeacher(subjectID, teacherID string) (subject.Subject, error) {
	if err := repo.exists(subjectID); err != nil {
		return subject.Subject{}, err
	}
	_, err := repo.db.Exec(`DELETE FROM subject_teachers WHERE subject_id = $1 AND teacher_id = $2`, subjectID, teacherID)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "removing teacher")
	}
	return repo.get(subjectID)
}

func (repo *subjectRepository) AddCourse(subjectID, courseID string) (subject.Subject, error) {
	if err := repo.exists(subjectID); err != nil {
		return subject.Subject{}, err
	}
	_, err := repo.db.Exec(`
		INSERT INTO subject_courses (subject_id, course_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, subjectID, courseID)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "adding course")
	}
	return repo.get(subjectID)
}

func (repo *subjectRepository) RemoveCourse(subjectID, courseID string) (subject.Subject, error) {
	if err := repo.exists(subjectID); err != nil {
		return subject.Subject{}, err
	}
	_, err := repo.db.Exec(`DELETE FROM subject_courses WHERE subject_id = $1 AND course_id = $2`, subjectID, courseID)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "removing course")
	}
	return repo.get(subjectID)
}

func (repo *subjectRepository) AddPrerequisite(subjectID, prerequisiteID string) (subject.Subject, error) {
	if err := repo.exists(subjectID); err != nil {
		return subject.Subject{}, err
	}
	_, err := repo.db.Exec(`
		INSERT INTO subject_prerequisites (subject_id, prerequisite_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, subjectID, prerequisiteID)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "adding prerequisite")
	}
	return repo.get(subjectID)
}

func (repo *subjectRepository) RemovePrerequisite(subjectID, prerequisiteID string) (subject.Subject, error) {
	if err := repo.exists(subjectID); err != nil {
		return subject.Subject{}, err
	}
	_, err := repo.db.Exec(`DELETE FROM subject_prerequisites WHERE subject_id = $1 AND prerequisite_id = $2`, subjectID, prerequisiteID)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "removing prerequisite")
	}
	return repo.get(subjectID)
}

func (repo *subjectRepository) exists(id string) error {
	ok, err := repo.SubjectExists(id)
	if err != nil {
		return err
	}
	if !ok {
		return subject.ErrNotFound
	}
	return nil
}
