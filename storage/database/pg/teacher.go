package pgdb

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/teacher"
)

type teacherRepository struct {
	db *sqlx.DB
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *sqlx.DB) *teacherRepository {
	return &teacherRepository{db: db}
}

type teacherRow struct {
	ID             string         `db:"id"`
	FirstName      string         `db:"first_name"`
	LastName       string         `db:"last_name"`
	Email          string         `db:"email"`
	PasswordHash   []byte         `db:"password_hash"`
	Role           string         `db:"role"`
	Status         string         `db:"status"`
	Subjects       pq.StringArray `db:"subjects"`
	Classes        pq.StringArray `db:"classes"`
	PhoneNumber    string         `db:"phone_number"`
	ProfilePicture string         `db:"profile_picture"`
	DateOfBirth    sql.NullTime   `db:"date_of_birth"`
	Street         string         `db:"street"`
	City           string         `db:"city"`
	State          string         `db:"state"`
	ZipCode        string         `db:"zip_code"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func newTeacherRow(tch teacher.Teacher) teacherRow {
	row := teacherRow{
		ID:             tch.ID,
		FirstName:      tch.FirstName,
		LastName:       tch.LastName,
		Email:          tch.Email,
		PasswordHash:   tch.PasswordHash,
		Role:           tch.Role,
		Status:         tch.Status,
		Subjects:       tch.Subjects,
		Classes:        tch.Classes,
		PhoneNumber:    tch.PhoneNumber,
		ProfilePicture: tch.ProfilePicture,
		Street:         tch.Address.Street,
		City:           tch.Address.City,
		State:          tch.Address.State,
		ZipCode:        tch.Address.ZipCode,
		CreatedAt:      tch.CreatedAt,
		UpdatedAt:      tch.UpdatedAt,
	}
	if row.Subjects == nil {
		row.Subjects = pq.StringArray{}
	}
	if row.Classes == nil {
		row.Classes = pq.StringArray{}
	}
	if !tch.DateOfBirth.IsZero() {
		row.DateOfBirth = sql.NullTime{Time: tch.DateOfBirth, Valid: true}
	}
	return row
}

func (row teacherRow) teacher() teacher.Teacher {
	return teacher.Teacher{
		ID:             row.ID,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		Email:          row.Email,
		PasswordHash:   row.PasswordHash,
		Role:           row.Role,
		Status:         row.Status,
		Subjects:       row.Subjects,
		Classes:        row.Classes,
		PhoneNumber:    row.PhoneNumber,
		ProfilePicture: row.ProfilePicture,
		DateOfBirth:    row.DateOfBirth.Time,
		Address: teacher.Address{
			Street:  row.Street,
			City:    row.City,
			State:   row.State,
			ZipCode: row.ZipCode,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (repo *teacherRepository) get(id string) (teacher.Teacher, error) {
	var row teacherRow
	if err := repo.db.Get(&row, `SELECT * FROM teachers WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "getting teacher")
	}
	return row.teacher(), nil
}

func (repo *teacherRepository) CheckEmailUniqueness(email string, excludedTeachers ...teacher.Teacher) error {
	query := `SELECT COUNT(*) FROM teachers WHERE email = $1`
	args := []interface{}{email}
	if len(excludedTeachers) > 0 {
		ids := make([]string, 0, len(excludedTeachers))
		for _, tch := range excludedTeachers {
			ids = append(ids, tch.ID)
		}
		query += ` AND NOT (id = ANY($2))`
		args = append(args, pq.StringArray(ids))
	}

	var count int
	if err := repo.db.Get(&count, query, args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return teacher.ErrEmailExists
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	tch.ID = uuid.NewString()
	row := newTeacherRow(tch)
	_, err := repo.db.NamedExec(`
		INSERT INTO teachers (
			id, first_name, last_name, email, password_hash, role, status, subjects, classes,
			phone_number, profile_picture, date_of_birth, street, city, state, zip_code,
			created_at, updated_at
		) VALUES (
			:id, :first_name, :last_name, :email, :password_hash, :role, :status, :subjects, :classes,
			:phone_number, :profile_picture, :date_of_birth, :street, :city, :state, :zip_code,
			:created_at, :updated_at
		)`, row)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "creating teacher")
	}
	return tch, nil
}

func (repo *teacherRepository) QueryAllTeachers() ([]teacher.Teacher, error) {
	var rows []teacherRow
	if err := repo.db.Select(&rows, `SELECT * FROM teachers ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}

	teachers := make([]teacher.Teacher, 0, len(rows))
	for _, row := range rows {
		teachers = append(teachers, row.teacher())
	}
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(id string) (teacher.Teacher, error) {
	return repo.get(id)
}

func (repo *teacherRepository) GetTeacherByEmail(email string) (teacher.Teacher, error) {
	var row teacherRow
	if err := repo.db.Get(&row, `SELECT * FROM teachers WHERE email = $1`, email); err != nil {
		if err == sql.ErrNoRows {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "getting teacher")
	}
	return row.teacher(), nil
}

func (repo *teacherRepository) TeacherExists(id string) (bool, error) {
	var exists bool
	err := repo.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM teachers WHERE id = $1)`, id)
	return exists, errors.Wrap(err, "checking teacher")
}

func (repo *teacherRepository) UpdateTeacher(tch teacher.Teacher) (teacher.Teacher, error) {
	row := newTeacherRow(tch)
	res, err := repo.db.NamedExec(`
		UPDATE teachers SET
			first_name = :first_name, last_name = :last_name, email = :email,
			password_hash = :password_hash, role = :role, status = :status,
			subjects = :subjects, classes = :classes, phone_number = :phone_number,
			profile_picture = :profile_picture, date_of_birth = :date_of_birth,
			street = :street, city = :city, state = :state, zip_code = :zip_code,
			updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "updating teacher")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	return repo.get(tch.ID)
}

func (repo *teacherRepository) UpdateTeacherStatus(id, status string) (teacher.Teacher, error) {
	res, err := repo.db.Exec(`UPDATE teachers SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "updating teacher status")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	return repo.get(id)
}

func (repo *teacherRepository) DeleteTeacher(id string) error {
	res, err := repo.db.Exec(`DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return teacher.ErrNotFound
	}
	return nil
}

func (repo *teacherRepository) AddSubject(teacherID, subject string) (teacher.Teacher, error) {
	_, err := repo.db.Exec(`
		UPDATE teachers SET subjects = array_append(subjects, $1), updated_at = $2
		WHERE id = $3 AND NOT ($1 = ANY(subjects))`, subject, time.Now().UTC(), teacherID)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "adding subject")
	}
	return repo.get(teacherID)
}

func (repo *teacherRepository) RemoveSubject(teacherID, subject string) (teacher.Teacher, error) {
	_, err := repo.db.Exec(`
		UPDATE teachers SET subjects = array_remove(subjects, $1), updated_at = $2
		WHERE id = $3`, subject, time.Now().UTC(), teacherID)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "removing subject")
	}
	return repo.get(teacherID)
}

func (repo *teacherRepository) AddClass(teacherID, classID string) (teacher.Teacher, error) {
	_, err := repo.db.Exec(`
		UPDATE teachers SET classes = array_append(classes, $1), updated_at = $2
		WHERE id = $3 AND NOT ($1 = ANY(classes))`, classID, time.Now().UTC(), teacherID)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "adding class")
	}
	return repo.get(teacherID)
}

func (repo *teacherRepository) RemoveClass(teacherID, classID string) (teacher.Teacher, error) {
	_, err := repo.db.Exec(`
		UPDATE teachers SET classes = array_remove(classes, $1), updated_at = $2
		WHERE id = $3`, classID, time.Now().UTC(), teacherID)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "removing class")
	}
	return repo.get(teacherID)
}
