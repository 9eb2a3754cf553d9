package pgdb

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

type studentRow struct {
	ID                   string       `db:"id"`
	FirstName            string       `db:"first_name"`
	LastName             string       `db:"last_name"`
	Email                string       `db:"email"`
	StudentID            string       `db:"student_id"`
	PasswordHash         []byte       `db:"password_hash"`
	Role                 string       `db:"role"`
	Status               string       `db:"status"`
	DateOfBirth          sql.NullTime `db:"date_of_birth"`
	Gender               string       `db:"gender"`
	PhoneNumber          string       `db:"phone_number"`
	Street               string       `db:"street"`
	City                 string       `db:"city"`
	State                string       `db:"state"`
	ZipCode              string       `db:"zip_code"`
	Country              string       `db:"country"`
	EnrollmentDate       time.Time    `db:"enrollment_date"`
	Class                string       `db:"class"`
	GuardianFirstName    string       `db:"guardian_first_name"`
	GuardianLastName     string       `db:"guardian_last_name"`
	GuardianEmail        string       `db:"guardian_email"`
	GuardianPhoneNumber  string       `db:"guardian_phone_number"`
	GuardianRelationship string       `db:"guardian_relationship"`
	ProfilePicture       string       `db:"profile_picture"`
	IsEmailVerified      bool         `db:"is_email_verified"`
	LastLogin            sql.NullTime `db:"last_login"`
	CreatedAt            time.Time    `db:"created_at"`
	UpdatedAt            time.Time    `db:"updated_at"`
}

func newStudentRow(std student.Student) studentRow {
	row := studentRow{
		ID:                   std.ID,
		FirstName:            std.FirstName,
		LastName:             std.LastName,
		Email:                std.Email,
		StudentID:            std.StudentID,
		PasswordHash:         std.PasswordHash,
		Role:                 std.Role,
		Status:               std.Status,
		Gender:               std.Gender,
		PhoneNumber:          std.PhoneNumber,
		Street:               std.Address.Street,
		City:                 std.Address.City,
		State:                std.Address.State,
		ZipCode:              std.Address.ZipCode,
		Country:              std.Address.Country,
		EnrollmentDate:       std.EnrollmentDate,
		Class:                std.Class,
		GuardianFirstName:    std.Guardian.FirstName,
		GuardianLastName:     std.Guardian.LastName,
		GuardianEmail:        std.Guardian.Email,
		GuardianPhoneNumber:  std.Guardian.PhoneNumber,
		GuardianRelationship: std.Guardian.Relationship,
		ProfilePicture:       std.ProfilePicture,
		IsEmailVerified:      std.IsEmailVerified,
		CreatedAt:            std.CreatedAt,
		UpdatedAt:            std.UpdatedAt,
	}
	if !std.DateOfBirth.IsZero() {
		row.DateOfBirth = sql.NullTime{Time: std.DateOfBirth, Valid: true}
	}
	if !std.LastLogin.IsZero() {
		row.LastLogin = sql.NullTime{Time: std.LastLogin, Valid: true}
	}
	return row
}

func (row studentRow) student() student.Student {
	return student.Student{
		ID:           row.ID,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Email:        row.Email,
		StudentID:    row.StudentID,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		Status:       row.Status,
		DateOfBirth:  row.DateOfBirth.Time,
		Gender:       row.Gender,
		PhoneNumber:  row.PhoneNumber,
		Address: student.Address{
			Street:  row.Street,
			City:    row.City,
			State:   row.State,
			ZipCode: row.ZipCode,
			Country: row.Country,
		},
		EnrollmentDate: row.EnrollmentDate,
		Class:          row.Class,
		Guardian: student.Guardian{
			FirstName:    row.GuardianFirstName,
			LastName:     row.GuardianLastName,
			Email:        row.GuardianEmail,
			PhoneNumber:  row.GuardianPhoneNumber,
			Relationship: row.GuardianRelationship,
		},
		ProfilePicture:  row.ProfilePicture,
		IsEmailVerified: row.IsEmailVerified,
		LastLogin:       row.LastLogin.Time,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func (repo *studentRepository) populate(std student.Student) (student.Student, error) {
	courses := []student.CourseRef{}
	err := repo.db.Select(&courses, `
		SELECT c.id, c.title, c.code
		FROM student_courses sc
		JOIN courses c ON c.id = sc.course_id
		WHERE sc.student_id = $1`, std.ID)
	if err != nil {
		return std, errors.Wrap(err, "loading courses")
	}
	std.Courses = courses
	return std, nil
}

func (repo *studentRepository) get(id string) (student.Student, error) {
	var row studentRow
	if err := repo.db.Get(&row, `SELECT * FROM students WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return repo.populate(row.student())
}

func (repo *studentRepository) CheckUniqueness(email, studentID string, excludedStudents ...student.Student) error {
	excl := make(map[string]bool, len(excludedStudents))
	for _, std := range excludedStudents {
		excl[std.ID] = true
	}

	var rows []struct {
		ID        string `db:"id"`
		Email     string `db:"email"`
		StudentID string `db:"student_id"`
	}
	err := repo.db.Select(&rows, `SELECT id, email, student_id FROM students WHERE email = $1 OR student_id = $2`, email, studentID)
	if err != nil {
		return errors.Wrap(err, "checking uniqueness")
	}
	for _, row := range rows {
		if excl[row.ID] {
			continue
		}
		if row.Email == email {
			return student.ErrEmailExists
		}
		if row.StudentID == studentID {
			return student.ErrStudentIDExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(std student.Student) (student.Student, error) {
	std.ID = uuid.NewString()
	row := newStudentRow(std)
	_, err := repo.db.NamedExec(`
		INSERT INTO students (
			id, first_name, last_name, email, student_id, password_hash, role, status,
			date_of_birth, gender, phone_number, street, city, state, zip_code, country,
			enrollment_date, class, guardian_first_name, guardian_last_name, guardian_email,
			guardian_phone_number, guardian_relationship, profile_picture, is_email_verified,
			last_login, created_at, updated_at
		) VALUES (
			:id, :first_name, :last_name, :email, :student_id, :password_hash, :role, :status,
			:date_of_birth, :gender, :phone_number, :street, :city, :state, :zip_code, :country,
			:enrollment_date, :class, :guardian_first_name, :guardian_last_name, :guardian_email,
			:guardian_phone_number, :guardian_relationship, :profile_picture, :is_email_verified,
			:last_login, :created_at, :updated_at
		)`, row)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	return repo.populate(std)
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.Select(&rows, `SELECT * FROM students ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		std, err := repo.populate(row.student())
		if err != nil {
			return nil, err
		}
		students = append(students, std)
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	return repo.get(id)
}

func (repo *studentRepository) GetStudentByEmail(email string) (student.Student, error) {
	var row studentRow
	if err := repo.db.Get(&row, `SELECT * FROM students WHERE email = $1`, email); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return repo.populate(row.student())
}

func (repo *studentRepository) StudentExists(id string) (bool, error) {
	var exists bool
	err := repo.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM students WHERE id = $1)`, id)
	return exists, errors.Wrap(err, "checking student")
}

func (repo *studentRepository) UpdateStudent(std student.Student) (student.Student, error) {
	row := newStudentRow(std)
	res, err := repo.db.NamedExec(`
		UPDATE students SET
			first_name = :first_name, last_name = :last_name, email = :email,
			student_id = :student_id, password_hash = :password_hash, status = :status,
			date_of_birth = :date_of_birth, gender = :gender, phone_number = :phone_number,
			street = :street, city = :city, state = :state, zip_code = :zip_code,
			country = :country, enrollment_date = :enrollment_date, class = :class,
			guardian_first_name = :guardian_first_name, guardian_last_name = :guardian_last_name,
			guardian_email = :guardian_email, guardian_phone_number = :guardian_phone_number,
			guardian_relationship = :guardian_relationship, profile_picture = :profile_picture,
			is_email_verified = :is_email_verified, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.get(std.ID)
}

func (repo *studentRepository) UpdateStudentStatus(id, status string) (student.Student, error) {
	res, err := repo.db.Exec(`UPDATE students SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student status")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.get(id)
}

func (repo *studentRepository) DeleteStudent(id string) error {
	res, err := repo.db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.ErrNotFound
	}
	_, err = repo.db.Exec(`DELETE FROM student_courses WHERE student_id = $1`, id)
	return errors.Wrap(err, "deleting student courses")
}

func (repo *studentRepository) SetLastLogin(id string, at time.Time) error {
	res, err := repo.db.Exec(`UPDATE students SET last_login = $1 WHERE id = $2`, at, id)
	if err != nil {
		return errors.Wrap(err, "setting last login")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (repo *studentRepository) AddCourse(studentID, courseID string) (student.Student, error) {
	if err := repo.exists(studentID); err != nil {
		return student.Student{}, err
	}
	_, err := repo.db.Exec(`
		INSERT INTO student_courses (student_id, course_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, studentID, courseID)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "adding course")
	}
	return repo.get(studentID)
}

func (repo *studentRepository) RemoveCourse(studentID, courseID string) (student.Student, error) {
	if err := repo.exists(studentID); err != nil {
		return student.Student{}, err
	}
	_, err := repo.db.Exec(`DELETE FROM student_courses WHERE student_id = $1 AND course_id = $2`, studentID, courseID)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "removing course")
	}
	return repo.get(studentID)
}

func (repo *studentRepository) UpdateAddress(id string, addr student.Address) (student.Student, error) {
	res, err := repo.db.Exec(`
		UPDATE students SET street = $1, city = $2, state = $3, zip_code = $4, country = $5, updated_at = $6
		WHERE id = $7`,
		addr.Street, addr.City, addr.State, addr.ZipCode, addr.Country, time.Now().UTC(), id)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating address")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.get(id)
}

func (repo *studentRepository) UpdateGuardian(id string, grd student.Guardian) (student.Student, error) {
	res, err := repo.db.Exec(`
		UPDATE students SET guardian_first_name = $1, guardian_last_name = $2, guardian_email = $3,
			guardian_phone_number = $4, guardian_relationship = $5, updated_at = $6
		WHERE id = $7`,
		grd.FirstName, grd.LastName, grd.Email, grd.PhoneNumber, grd.Relationship, time.Now().UTC(), id)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating guardian")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return repo.get(id)
}

func (repo *studentRepository) AttachCourse(studentID, courseID string) error {
	if err := repo.exists(studentID); err != nil {
		return err
	}
	_, err := repo.db.Exec(`
		INSERT INTO student_courses (student_id, course_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, studentID, courseID)
	return errors.Wrap(err, "attaching course")
}

func (repo *studentRepository) DetachCourse(studentID, courseID string) error {
	if err := repo.exists(studentID); err != nil {
		return err
	}
	_, err := repo.db.Exec(`DELETE FROM student_courses WHERE student_id = $1 AND course_id = $2`, studentID, courseID)
	return errors.Wrap(err, "detaching course")
}

func (repo *studentRepository) DetachCourseFromAll(courseID string) error {
	_, err := repo.db.Exec(`DELETE FROM student_courses WHERE course_id = $1`, courseID)
	return errors.Wrap(err, "detaching course from students")
}

func (repo *studentRepository) exists(id string) error {
	ok, err := repo.StudentExists(id)
	if err != nil {
		return err
	}
	if !ok {
		return student.ErrNotFound
	}
	return nil
}
