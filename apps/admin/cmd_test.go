package main

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/shulehub/shule/core/student"
	"github.com/shulehub/shule/core/teacher"
	inmemdb "github.com/shulehub/shule/storage/database/inmem"
	testutil "github.com/shulehub/shule/tests"
)

var (
	tchRepo teacher.Repository
	stdRepo student.Repository
)

func setup(t *testing.T) *commandLine {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	tchRepo = inmemdb.NewTeacherRepository(db)
	stdRepo = inmemdb.NewStudentRepository(db)

	return &commandLine{
		teacherRepo: tchRepo,
		studentRepo: stdRepo,
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(db *sqlx.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: create NAME [go|sql]"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "course", "sql"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	tch := testutil.CreateTeacher(t, tchRepo, "Ama", "Mensah", "ama@shule.test", "mdr")
	std := testutil.CreateStudent(t, stdRepo, "Kofi", "Owusu", "kofi@shule.test", "STD-001", "mdr")

	type extra struct {
		pwd     string
		student bool
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.cd"}, wantErr: errHelp},
		{name: "teacher not found", args: []string{"resetpassword", "-email", "lol@test.cd"}, extra: extra{pwd: "lol"}, wantErr: teacher.ErrNotFound},
		{name: "student not found", args: []string{"resetpassword", "-kind", "student", "-email", "lol@test.cd"}, extra: extra{pwd: "lol"}, wantErr: student.ErrNotFound},
		{name: "unknown kind", args: []string{"resetpassword", "-kind", "janitor", "-email", tch.Email}, extra: extra{pwd: "lol"}, wantErrStr: "\"janitor\": unknown account kind"},
		{name: "reset teacher", args: []string{"resetpassword", "-email", tch.Email}, extra: extra{pwd: "lol"}},
		{name: "reset student", args: []string{"resetpassword", "-kind", "student", "-email", std.Email}, extra: extra{pwd: "lmao", student: true}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				if extra, _ := tt.extra.(extra); extra.student {
					refreshed, err := stdRepo.GetStudentByID(std.ID)
					if err != nil {
						t.Fatalf("GetStudentByID() failed: %v", err)
					}
					if bytes.Equal(refreshed.PasswordHash, std.PasswordHash) {
						t.Error("failed to update new password")
					}
				} else {
					refreshed, err := tchRepo.GetTeacherByID(tch.ID)
					if err != nil {
						t.Fatalf("GetTeacherByID() failed: %v", err)
					}
					if bytes.Equal(refreshed.PasswordHash, tch.PasswordHash) {
						t.Error("failed to update new password")
					}
				}
			} else if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			} else if tt.wantErrStr != "" {
				if err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
				}
			} else {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
		})
	}
}

func Test_commandLine_addTeacher(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cret!"), nil }

	args := []string{"admin", "addteacher", "-email", "head@shule.test", "-firstname", "Esi", "-lastname", "Mensah", "-head"}
	if err := cli.run(args); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}

	tch, err := tchRepo.GetTeacherByEmail("head@shule.test")
	if err != nil {
		t.Fatalf("GetTeacherByEmail() failed: %v", err)
	}
	if tch.Role != teacher.RoleHeadTeacher {
		t.Errorf("Role = %s, want %s", tch.Role, teacher.RoleHeadTeacher)
	}
	if err := tch.CheckPassword("s3cret!"); err != nil {
		t.Error("failed to set password")
	}

	// running again updates the existing account in place
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("n3wSecret!"), nil }
	if err := cli.run(args); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	updated, err := tchRepo.GetTeacherByEmail("head@shule.test")
	if err != nil {
		t.Fatalf("GetTeacherByEmail() failed: %v", err)
	}
	if updated.ID != tch.ID {
		t.Errorf("expected the same account, got a new one")
	}
	if err := updated.CheckPassword("n3wSecret!"); err != nil {
		t.Error("failed to update password")
	}
}
