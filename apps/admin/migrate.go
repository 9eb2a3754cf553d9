package main

import (
	"github.com/shulehub/shule/storage/database"
)

var gooseRunFunc = database.MigrateCommand // mockable

func (cli *commandLine) migrate(command string, args ...string) error {
	return gooseRunFunc(cli.db, command, args...)
}
