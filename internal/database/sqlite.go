package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// sqliteDriverName is the database/sql driver used for DriverSQLite. It is
// go-sqlite3 with LOWER replaced by a Unicode-aware version, since the
// built-in one only folds ASCII letters.
const sqliteDriverName = "sqlite3_notes"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}
