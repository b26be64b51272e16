package sinks

import (
	"context"
	"database/sql"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/util"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)

// DefaultSQLTable is the table records go in unless an SQL says
// otherwise.
const DefaultSQLTable = "records"

// sqlDialect has the statements for one database/sql driver.  Each
// statement has "{table}" where the table name goes.
type sqlDialect struct {
	create string
	insert string
	scan   string
}

var sqlDialects = map[string]sqlDialect{
	"sqlite": {
		create: `CREATE TABLE IF NOT EXISTS {table} (iteration INTEGER PRIMARY KEY, field_group TEXT, record TEXT NOT NULL)`,
		insert: `INSERT OR REPLACE INTO {table} (iteration, field_group, record) VALUES (?, ?, ?)`,
		scan:   `SELECT iteration, record FROM {table} ORDER BY iteration`,
	},
	"pgx": {
		create: `CREATE TABLE IF NOT EXISTS {table} (iteration BIGINT PRIMARY KEY, field_group TEXT, record JSONB NOT NULL)`,
		insert: `INSERT INTO {table} (iteration, field_group, record) VALUES ($1, $2, $3) ` +
			`ON CONFLICT (iteration) DO UPDATE SET field_group = EXCLUDED.field_group, record = EXCLUDED.record`,
		scan: `SELECT iteration, record::text FROM {table} ORDER BY iteration`,
	},
	"sqlserver": {
		create: `IF OBJECT_ID(N'{table}', N'U') IS NULL CREATE TABLE {table} (iteration BIGINT PRIMARY KEY, field_group NVARCHAR(255), record NVARCHAR(MAX) NOT NULL)`,
		insert: `INSERT INTO {table} (iteration, field_group, record) VALUES (@p1, @p2, @p3)`,
		scan:   `SELECT iteration, record FROM {table} ORDER BY iteration`,
	},
}

// SQLDrivers returns the names of the supported database/sql
// drivers.
func SQLDrivers() []string {
	return []string{"pgx", "sqlite", "sqlserver"}
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQL stores records in a database table, one row per iteration.
//
// A row has the iteration, the field group (if any) and the
// record's JSON.
type SQL struct {
	Table string

	driver  string
	dialect sqlDialect
	db      *sql.DB
}

// OpenSQL connects to the database and creates the table if it's
// not there.
func OpenSQL(ctx context.Context, driver, dsn, table string) (*SQL, error) {
	dialect, have := sqlDialects[driver]
	if !have {
		return nil, core.Configf("unknown SQL driver %q (want one of %s)", driver, strings.Join(SQLDrivers(), ", "))
	}
	if table == "" {
		table = DefaultSQLTable
	}
	if !tableName.MatchString(table) {
		return nil, core.Configf("bad SQL table name %q", table)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, &core.ResourceError{Resource: driver, Err: err}
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &core.ResourceError{Resource: driver, Err: err}
	}
	s := &SQL{
		Table:   table,
		driver:  driver,
		dialect: dialect,
		db:      db,
	}
	if _, err = db.ExecContext(ctx, s.statement(dialect.create)); err != nil {
		db.Close()
		return nil, &core.ResourceError{Resource: driver + ":" + table, Err: err}
	}
	return s, nil
}

func (s *SQL) statement(template string) string {
	return strings.ReplaceAll(template, "{table}", s.Table)
}

// Close closes the database.
func (s *SQL) Close() error {
	return s.db.Close()
}

// Record inserts the record.
func (s *SQL) Record(ctx context.Context, r *core.Record) error {
	js, err := r.MarshalOrderedJSON()
	if err != nil {
		return err
	}
	util.Logf("sql %s insert %d", s.driver, r.Iteration)
	var group interface{}
	if r.Group != "" {
		group = r.Group
	}
	if _, err = s.db.ExecContext(ctx, s.statement(s.dialect.insert), r.Iteration, group, string(js)); err != nil {
		return &core.ResourceError{Resource: s.driver + ":" + s.Table, Err: err}
	}
	return nil
}

// Each calls the function with the stored records' values in
// iteration order until the function returns an error.
func (s *SQL) Each(ctx context.Context, f func(iteration int, values map[string]interface{}) error) error {
	rows, err := s.db.QueryContext(ctx, s.statement(s.dialect.scan))
	if err != nil {
		return &core.ResourceError{Resource: s.driver + ":" + s.Table, Err: err}
	}
	defer rows.Close()
	for rows.Next() {
		var (
			i  int
			js string
		)
		if err := rows.Scan(&i, &js); err != nil {
			return err
		}
		var values map[string]interface{}
		if err := json.Unmarshal([]byte(js), &values); err != nil {
			return err
		}
		if err := f(i, values); err != nil {
			return err
		}
	}
	return rows.Err()
}
