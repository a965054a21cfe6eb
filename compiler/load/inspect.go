package load

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/syssam/laragen/schema"
	"github.com/syssam/laragen/schema/tag"
)

// Dialects supported by Inspect.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
)

// Inspect reads the base tables of a database schema from information_schema
// and returns them as table entities, sorted by name. An empty schema name
// means the current database on MySQL and "public" on PostgreSQL.
//
// Column types are reported as information_schema spells them; auto-increment
// primary keys become increments/bigIncrements and unsigned MySQL integers
// their unsigned Blueprint types. Single-column keys set the column flags,
// composite ones become primary/unique table tags. Literal column defaults
// become default tags.
func Inspect(ctx context.Context, db *sql.DB, dialect, name string) ([]*schema.Entity, error) {
	in := &inspector{db: db, dialect: dialect, schema: name}
	switch dialect {
	case MySQL:
		if in.schema == "" {
			if err := db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&in.schema); err != nil {
				return nil, fmt.Errorf("load: current database: %w", err)
			}
		}
	case Postgres:
		if in.schema == "" {
			in.schema = "public"
		}
	default:
		return nil, fmt.Errorf("load: unsupported dialect %q; use mysql or postgres", dialect)
	}
	return in.inspect(ctx)
}

type inspector struct {
	db      *sql.DB
	dialect string
	schema  string

	tables map[string]*schema.Entity
}

func (in *inspector) inspect(ctx context.Context) ([]*schema.Entity, error) {
	in.tables = make(map[string]*schema.Entity)
	var names []string
	err := in.query(ctx, tablesQuery, func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		names = append(names, name)
		in.tables[name] = &schema.Entity{Kind: schema.KindTable, Name: name}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load: query tables: %w", err)
	}
	if err := in.columns(ctx); err != nil {
		return nil, fmt.Errorf("load: query columns: %w", err)
	}
	if err := in.keys(ctx); err != nil {
		return nil, fmt.Errorf("load: query keys: %w", err)
	}
	if err := in.foreignKeys(ctx); err != nil {
		return nil, fmt.Errorf("load: query foreign keys: %w", err)
	}

	sort.Strings(names)
	entities := make([]*schema.Entity, len(names))
	for i, name := range names {
		entities[i] = in.tables[name]
	}
	return entities, nil
}

const tablesQuery = `SELECT table_name FROM information_schema.tables
WHERE table_schema = ? AND table_type = 'BASE TABLE'
ORDER BY table_name`

const mysqlColumnsQuery = `SELECT table_name, column_name, data_type, column_type,
character_maximum_length, is_nullable, extra, column_default
FROM information_schema.columns
WHERE table_schema = ?
ORDER BY table_name, ordinal_position`

// PostgreSQL has no column_type or extra; serial columns default to nextval.
const postgresColumnsQuery = `SELECT table_name, column_name, data_type, data_type,
character_maximum_length, is_nullable, COALESCE(column_default, ''), column_default
FROM information_schema.columns
WHERE table_schema = ?
ORDER BY table_name, ordinal_position`

func (in *inspector) columns(ctx context.Context) error {
	query := mysqlColumnsQuery
	if in.dialect == Postgres {
		query = postgresColumnsQuery
	}
	return in.query(ctx, query, func(rows *sql.Rows) error {
		var (
			table, name, dataType, columnType, nullable, extra string
			length                                             sql.NullInt64
			def                                                sql.NullString
		)
		if err := rows.Scan(&table, &name, &dataType, &columnType, &length, &nullable, &extra, &def); err != nil {
			return err
		}
		t, ok := in.tables[table]
		if !ok {
			// A view.
			return nil
		}
		c := &schema.Column{
			Name:     name,
			Type:     columnKind(dataType, columnType, extra),
			Nullable: strings.EqualFold(nullable, "YES"),
		}
		if length.Valid && hasLength(dataType) {
			c.Length = int(length.Int64)
		}
		if def.Valid {
			if v, ok := in.defaultLiteral(dataType, extra, def.String); ok {
				c.Tags = append(c.Tags, tag.New("default", v))
			}
		}
		t.Columns = append(t.Columns, c)
		return nil
	})
}

// columnKind returns the column type reported to the generator.
func columnKind(dataType, columnType, extra string) string {
	dataType = strings.ToLower(dataType)
	extra = strings.ToLower(extra)
	unsigned := strings.Contains(strings.ToLower(columnType), "unsigned")
	big := dataType == "bigint"
	switch {
	case strings.Contains(extra, "auto_increment"), strings.HasPrefix(extra, "nextval("):
		if big {
			return "bigIncrements"
		}
		return "increments"
	case unsigned && big:
		return "unsignedBigInteger"
	case unsigned && (dataType == "int" || dataType == "integer"):
		return "unsignedInteger"
	}
	return dataType
}

// defaultLiteral renders a column default as a PHP literal. NULL and
// expression defaults (sequences, CURRENT_TIMESTAMP, function calls) have no
// literal and are dropped.
func (in *inspector) defaultLiteral(dataType, extra, raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if in.dialect == Postgres {
		// 'x'::character varying
		if i := strings.LastIndex(v, "::"); i > 0 && !strings.Contains(v[i:], "'") {
			v = v[:i]
		}
		if strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")") {
			v = v[1 : len(v)-1]
		}
	} else if strings.Contains(strings.ToLower(extra), "default_generated") {
		return "", false
	}
	switch {
	case strings.EqualFold(v, "null"):
		return "", false
	case len(v) >= 2 && strings.HasPrefix(v, "'") && strings.HasSuffix(v, "'"):
		return phpString(strings.ReplaceAll(v[1:len(v)-1], "''", "'")), true
	case isNumber(v):
		return v, true
	case strings.EqualFold(v, "true"), strings.EqualFold(v, "false"):
		return strings.ToLower(v), true
	case in.dialect == Postgres:
		return "", false
	}
	// MySQL 8 reports string defaults unquoted.
	upper := strings.ToUpper(v)
	if strings.HasPrefix(upper, "CURRENT_") || strings.Contains(v, "(") || isNumeric(dataType) {
		return "", false
	}
	return phpString(v), true
}

func isNumber(s string) bool {
	if s == "" || strings.Trim(s, "0123456789.+-eE") != "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isNumeric(dataType string) bool {
	switch strings.ToLower(dataType) {
	case "tinyint", "smallint", "mediumint", "int", "integer", "bigint",
		"decimal", "numeric", "float", "double", "real", "bit":
		return true
	}
	return false
}

// phpString quotes s as a single-quoted PHP string.
func phpString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

// hasLength reports whether the Blueprint method of a type takes a length.
func hasLength(dataType string) bool {
	switch strings.ToLower(dataType) {
	case "varchar", "char", "character varying", "character":
		return true
	}
	return false
}

const keysQuery = `SELECT kcu.table_name, kcu.column_name, tc.constraint_type, tc.constraint_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
ON tc.constraint_schema = kcu.constraint_schema
AND tc.constraint_name = kcu.constraint_name
AND tc.table_name = kcu.table_name
WHERE tc.table_schema = ? AND tc.constraint_type IN ('PRIMARY KEY', 'UNIQUE')
ORDER BY kcu.table_name, tc.constraint_name, kcu.ordinal_position`

// key is one primary or unique constraint.
type key struct {
	table, kind string
	columns     []string
}

func (in *inspector) keys(ctx context.Context) error {
	var (
		order []string
		keys  = make(map[string]*key)
	)
	err := in.query(ctx, keysQuery, func(rows *sql.Rows) error {
		var table, column, kind, name string
		if err := rows.Scan(&table, &column, &kind, &name); err != nil {
			return err
		}
		id := table + "." + name
		k, ok := keys[id]
		if !ok {
			k = &key{table: table, kind: kind}
			keys[id] = k
			order = append(order, id)
		}
		k.columns = append(k.columns, column)
		return nil
	})
	if err != nil {
		return err
	}
	for _, id := range order {
		k := keys[id]
		t, ok := in.tables[k.table]
		if !ok {
			continue
		}
		if len(k.columns) > 1 {
			name := "unique"
			if k.kind == "PRIMARY KEY" {
				name = "primary"
			}
			t.Tags = append(t.Tags, tag.New(name, columnList(k.columns)))
			continue
		}
		c := column(t, k.columns[0])
		if c == nil {
			continue
		}
		if k.kind == "PRIMARY KEY" {
			c.PrimaryKey = true
		} else {
			c.Unique = true
		}
	}
	return nil
}

// columnList renders column names as a PHP array literal.
func columnList(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = "'" + c + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

const mysqlForeignKeysQuery = `SELECT kcu.table_name, kcu.column_name,
kcu.referenced_table_name, kcu.referenced_column_name, rc.delete_rule
FROM information_schema.key_column_usage kcu
JOIN information_schema.referential_constraints rc
ON rc.constraint_schema = kcu.constraint_schema
AND rc.constraint_name = kcu.constraint_name
WHERE kcu.table_schema = ? AND kcu.referenced_table_name IS NOT NULL
ORDER BY kcu.table_name, kcu.ordinal_position`

const postgresForeignKeysQuery = `SELECT kcu.table_name, kcu.column_name,
ccu.table_name, ccu.column_name, rc.delete_rule
FROM information_schema.referential_constraints rc
JOIN information_schema.key_column_usage kcu
ON rc.constraint_schema = kcu.constraint_schema
AND rc.constraint_name = kcu.constraint_name
JOIN information_schema.constraint_column_usage ccu
ON rc.unique_constraint_schema = ccu.constraint_schema
AND rc.unique_constraint_name = ccu.constraint_name
WHERE kcu.table_schema = ?
ORDER BY kcu.table_name, kcu.ordinal_position`

func (in *inspector) foreignKeys(ctx context.Context) error {
	query := mysqlForeignKeysQuery
	if in.dialect == Postgres {
		query = postgresForeignKeysQuery
	}
	return in.query(ctx, query, func(rows *sql.Rows) error {
		var table, name, refTable, refColumn, rule string
		if err := rows.Scan(&table, &name, &refTable, &refColumn, &rule); err != nil {
			return err
		}
		t, ok := in.tables[table]
		if !ok {
			return nil
		}
		c := column(t, name)
		if c == nil {
			return nil
		}
		c.ForeignKey = true
		c.Reference = &schema.Reference{Table: refTable, Column: refColumn}
		if rule = strings.ToLower(rule); rule != "" && rule != "cascade" {
			c.Tags = append(c.Tags, tag.New("onDelete", rule))
		}
		return nil
	})
}

func column(t *schema.Entity, name string) *schema.Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// query runs a schema-bound query and calls scan for each row.
func (in *inspector) query(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := in.db.QueryContext(ctx, in.rebind(query), in.schema)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// rebind rewrites ? placeholders to the numbered form PostgreSQL expects.
func (in *inspector) rebind(query string) string {
	if in.dialect != Postgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteString("$" + strconv.Itoa(n))
	}
	return b.String()
}
