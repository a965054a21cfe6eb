package gen

import (
	"fmt"
	"strings"
	"time"

	"github.com/syssam/laragen/compiler/php"
	"github.com/syssam/laragen/schema"
	"github.com/syssam/laragen/schema/tag"
)

// MigrationTranslator builds schema-migration classes from table entities.
type MigrationTranslator struct {
	cfg *Config
}

// NewMigrationTranslator returns a translator using cfg; nil means defaults.
func NewMigrationTranslator(cfg *Config) *MigrationTranslator {
	if cfg == nil {
		cfg, _ = NewConfig()
	}
	return &MigrationTranslator{cfg: cfg}
}

// Name implements Translator.
func (*MigrationTranslator) Name() string { return "migration" }

// Translate implements Translator, stamping the file name with the
// configured clock.
func (t *MigrationTranslator) Translate(e *schema.Entity) (*Unit, error) {
	return t.TranslateAt(e, t.cfg.Clock())
}

// TranslateAt is like Translate with an explicit file name timestamp.
func (t *MigrationTranslator) TranslateAt(e *schema.Entity, at time.Time) (*Unit, error) {
	if e == nil || e.Name == "" {
		return nil, NewSchemaError("", "table without name", nil)
	}
	c, diags := t.Class(e)
	u := &Unit{
		Kind:        MigrationUnit,
		Entity:      e.Name,
		Name:        MigrationFileName(e.Name, at) + ".php",
		Class:       c,
		Diagnostics: diags,
	}
	u.render(t.cfg.Indent)
	return u, nil
}

// MigrationFileName returns the Laravel migration file name of a table,
// without extension: yyyy_mm_dd_hhmmss_create_<table>_table.
func MigrationFileName(table string, at time.Time) string {
	return at.Format("2006_01_02_150405") + "_create_" + table + "_table"
}

// ClassName returns the migration class name of a table.
func (t *MigrationTranslator) ClassName(table string) string {
	return "Create" + pascal(table) + t.cfg.Suffix
}

// Class builds the migration class of e. The returned errors are the
// columns and foreign keys that were left out.
func (t *MigrationTranslator) Class(e *schema.Entity) (*php.Class, []error) {
	table := e.Name
	c := php.NewClass(t.ClassName(table))
	for _, imp := range migrationImports {
		c.AddImport(imp)
	}
	c.AddExtend("Migration")

	body, diags := t.tableSchema(e)

	up := php.NewMethod("up", php.Public, "Run the migrations.")
	up.AddReturn("void")
	up.SetBody(php.Block{
		Open:  fmt.Sprintf("Schema::create('%s', function (Blueprint $table) {", table),
		Body:  body,
		Close: "});",
	})
	c.AddMethod(up)

	down := php.NewMethod("down", php.Public, "Reverse the migrations.")
	down.AddReturn("void")
	down.SetBody(php.Lines{fmt.Sprintf("Schema::dropIfExists('%s');", table)})
	c.AddMethod(down)

	return c, diags
}

// tableSchema returns the Blueprint statements of the columns followed by
// the table indexes.
func (t *MigrationTranslator) tableSchema(e *schema.Entity) (php.Lines, []error) {
	var (
		lines php.Lines
		diags []error
	)
	for _, col := range e.Columns {
		if col == nil {
			continue
		}
		method, ok := ColumnMethod(col.Type)
		if !ok {
			diags = append(diags, NewMappingError(e.Name, col.Name, col.Type))
			continue
		}
		tags := tag.Extract(col.Tags)
		lines = append(lines, t.stmt(ColumnDefinition(method, col, tags)))
		if !col.ForeignKey {
			continue
		}
		fk, err := ForeignKeyDefinition(e.Name, col, tags)
		if err != nil {
			diags = append(diags, err)
			continue
		}
		lines = append(lines, t.stmt(fk))
	}
	tags := tag.Extract(e.Tags)
	for _, idx := range indexMethods {
		if !tags.Has(idx.Tag) {
			continue
		}
		lines = append(lines, t.stmt(fmt.Sprintf("$table->%s(%s)", idx.Method, tags.Value(idx.Tag))))
	}
	return lines, diags
}

func (t *MigrationTranslator) stmt(s string) string {
	if t.cfg.Terminate {
		return s + ";"
	}
	return s
}

// ColumnDefinition renders the Blueprint call of a column: arguments, then
// primary, unique, nullable and default modifiers in that order. Auto
// incrementing methods are primary keys already and get no primary modifier.
func ColumnDefinition(method string, col *schema.Column, tags *tag.Set) string {
	var b strings.Builder
	b.WriteString("$table->")
	b.WriteString(method)
	if col.Length > 0 {
		fmt.Fprintf(&b, `("%s", %d)`, col.Name, col.Length)
	} else {
		fmt.Fprintf(&b, "('%s')", col.Name)
	}
	if col.PrimaryKey && !autoIncrements(method) {
		b.WriteString("->primary()")
	}
	if col.Unique {
		b.WriteString("->unique()")
	}
	if col.Nullable {
		b.WriteString("->nullable()")
	}
	if v := tags.Value(TagDefault); v != "" {
		fmt.Fprintf(&b, "->default(%s)", v)
	}
	return b.String()
}

func autoIncrements(method string) bool {
	switch method {
	case "increments", "bigIncrements", "id":
		return true
	}
	return false
}

// ForeignKeyDefinition renders the foreign-key clause of a column. The
// delete action is "cascade" unless the column carries an onDelete tag.
func ForeignKeyDefinition(table string, col *schema.Column, tags *tag.Set) (string, error) {
	ref := col.Reference
	if ref == nil || ref.Table == "" || ref.Column == "" {
		return "", NewRelationError(table, "", col.Name, "foreign key without reference", nil)
	}
	onDelete := DefaultOnDelete
	if v := tags.Value(TagOnDelete); v != "" {
		onDelete = v
	}
	return fmt.Sprintf("$table->foreign('%s')->references('%s')->on('%s')->onDelete('%s')",
		col.Name, ref.Column, ref.Table, onDelete), nil
}
