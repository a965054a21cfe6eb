package gen

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/laragen/compiler/php"
	"github.com/syssam/laragen/schema"
	"github.com/syssam/laragen/schema/tag"
)

// source strips the common margin and the leading newline of a raw string.
func source(s string) string {
	return strings.TrimPrefix(dedent.Dedent(s), "\n")
}

var fixedTime = time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func ordersTable() *schema.Entity {
	return &schema.Entity{
		Kind: schema.KindTable,
		Name: "orders",
		Columns: []*schema.Column{
			{Name: "id", Type: "bigIncrements", PrimaryKey: true},
			{Name: "user_id", Type: "unsignedBigInteger", ForeignKey: true, Reference: &schema.Reference{Table: "users", Column: "id"}},
			{Name: "status", Type: "VARCHAR", Length: 20, Tags: []tag.Tag{tag.New("default", "'new'")}},
			{Name: "total", Type: "MONEY"},
			{Name: "code", Type: "varchar", Length: 255, Unique: true, Nullable: true},
		},
		Tags: []tag.Tag{tag.New("index", "['status', 'user_id']")},
	}
}

func migrationTranslator(t *testing.T, opts ...Option) *MigrationTranslator {
	t.Helper()
	cfg, err := NewConfig(append([]Option{WithClock(fixedClock)}, opts...)...)
	require.NoError(t, err)
	return NewMigrationTranslator(cfg)
}

func TestMigrationTranslate(t *testing.T) {
	u, err := migrationTranslator(t).Translate(ordersTable())
	require.NoError(t, err)

	assert.Equal(t, MigrationUnit, u.Kind)
	assert.Equal(t, "orders", u.Entity)
	assert.Equal(t, "2024_03_07_090503_create_orders_table.php", u.Name)

	want := source(`
		<?php

		use Illuminate\Support\Facades\Schema;
		use Illuminate\Database\Schema\Blueprint;
		use Illuminate\Database\Migrations\Migration;

		class CreateOrdersTable extends Migration
		{
			/**
			 * Run the migrations.
			 *
			 * @return void
			 */
			public function up()
			{
				Schema::create('orders', function (Blueprint $table) {
					$table->bigIncrements('id')
					$table->unsignedBigInteger('user_id')
					$table->foreign('user_id')->references('id')->on('users')->onDelete('cascade')
					$table->string("status", 20)->default('new')
					$table->string("code", 255)->unique()->nullable()
					$table->index(['status', 'user_id'])
				});
			}

			/**
			 * Reverse the migrations.
			 *
			 * @return void
			 */
			public function down()
			{
				Schema::dropIfExists('orders');
			}

		}
	`)
	assert.Equal(t, want, string(u.Source))

	require.Len(t, u.Diagnostics, 1)
	assert.True(t, errors.Is(u.Diagnostics[0], ErrUnmappedType))
	assert.Contains(t, u.Diagnostics[0].Error(), `"MONEY"`)
}

func TestMigrationClass(t *testing.T) {
	c, diags := migrationTranslator(t).Class(ordersTable())
	require.Len(t, diags, 1)

	assert.Equal(t, "CreateOrdersTable", c.Name)
	assert.Equal(t, []string{"Migration"}, c.Extends)
	assert.Equal(t, migrationImports, c.Imports)
	require.Len(t, c.Methods, 2)
	assert.Equal(t, "up", c.Methods[0].Name)
	assert.Equal(t, "down", c.Methods[1].Name)

	block, ok := c.Methods[0].Body.(php.Block)
	require.True(t, ok)
	lines, ok := block.Body.(php.Lines)
	require.True(t, ok)
	assert.Len(t, lines, 6)
	assert.Equal(t, php.Lines{"Schema::dropIfExists('orders');"}, c.Methods[1].Body)
}

func TestColumnDefinition(t *testing.T) {
	tests := []struct {
		name string
		col  *schema.Column
		want string
	}{
		{
			name: "length and nullable",
			col:  &schema.Column{Name: "col", Length: 255, Nullable: true},
			want: `$table->string("col", 255)->nullable()`,
		},
		{
			name: "no length",
			col:  &schema.Column{Name: "col"},
			want: `$table->string('col')`,
		},
		{
			name: "modifier order",
			col: &schema.Column{Name: "col", Unique: true, Nullable: true, Tags: []tag.Tag{
				tag.New("default", "'x'"),
			}},
			want: `$table->string('col')->unique()->nullable()->default('x')`,
		},
		{
			name: "numeric default",
			col:  &schema.Column{Name: "col", Tags: []tag.Tag{tag.New("default", 0.0)}},
			want: `$table->string('col')->default(0)`,
		},
		{
			name: "primary key",
			col:  &schema.Column{Name: "code", Length: 2, PrimaryKey: true},
			want: `$table->string("code", 2)->primary()`,
		},
		{
			name: "primary before other modifiers",
			col:  &schema.Column{Name: "col", PrimaryKey: true, Unique: true, Tags: []tag.Tag{tag.New("default", "'x'")}},
			want: `$table->string('col')->primary()->unique()->default('x')`,
		},
		{
			name: "default tag without value",
			col:  &schema.Column{Name: "col", Tags: []tag.Tag{{Name: "default"}}},
			want: `$table->string('col')`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColumnDefinition("string", tt.col, tag.Extract(tt.col.Tags)))
		})
	}
}

func TestColumnDefinitionAutoIncrementPrimaryKey(t *testing.T) {
	for _, method := range []string{"increments", "bigIncrements", "id"} {
		t.Run(method, func(t *testing.T) {
			col := &schema.Column{Name: "id", PrimaryKey: true}
			assert.Equal(t, "$table->"+method+"('id')", ColumnDefinition(method, col, tag.Extract(nil)))
		})
	}
}

func TestMigrationPrimaryKeyColumn(t *testing.T) {
	countries := &schema.Entity{
		Kind: schema.KindTable,
		Name: "countries",
		Columns: []*schema.Column{
			{Name: "code", Type: "char", Length: 2, PrimaryKey: true},
			{Name: "name", Type: "varchar", Length: 80},
		},
	}
	u, err := migrationTranslator(t).TranslateAt(countries, fixedTime)
	require.NoError(t, err)
	assert.Empty(t, u.Diagnostics)
	assert.Contains(t, string(u.Source), `$table->char("code", 2)->primary()`)
	assert.Contains(t, string(u.Source), `$table->string("name", 80)`+"\n")
}

func TestForeignKeyDefinition(t *testing.T) {
	col := &schema.Column{Name: "col", ForeignKey: true, Reference: &schema.Reference{Table: "users", Column: "id"}}

	t.Run("cascade by default", func(t *testing.T) {
		got, err := ForeignKeyDefinition("t", col, tag.Extract(nil))
		require.NoError(t, err)
		assert.Equal(t, "$table->foreign('col')->references('id')->on('users')->onDelete('cascade')", got)
	})

	t.Run("onDelete tag overrides", func(t *testing.T) {
		got, err := ForeignKeyDefinition("t", col, tag.Extract([]tag.Tag{tag.New("onDelete", "set null")}))
		require.NoError(t, err)
		assert.Equal(t, "$table->foreign('col')->references('id')->on('users')->onDelete('set null')", got)
	})

	t.Run("missing reference", func(t *testing.T) {
		_, err := ForeignKeyDefinition("t", &schema.Column{Name: "col", ForeignKey: true}, tag.Extract(nil))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRelation))
	})
}

func TestMigrationDiagnostics(t *testing.T) {
	e := &schema.Entity{
		Kind: schema.KindTable,
		Name: "posts",
		Columns: []*schema.Column{
			{Name: "user_id", Type: "INTEGER", ForeignKey: true},
			{Name: "geo", Type: "hstore", ForeignKey: true, Reference: &schema.Reference{Table: "x", Column: "id"}},
			nil,
			{Name: "title", Type: "TEXT"},
		},
	}
	c, diags := migrationTranslator(t).Class(e)
	require.Len(t, diags, 2)
	assert.True(t, IsRelationError(diags[0]))
	assert.True(t, IsMappingError(diags[1]))

	lines := c.Methods[0].Body.(php.Block).Body.(php.Lines)
	// The unmapped column is dropped together with its foreign key.
	assert.Equal(t, php.Lines{"$table->integer('user_id')", "$table->text('title')"}, lines)
}

func TestMigrationIndexes(t *testing.T) {
	e := &schema.Entity{
		Kind: schema.KindTable,
		Name: "t",
		Tags: []tag.Tag{
			tag.New("fullText", "['body']"),
			tag.New("index", "'a'"),
			tag.New("primary", "['a', 'b']"),
			tag.New("comment", "ignored"),
			tag.New("unique", "'c'"),
		},
	}
	c, diags := migrationTranslator(t).Class(e)
	assert.Empty(t, diags)
	lines := c.Methods[0].Body.(php.Block).Body.(php.Lines)
	assert.Equal(t, php.Lines{
		"$table->primary(['a', 'b'])",
		"$table->unique('c')",
		"$table->index('a')",
		"$table->fullText(['body'])",
	}, lines)
}

func TestMigrationOptions(t *testing.T) {
	tr := migrationTranslator(t, WithSuffix("Migration"), WithStatementTerminator(), WithIndent("    "))
	u, err := tr.Translate(&schema.Entity{
		Kind:    schema.KindTable,
		Name:    "order_items",
		Columns: []*schema.Column{{Name: "id", Type: "id"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "CreateOrderItemsMigration", u.Class.Name)
	assert.Contains(t, string(u.Source), "\n            $table->id('id');\n")
	assert.Equal(t, "2024_03_07_090503_create_order_items_table.php", u.Name)
}

func TestMigrationMissingName(t *testing.T) {
	tr := migrationTranslator(t)
	_, err := tr.Translate(&schema.Entity{Kind: schema.KindTable})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSchema))

	_, err = tr.Translate(nil)
	assert.True(t, IsSchemaError(err))
}

func TestMigrationFileName(t *testing.T) {
	at := time.Date(2023, time.December, 31, 23, 59, 1, 0, time.UTC)
	assert.Equal(t, "2023_12_31_235901_create_orders_table", MigrationFileName("orders", at))
}
