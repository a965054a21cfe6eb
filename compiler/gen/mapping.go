package gen

import (
	"strings"

	"golang.org/x/text/cases"
)

// =============================================================================
// Migration tables
// =============================================================================

// columnMethods maps column types to Blueprint methods. Lookups are
// case-insensitive, so both ER-diagram types (VARCHAR) and Blueprint names
// (bigIncrements) resolve.
var columnMethods = foldKeys(map[string]string{
	// ER-diagram types.
	"VARCHAR":    "string",
	"CHAR":       "char",
	"TEXT":       "text",
	"TINYTEXT":   "tinyText",
	"MEDIUMTEXT": "mediumText",
	"LONGTEXT":   "longText",
	"BOOLEAN":    "boolean",
	"BOOL":       "boolean",
	"BIT":        "boolean",
	"TINYINT":    "tinyInteger",
	"SMALLINT":   "smallInteger",
	"MEDIUMINT":  "mediumInteger",
	"INT":        "integer",
	"INTEGER":    "integer",
	"BIGINT":     "bigInteger",
	"DECIMAL":    "decimal",
	"NUMERIC":    "decimal",
	"FLOAT":      "float",
	"REAL":       "float",
	"DOUBLE":     "double",
	"DATE":       "date",
	"TIME":       "time",
	"DATETIME":   "dateTime",
	"TIMESTAMP":  "timestamp",
	"YEAR":       "year",
	"BINARY":     "binary",
	"VARBINARY":  "binary",
	"BLOB":       "binary",
	"JSON":       "json",
	"JSONB":      "jsonb",
	"UUID":       "uuid",
	"ENUM":       "enum",
	"GEOMETRY":   "geometry",
	"POINT":      "point",
	"LINESTRING": "lineString",
	"POLYGON":    "polygon",
	// Blueprint methods map to themselves.
	"increments":         "increments",
	"bigIncrements":      "bigIncrements",
	"id":                 "id",
	"string":             "string",
	"integer":            "integer",
	"unsignedInteger":    "unsignedInteger",
	"unsignedBigInteger": "unsignedBigInteger",
	"foreignId":          "foreignId",
	"ipAddress":          "ipAddress",
	"macAddress":         "macAddress",
	"rememberToken":      "rememberToken",
	"softDeletes":        "softDeletes",
	"timestamps":         "timestamps",
	// Information-schema spellings.
	"character varying":           "string",
	"character":                   "char",
	"timestamp without time zone": "timestamp",
	"timestamp with time zone":    "timestampTz",
	"double precision":            "double",
})

// indexMethod pairs an index tag with its Blueprint method.
type indexMethod struct {
	Tag    string
	Method string
}

// indexMethods lists the table-level index tags in emission order.
var indexMethods = []indexMethod{
	{Tag: "primary", Method: "primary"},
	{Tag: "unique", Method: "unique"},
	{Tag: "index", Method: "index"},
	{Tag: "spatialIndex", Method: "spatialIndex"},
	{Tag: "fullText", Method: "fullText"},
}

// Imports every migration needs.
var migrationImports = []string{
	`Illuminate\Support\Facades\Schema`,
	`Illuminate\Database\Schema\Blueprint`,
	`Illuminate\Database\Migrations\Migration`,
}

// =============================================================================
// Model tables
// =============================================================================

// Model tag names.
const (
	TagSoftDeletes     = "softDeletes"
	TagUseUUID         = "useUUID"
	TagHasAPIToken     = "hasApiToken"
	TagAuthenticatable = "authenticatable"
	TagNotifiable      = "notifiable"
	TagHasMany         = "hasMany"
	TagHasOne          = "hasOne"
	TagBelongsTo       = "belongsTo"
	TagBelongsToMany   = "belongsToMany"
)

// Column and association-end tag names.
const (
	TagDefault      = "default"
	TagOnDelete     = "onDelete"
	TagRelation     = "relation"
	TagForeignKey   = "foreignKey"
	TagLocalKey     = "localKey"
	TagForeignTable = "foreignTable"
	TagLocalTable   = "localTable"
)

const modelImport = `Illuminate\Database\Eloquent\Model`

// modelImports maps model tags to the import they require.
var modelImports = map[string]string{
	TagSoftDeletes:     `Illuminate\Database\Eloquent\SoftDeletes`,
	TagUseUUID:         `App\Concerns\UsesUuid`,
	TagHasAPIToken:     `Laravel\Passport\HasApiTokens`,
	TagAuthenticatable: `Illuminate\Foundation\Auth\User as Authenticatable`,
	TagNotifiable:      `Illuminate\Notifications\Notifiable`,
	TagHasMany:         `Illuminate\Database\Eloquent\Relations\HasMany`,
	TagHasOne:          `Illuminate\Database\Eloquent\Relations\HasOne`,
	TagBelongsTo:       `Illuminate\Database\Eloquent\Relations\BelongsTo`,
	TagBelongsToMany:   `Illuminate\Database\Eloquent\Relations\BelongsToMany`,
}

// modelTraits maps model tags to the trait they add.
var modelTraits = map[string]string{
	TagSoftDeletes: "SoftDeletes",
	TagUseUUID:     "UsesUuid",
	TagHasAPIToken: "HasApiTokens",
	TagNotifiable:  "Notifiable",
}

// Cardinality is the number of instances at one association end.
type Cardinality uint8

const (
	One Cardinality = iota + 1
	Many
)

// multiplicities maps association-end multiplicities to cardinalities.
var multiplicities = map[string]Cardinality{
	"":     One,
	"0..1": One,
	"1":    One,
	"1..1": One,
	"0..*": Many,
	"1..*": Many,
	"*":    Many,
	"n":    Many,
	"0..n": Many,
	"1..n": Many,
}

// relationKinds maps (own end, other end) cardinalities to the Eloquent
// relation accessor.
var relationKinds = map[[2]Cardinality]string{
	{One, One}:   TagHasOne,
	{One, Many}:  TagHasMany,
	{Many, One}:  TagBelongsTo,
	{Many, Many}: TagBelongsToMany,
}

// =============================================================================
// Lookups
// =============================================================================

func foldKeys(m map[string]string) map[string]string {
	folded := make(map[string]string, len(m))
	for k, v := range m {
		folded[fold(k)] = v
	}
	return folded
}

func fold(s string) string {
	// Casers are stateful; one per call keeps lookups safe for concurrent use.
	return cases.Fold().String(strings.TrimSpace(s))
}

// ColumnMethod returns the Blueprint method for a column type.
func ColumnMethod(typ string) (string, bool) {
	m, ok := columnMethods[fold(typ)]
	return m, ok
}

// ModelImport returns the import a model tag requires.
func ModelImport(tag string) (string, bool) {
	i, ok := modelImports[tag]
	return i, ok
}

// ModelTrait returns the trait a model tag adds.
func ModelTrait(tag string) (string, bool) {
	t, ok := modelTraits[tag]
	return t, ok
}

// ParseMultiplicity returns the cardinality of an association-end multiplicity.
func ParseMultiplicity(m string) (Cardinality, bool) {
	c, ok := multiplicities[strings.TrimSpace(m)]
	return c, ok
}

// RelationKind returns the accessor kind for the cardinalities of the own and
// the other association end.
func RelationKind(own, other Cardinality) (string, bool) {
	k, ok := relationKinds[[2]Cardinality{own, other}]
	return k, ok
}
