// Package gen translates entity descriptions into Laravel migration and
// model classes.
//
// # Architecture
//
// The pipeline follows this flow:
//
//	schema.Entity (table or class description)
//	        ↓
//	   Translator (MigrationTranslator, ModelTranslator)
//	        ↓
//	   php.Class (intermediate class model)
//	        ↓
//	   php.Emit (indentation-aware writer)
//	        ↓
//	   Unit (file name + PHP source + diagnostics)
//	        ↓
//	   FileWriter (database/migrations, app/Models)
//
// The translators and the mapping tables are pure: they never touch the
// filesystem and can run concurrently. Generator runs them over many
// entities, ordering migrations so referenced tables are created first, and
// FileWriter persists the result.
//
// # Mapping Tables
//
// Static tables decide what the translators emit:
//
//   - column type → Blueprint method (ColumnMethod), case-insensitive
//   - entity tag → model import (ModelImport) and trait (ModelTrait)
//   - multiplicity → cardinality (ParseMultiplicity), and cardinalities →
//     relation kind (RelationKind)
//   - index tag → Blueprint index method, in fixed order
//
// Tags without a table entry are ignored.
//
// # Error Handling
//
// Translators report per-item problems as diagnostics on the unit instead of
// failing:
//
//   - MappingError: a column type without Blueprint method; column skipped
//   - RelationError: a foreign key without reference or a malformed
//     association; clause or accessor skipped
//
// Only an entity without a name fails with a SchemaError. ConfigError and
// GenerationError report bad options and write failures. Every error type
// matches its sentinel with errors.Is:
//
//	u, err := gen.NewMigrationTranslator(nil).Translate(entity)
//	if err != nil {
//		return err
//	}
//	for _, d := range u.Diagnostics {
//		if errors.Is(d, gen.ErrUnmappedType) {
//			log.Printf("skipped column: %v", d)
//		}
//	}
package gen
