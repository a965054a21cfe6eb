// Package schema describes the entities laragen generates code from.
//
// An Entity is an already-parsed description handed over by the host: a
// table drawn in an ER diagram or a class drawn in a UML diagram. Which of
// the two it is, is decided before code generation by setting Kind:
//
//   - [KindTable]: Columns and entity tags feed the migration translator.
//   - [KindClass]: Attributes, Associations and entity tags feed the model
//     translator.
//
// Tags ([tag.Tag]) are free-form name/parameter annotations that switch on
// optional output, for example a default value or a soft-deletes trait:
//
//	name: users
//	kind: class
//	tags:
//	  - name: authenticatable
//	  - name: softDeletes
//	attributes:
//	  - name: email
//	    visibility: public
//	  - name: password
//	    visibility: private
//
// The types carry json and yaml struct tags so description files can be
// decoded directly; see the compiler/load package.
package schema
