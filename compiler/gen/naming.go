package gen

import (
	"strings"

	"github.com/go-openapi/inflect"
)

var rules = ruleset()

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Acronyms that show up in table names.
	for _, w := range []string{"API", "UUID", "URL", "IP", "SKU"} {
		rules.AddAcronym(w)
	}
	return rules
}

// pascal converts a table or class name to a class name:
// "order_items" becomes "OrderItems".
func pascal(s string) string {
	return rules.Camelize(s)
}

// camel converts a name to a method name: "OrderItem" becomes "orderItem".
func camel(s string) string {
	return rules.CamelizeDownFirst(s)
}

// plural returns the plural form of the last word of s.
func plural(s string) string {
	return rules.Pluralize(s)
}

// className returns the PHP class name of an entity: its name with the first
// letter capitalized.
func className(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
