// Package php is the intermediate class model and the text emitter that
// renders it as PHP source.
//
// Translators build a [Class], then hand it to [Emit] (or [Render]) which
// drives a [Writer]:
//
//	c := php.NewClass("User")
//	c.AddImport(`Illuminate\Database\Eloquent\Model`)
//	c.AddExtend("Model")
//	c.AddField(php.NewField("fillable", php.Protected, php.Strings("name", "email"), ""))
//	src := php.Render(c, php.DefaultIndent)
//
// produces
//
//	<?php
//
//	use Illuminate\Database\Eloquent\Model;
//
//	class User extends Model
//	{
//		protected $fillable = [
//			"name",
//			"email",
//		];
//
//	}
//
// Method bodies are [Body] values. [Lines] and [Block] are plain data and
// can be inspected before rendering; [BodyFunc] is the escape hatch for
// anything else.
package php
