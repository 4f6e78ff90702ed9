// Package systems models an engineering system tree: named systems with
// parameters, requirements and functions, nested into subsystems. Every
// part renders itself as markdown, and a System is a note.Displayable so a
// document can display a whole tree in one call.
//
// Trees are built in Go or loaded from TOML:
//
//	name = "Bridge"
//
//	[[parameters]]
//	name = "length"
//	value = 120
//	unit = "m"
//
//	[[subsystems]]
//	name = "Safety System"
//	description = "Railings and walkways."
//
//	[[subsystems.requirements]]
//	name = "Guardrail Height"
//	description = "Minimum 1.2 m tall railings."
package systems
