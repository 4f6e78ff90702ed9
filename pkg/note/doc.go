// Package note is the authoring API of docforge.
//
// A document is a Go program that opens a Document and displays content
// items in order:
//
//	doc := note.MustOpen()
//	doc.Display(
//		note.DocumentConfig{Title: "Report", Author: "Jane"},
//		note.NewTitle("# Introduction"),
//		note.Text("Some *markdown* text."),
//		note.Citation{ID: "taylor2005"},
//	)
//
// Every item is a Displayable: it knows how to render itself as Pandoc
// markdown and how to present itself on the interactive viewer. Open
// resolves the render mode once from the environment the docforge CLI sets
// up; Render itself only ever looks at the RenderConfig it is given.
package note
