package webpack

// Object is a configuration object.
type Object map[string]any

// Plugin renders as `new (require(Package).Export)(Options)`. An empty
// Export uses the module itself as the constructor. Nil Options renders a
// call with no arguments.
type Plugin struct {
	Package string
	Export  string
	Options any
}

// Regexp renders as a JavaScript regular expression literal.
type Regexp struct {
	Source string
	Flags  string
}

// Expr is emitted verbatim.
type Expr string
