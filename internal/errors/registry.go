package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Sheets (P101-P109)
	"P101": {
		Category: CategorySheet,
		Message:  "Sheet file not found",
		Detail:   "The sheet path given on the command line does not exist or cannot be read.",
	},
	"P102": {
		Category: CategorySheet,
		Message:  "Sheet is invalid",
		Detail:   "The sheet could not be parsed, or declares a duplicate name, an unknown reference, or a malformed formula.",
	},
	"P103": {
		Category: CategorySheet,
		Message:  "Cyclic dependency in sheet",
		Detail:   "A formula depends on itself through other formulas.",
	},
	"P104": {
		Category: CategorySheet,
		Message:  "Formula failed to evaluate",
		Detail:   "An expression raised an error or did not produce a number.",
	},

	// Configuration (P110-P119)
	"P110": {
		Category: CategoryConfig,
		Message:  "Configuration is invalid",
		Detail:   "playground.json could not be read or contains invalid values.",
	},

	// Scripts (P120-P129)
	"P120": {
		Category: CategoryScript,
		Message:  "Script failed",
	},
	"P121": {
		Category: CategoryScript,
		Message:  "Invalid assignment",
		Detail:   "Assignments are written NAME=VALUE, where VALUE is a number.",
	},

	// Server (P130-P139)
	"P130": {
		Category: CategoryServer,
		Message:  "Server failed",
	},
}

// Lookup returns the template for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
