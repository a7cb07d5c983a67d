package errors

// Render error codes.
const (
	CodeInvalidElement          = "M001"
	CodeInvalidTag              = "M002"
	CodeInvalidTagName          = "M003"
	CodeAmbiguousChildren       = "M004"
	CodeInvalidChildrenType     = "M005"
	CodeIllegalAttributeName    = "M006"
	CodeIllegalEmptyTagProps    = "M007"
	CodeInvalidRawHTML          = "M008"
	CodeRawHTMLChildrenConflict = "M009"
	CodeVoidTagHasChildren      = "M010"
	CodeVoidTagHasRawHTML       = "M011"
	CodeDepthExceeded           = "M012"
)

// Document error codes.
const (
	CodeDocumentDecode   = "D001"
	CodeUnknownComponent = "D002"
	CodeDocumentEncode   = "D003"
)

// Page store error codes.
const (
	CodePageNotFound = "P001"
	CodeInvalidPage  = "P002"
	CodeStoreFailure = "P003"
)

// Config error codes.
const (
	CodeConfigInvalid = "C001"
	CodeConfigRead    = "C002"
	CodeConfigWrite   = "C003"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (M001-M099)
	// ============================================

	CodeInvalidElement: {
		Category:   CategoryRender,
		Message:    "Invalid element",
		Suggestion: "Elements are nil, false, a string, a number, true, or a non-empty []any tuple.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/M001",
	},
	CodeInvalidTag: {
		Category:   CategoryRender,
		Message:    "Invalid element tag",
		Suggestion: "The first tuple entry must be a tag name string or a markup.Component.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/M002",
	},
	CodeInvalidTagName: {
		Category:   CategoryRender,
		Message:    "Invalid tag name",
		Suggestion: "Use an HTML tag name, !doctype, or a custom element name containing a hyphen.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/M003",
	},
	CodeAmbiguousChildren: {
		Category:   CategoryRender,
		Message:    "Children embedded in props and supplied positionally",
		Suggestion: "Pass children either in props.children or after the props, not both.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/M004",
	},
	CodeInvalidChildrenType: {
		Category:   CategoryRender,
		Message:    "props.children is not a list",
		Suggestion: "props.children must be a []any.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/M005",
	},
	CodeIllegalAttributeName: {
		Category:   CategoryRender,
		Message:    "Illegal attribute name",
		Suggestion: "Attribute names may not be empty or contain spaces, quotes, <, >, /, =, \\ or control characters.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/M006",
	},
	CodeIllegalEmptyTagProps: {
		Category:   CategoryRender,
		Message:    "Empty tag accepts only rawHtml",
		Suggestion: "Move attributes onto a real element or drop them from the fragment.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/M007",
	},
	CodeInvalidRawHTML: {
		Category:   CategoryRender,
		Message:    "rawHtml must be a string",
		DocURL:     "https://courseforge.dev/docs/markup/errors/M008",
	},
	CodeRawHTMLChildrenConflict: {
		Category:   CategoryRender,
		Message:    "rawHtml and children are mutually exclusive",
		Suggestion: "Render the children into the raw HTML or drop rawHtml.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/M009",
	},
	CodeVoidTagHasChildren: {
		Category: CategoryRender,
		Message:  "Void tag cannot have children",
		DocURL:   "https://courseforge.dev/docs/markup/errors/M010",
	},
	CodeVoidTagHasRawHTML: {
		Category: CategoryRender,
		Message:  "Void tag cannot have rawHtml",
		DocURL:   "https://courseforge.dev/docs/markup/errors/M011",
	},
	CodeDepthExceeded: {
		Category:   CategoryRender,
		Message:    "Maximum element depth exceeded",
		Suggestion: "Check for a component that returns itself, or raise the renderer MaxDepth.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/M012",
	},

	// ============================================
	// Document Errors (D001-D099)
	// ============================================

	CodeDocumentDecode: {
		Category:   CategoryDocument,
		Message:    "Document could not be decoded",
		Suggestion: "Documents are YAML or JSON element trees.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/D001",
	},
	CodeUnknownComponent: {
		Category:   CategoryDocument,
		Message:    "Unknown component",
		Suggestion: "Register the component before decoding documents that reference it.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/D002",
	},
	CodeDocumentEncode: {
		Category: CategoryDocument,
		Message:  "Rendered tree could not be encoded as JSON",
		DocURL:   "https://courseforge.dev/docs/markup/errors/D003",
	},

	// ============================================
	// Page Store Errors (P001-P099)
	// ============================================

	CodePageNotFound: {
		Category: CategoryStore,
		Message:  "Page not found",
		DocURL:   "https://courseforge.dev/docs/markup/errors/P001",
	},
	CodeInvalidPage: {
		Category:   CategoryStore,
		Message:    "Invalid page name",
		Suggestion: "Page names are slash separated paths without '..' segments.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/P002",
	},
	CodeStoreFailure: {
		Category: CategoryStore,
		Message:  "Page store failure",
		DocURL:   "https://courseforge.dev/docs/markup/errors/P003",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		DocURL:   "https://courseforge.dev/docs/markup/errors/C001",
	},
	CodeConfigRead: {
		Category:   CategoryConfig,
		Message:    "Configuration file could not be read",
		Suggestion: "Check that markup.yaml exists and is valid YAML or JSON.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/C002",
	},
	CodeConfigWrite: {
		Category:   CategoryConfig,
		Message:    "Configuration file could not be written",
		Suggestion: "Check that the target directory exists and is writable.",
		DocURL:     "https://courseforge.dev/docs/markup/errors/C003",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry. It is not safe to
// call concurrently with New; register application codes from init.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
