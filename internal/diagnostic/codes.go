package diagnostic

// Diagnostic codes.
const (
	CodeUnmappableType        = "unmappable-type"
	CodeUnsignedRange         = "unsigned-range"
	CodeDuplicateDeclaration  = "duplicate-declaration"
	CodeDuplicateField        = "duplicate-field"
	CodeDuplicateRegistration = "duplicate-registration"
	CodeUnresolvedPackage     = "unresolved-package"
	CodeAmbiguousParent       = "ambiguous-parent"
	CodeCacheCorrupt          = "cache-corrupt"
)
