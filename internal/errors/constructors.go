package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *SiteError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *SiteError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *SiteError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Content errors

func ContentLoadFailed(path string, cause error) *SiteError {
	return Wrap(cause, CategoryContent, SeverityFatal, "content loading failed").
		WithContext("path", path)
}

// Compilation errors

// CompileFailed wraps a failure of one pipeline stage. The domain error
// (DuplicateSlugError, OrphanCategoryError, PathCollisionError) stays
// reachable through errors.As.
func CompileFailed(stage string, cause error) *SiteError {
	return Wrap(cause, CategoryCompile, SeverityFatal, "route compilation failed").
		WithContext("stage", stage)
}

// Output errors

func ArtifactWriteFailed(path string, cause error) *SiteError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "artifact write failed").
		WithContext("path", path)
}

func ArtifactReadFailed(path string, cause error) *SiteError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "artifact read failed").
		WithContext("path", path)
}

func StoreFailed(operation string, cause error) *SiteError {
	return Wrap(cause, CategoryStore, SeverityFatal, "route store operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *SiteError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
