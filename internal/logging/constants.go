package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across the catalog, the stores
// and the remote collaborators.
const (
	FieldFile       = "file_path"
	FieldBackend    = "backend"
	FieldKey        = "key"
	FieldCategory   = "category"
	FieldCategoryID = "category_id"
	FieldQuery      = "query"
	FieldSource     = "source"
	FieldURL        = "url"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldOutputFile = "output_file"
)
