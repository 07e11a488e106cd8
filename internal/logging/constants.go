package logging

// Standardized field names for structured logging.
// Keeping them in one place keeps log output filterable across commands.
const (
	FieldFile        = "file_path"
	FieldSource      = "source"
	FieldReminderID  = "reminder_id"
	FieldDescription = "description"
	FieldGroup       = "group"
	FieldAmount      = "amount"
	FieldAnnual      = "annual_total"
	FieldSplits      = "splits"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldCount       = "count"
	FieldFormat      = "format"
	FieldAsOf        = "as_of"
)
