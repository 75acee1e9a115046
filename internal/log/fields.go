package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldPath      = "path"
	FieldDate      = "date"
	FieldCode      = "code"
	FieldHours     = "hours"
	FieldCount     = "count"
	FieldBackup    = "backup"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpOpen          = "open"
	OpReload        = "reload"
	OpSave          = "save"
	OpAddRecord     = "add_time_record"
	OpReplaceRecord = "replace_time_record"
	OpDeleteRecord  = "delete_time_record"
	OpAddProject    = "add_project"
	OpDeleteProject = "delete_project"
	OpAddEntry      = "add_project_entry"
	OpMergeEntry    = "merge_project_entry"
	OpEditEntry     = "edit_project_entry"
	OpBackup        = "backup"
	OpRestore       = "restore"
)
