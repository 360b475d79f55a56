package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldChartKind  = "kind"
	FieldPoints     = "points"
	FieldBudgetID   = "budget_id"
	FieldAmount     = "amount"
	FieldSnapshotID = "snapshot_id"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentChart   = "chart"
	ComponentInsight = "insight"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
)

// Operations defines standard operation names.
const (
	OpAggregate = "aggregate"
	OpAnalyze   = "analyze"
	OpRender    = "render"
	OpExport    = "export"
	OpCreate    = "create"
	OpArchive   = "archive"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
