package constants

// JobStatus is the canonical status for a submitted document.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued  JobStatus = "QUEUED"  // accepted, not yet processed
	JobStatusRunning JobStatus = "RUNNING" // pipeline in progress
	JobStatusOK      JobStatus = "OK"      // report produced
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure (timeout, unreadable file)
)

// ParameterStatus is the per-parameter outcome of a compliance check.
type ParameterStatus string

const (
	ParamCompliant    ParameterStatus = "compliant"
	ParamNonCompliant ParameterStatus = "non_compliant"
	ParamNotEvaluated ParameterStatus = "not_evaluated" // value missing from the record
)

// OverallStatus is the room-level outcome of a compliance check.
type OverallStatus string

const (
	OverallCompliant OverallStatus = "compliant"
	OverallPartial   OverallStatus = "partially_compliant"
	OverallNonComp   OverallStatus = "non_compliant"
	// OverallNotEvaluated means no parameter could be checked at all.
	// Distinct from non_compliant: missing data is never scored as failure.
	OverallNotEvaluated OverallStatus = "not_evaluated"
)
