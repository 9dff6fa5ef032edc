package database

// table names.
const (
	// UsersTableName table name of monitoring-tool users.
	UsersTableName = "users"
	// CrewsTableName table name of operator crews.
	CrewsTableName = "crews"
	// ShiftDefinitionsTableName table name of shift types.
	ShiftDefinitionsTableName = "shift_definitions"
	// OperatorsTableName table name of ICS operators.
	OperatorsTableName = "operators"
	// CrewRotationsTableName table name of crew on/off rotation patterns.
	CrewRotationsTableName = "crew_rotations"
	// ShiftInstancesTableName table name of concrete shift occurrences.
	ShiftInstancesTableName = "shift_instances"
	// SessionsTableName table name of operator work sessions.
	SessionsTableName = "sessions"
	// EventsTableName table name of ICS command/response events.
	EventsTableName = "events"
	// SessionFeaturesTableName table name of per-session behavioral features.
	SessionFeaturesTableName = "session_features"
	// BaselineProfilesTableName table name of trained behavioral baselines.
	BaselineProfilesTableName = "baseline_profiles"
	// DetectionsTableName table name of anomaly-detection verdicts.
	DetectionsTableName = "detections"
	// AlertsTableName table name of raised alerts.
	AlertsTableName = "alerts"
	// CtiObjectsTableName table name of threat-intel artifacts.
	CtiObjectsTableName = "cti_objects"
	// AlertCtiLinksTableName table name of the alert/CTI join table.
	AlertCtiLinksTableName = "alert_cti_links"
)

// canonical shift definition ids; the loader's shift-label mapping and the
// initdb seeding both rely on these rows existing.
const (
	DayShiftID   = 1
	NightShiftID = 2
)

// DefaultInactivityThresholdMin is assigned to every session derived by the
// loader; downstream sessionization may override it.
const DefaultInactivityThresholdMin = 10
