package ingest

import "github.com/opsight/opsight/pkg/database"

// CSV column names as they appear in the input header. The loader recognizes
// exactly these; anything else in the file is ignored.
const (
	colSessionID  = "Session_ID"
	colOperatorID = "Operator_ID"
	colTimestamp  = "Timestamp"
	colShift      = "Shift"
)

// requiredColumns must all be present in the header: the first three feed the
// event rows, Shift is only needed to derive sessions.
var requiredColumns = []string{colSessionID, colOperatorID, colTimestamp, colShift}

// eventColumns are the recognized event fields beyond the required ones.
var eventColumns = []string{
	"TimeInterval",
	"Address",
	"FunctionCode",
	"CommandResponse",
	"ControlMode",
	"ControlScheme",
	"CRC",
	"DataLength",
	"InvalidFunctionCode",
	"InvalidDataLength",
	"PumpState",
	"SolenoidState",
	"SetPoint",
	"PipelinePSI",
	"PIDCycleTime",
	"PIDDeadband",
	"PIDGain",
	"PIDRate",
	"PIDReset",
	"deltaSetPoint",
	"deltaPipelinePSI",
	"deltaPIDCycleTime",
	"deltaPIDDeadband",
	"deltaPIDGain",
	"deltaPIDRate",
	"deltaPIDReset",
	"Label",
}

// shiftMap maps the (trimmed, upper-cased) Shift label onto the seeded
// shift_definitions rows. Any label outside this map is a fatal validation
// failure, not a soft skip.
var shiftMap = map[string]int64{
	"DAY":   database.DayShiftID,
	"NIGHT": database.NightShiftID,
}

// maxLen caps string columns at the storage field widths; longer values are
// truncated, never rejected.
var maxLen = map[string]int{
	"Address":             50,
	"CommandResponse":     50,
	"ControlMode":         50,
	"ControlScheme":       100,
	"PumpState":           50,
	"SolenoidState":       50,
	"Label":               50,
	"FunctionCode":        10,
	"InvalidFunctionCode": 5,
	"InvalidDataLength":   5,
}
