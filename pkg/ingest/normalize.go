package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/opsight/opsight/pkg/database/models"
)

// timestampLayouts is tried in order; the first parse that succeeds wins.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// EventRow is one validated, coerced input row. The shift label rides along
// only until reconciliation derives sessions from it; it is never inserted.
type EventRow struct {
	Shift string
	Event models.Event
}

// parseRows coerces a batch of raw records into event rows. Rows whose
// session id, operator id or timestamp cannot be coerced are dropped, per
// contract, without failing the chunk. String fields are trimmed where the
// original pipeline trims and truncated to the storage widths.
func parseRows(columns map[string]int, records [][]string) []EventRow {
	rows := make([]EventRow, 0, len(records))

	for _, record := range records {
		sessionID, ok := parseInt(field(record, columns, colSessionID))
		if !ok {
			continue
		}
		operatorID := strings.TrimSpace(field(record, columns, colOperatorID))
		if operatorID == "" {
			continue
		}
		timestamp, ok := parseTimestamp(field(record, columns, colTimestamp))
		if !ok {
			continue
		}

		row := EventRow{
			Shift: field(record, columns, colShift),
			Event: models.Event{
				SessionID:  sessionID,
				OperatorID: operatorID,
				Timestamp:  timestamp,
			},
		}
		for _, col := range eventColumns {
			value, present := lookupField(record, columns, col)
			if !present {
				continue
			}
			setEventField(&row.Event, col, value)
		}
		rows = append(rows, row)
	}
	return rows
}

func field(record []string, columns map[string]int, name string) string {
	value, _ := lookupField(record, columns, name)
	return value
}

func lookupField(record []string, columns map[string]int, name string) (string, bool) {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return "", false
	}
	return record[idx], true
}

func parseInt(value string) (int64, bool) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func parseFloat(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return parsed
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// truncate caps the value at max characters (runes, to never split one).
func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}

func truncated(value, column string) string {
	if max, ok := maxLen[column]; ok {
		return truncate(value, max)
	}
	return value
}

func setEventField(event *models.Event, column, value string) {
	switch column {
	case "TimeInterval":
		event.TimeInterval = parseFloat(value)
	case "Address":
		event.Address = truncated(value, column)
	case "FunctionCode":
		event.FunctionCode = truncated(value, column)
	case "CommandResponse":
		event.CommandResponse = truncated(value, column)
	case "ControlMode":
		event.ControlMode = truncated(value, column)
	case "ControlScheme":
		event.ControlScheme = truncated(value, column)
	case "CRC":
		crc, _ := parseInt(value)
		event.CRC = crc
	case "DataLength":
		dataLength, _ := parseInt(value)
		event.DataLength = dataLength
	case "InvalidFunctionCode":
		event.InvalidFunctionCode = truncated(value, column)
	case "InvalidDataLength":
		event.InvalidDataLength = truncated(value, column)
	case "PumpState":
		event.PumpState = truncated(value, column)
	case "SolenoidState":
		event.SolenoidState = truncated(value, column)
	case "SetPoint":
		event.SetPoint = parseFloat(value)
	case "PipelinePSI":
		event.PipelinePSI = parseFloat(value)
	case "PIDCycleTime":
		event.PIDCycleTime = parseFloat(value)
	case "PIDDeadband":
		event.PIDDeadband = parseFloat(value)
	case "PIDGain":
		event.PIDGain = parseFloat(value)
	case "PIDRate":
		event.PIDRate = parseFloat(value)
	case "PIDReset":
		event.PIDReset = parseFloat(value)
	case "deltaSetPoint":
		event.DeltaSetPoint = parseFloat(value)
	case "deltaPipelinePSI":
		event.DeltaPipelinePSI = parseFloat(value)
	case "deltaPIDCycleTime":
		event.DeltaPIDCycleTime = parseFloat(value)
	case "deltaPIDDeadband":
		event.DeltaPIDDeadband = parseFloat(value)
	case "deltaPIDGain":
		event.DeltaPIDGain = parseFloat(value)
	case "deltaPIDRate":
		event.DeltaPIDRate = parseFloat(value)
	case "deltaPIDReset":
		event.DeltaPIDReset = parseFloat(value)
	case "Label":
		event.Label = truncated(strings.TrimSpace(value), column)
	}
}
