package logging

// Structured log field keys shared by every service
const (
	FieldOp         = "op"
	FieldOpID       = "op_id"
	FieldTeamID     = "team_id"
	FieldAthleteID  = "athlete_id"
	FieldDayTypeID  = "day_type_id"
	FieldDate       = "date"
	FieldMonth      = "month"
	FieldCount      = "count"
	FieldScore      = "score"
	FieldDurationMS = "duration_ms"
)
