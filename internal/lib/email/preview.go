package email

// PreviewData holds sample values for every template, keyed by
// template name then variable name.
var PreviewData = map[Template]map[string]string{
	TemplateAthleteRegistered: {
		"AthleteName":    "Joe",
		"AthleteCPF":     "12345678900",
		"Category":       "Scale",
		"TrainingCenter": "CT King",
		"RegisteredAt":   "2024-05-01T12:00:00Z",
	},
}
