package dailycare

// --- DTOs ---

type UpdateChecklistRequest struct {
	Food       *bool `json:"food"`
	Water      *bool `json:"water"`
	Walk       *bool `json:"walk"`
	Medication *bool `json:"medication"`
}

type CreateRoutineRequest struct {
	Title     string `json:"title"`
	TimeOfDay string `json:"timeOfDay"`
	Category  string `json:"category"`
}

type UpdateRoutineRequest struct {
	Title     *string `json:"title"`
	TimeOfDay *string `json:"timeOfDay"`
	Completed *bool   `json:"completed"`
	Category  *string `json:"category"`
}

type UpsertDailyLogRequest struct {
	ActivityMinutes *int `json:"activityMinutes"`
	MoodRating      *int `json:"moodRating"`
	FeedingCount    *int `json:"feedingCount"`
}
