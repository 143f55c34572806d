package api

type Record struct {
	ID            string   `json:"id"`
	Kind          string   `json:"kind"`
	Title         string   `json:"title"`
	Category      string   `json:"category,omitempty"`
	Status        string   `json:"status"`
	ScheduledDate string   `json:"scheduled_date"`
	CompletedDate *string  `json:"completed_date,omitempty"`
	Cost          *float64 `json:"cost,omitempty"`
	Owner         string   `json:"owner,omitempty"`
	Overdue       bool     `json:"overdue"`

	Asset     string `json:"asset,omitempty"`
	Resource  string `json:"resource,omitempty"`
	Attendees *int   `json:"attendees,omitempty"`
	Area      string `json:"area,omitempty"`
	Findings  *int   `json:"findings,omitempty"`
}
