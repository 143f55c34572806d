package api

type MonthBucket struct {
	Month string  `json:"month"`
	Label string  `json:"label"`
	Count int     `json:"count"`
	Cost  float64 `json:"cost"`
}

type KindSummary struct {
	Kind     string         `json:"kind"`
	Label    string         `json:"label"`
	Total    int            `json:"total"`
	Statuses map[string]int `json:"statuses"`
}

// Summary backs the dashboard metric cards.
type Summary struct {
	AsOf      string        `json:"as_of"`
	Total     int           `json:"total"`
	Overdue   int           `json:"overdue"`
	Upcoming  int           `json:"upcoming"`
	CostTotal float64       `json:"cost_total"`
	Kinds     []KindSummary `json:"kinds"`
	Histogram []MonthBucket `json:"histogram"`
}

type Health struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
