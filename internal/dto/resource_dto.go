package dto

type HotlineDTO struct {
	Id      string   `json:"id"`
	Name    string   `json:"name"`
	Country string   `json:"country,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	SMS     string   `json:"sms,omitempty"`
	Website string   `json:"website,omitempty"`
	Notes   string   `json:"notes,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Score   float64  `json:"score,omitempty"`
}

type SearchResourcesRequest struct {
	Query   string `json:"query" validate:"required,max=500"`
	Country string `json:"country" validate:"omitempty,len=2"`
	TopK    int    `json:"top_k" validate:"omitempty,min=1,max=20"`
}

type SearchResourcesResponse struct {
	Triggered bool         `json:"triggered"`
	Crisis    bool         `json:"crisis"`
	Matches   []HotlineDTO `json:"matches"`
}
