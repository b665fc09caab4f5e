package items

// ReportRequest is the body of POST /items/report. The reporter comes from
// the bearer token, never from the body.
type ReportRequest struct {
	ID          string `json:"id" example:"0192a6f4-3b1e-7c2d-9f00-1a2b3c4d5e6f"`
	Name        string `json:"name" example:"Red Wallet"`
	Description string `json:"description" example:"Leather, two cards inside"`
	Location    string `json:"location" example:"Library"`
	Contact     string `json:"contact" example:"alice@example.com"`
	Kind        string `json:"kind" example:"lost" enums:"found,lost"`
	ImageData   string `json:"imageData,omitempty" example:"data:image/png;base64,iVBORw0KGgo="`
}
