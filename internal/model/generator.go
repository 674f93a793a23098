package model

// GenerateRequest represents a password generation or export request.
// Zero Length and Count fall back to the service defaults.
type GenerateRequest struct {
	Length    int    `json:"length"`
	Count     int    `json:"count"`
	NoSpecial bool   `json:"nospecial"`
	Specials  string `json:"specials"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Passwords []string `json:"passwords"`
	Length    int      `json:"length"`
	Count     int      `json:"count"`
}
