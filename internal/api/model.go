package api

type checkRequest struct {
	Password string `json:"password"`
	Policy   string `json:"policy"`
}

type checkResponse struct {
	Length   int               `json:"length"`
	Pool     int               `json:"pool"`
	Entropy  float64           `json:"entropy"`
	Rating   string            `json:"rating"`
	Breached bool              `json:"breached"`
	Policy   string            `json:"policy"`
	Passed   bool              `json:"passed"`
	Failed   []string          `json:"failed"`
	Checks   map[string]bool   `json:"checks"`
	Strength *passwordStrength `json:"strength,omitempty"`
}

type passwordStrength struct {
	CrackTime        float64 `json:"crackTime"`
	CrackTimeDisplay string  `json:"crackTimeDisplay"`
	Score            int     `json:"score"`
}
