package dto

type HealthResponse struct {
	Status      string                 `json:"status"`
	Environment string                 `json:"environment"`
	Version     string                 `json:"version"`
	Services    map[string]interface{} `json:"services"`
}

type ReadyResponse struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}
