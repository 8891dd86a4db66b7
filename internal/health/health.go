// Package health provides system health monitoring and status reporting.
package health

// SystemStatus represents the overall health state of the system or a component.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "healthy"
	StatusDegraded SystemStatus = "degraded"
	StatusCritical SystemStatus = "critical"
)

// ComponentHealth is the status of one dependency.
type ComponentHealth struct {
	Status SystemStatus `json:"status"`
	Detail string       `json:"detail,omitempty"`
}

// WalletHealth describes the tracked session and its transport.
type WalletHealth struct {
	ComponentHealth
	Connected bool    `json:"connected"`
	Address   string  `json:"address,omitempty"`
	ErrorRate float64 `json:"error_rate"`
}

// HealthReport contains the full system health report.
type HealthReport struct {
	SystemStatus SystemStatus    `json:"system_status"`
	Wallet       WalletHealth    `json:"wallet"`
	Storage      ComponentHealth `json:"storage"`
	Listings     int             `json:"listings"`
}

func worst(a, b SystemStatus) SystemStatus {
	rank := map[SystemStatus]int{StatusHealthy: 0, StatusDegraded: 1, StatusCritical: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
