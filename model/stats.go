package model

import "time"

type ServerStats struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	Uptime    string    `json:"uptime"`
	System    struct {
		CPUPercent    float64 `json:"cpu_percent"`
		MemoryPercent float64 `json:"memory_percent"`
		MemoryUsedMB  uint64  `json:"memory_used_mb"`
	} `json:"system"`
}
