package handler

import (
	"time"

	"main/model"
	"main/utils"

	"github.com/gin-gonic/gin"
)

var serverStartedAt = time.Now()

// HealthHandler reports liveness plus basic system stats. Public: no auth.
func HealthHandler(c *gin.Context) {
	var stats model.ServerStats
	stats.Status = "ok"
	stats.StartedAt = serverStartedAt
	stats.Uptime = time.Since(serverStartedAt).Round(time.Second).String()
	stats.System.CPUPercent = utils.GetCPUUsage()
	stats.System.MemoryPercent, stats.System.MemoryUsedMB = utils.GetMemoryUsage()

	utils.Success(c, stats)
}
