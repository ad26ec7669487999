package health

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"time"

	"equitie-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional; nil reports the database as disconnected.
type DBPinger interface {
	Ping() error
}

// StoragePinger is optional; nil reports the object store as not configured.
type StoragePinger interface {
	Ping(ctx context.Context) error
}

type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Goroutines    int        `json:"goroutines"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

type MemoryInfo struct {
	AllocMB    int `json:"allocMb"`
	HeapUsedMB int `json:"heapUsedMb"`
}

type TrafficInfo struct {
	TotalRequests   int         `json:"totalRequests"`
	SuccessCount    int         `json:"successCount"`
	FailedCount     int         `json:"failedCount"`
	SuccessRate     string      `json:"successRate"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

func timed(fn func() error) (*int64, error) {
	start := time.Now()
	if err := fn(); err != nil {
		return nil, err
	}
	ms := time.Since(start).Milliseconds()
	return &ms, nil
}

// CollectHealth pings the database, Redis and the object store and reads the
// traffic counters kept by middleware.HealthMarker.
func CollectHealth(ctx context.Context, rdb *redis.Client, db DBPinger, store StoragePinger) CollectResult {
	result := CollectResult{Dependencies: make(map[string]DepStatus)}

	dbStatus := DepStatus{Status: "disconnected"}
	if db != nil {
		if ms, err := timed(db.Ping); err == nil {
			dbStatus = DepStatus{Status: "connected", PingMs: ms}
		} else {
			dbStatus.Status = "error"
		}
	}
	result.Dependencies["database"] = dbStatus

	redisStatus := DepStatus{Status: "disconnected"}
	stats := TrafficInfo{AvgResponseTime: 0, SuccessRate: "100"}
	startTimeMs := time.Now().UnixMilli()
	if rdb != nil {
		ms, err := timed(func() error { return rdb.Ping(ctx).Err() })
		if err == nil {
			redisStatus = DepStatus{Status: "connected", PingMs: ms}
			startTimeMs = readTraffic(ctx, rdb, &stats, startTimeMs)
		} else {
			redisStatus.Status = "error"
		}
	}
	result.Dependencies["redis"] = redisStatus
	result.Traffic = stats

	storageStatus := DepStatus{Status: "not_configured"}
	if store != nil {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		ms, err := timed(func() error { return store.Ping(pctx) })
		cancel()
		if err == nil {
			storageStatus = DepStatus{Status: "reachable", PingMs: ms}
		} else {
			storageStatus.Status = "unreachable"
		}
	}
	result.Dependencies["storage"] = storageStatus

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptime := (time.Now().UnixMilli() - startTimeMs) / 1000
	if uptime < 0 {
		uptime = 0
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptime,
		Memory:        MemoryInfo{AllocMB: int(m.Alloc / 1024 / 1024), HeapUsedMB: int(m.HeapInuse / 1024 / 1024)},
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	if dbStatus.Status == "connected" && redisStatus.Status == "connected" {
		result.Status = "ok"
	} else {
		result.Status = "issue"
	}
	return result
}

// readTraffic fills stats from the marker counters and returns the recorded start time.
func readTraffic(ctx context.Context, rdb *redis.Client, stats *TrafficInfo, startTimeMs int64) int64 {
	vals, err := rdb.MGet(ctx,
		middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime,
		middleware.KeyResCount, middleware.KeyStartTime, middleware.KeyLastReq,
	).Result()
	if err != nil {
		return startTimeMs
	}
	str := func(i int) string {
		s, _ := vals[i].(string)
		return s
	}

	if t, err := strconv.ParseInt(str(4), 10, 64); err == nil {
		startTimeMs = t
	} else {
		rdb.Set(ctx, middleware.KeyStartTime, startTimeMs, 0)
	}

	stats.TotalRequests, _ = strconv.Atoi(str(0))
	stats.FailedCount, _ = strconv.Atoi(str(1))
	stats.SuccessCount = stats.TotalRequests - stats.FailedCount
	if stats.TotalRequests > 0 {
		stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(str(2), 64)
	if count, _ := strconv.Atoi(str(3)); count > 0 {
		stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(count), 'f', 2, 64)
	}
	if last := str(5); last != "" {
		var lastReq map[string]interface{}
		_ = json.Unmarshal([]byte(last), &lastReq)
		stats.LastRequest = lastReq
	}
	return startTimeMs
}
