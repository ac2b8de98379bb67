package jobs

// 任务名称常量，便于统一管理与引用.
const (
	JobAssetOrphanClean   = "asset.orphan_clean"
	JobVersionStaleReport = "version.stale_report"
)

// Cron 表达式常量（可选，但推荐一并集中管理）.
const (
	CronAssetOrphanClean   = "15 * * * *"
	CronVersionStaleReport = "0 3 * * *"
)
