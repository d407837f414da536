package constants

const (
	NOTIFY_CHANNEL_SIZE      = 100 // 通知任务队列大小
	NOTIFY_WORKER_NUM        = 2   // 通知 Worker 数量
	NOTIFY_TIMEOUT_SECONDS   = 5   // 外部通知超时（秒）
	CACHE_TIMEOUT_SECONDS    = 1   // 单次缓存操作超时（秒）
	CACHE_WORKER_NUM         = 4   // 缓存异步任务 Worker 数量
	CACHE_TASK_BUFFER        = 256 // 缓存异步任务缓冲区
	SESSION_EXPIRY_HOURS     = 168 // 会话默认有效期（小时），168小时 = 7天
	DEFAULT_MEMBERS_NEEDED   = 7   // 活动默认成团人数
	SHUTDOWN_TIMEOUT_SECONDS = 10  // 优雅退出等待时间（秒）
	EVENT_LIST_TTL_SECONDS   = 300 // 活动列表缓存时间（秒）
	OPEN_COUNT_TTL_SECONDS   = 30  // 待成团人数缓存时间（秒）
	MAX_PASSWORD_BYTES       = 72  // bcrypt 只接受 72 字节以内
)

const (
	DEFAULT_EVENT_NAME = "BBQ Nation 7@777 (Group of 7)"
	SESSION_COOKIE     = "groupies_session"
	FLASH_COOKIE       = "groupies_flash"
	IDENTITY_KEY       = "identity" // gin.Context 中保存当前用户身份的 key
)
