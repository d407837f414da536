// Package join_outcome_enum 报名结果
package join_outcome_enum

const (
	JOINED          = "joined"          // 报名成功，尚未成团
	ALREADY_JOINED  = "already_joined"  // 已报名过，未写入
	EVENT_FULL      = "event_full"      // 已成团，不再接受报名
	GROUP_COMPLETED = "group_completed" // 本次报名使活动成团
)
