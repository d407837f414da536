package respond

// EventRespond 活动列表项
type EventRespond struct {
	ID            uint   `json:"id"`
	EventName     string `json:"event_name"`
	MembersNeeded int    `json:"members_needed"`
}

// MemberRespond 报名用户
type MemberRespond struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}

// EventDetailRespond 活动详情页
type EventDetailRespond struct {
	EventRespond
	OpenMembers int64           `json:"open_members"` // 当前待成团人数
	Remaining   int64           `json:"remaining"`    // 还差几人成团
	Finalized   bool            `json:"finalized"`    // 是否已成团
	Joined      bool            `json:"joined"`       // 当前用户是否已报名
	Members     []MemberRespond `json:"members"`
}
