package respond

// JoinRespond 报名结果，Outcome 取值见 join_outcome_enum
type JoinRespond struct {
	EventID       uint   `json:"event_id"`
	EventName     string `json:"event_name"`
	Outcome       string `json:"outcome"`
	OpenMembers   int64  `json:"open_members"`
	MembersNeeded int    `json:"members_needed"`
	GroupFull     bool   `json:"group_full"`
}
