package dtos

type MarkMultipleReadDTO struct {
	IDs []string `json:"ids"`
}

type NotificationSettingDTO struct {
	Type         string `json:"type"`
	InAppEnabled bool   `json:"inAppEnabled"`
	EmailEnabled bool   `json:"emailEnabled"`
	PushEnabled  bool   `json:"pushEnabled"`
}

// BroadcastDTO is the admin system-announcement payload.
type BroadcastDTO struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}
