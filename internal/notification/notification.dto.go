package notification

type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

type ListResponse struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unreadCount"`
	TotalCount    int             `json:"totalCount"`
	Page          int             `json:"page"`
	PageSize      int             `json:"pageSize"`
}
