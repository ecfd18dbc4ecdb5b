package dto

type SetRoleRequest struct {
	Role string `json:"role"`
}

type SetBanRequest struct {
	IsBanned bool `json:"isBanned"`
}

type SetRequestStatusRequest struct {
	Status string `json:"status"`
}

type CreateReportRequest struct {
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
	Reason      string `json:"reason"`
}

type ActionReportRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"admin_note"`
}
