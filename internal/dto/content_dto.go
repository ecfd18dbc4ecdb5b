package dto

type CreatePostRequest struct {
	Content string `json:"content"`
}

type CreateChatRequest struct {
	Message string `json:"msg"`
}

type CreateServiceRequest struct {
	Type        string `json:"type"`
	Description string `json:"desc"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
	Phone  *string `json:"phone"`
}
