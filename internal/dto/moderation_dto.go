package dto

type RejectArtworkRequest struct {
	Reason string `json:"reason"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
