package dto

type CreateArtworkRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Genre       string   `json:"genre"`
	Tags        []string `json:"tags"`
}

// UpdateArtworkRequest is a partial patch: nil fields keep their prior value.
type UpdateArtworkRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Genre       *string   `json:"genre"`
	Tags        *[]string `json:"tags"`
}

// GalleryQuery filters the public gallery listing. Zero values mean
// "no filter"; the listing is always restricted to approved artworks.
type GalleryQuery struct {
	Genre  string `query:"genre"`
	Tag    string `query:"tag"`
	Search string `query:"search"`
}

type ReportRequest struct {
	Reason string `json:"reason"`
}
