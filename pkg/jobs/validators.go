package jobs

type ImportBookPayload struct {
	Title         string  `json:"title" mod:"trim" validate:"required,max=300"`
	Author        string  `json:"author" mod:"trim" validate:"required,max=200"`
	TotalPages    int     `json:"total_pages" validate:"min=0"`
	ISBN          *string `json:"isbn,omitempty" mod:"trim" validate:"omitempty,isbn"`
	Genre         *string `json:"genre,omitempty" mod:"trim" validate:"omitempty,max=100"`
	PublishedDate *string `json:"published_date,omitempty" validate:"omitempty,date"`
	CoverImageURL *string `json:"cover_image_url,omitempty" validate:"omitempty,url"`
	IsOwned       bool    `json:"is_owned"`
}

type CreateImportJobPayload struct {
	Books []ImportBookPayload `json:"books" validate:"required,min=1,max=500,dive"`
}

type ListJobsQuery struct {
	Limit  int      `query:"limit" json:"limit,omitempty" default:"10" validate:"min=1,max=100"`
	Offset int      `query:"offset" json:"offset,omitempty" validate:"min=0"`
	Status []string `query:"status" json:"status,omitempty" validate:"dive,oneof=pending in_progress completed failed"`
}
