package books

type ListBooksQuery struct {
	Limit   int     `query:"limit" json:"limit,omitempty" default:"24" validate:"min=1,max=100"`
	Offset  int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	State   *string `query:"state" json:"state,omitempty" validate:"omitempty,readingstate"`
	IsOwned *bool   `query:"is_owned" json:"is_owned,omitempty"`
	Genre   *string `query:"genre" json:"genre,omitempty" validate:"omitempty,max=100"`
	Search  *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

type CreateBookPayload struct {
	Title         string  `json:"title" mod:"trim" validate:"required,max=300"`
	Author        string  `json:"author" mod:"trim" validate:"required,max=200"`
	TotalPages    int     `json:"total_pages" validate:"min=0"`
	State         *string `json:"state,omitempty" validate:"omitempty,readingstate"`
	ISBN          *string `json:"isbn,omitempty" mod:"trim" validate:"omitempty,isbn"`
	Genre         *string `json:"genre,omitempty" mod:"trim" validate:"omitempty,max=100"`
	PublishedDate *string `json:"published_date,omitempty" validate:"omitempty,date"`
	CoverImageURL *string `json:"cover_image_url,omitempty" validate:"omitempty,url"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
	IsOwned       bool    `json:"is_owned"`
}

// UpdateBookPayload is the manual-correction payload. Every field is
// optional; only the fields present in the request are written.
type UpdateBookPayload struct {
	Title         *string `json:"title,omitempty" mod:"trim" validate:"omitempty,min=1,max=300"`
	Author        *string `json:"author,omitempty" mod:"trim" validate:"omitempty,min=1,max=200"`
	State         *string `json:"state,omitempty" validate:"omitempty,readingstate"`
	CurrentPage   *int    `json:"current_page,omitempty" validate:"omitempty,min=0"`
	TotalPages    *int    `json:"total_pages,omitempty" validate:"omitempty,min=0"`
	Rating        *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	ISBN          *string `json:"isbn,omitempty" mod:"trim" validate:"omitempty,isbn"`
	Genre         *string `json:"genre,omitempty" mod:"trim" validate:"omitempty,max=100"`
	PublishedDate *string `json:"published_date,omitempty" validate:"omitempty,date"`
	CoverImageURL *string `json:"cover_image_url,omitempty" validate:"omitempty,url"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
	IsOwned       *bool   `json:"is_owned,omitempty"`
}

type UpdateStatePayload struct {
	State string `json:"state" validate:"required,readingstate"`
}

type UpdateProgressPayload struct {
	CurrentPage *int `json:"current_page" validate:"required,min=0"`
}

type RateBookPayload struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}
