package comments

type ListCommentsQuery struct {
	Limit  int     `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=200"`
	Offset int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	BookID *string `query:"book_id" json:"book_id,omitempty" validate:"omitempty,uuid"`
}

type CreateCommentPayload struct {
	BookID string `json:"book_id" validate:"required,uuid"`
	Text   string `json:"text" mod:"trim" validate:"required,max=2000"`
}
