package events

type ListEventsQuery struct {
	Limit  int      `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=200"`
	Offset int      `query:"offset" json:"offset,omitempty" validate:"min=0"`
	BookID *string  `query:"book_id" json:"book_id,omitempty" validate:"omitempty,uuid"`
	Types  []string `query:"types" json:"types,omitempty" validate:"omitempty,dive,oneof=add_book state_change progress_update rating_added comment_added manual_update delete_book"`
}
