package genres

// GenrePayload is the genre create and update form.
type GenrePayload struct {
	Name string `form:"name" mod:"trim" validate:"min=3,max=100" sanitize:"escape" msg_min:"Genre name must contain at least 3 characters"`
}

// DeleteGenrePayload is the delete confirmation form.
type DeleteGenrePayload struct {
	GenreID string `form:"genreid" mod:"trim"`
}
