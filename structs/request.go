package structs

// Authenticated is embedded by the bodies of actions that need a signed-in user.
// An empty token falls back to the Authorization header.
type Authenticated struct {
	Token string `json:"token"`
}

// SessionToken returns the token carried in the body.
func (a *Authenticated) SessionToken() string {
	return a.Token
}

// LoginBody is the LOGIN payload.
type LoginBody struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterBody is the REGIST payload.
type RegisterBody struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Bio      string `json:"bio"`
}

// PostBody holds the editable fields of a post.
type PostBody struct {
	Title    string  `json:"title" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Content  Content `json:"content" validate:"required,min=1,dive"`
}

// CreatePostBody is the CREATE_POST payload.
type CreatePostBody struct {
	Authenticated
	Title    string  `json:"title" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Content  Content `json:"content" validate:"required,min=1,dive"`
}

// Fields returns the editable fields of the body.
func (b *CreatePostBody) Fields() *PostBody {
	return &PostBody{Title: b.Title, Category: b.Category, Content: b.Content}
}

// UpdatePostBody is the UPDATE_POST payload.
type UpdatePostBody struct {
	Authenticated
	PostID   string  `json:"postId" validate:"required"`
	Title    string  `json:"title" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Content  Content `json:"content" validate:"required,min=1,dive"`
}

// Fields returns the editable fields of the body.
func (b *UpdatePostBody) Fields() *PostBody {
	return &PostBody{Title: b.Title, Category: b.Category, Content: b.Content}
}

// DeletePostBody is the DELETE_POST payload.
type DeletePostBody struct {
	Authenticated
	PostID string `json:"postId" validate:"required"`
}

// CreateCommentBody is the CREATE_COMMENT payload.
type CreateCommentBody struct {
	Authenticated
	PostID  string `json:"postId" validate:"required"`
	Content string `json:"content" validate:"required,notblank"`
}

// DeleteCommentBody is the DELETE_COMMENT payload.
type DeleteCommentBody struct {
	Authenticated
	PostID    string `json:"postId" validate:"required"`
	CommentID string `json:"commentId" validate:"required"`
}

// FindPostBody is the GET_POST_BY_ID payload.
type FindPostBody struct {
	PostID string `json:"postId" validate:"required"`
}

// SearchPostsBody is the GET_POSTS payload.
type SearchPostsBody struct {
	Query string `json:"query"`
}

// FindUserBody is the GET_USER_BY_ID payload.
type FindUserBody struct {
	UserID string `json:"userId" validate:"required"`
}
