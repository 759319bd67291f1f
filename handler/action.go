package handler

// Action names an operation of the /api endpoint.
type Action string

const (
	ActionLogin         Action = "LOGIN"
	ActionRegister      Action = "REGIST"
	ActionCreatePost    Action = "CREATE_POST"
	ActionUpdatePost    Action = "UPDATE_POST"
	ActionDeletePost    Action = "DELETE_POST"
	ActionGetPostByID   Action = "GET_POST_BY_ID"
	ActionGetPosts      Action = "GET_POSTS"
	ActionCreateComment Action = "CREATE_COMMENT"
	ActionDeleteComment Action = "DELETE_COMMENT"
	ActionGetUserByID   Action = "GET_USER_BY_ID"
	ActionGetUsers      Action = "GET_USERS"
)

// Actions lists every action in declaration order.
var Actions = []Action{
	ActionLogin,
	ActionRegister,
	ActionCreatePost,
	ActionUpdatePost,
	ActionDeletePost,
	ActionGetPostByID,
	ActionGetPosts,
	ActionCreateComment,
	ActionDeleteComment,
	ActionGetUserByID,
	ActionGetUsers,
}

// ParseAction returns the action named s.
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	switch a {
	case ActionLogin, ActionRegister,
		ActionCreatePost, ActionUpdatePost, ActionDeletePost,
		ActionGetPostByID, ActionGetPosts,
		ActionCreateComment, ActionDeleteComment,
		ActionGetUserByID, ActionGetUsers:
		return a, true
	}
	return "", false
}

// ReadOnly reports whether the action may be sent with GET.
func (a Action) ReadOnly() bool {
	switch a {
	case ActionGetPostByID, ActionGetPosts, ActionGetUserByID, ActionGetUsers:
		return true
	}
	return false
}

func (a Action) String() string {
	return string(a)
}
