package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/qeonaru/ctxutil"
	"github.com/ncobase/qeonaru/ecode"
	"github.com/ncobase/qeonaru/middleware"
	"github.com/ncobase/qeonaru/net/resp"
	"github.com/ncobase/qeonaru/structs"
	"github.com/ncobase/qeonaru/validator"
)

const (
	msgInvalidAction = "Invalid action"
	msgInvalidBody   = "Invalid request body"

	// maxBodyBytes bounds the POST body.
	maxBodyBytes = 1 << 20
)

// queryFields are the query parameters forwarded to read-only actions.
var queryFields = []string{"postId", "userId", "query"}

// reply is the outcome of one action.
type reply struct {
	status int
	body   any
}

func ok(body any) *reply      { return &reply{status: http.StatusOK, body: body} }
func created(body any) *reply { return &reply{status: http.StatusCreated, body: body} }

// Post dispatches a JSON body carrying an action.
func (h *Handler) Post(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		h.fail(c, ecode.New(ecode.RequestErr, msgInvalidBody))
		return
	}

	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		h.fail(c, ecode.New(ecode.RequestErr, msgInvalidBody))
		return
	}

	action, found := ParseAction(envelope.Action)
	if !found {
		h.fail(c, ecode.New(ecode.RequestErr, msgInvalidAction))
		return
	}
	h.run(c, action, payload)
}

// Get dispatches a read-only action named in the query string.
func (h *Handler) Get(c *gin.Context) {
	action, found := ParseAction(c.Query("action"))
	if !found || !action.ReadOnly() {
		h.fail(c, ecode.New(ecode.RequestErr, msgInvalidAction))
		return
	}

	fields := make(map[string]string, len(queryFields))
	for _, key := range queryFields {
		if v, exists := c.GetQuery(key); exists {
			fields[key] = v
		}
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.run(c, action, payload)
}

func (h *Handler) run(c *gin.Context, action Action, payload []byte) {
	c.Set(middleware.ActionKey, action.String())

	r, err := h.dispatch(c, action, payload)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp.WithStatusCode(c.Writer, r.status, r.body)
}

// dispatch invokes the handler of action.
func (h *Handler) dispatch(c *gin.Context, action Action, payload []byte) (*reply, error) {
	switch action {
	case ActionLogin:
		return h.login(c, payload)
	case ActionRegister:
		return h.register(c, payload)
	case ActionCreatePost:
		return h.createPost(c, payload)
	case ActionUpdatePost:
		return h.updatePost(c, payload)
	case ActionDeletePost:
		return h.deletePost(c, payload)
	case ActionGetPostByID:
		return h.getPostByID(c, payload)
	case ActionGetPosts:
		return h.getPosts(c, payload)
	case ActionCreateComment:
		return h.createComment(c, payload)
	case ActionDeleteComment:
		return h.deleteComment(c, payload)
	case ActionGetUserByID:
		return h.getUserByID(c, payload)
	case ActionGetUsers:
		return h.getUsers(c, payload)
	}
	return nil, ecode.New(ecode.RequestErr, msgInvalidAction)
}

// fail writes err. Faults without a client-visible code are logged and
// reported as a generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	if e, isCoded := ecode.FromError(err); !isCoded || e.Status() >= http.StatusInternalServerError {
		action, _ := c.Get(middleware.ActionKey)
		h.logger.Error(c.Request.Context(), "request failed", "action", action, "error", err)
	}
	resp.Fail(c.Writer, resp.FromError(err))
}

// bind decodes payload into a T and validates it.
func bind[T any](payload []byte) (*T, error) {
	body := new(T)
	if err := json.Unmarshal(payload, body); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, ecode.ValidationError(msgInvalidBody).
				WithFields(map[string]string{typeErr.Field: ecode.FieldIsInvalid(typeErr.Field)})
		}
		return nil, ecode.New(ecode.RequestErr, msgInvalidBody)
	}
	if err := validator.Validate(body); err != nil {
		return nil, err
	}
	return body, nil
}

type tokenCarrier interface {
	SessionToken() string
}

// authenticate resolves the acting user from the body token or the
// Authorization header and records the user on the request context.
func (h *Handler) authenticate(c *gin.Context, body tokenCarrier) (*structs.User, error) {
	token := body.SessionToken()
	if token == "" {
		token = bearerToken(c.GetHeader("Authorization"))
	}

	user, err := h.svc.Auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}
	c.Request = c.Request.WithContext(ctxutil.SetUserID(c.Request.Context(), user.ID.Hex()))
	return user, nil
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
