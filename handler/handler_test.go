package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/qeonaru/config"
	"github.com/ncobase/qeonaru/data"
	"github.com/ncobase/qeonaru/logging/logger"
	"github.com/ncobase/qeonaru/middleware"
	"github.com/ncobase/qeonaru/service"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	data   *data.Data
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.Discard()
	d := data.NewMemory()
	svc := service.NewService(d, &config.Auth{
		JWT:        &config.JWT{Secret: "test-secret", Expire: time.Hour},
		BcryptCost: bcrypt.MinCost,
	}, log)

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Trace())
	NewHandler(svc, d, log).RegisterRoutes(r)
	return &testServer{t: t, router: r, data: d}
}

type result struct {
	status int
	body   map[string]any
	header http.Header
}

func (s *testServer) do(req *http.Request) result {
	s.t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		s.t.Fatalf("%s %s: invalid JSON %q: %v", req.Method, req.URL, w.Body.String(), err)
	}
	return result{status: w.Code, body: body, header: w.Header()}
}

func (s *testServer) post(payload map[string]any) result {
	s.t.Helper()
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return s.do(req)
}

func (s *testServer) get(params url.Values) result {
	s.t.Helper()
	return s.do(httptest.NewRequest(http.MethodGet, "/api?"+params.Encode(), nil))
}

// signUp registers and logs in a user, returning the session token.
func (s *testServer) signUp(name string) string {
	s.t.Helper()
	email := name + "@x.com"
	if r := s.post(map[string]any{"action": "REGIST", "username": name, "email": email, "password": "pw123"}); r.status != http.StatusCreated {
		s.t.Fatalf("REGIST %s: %d %v", name, r.status, r.body)
	}
	r := s.post(map[string]any{"action": "LOGIN", "email": email, "password": "pw123"})
	if r.status != http.StatusOK {
		s.t.Fatalf("LOGIN %s: %d %v", name, r.status, r.body)
	}
	return r.body["token"].(string)
}

func content(text string) []map[string]any {
	return []map[string]any{{"alignment": "left", "segments": []map[string]any{{"text": text, "isBold": false}}}}
}

func (s *testServer) createPost(token, title, category string) string {
	s.t.Helper()
	r := s.post(map[string]any{"action": "CREATE_POST", "token": token, "title": title, "category": category, "content": content("hi")})
	if r.status != http.StatusCreated {
		s.t.Fatalf("CREATE_POST: %d %v", r.status, r.body)
	}
	return r.body["post"].(map[string]any)["id"].(string)
}

func (s *testServer) createComment(token, postID, text string) string {
	s.t.Helper()
	r := s.post(map[string]any{"action": "CREATE_COMMENT", "token": token, "postId": postID, "content": text})
	if r.status != http.StatusCreated {
		s.t.Fatalf("CREATE_COMMENT: %d %v", r.status, r.body)
	}
	return r.body["comment"].(map[string]any)["id"].(string)
}

func wantStatus(t *testing.T, r result, status int, errText string) {
	t.Helper()
	if r.status != status {
		t.Fatalf("status = %d, want %d (body %v)", r.status, status, r.body)
	}
	if errText != "" && r.body["error"] != errText {
		t.Fatalf("error = %v, want %q", r.body["error"], errText)
	}
}

func TestAliceScenario(t *testing.T) {
	s := newTestServer(t)

	r := s.post(map[string]any{"action": "REGIST", "username": "alice", "email": "alice@x.com", "password": "pw123"})
	wantStatus(t, r, http.StatusCreated, "")
	if r.body["message"] != "User registered successfully" {
		t.Errorf("REGIST body = %v", r.body)
	}

	r = s.post(map[string]any{"action": "LOGIN", "email": "alice@x.com", "password": "pw123"})
	wantStatus(t, r, http.StatusOK, "")
	if r.body["message"] != "Login successful" || r.body["username"] != "alice" || r.body["email"] != "alice@x.com" {
		t.Errorf("LOGIN body = %v", r.body)
	}
	token := r.body["token"].(string)

	r = s.post(map[string]any{
		"action":   "CREATE_POST",
		"token":    token,
		"title":    "T",
		"category": "C",
		"content":  content("hi"),
	})
	wantStatus(t, r, http.StatusCreated, "")
	postID := r.body["post"].(map[string]any)["id"].(string)

	r = s.post(map[string]any{"action": "GET_POST_BY_ID", "postId": postID})
	wantStatus(t, r, http.StatusOK, "")
	post := r.body["post"].(map[string]any)
	owner, isObject := post["userId"].(map[string]any)
	if !isObject || owner["username"] != "alice" {
		t.Fatalf("post.userId = %v", post["userId"])
	}
	if _, leaked := owner["password"]; leaked {
		t.Error("password serialized")
	}

	r = s.get(url.Values{"action": {"GET_POST_BY_ID"}, "postId": {postID}})
	wantStatus(t, r, http.StatusOK, "")
	if r.body["post"].(map[string]any)["title"] != "T" {
		t.Errorf("GET post = %v", r.body["post"])
	}
}

func TestRouterErrors(t *testing.T) {
	s := newTestServer(t)

	wantStatus(t, s.post(map[string]any{"action": "DROP_DATABASE"}), http.StatusBadRequest, "Invalid action")
	wantStatus(t, s.post(map[string]any{}), http.StatusBadRequest, "Invalid action")
	wantStatus(t, s.get(url.Values{"action": {"LOGIN"}}), http.StatusBadRequest, "Invalid action")
	wantStatus(t, s.get(url.Values{}), http.StatusBadRequest, "Invalid action")

	req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader("{not json"))
	wantStatus(t, s.do(req), http.StatusBadRequest, "Invalid request body")

	r := s.post(map[string]any{"action": "LOGIN", "email": "a@x.com"})
	wantStatus(t, r, http.StatusBadRequest, "Missing required fields")
	if errs, _ := r.body["errors"].(map[string]any); errs["password"] == nil {
		t.Errorf("errors = %v", r.body["errors"])
	}
	if r.header.Get(middleware.TraceHeader) == "" {
		t.Error("trace header missing")
	}

	wantStatus(t, s.do(httptest.NewRequest(http.MethodGet, "/nope", nil)), http.StatusNotFound, "")
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)
	s.signUp("alice")

	r := s.post(map[string]any{"action": "REGIST", "username": "again", "email": "alice@x.com", "password": "x"})
	wantStatus(t, r, http.StatusBadRequest, "Email is already in use")

	r = s.get(url.Values{"action": {"GET_USERS"}})
	wantStatus(t, r, http.StatusOK, "")
	if users := r.body["users"].([]any); len(users) != 1 {
		t.Fatalf("users = %v", users)
	}

	wrong := s.post(map[string]any{"action": "LOGIN", "email": "alice@x.com", "password": "bad"})
	unknown := s.post(map[string]any{"action": "LOGIN", "email": "bob@x.com", "password": "pw123"})
	wantStatus(t, wrong, http.StatusUnauthorized, "Invalid email or password")
	wantStatus(t, unknown, http.StatusUnauthorized, "Invalid email or password")
}

func TestCreatePostRequiresValidToken(t *testing.T) {
	s := newTestServer(t)
	valid := s.signUp("alice")

	for _, token := range []string{"", "garbage", valid + "x"} {
		r := s.post(map[string]any{"action": "CREATE_POST", "token": token, "title": "T", "category": "C", "content": content("hi")})
		wantStatus(t, r, http.StatusUnauthorized, "Invalid or expired token")
	}
	if posts, _ := s.data.Posts.Search(context.Background(), ""); len(posts) != 0 {
		t.Fatalf("%d posts created without a valid token", len(posts))
	}

	b, _ := json.Marshal(map[string]any{"action": "CREATE_POST", "title": "T", "category": "C", "content": content("hi")})
	req := httptest.NewRequest(http.MethodPost, "/api", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+valid)
	wantStatus(t, s.do(req), http.StatusCreated, "")
}

func TestCreatePostValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp("alice")

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing title", map[string]any{"category": "C", "content": content("hi")}},
		{"empty content", map[string]any{"title": "T", "category": "C", "content": []any{}}},
		{"blank segments", map[string]any{"title": "T", "category": "C", "content": content("   ")}},
		{"bad alignment", map[string]any{"title": "T", "category": "C", "content": []map[string]any{{"alignment": "justify", "segments": []map[string]any{{"text": "x"}}}}}},
		{"content as string", map[string]any{"title": "T", "category": "C", "content": "plain"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.payload["action"] = "CREATE_POST"
			tt.payload["token"] = token
			wantStatus(t, s.post(tt.payload), http.StatusBadRequest, "")
		})
	}
}

func TestPostLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice := s.signUp("alice")
	bob := s.signUp("bob")
	postID := s.createPost(alice, "First", "misc")
	commentID := s.createComment(bob, postID, "hello")

	edit := map[string]any{"action": "UPDATE_POST", "postId": postID, "title": "Edited", "category": "misc", "content": content("new")}

	edit["token"] = bob
	wantStatus(t, s.post(edit), http.StatusForbidden, "Access denied")
	wantStatus(t, s.post(map[string]any{"action": "DELETE_POST", "token": bob, "postId": postID}), http.StatusForbidden, "Access denied")

	edit["token"] = alice
	r := s.post(edit)
	wantStatus(t, r, http.StatusOK, "")
	if p := r.body["post"].(map[string]any); p["title"] != "Edited" || p["slug"] != "edited" {
		t.Errorf("updated post = %v", p)
	}

	r = s.post(map[string]any{"action": "GET_POST_BY_ID", "postId": postID})
	comments := r.body["post"].(map[string]any)["comments"].([]any)
	if len(comments) != 1 || comments[0].(map[string]any)["userId"].(map[string]any)["username"] != "bob" {
		t.Fatalf("comments = %v", comments)
	}

	r = s.post(map[string]any{"action": "DELETE_POST", "token": alice, "postId": postID})
	wantStatus(t, r, http.StatusOK, "")
	if r.body["message"] != "Post deleted successfully" {
		t.Errorf("DELETE_POST body = %v", r.body)
	}

	wantStatus(t, s.post(map[string]any{"action": "GET_POST_BY_ID", "postId": postID}), http.StatusNotFound, "Post not found")
	if _, err := s.data.Comments.FindByID(context.Background(), commentID); err == nil {
		t.Error("comment survived post deletion")
	}
	r = s.get(url.Values{"action": {"GET_USERS"}})
	for _, u := range r.body["users"].([]any) {
		user := u.(map[string]any)
		if len(user["posts"].([]any)) != 0 || len(user["comments"].([]any)) != 0 {
			t.Errorf("user %v still references deleted documents", user["username"])
		}
	}
}

func TestReadHandlers(t *testing.T) {
	s := newTestServer(t)
	alice := s.signUp("alice")
	first := s.createPost(alice, "Boston trip", "travel")
	s.createPost(alice, "Recipes", "food")
	third := s.createPost(alice, "Weekend", "cOSmos")

	r := s.get(url.Values{"action": {"GET_POSTS"}, "query": {"Os"}})
	wantStatus(t, r, http.StatusOK, "")
	posts := r.body["posts"].([]any)
	if len(posts) != 2 ||
		posts[0].(map[string]any)["id"] != third ||
		posts[1].(map[string]any)["id"] != first {
		t.Fatalf("GET_POSTS query=Os = %v", posts)
	}
	for _, p := range posts {
		if p.(map[string]any)["userId"].(map[string]any)["username"] != "alice" {
			t.Errorf("owner not expanded: %v", p)
		}
	}

	r = s.post(map[string]any{"action": "GET_POSTS"})
	if len(r.body["posts"].([]any)) != 3 {
		t.Errorf("GET_POSTS without query = %v", r.body["posts"])
	}
	r = s.get(url.Values{"action": {"GET_POSTS"}, "query": {"(["}})
	wantStatus(t, r, http.StatusOK, "")

	wantStatus(t, s.post(map[string]any{"action": "GET_POST_BY_ID"}), http.StatusBadRequest, "Missing required fields")
	wantStatus(t, s.post(map[string]any{"action": "GET_POST_BY_ID", "postId": "not-an-id"}), http.StatusNotFound, "Post not found")
	wantStatus(t, s.get(url.Values{"action": {"GET_USER_BY_ID"}}), http.StatusBadRequest, "Missing required fields")
	wantStatus(t, s.get(url.Values{"action": {"GET_USER_BY_ID"}, "userId": {"6523f0c2a1b2c3d4e5f60718"}}), http.StatusNotFound, "User not found")

	users := s.get(url.Values{"action": {"GET_USERS"}}).body["users"].([]any)
	id := users[0].(map[string]any)["id"].(string)
	r = s.post(map[string]any{"action": "GET_USER_BY_ID", "userId": id})
	wantStatus(t, r, http.StatusOK, "")
	if u := r.body["user"].(map[string]any); u["username"] != "alice" || len(u["posts"].([]any)) != 3 {
		t.Errorf("user = %v", u)
	}
}

func TestCommentLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice := s.signUp("alice")
	bob := s.signUp("bob")
	postID := s.createPost(alice, "T", "C")
	commentID := s.createComment(bob, postID, "hi")

	r := s.post(map[string]any{"action": "CREATE_COMMENT", "token": bob, "postId": "6523f0c2a1b2c3d4e5f60718", "content": "x"})
	wantStatus(t, r, http.StatusNotFound, "Post not found")
	r = s.post(map[string]any{"action": "CREATE_COMMENT", "token": bob, "postId": postID})
	wantStatus(t, r, http.StatusBadRequest, "Missing required fields")

	del := map[string]any{"action": "DELETE_COMMENT", "postId": postID, "commentId": commentID}
	del["token"] = alice
	wantStatus(t, s.post(del), http.StatusForbidden, "Access denied")

	del["token"] = bob
	r = s.post(del)
	wantStatus(t, r, http.StatusOK, "")
	if r.body["message"] != "Comment deleted successfully" {
		t.Errorf("body = %v", r.body)
	}
	wantStatus(t, s.post(del), http.StatusNotFound, "Comment not found")
}

func TestConcurrentDeleteComment(t *testing.T) {
	s := newTestServer(t)
	alice := s.signUp("alice")
	postID := s.createPost(alice, "T", "C")
	commentID := s.createComment(alice, postID, "race")

	payload, _ := json.Marshal(map[string]any{"action": "DELETE_COMMENT", "token": alice, "postId": postID, "commentId": commentID})

	statuses := make([]int, 2)
	var wg sync.WaitGroup
	for i := range statuses {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api", bytes.NewReader(payload)))
			statuses[i] = w.Code
		}()
	}
	wg.Wait()

	if !((statuses[0] == 200 && statuses[1] == 404) || (statuses[0] == 404 && statuses[1] == 200)) {
		t.Fatalf("statuses = %v, want one 200 and one 404", statuses)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	r := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	wantStatus(t, r, http.StatusOK, "")
	if r.body["status"] != "healthy" {
		t.Errorf("body = %v", r.body)
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		got, found := ParseAction(string(a))
		if !found || got != a {
			t.Errorf("ParseAction(%q) = %q, %v", a, got, found)
		}
	}
	for _, s := range []string{"", "login", "DELETE_USER"} {
		if _, found := ParseAction(s); found {
			t.Errorf("ParseAction(%q) accepted", s)
		}
	}
	if !ActionGetPosts.ReadOnly() || ActionCreatePost.ReadOnly() {
		t.Error("ReadOnly misclassified")
	}
}
