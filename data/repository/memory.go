package repository

import (
	"bytes"
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ncobase/qeonaru/structs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps every collection in process memory behind one mutex.
// Documents are copied on the way in and out.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]*structs.User
	emails   map[string]primitive.ObjectID
	posts    map[primitive.ObjectID]*structs.Post
	comments map[primitive.ObjectID]*structs.Comment
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[primitive.ObjectID]*structs.User),
		emails:   make(map[string]primitive.ObjectID),
		posts:    make(map[primitive.ObjectID]*structs.Post),
		comments: make(map[primitive.ObjectID]*structs.Comment),
	}
}

// Users returns the user repository view of the store.
func (s *MemoryStore) Users() UserRepository { return &memoryUsers{s} }

// Posts returns the post repository view of the store.
func (s *MemoryStore) Posts() PostRepository { return &memoryPosts{s} }

// Comments returns the comment repository view of the store.
func (s *MemoryStore) Comments() CommentRepository { return &memoryComments{s} }

func addID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeIDs(ids []primitive.ObjectID, remove ...primitive.ObjectID) []primitive.ObjectID {
	return slices.DeleteFunc(ids, func(id primitive.ObjectID) bool {
		return slices.Contains(remove, id)
	})
}

func byIDAsc[T any](items []T, id func(T) primitive.ObjectID) {
	sort.Slice(items, func(i, j int) bool {
		a, b := id(items[i]), id(items[j])
		return bytes.Compare(a[:], b[:]) < 0
	})
}

type memoryUsers struct{ s *MemoryStore }

func (r *memoryUsers) Create(ctx context.Context, user *structs.User) (*structs.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.emails[user.Email]; exists {
		return nil, ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.Normalize()

	r.s.users[user.ID] = user.Clone()
	r.s.emails[user.Email] = user.ID
	return user, nil
}

func (r *memoryUsers) FindByID(ctx context.Context, id string) (*structs.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return u.Clone(), nil
}

func (r *memoryUsers) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*structs.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := []*structs.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			users = append(users, u.Clone())
		}
	}
	return users, nil
}

func (r *memoryUsers) FindByEmail(ctx context.Context, email string) (*structs.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	return r.s.users[id].Clone(), nil
}

func (r *memoryUsers) List(ctx context.Context) ([]*structs.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*structs.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u.Clone())
	}
	byIDAsc(users, func(u *structs.User) primitive.ObjectID { return u.ID })
	return users, nil
}

func (r *memoryUsers) modify(ctx context.Context, id primitive.ObjectID, fn func(*structs.User)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return ErrNotFound
	}
	fn(u)
	return nil
}

func (r *memoryUsers) AddPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.modify(ctx, userID, func(u *structs.User) { u.Posts = addID(u.Posts, postID) })
}

func (r *memoryUsers) RemovePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.modify(ctx, userID, func(u *structs.User) { u.Posts = removeIDs(u.Posts, postID) })
}

func (r *memoryUsers) AddComment(ctx context.Context, userID, commentID primitive.ObjectID) error {
	return r.modify(ctx, userID, func(u *structs.User) { u.Comments = addID(u.Comments, commentID) })
}

func (r *memoryUsers) RemoveComment(ctx context.Context, userID, commentID primitive.ObjectID) error {
	return r.modify(ctx, userID, func(u *structs.User) { u.Comments = removeIDs(u.Comments, commentID) })
}

func (r *memoryUsers) RemoveComments(ctx context.Context, commentIDs []primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(commentIDs) == 0 {
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		u.Comments = removeIDs(u.Comments, commentIDs...)
	}
	return nil
}

type memoryPosts struct{ s *MemoryStore }

func (r *memoryPosts) Create(ctx context.Context, post *structs.Post) (*structs.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = post.CreatedAt
	}
	post.Normalize()

	r.s.posts[post.ID] = post.Clone()
	return post, nil
}

func (r *memoryPosts) FindByID(ctx context.Context, id string) (*structs.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (r *memoryPosts) Search(ctx context.Context, query string) ([]*structs.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q := strings.ToLower(query)
	posts := []*structs.Post{}
	for _, p := range r.s.posts {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			posts = append(posts, p.Clone())
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) > 0
	})
	return posts, nil
}

func (r *memoryPosts) Update(ctx context.Context, post *structs.Post) (*structs.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.posts[post.ID]
	if !ok {
		return nil, ErrNotFound
	}
	stored.Title = post.Title
	stored.Slug = post.Slug
	stored.Category = post.Category
	stored.Content = post.Content.Clone()
	stored.UpdatedAt = time.Now()
	return stored.Clone(), nil
}

func (r *memoryPosts) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func (r *memoryPosts) modify(ctx context.Context, id primitive.ObjectID, fn func(*structs.Post)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return ErrNotFound
	}
	fn(p)
	return nil
}

func (r *memoryPosts) AddComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	return r.modify(ctx, postID, func(p *structs.Post) { p.Comments = addID(p.Comments, commentID) })
}

func (r *memoryPosts) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	return r.modify(ctx, postID, func(p *structs.Post) { p.Comments = removeIDs(p.Comments, commentID) })
}

type memoryComments struct{ s *MemoryStore }

func (r *memoryComments) Create(ctx context.Context, comment *structs.Comment) (*structs.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	r.s.comments[comment.ID] = comment.Clone()
	return comment, nil
}

func (r *memoryComments) FindByID(ctx context.Context, id string) (*structs.Comment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[oid]
	if !ok {
		return nil, ErrNotFound
	}
	return c.Clone(), nil
}

func (r *memoryComments) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*structs.Comment, error) {
	return r.filter(ctx, func(c *structs.Comment) bool { return slices.Contains(ids, c.ID) })
}

func (r *memoryComments) FindByPost(ctx context.Context, postID primitive.ObjectID) ([]*structs.Comment, error) {
	return r.filter(ctx, func(c *structs.Comment) bool { return c.PostID == postID })
}

func (r *memoryComments) filter(ctx context.Context, match func(*structs.Comment) bool) ([]*structs.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comments := []*structs.Comment{}
	for _, c := range r.s.comments {
		if match(c) {
			comments = append(comments, c.Clone())
		}
	}
	byIDAsc(comments, func(c *structs.Comment) primitive.ObjectID { return c.ID })
	return comments, nil
}

func (r *memoryComments) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}

func (r *memoryComments) DeleteByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, c := range r.s.comments {
		if c.PostID == postID {
			delete(r.s.comments, id)
			n++
		}
	}
	return n, nil
}
