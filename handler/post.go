package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/qeonaru/structs"
)

func (h *Handler) createPost(c *gin.Context, payload []byte) (*reply, error) {
	body, err := bind[structs.CreatePostBody](payload)
	if err != nil {
		return nil, err
	}
	actor, err := h.authenticate(c, body)
	if err != nil {
		return nil, err
	}

	post, err := h.svc.Post.CreatePost(c.Request.Context(), actor, body.Fields())
	if err != nil {
		return nil, err
	}

	return created(gin.H{"message": "Post created successfully", "post": post}), nil
}

func (h *Handler) updatePost(c *gin.Context, payload []byte) (*reply, error) {
	body, err := bind[structs.UpdatePostBody](payload)
	if err != nil {
		return nil, err
	}
	actor, err := h.authenticate(c, body)
	if err != nil {
		return nil, err
	}

	post, err := h.svc.Post.UpdatePost(c.Request.Context(), actor, body.PostID, body.Fields())
	if err != nil {
		return nil, err
	}

	return ok(gin.H{"message": "Post updated successfully", "post": post}), nil
}

func (h *Handler) deletePost(c *gin.Context, payload []byte) (*reply, error) {
	body, err := bind[structs.DeletePostBody](payload)
	if err != nil {
		return nil, err
	}
	actor, err := h.authenticate(c, body)
	if err != nil {
		return nil, err
	}

	if err := h.svc.Post.DeletePost(c.Request.Context(), actor, body.PostID); err != nil {
		return nil, err
	}

	return ok(gin.H{"message": "Post deleted successfully"}), nil
}

func (h *Handler) getPostByID(c *gin.Context, payload []byte) (*reply, error) {
	body, err := bind[structs.FindPostBody](payload)
	if err != nil {
		return nil, err
	}

	post, err := h.svc.Post.GetPost(c.Request.Context(), body.PostID)
	if err != nil {
		return nil, err
	}

	return ok(gin.H{"post": post}), nil
}

func (h *Handler) getPosts(c *gin.Context, payload []byte) (*reply, error) {
	body, err := bind[structs.SearchPostsBody](payload)
	if err != nil {
		return nil, err
	}

	posts, err := h.svc.Post.SearchPosts(c.Request.Context(), body.Query)
	if err != nil {
		return nil, err
	}

	return ok(gin.H{"posts": posts}), nil
}
