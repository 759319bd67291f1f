package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/qeonaru/structs"
)

func (h *Handler) createComment(c *gin.Context, payload []byte) (*reply, error) {
	body, err := bind[structs.CreateCommentBody](payload)
	if err != nil {
		return nil, err
	}
	actor, err := h.authenticate(c, body)
	if err != nil {
		return nil, err
	}

	comment, err := h.svc.Comment.CreateComment(c.Request.Context(), actor, body.PostID, body.Content)
	if err != nil {
		return nil, err
	}

	return created(gin.H{"message": "Comment created successfully", "comment": comment}), nil
}

func (h *Handler) deleteComment(c *gin.Context, payload []byte) (*reply, error) {
	body, err := bind[structs.DeleteCommentBody](payload)
	if err != nil {
		return nil, err
	}
	actor, err := h.authenticate(c, body)
	if err != nil {
		return nil, err
	}

	if err := h.svc.Comment.DeleteComment(c.Request.Context(), actor, body.PostID, body.CommentID); err != nil {
		return nil, err
	}

	return ok(gin.H{"message": "Comment deleted successfully"}), nil
}
