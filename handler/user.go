package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/qeonaru/structs"
)

func (h *Handler) getUserByID(c *gin.Context, payload []byte) (*reply, error) {
	body, err := bind[structs.FindUserBody](payload)
	if err != nil {
		return nil, err
	}

	user, err := h.svc.User.GetUser(c.Request.Context(), body.UserID)
	if err != nil {
		return nil, err
	}

	return ok(gin.H{"user": user}), nil
}

func (h *Handler) getUsers(c *gin.Context, _ []byte) (*reply, error) {
	users, err := h.svc.User.ListUsers(c.Request.Context())
	if err != nil {
		return nil, err
	}

	return ok(gin.H{"users": users}), nil
}
