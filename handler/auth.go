package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/qeonaru/structs"
)

func (h *Handler) login(c *gin.Context, payload []byte) (*reply, error) {
	body, err := bind[structs.LoginBody](payload)
	if err != nil {
		return nil, err
	}

	session, err := h.svc.Auth.Login(c.Request.Context(), body)
	if err != nil {
		return nil, err
	}

	return ok(gin.H{
		"message":  "Login successful",
		"token":    session.Token,
		"username": session.Username,
		"email":    session.Email,
	}), nil
}

func (h *Handler) register(c *gin.Context, payload []byte) (*reply, error) {
	body, err := bind[structs.RegisterBody](payload)
	if err != nil {
		return nil, err
	}

	if _, err := h.svc.Auth.Register(c.Request.Context(), body); err != nil {
		return nil, err
	}

	return created(gin.H{"message": "User registered successfully"}), nil
}
