package handlers

import (
	"fmt"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/crewline/crewline/internal/db/models"
)

// UserCreateParams defines the parameters for creating a staff member
type UserCreateParams struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Validate validates the parameters for creating a staff member
func (p UserCreateParams) Validate() error {
	if p.Username == "" {
		return fmt.Errorf("username is required")
	}
	if p.Role != "" {
		if _, err := models.ParseStaffRole(p.Role); err != nil {
			return err
		}
	}
	return nil
}

// CreateUser handles creating a staff member
func (h *APIHandler) CreateUser(c *fiber.Ctx) error {
	var params UserCreateParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody, err.Error())
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	user := models.User{
		Username: params.Username,
		Email:    params.Email,
		Role:     models.RoleStaff,
	}
	if params.Role != "" {
		user.Role, _ = models.ParseStaffRole(params.Role)
	}

	if err := h.user.CreateUser(c.Context(), &user); err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgCreateUserFailed, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUsers handles listing staff members
func (h *APIHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.user.GetUsers(c.Context(), getPaginationOptions(c))
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgGetUsersFailed, err.Error())
	}
	return c.JSON(users)
}

// GetUserByID handles retrieving a staff member by id
func (h *APIHandler) GetUserByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	user, err := h.user.GetUserByID(c.Context(), id)
	if err != nil {
		return respondWithError(c, fiber.StatusNotFound, ErrMsgUserNotFound, err.Error())
	}
	return c.JSON(user)
}

// DeleteUser handles deleting a staff member
func (h *APIHandler) DeleteUser(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return respondWithError(c, fiber.StatusUnauthorized, ErrMsgUnauthorized, nil)
	}
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	if err := h.user.DeleteUser(c.Context(), id, actor); err != nil {
		return respondServiceError(c, err, ErrMsgDeleteUserFailed)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LeaveCreateParams defines the parameters for logging staff leave
type LeaveCreateParams struct {
	StaffID   uint      `json:"staff_id"`
	Type      string    `json:"type,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Notes     string    `json:"notes,omitempty"`
}

// Validate validates the parameters for logging staff leave
func (p LeaveCreateParams) Validate() error {
	if p.StaffID == 0 {
		return fmt.Errorf("staff_id is required")
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("leave end date cannot be before start date")
	}
	if p.Type != "" {
		if _, err := models.ParseLeaveType(p.Type); err != nil {
			return err
		}
	}
	return nil
}

// CreateLeave handles logging a leave entry
func (h *APIHandler) CreateLeave(c *fiber.Ctx) error {
	var params LeaveCreateParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody, err.Error())
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	leave := models.Leave{
		StaffID:   params.StaffID,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Notes:     params.Notes,
	}
	if params.Type != "" {
		leave.Type, _ = models.ParseLeaveType(params.Type)
	}

	if err := h.leave.Create(c.Context(), &leave); err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgLeaveCreateFailed, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(leave)
}

// ListStaffLeave handles listing a staff member's leave entries
func (h *APIHandler) ListStaffLeave(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	leaves, err := h.leave.ListByStaff(c.Context(), id, getPaginationOptions(c))
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgLeaveListFailed, err.Error())
	}
	return c.JSON(leaves)
}

// DeleteLeave handles deleting a leave entry
func (h *APIHandler) DeleteLeave(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	if err := h.leave.Delete(c.Context(), id); err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgLeaveDeleteFailed, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
