package handlers

import (
	"strconv"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/crewline/crewline/internal/db/models"
)

// CreateTask handles creating a task, risk or issue item
func (h *APIHandler) CreateTask(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return respondWithError(c, fiber.StatusUnauthorized, ErrMsgUnauthorized, nil)
	}

	var params TaskCreateParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody, err.Error())
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	task := params.ToModel()
	if err := h.task.Create(c.Context(), &task, actor); err != nil {
		return respondServiceError(c, err, ErrMsgTaskCreateFailed)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetTask handles retrieving a task by id
func (h *APIHandler) GetTask(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	task, err := h.task.Get(c.Context(), id)
	if err != nil {
		return respondWithError(c, fiber.StatusNotFound, ErrMsgTaskNotFound, err.Error())
	}
	return c.JSON(task)
}

// ListProjectTasks handles listing the tasks of a project
func (h *APIHandler) ListProjectTasks(c *fiber.Ctx) error {
	projectID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	tasks, err := h.task.ListByProject(c.Context(), uint(projectID), getPaginationOptions(c))
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgTaskListFailed, err.Error())
	}
	return c.JSON(tasks)
}

// UpdateTask handles applying a partial field set to a task
func (h *APIHandler) UpdateTask(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}

	var params TaskUpdateParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody, err.Error())
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	task, err := h.task.Update(c.Context(), id, params.Fields())
	if err != nil {
		return respondServiceError(c, err, ErrMsgTaskUpdateFailed)
	}
	return c.JSON(task)
}

// DeleteTask handles deleting a task
func (h *APIHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	if err := h.task.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, err, ErrMsgTaskDeleteFailed)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeTaskStatus handles a guarded task status change
func (h *APIHandler) ChangeTaskStatus(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}

	var params TaskStatusParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody, err.Error())
	}
	status, err := models.ParseTaskStatus(params.Status)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgTaskStatusInvalid, err.Error())
	}

	effect, err := h.task.RequestStatusChange(c.Context(), id, status)
	if err != nil {
		return respondServiceError(c, err, ErrMsgTaskUpdateFailed)
	}
	return c.JSON(effect)
}

// CompleteTask handles the complete-task capture flow
func (h *APIHandler) CompleteTask(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}

	var params TaskCompleteParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody, err.Error())
	}

	task, err := h.task.Complete(c.Context(), id, params.TimeSpent, params.TimeSaved)
	if err != nil {
		return respondServiceError(c, err, ErrMsgTaskUpdateFailed)
	}
	return c.JSON(task)
}
