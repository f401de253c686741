package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/crewline/crewline/internal/db/models"
)

// CreateProject handles creating a project
func (h *APIHandler) CreateProject(c *fiber.Ctx) error {
	var params ProjectCreateParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody, err.Error())
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	project := params.ToModel()
	if err := h.project.Create(c.Context(), &project); err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgProjCreateFailed, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProject handles retrieving a project by id
func (h *APIHandler) GetProject(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	project, err := h.project.Get(c.Context(), id)
	if err != nil {
		return respondWithError(c, fiber.StatusNotFound, ErrMsgProjNotFound, err.Error())
	}
	return c.JSON(project)
}

// GetProjectView handles retrieving the derived view of a project
func (h *APIHandler) GetProjectView(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	view, err := h.project.View(c.Context(), id)
	if err != nil {
		return respondWithError(c, fiber.StatusNotFound, ErrMsgProjViewFailed, err.Error())
	}
	return c.JSON(view)
}

// ListProjects handles listing projects with pagination
func (h *APIHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.project.List(c.Context(), getPaginationOptions(c))
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgProjListFailed, err.Error())
	}
	return c.JSON(projects)
}

// ListProjectViews handles listing the derived views of every project
func (h *APIHandler) ListProjectViews(c *fiber.Ctx) error {
	views, err := h.project.ListViews(c.Context())
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgProjViewFailed, err.Error())
	}
	return c.JSON(views)
}

// UpdateProject handles applying a partial field set to a project
func (h *APIHandler) UpdateProject(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return respondWithError(c, fiber.StatusUnauthorized, ErrMsgUnauthorized, nil)
	}
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}

	var params ProjectUpdateParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody, err.Error())
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	project, err := h.project.Update(c.Context(), id, params.Fields(), actor)
	if err != nil {
		return respondServiceError(c, err, ErrMsgProjUpdateFailed)
	}
	return c.JSON(project)
}

// DeleteProject handles deleting a project
func (h *APIHandler) DeleteProject(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return respondWithError(c, fiber.StatusUnauthorized, ErrMsgUnauthorized, nil)
	}
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	if err := h.project.Delete(c.Context(), id, actor); err != nil {
		return respondServiceError(c, err, ErrMsgProjDeleteFailed)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeProjectStatus handles a guarded project status change. The response
// always carries the guard effect so the UI can open a follow-up flow or
// show the rejection reason.
func (h *APIHandler) ChangeProjectStatus(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return respondWithError(c, fiber.StatusUnauthorized, ErrMsgUnauthorized, nil)
	}
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}

	var params ProjectStatusParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody, err.Error())
	}
	status, err := models.ParseProjectStatus(params.Status)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgProjStatusInvalid, err.Error())
	}

	effect, err := h.project.RequestStatusChange(c.Context(), id, status, actor)
	if err != nil {
		return respondServiceError(c, err, ErrMsgProjStatusFailed)
	}
	return c.JSON(effect)
}

// StartProjectTimer handles starting the live timer
func (h *APIHandler) StartProjectTimer(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	project, err := h.project.StartTimer(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err, ErrMsgProjTimerFailed)
	}
	return c.JSON(project)
}

// HoldProjectTimer handles stopping the live timer and folding the session
// into the baseline
func (h *APIHandler) HoldProjectTimer(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	project, err := h.project.HoldTimer(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err, ErrMsgProjTimerFailed)
	}
	return c.JSON(project)
}

// CompleteProjectNotSatisfied handles the not-satisfied reason-capture flow
func (h *APIHandler) CompleteProjectNotSatisfied(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return respondWithError(c, fiber.StatusUnauthorized, ErrMsgUnauthorized, nil)
	}
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	var params NotSatisfiedParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody, err.Error())
	}
	project, err := h.project.CompleteNotSatisfied(c.Context(), id, params.Reason, actor)
	if err != nil {
		return respondServiceError(c, err, ErrMsgProjStatusFailed)
	}
	return c.JSON(project)
}

// CompleteProjectBlocked handles the completed-blocked confirmation flow
func (h *APIHandler) CompleteProjectBlocked(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return respondWithError(c, fiber.StatusUnauthorized, ErrMsgUnauthorized, nil)
	}
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	project, err := h.project.CompleteBlocked(c.Context(), id, actor)
	if err != nil {
		return respondServiceError(c, err, ErrMsgProjStatusFailed)
	}
	return c.JSON(project)
}

// SubmitCompletionTools handles the select-tools flow
func (h *APIHandler) SubmitCompletionTools(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return respondWithError(c, fiber.StatusUnauthorized, ErrMsgUnauthorized, nil)
	}
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	var params CompletionToolsParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody, err.Error())
	}
	project, err := h.project.SubmitCompletionTools(c.Context(), id, params.Tools, actor)
	if err != nil {
		return respondServiceError(c, err, ErrMsgProjStatusFailed)
	}
	return c.JSON(project)
}

// CompleteProjectCascade handles the complete-parent confirmation flow
func (h *APIHandler) CompleteProjectCascade(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return respondWithError(c, fiber.StatusUnauthorized, ErrMsgUnauthorized, nil)
	}
	id, err := idParam(c)
	if err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidID, err.Error())
	}
	var params CascadeCompleteParams
	if err := c.BodyParser(&params); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody, err.Error())
	}
	if err := params.Validate(); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, err.Error(), nil)
	}
	project, err := h.project.CompleteCascade(c.Context(), id, params.ChildID, actor)
	if err != nil {
		return respondServiceError(c, err, ErrMsgProjStatusFailed)
	}
	return c.JSON(project)
}
