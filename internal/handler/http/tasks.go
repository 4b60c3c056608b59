package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/service"
	"github.com/MKhiriev/clearnext/internal/utils"
	"github.com/MKhiriev/clearnext/models"
	"github.com/go-chi/chi/v5"
)

const taskIDParam = "task_id"

func (h *Handler) todayTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if open, message := h.services.TaskService.CheckTaskWindow(ctx); !open {
		logger.FromRequest(r).Debug().Msg(message)
		writeFailure(w, r, http.StatusForbidden, message, nil)
		return
	}

	mood := models.ParseMood(r.URL.Query().Get("mood"))

	today, err := h.services.TaskService.TodayTask(ctx, chi.URLParam(r, userIDParam), mood)
	if err != nil {
		var locked *service.NextTaskLockedError
		if errors.As(err, &locked) {
			logger.FromRequest(r).Debug().Err(err).Msg("next task locked")
			writeFailure(w, r, http.StatusForbidden, msgNextTaskLocked, models.TaskStatus{
				Reason:        "already_completed_today",
				Message:       msgNextTaskLocked,
				NextAvailable: &locked.NextAvailable,
			})
			return
		}
		writeError(w, r, err, "getting today's task")
		return
	}

	writeSuccess(w, r, http.StatusOK, "Today's task retrieved", today)
}

func (h *Handler) taskStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.TaskService.TaskStatus(r.Context(), chi.URLParam(r, userIDParam))
	if err != nil {
		writeError(w, r, err, "getting task status")
		return
	}

	writeSuccess(w, r, http.StatusOK, "Task status retrieved", status)
}

func (h *Handler) completeTask(w http.ResponseWriter, r *http.Request) {
	// the body is optional
	var req models.CompleteTaskRequest
	if err := utils.ReadJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		logger.FromRequest(r).Err(err).Msg(msgInvalidJSON)
		writeFailure(w, r, http.StatusBadRequest, msgInvalidJSON, nil)
		return
	}

	completion, err := h.services.TaskService.CompleteTask(r.Context(), chi.URLParam(r, taskIDParam), req.Response)
	if err != nil {
		writeError(w, r, err, "completing task")
		return
	}

	writeSuccess(w, r, http.StatusOK, "Task completed successfully", completion)
}

func (h *Handler) listUserTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.services.TaskService.ListUserTasks(r.Context(), chi.URLParam(r, userIDParam))
	if err != nil {
		writeError(w, r, err, "getting user tasks")
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	writeSuccess(w, r, http.StatusOK, "User tasks retrieved", models.TasksData{
		Tasks:      tasks,
		TotalTasks: len(tasks),
	})
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.services.TaskService.GetTask(r.Context(), chi.URLParam(r, taskIDParam))
	if err != nil {
		writeError(w, r, err, "getting task")
		return
	}

	writeSuccess(w, r, http.StatusOK, "Task retrieved", models.TaskData{Task: task})
}
