package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/primary"
)

type registerUserBody struct {
	ID          string `json:"id" binding:"required"`
	DisplayName string `json:"display_name"`
}

type profileBody struct {
	DisplayName      string `json:"display_name"`
	Goals            string `json:"goals"`
	Diet             string `json:"diet"`
	Responsibilities string `json:"responsibilities"`
	Finances         string `json:"finances"`
}

type pushTokenBody struct {
	Token string `json:"token" binding:"required"`
}

type createChoreBody struct {
	Name         string `json:"name"`
	IntervalDays int    `json:"interval_days"`
}

type startSessionBody struct {
	Tasks []string `json:"tasks"`
}

type toggleTaskBody struct {
	Task string `json:"task" binding:"required"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Users

func (s *Server) handleRegisterUser(c *gin.Context) {
	var body registerUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := s.users.RegisterUser(c.Request.Context(), primary.RegisterUserRequest{
		UserID:      body.ID,
		DisplayName: body.DisplayName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, user)
}

func (s *Server) handleGetUser(c *gin.Context) {
	user, err := s.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var body profileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	err := s.users.UpdateProfile(c.Request.Context(), primary.UpdateProfileRequest{
		UserID:           c.Param("id"),
		DisplayName:      body.DisplayName,
		Goals:            body.Goals,
		Diet:             body.Diet,
		Responsibilities: body.Responsibilities,
		Finances:         body.Finances,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSetPushToken(c *gin.Context) {
	var body pushTokenBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := s.users.SetPushToken(c.Request.Context(), c.Param("id"), body.Token); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleClearPushToken(c *gin.Context) {
	if err := s.users.ClearPushToken(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Chores

func (s *Server) handleListChores(c *gin.Context) {
	chores, err := s.chores.ListChores(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if chores == nil {
		chores = []*primary.Chore{}
	}
	respondOK(c, http.StatusOK, chores)
}

func (s *Server) handleCreateChore(c *gin.Context) {
	var body createChoreBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	chore, err := s.chores.CreateChore(c.Request.Context(), primary.CreateChoreRequest{
		UserID:       c.Param("id"),
		Name:         body.Name,
		IntervalDays: body.IntervalDays,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, chore)
}

// handleNextChore answers with data null when the user has no chores.
func (s *Server) handleNextChore(c *gin.Context) {
	due, err := s.chores.NextChore(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, due)
}

func (s *Server) handleCompleteChore(c *gin.Context) {
	next, err := s.chores.CompleteChore(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, next)
}

func (s *Server) handleDeleteChore(c *gin.Context) {
	if err := s.chores.DeleteChore(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Sessions

func (s *Server) handleListSessions(c *gin.Context) {
	sessions, err := s.sessions.ListSessions(c.Request.Context(), primary.SessionFilters{
		UserID: c.Param("id"),
		Status: c.Query("status"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if sessions == nil {
		sessions = []*primary.Session{}
	}
	respondOK(c, http.StatusOK, sessions)
}

func (s *Server) handleStartSession(c *gin.Context) {
	var body startSessionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	session, err := s.sessions.StartSession(c.Request.Context(), primary.StartSessionRequest{
		UserID: c.Param("id"),
		Tasks:  body.Tasks,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, session)
}

func (s *Server) handleGetSession(c *gin.Context) {
	session, err := s.sessions.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, session)
}

func (s *Server) handleToggleTask(c *gin.Context) {
	var body toggleTaskBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	session, err := s.sessions.ToggleTask(c.Request.Context(), primary.ToggleTaskRequest{
		SessionID: c.Param("id"),
		Task:      body.Task,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, session)
}

// Sweep

func (s *Server) handleRunSweep(c *gin.Context) {
	report, err := s.sweep.RunSweep(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, report)
}
