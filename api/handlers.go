package api

import (
	"net/http"
	"strconv"
	"strings"
)

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSession(w, r)
	case http.MethodGet:
		s.handleListSessions(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.CreateSession()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, SessionCreateResponse{SessionID: session.ID, CreatedAt: session.CreatedAt})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": s.sessions.ListSessions()})
}

func (s *Server) handleSessionRoute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/session/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "session ID required")
		return
	}
	sessionID := parts[0]

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetSessionStatus(w, session)
		case http.MethodDelete:
			s.handleDestroySession(w, sessionID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch parts[1] {
	case "load":
		s.handleLoadProgram(w, r, session)
	case "step":
		s.handleStep(w, session)
	case "continue":
		s.handleContinue(w, session)
	case "pause":
		s.handlePause(w, session)
	case "reset":
		s.handleReset(w, session)
	case "slots":
		s.handleSlots(w, session)
	case "labels":
		s.handleLabels(w, session)
	case "sourcemap":
		s.handleSourceMap(w, session)
	case "output":
		s.handleOutput(w, session)
	case "breakpoint":
		s.handleBreakpoint(w, r, session)
	case "breakpoints":
		s.handleListBreakpoints(w, session)
	case "stdin":
		s.handleSendStdin(w, r, session)
	default:
		writeError(w, http.StatusNotFound, fmtNotFound(parts[1]))
	}
}

func (s *Server) handleGetSessionStatus(w http.ResponseWriter, session *Session) {
	status := SessionStatusResponse{
		SessionID: session.ID,
		State:     string(session.Runner.GetState()),
		Cursor:    session.Runner.GetCursor(),
	}
	if err := session.Runner.LastError(); err != nil {
		status.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleDestroySession(w http.ResponseWriter, sessionID string) {
	if err := s.sessions.DestroySession(sessionID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) handleLoadProgram(w http.ResponseWriter, r *http.Request, session *Session) {
	var req LoadProgramRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := session.Runner.Load(req.Source); err != nil {
		writeJSON(w, http.StatusOK, LoadProgramResponse{Success: false, Errors: []string{err.Error()}})
		return
	}
	writeJSON(w, http.StatusOK, LoadProgramResponse{Success: true})
}

func (s *Server) handleStep(w http.ResponseWriter, session *Session) {
	if err := session.Runner.Step(); err != nil {
		s.broadcastExecutionError(session.ID, err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.broadcastState(session)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) handleContinue(w http.ResponseWriter, session *Session) {
	go func() {
		err := session.Runner.Continue()
		if err != nil {
			s.broadcastExecutionError(session.ID, err)
		}
		s.broadcastState(session)
	}()
	writeJSON(w, http.StatusAccepted, SuccessResponse{Success: true, Message: "running"})
}

func (s *Server) handlePause(w http.ResponseWriter, session *Session) {
	session.Runner.Pause()
	s.broadcastState(session)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) handleReset(w http.ResponseWriter, session *Session) {
	if err := session.Runner.Reset(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.broadcastState(session)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) handleSlots(w http.ResponseWriter, session *Session) {
	writeJSON(w, http.StatusOK, SlotsResponse{Slots: session.Runner.GetSlots()})
}

func (s *Server) handleLabels(w http.ResponseWriter, session *Session) {
	writeJSON(w, http.StatusOK, LabelsResponse{Labels: session.Runner.GetLabels()})
}

func (s *Server) handleSourceMap(w http.ResponseWriter, session *Session) {
	writeJSON(w, http.StatusOK, SourceMapResponse{Entries: session.Runner.GetSourceMap()})
}

func (s *Server) handleOutput(w http.ResponseWriter, session *Session) {
	writeJSON(w, http.StatusOK, OutputResponse{Output: session.Runner.GetOutput()})
}

func (s *Server) handleBreakpoint(w http.ResponseWriter, r *http.Request, session *Session) {
	switch r.Method {
	case http.MethodPost:
		var req BreakpointRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := session.Runner.AddBreakpoint(req.Index); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	case http.MethodDelete:
		idxStr := r.URL.Query().Get("index")
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid index query parameter")
			return
		}
		session.Runner.RemoveBreakpoint(idx)
		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleListBreakpoints(w http.ResponseWriter, session *Session) {
	writeJSON(w, http.StatusOK, BreakpointsResponse{Breakpoints: session.Runner.GetBreakpoints()})
}

func (s *Server) handleSendStdin(w http.ResponseWriter, r *http.Request, session *Session) {
	var req StdinRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session.Runner.SendInput(req.Data)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) broadcastState(session *Session) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastState(session.ID, map[string]interface{}{
		"state":  string(session.Runner.GetState()),
		"cursor": session.Runner.GetCursor(),
	})
	if out := session.Runner.GetOutput(); out != "" {
		s.broadcaster.BroadcastOutput(session.ID, out)
	}
}

func (s *Server) broadcastExecutionError(sessionID string, err error) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastExecutionEvent(sessionID, "error", map[string]interface{}{"message": err.Error()})
}
