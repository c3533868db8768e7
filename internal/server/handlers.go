package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"graphview/internal/database/graph"
	"graphview/internal/rag"
	"graphview/internal/validate"
	"graphview/internal/viewer"
	"graphview/internal/visconfig"
)

type schemaResponse struct {
	Labels            []string `json:"labels"`
	RelationshipTypes []string `json:"relationshipTypes"`
	Status            string   `json:"status"`
	Failure           string   `json:"failure,omitempty"`
	Error             string   `json:"error,omitempty"`
}

type cypherRequest struct {
	Cypher string `json:"cypher"`
}

type conceptRequest struct {
	Concept string `json:"concept"`
}

type updateRequest struct {
	Update string `json:"update"`
}

type linkRequest struct {
	URL string `json:"url"`
}

type questionRequest struct {
	Question string `json:"question"`
}

type authoredResponse struct {
	OK     bool   `json:"ok"`
	Cypher string `json:"cypher,omitempty"`
}

// handleIndex mounts one view: fetch, configure, render. When there is nothing to render the
// page still loads with an empty container.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	p := viewer.NewPipeline(s.fetcher, s.page.Bind(&buf),
		visconfig.ConnectionFrom(s.cfg.Neo4j), s.cfg.View.ContainerID, "http", s.logger)

	out, err := p.Run(r.Context())
	if err != nil {
		s.logger.Error("render failed", "error", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	if out.State != viewer.Rendered {
		buf.Reset()
		if err := s.page.Write(&buf, nil); err != nil {
			s.logger.Error("render empty page failed", "error", err)
			writeError(w, http.StatusInternalServerError, "render failed")
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "service": "graphview"})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	res := s.fetcher.Fetch(r.Context())

	resp := schemaResponse{
		Labels:            nonNil(res.Labels),
		RelationshipTypes: nonNil(res.RelationshipTypes),
		Status:            res.Status(),
	}
	if res.Failed() {
		resp.Failure = res.Failure.String()
		if res.Err != nil {
			resp.Error = res.Err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	res := s.fetcher.Fetch(r.Context())

	req, err := visconfig.NewRenderRequest(visconfig.Connection{}, s.cfg.View.ContainerID, res.Labels, res.RelationshipTypes)
	if errors.Is(err, visconfig.ErrNothingToRender) {
		writeError(w, http.StatusConflict, "nothing to render: status "+res.Status())
		return
	}
	writeJSON(w, http.StatusOK, req.Style)
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	if s.graph == nil {
		writeError(w, http.StatusServiceUnavailable, "graph database unavailable")
		return
	}
	sample, err := s.graph.SampleGraph(r.Context(), visconfig.SampleQuery)
	if err != nil {
		s.logger.Error("sample graph failed", "error", err)
		writeError(w, http.StatusBadGateway, "sample query failed")
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	var body cypherRequest
	if !s.decode(w, r, validate.Cypher, &body) || !s.requireGraph(w) {
		return
	}
	if err := s.graph.CreateGraph(r.Context(), body.Cypher); err != nil {
		s.authoringError(w, "create graph", err)
		return
	}
	writeJSON(w, http.StatusOK, authoredResponse{OK: true})
}

func (s *Server) handleUpdateGraph(w http.ResponseWriter, r *http.Request) {
	var body cypherRequest
	if !s.decode(w, r, validate.Cypher, &body) || !s.requireGraph(w) {
		return
	}
	if err := s.graph.UpdateGraph(r.Context(), body.Cypher); err != nil {
		s.authoringError(w, "update graph", err)
		return
	}
	writeJSON(w, http.StatusOK, authoredResponse{OK: true})
}

func (s *Server) handleConceptGraph(w http.ResponseWriter, r *http.Request) {
	var body conceptRequest
	if !s.decode(w, r, validate.Concept, &body) || !s.requireAssistant(w) || !s.requireGraph(w) {
		return
	}
	cypher, err := s.assistant.GenerateGraphCypher(r.Context(), body.Concept)
	if err != nil {
		s.logger.Error("generate graph cypher failed", "error", err)
		writeError(w, http.StatusBadGateway, "generation failed")
		return
	}
	if err := s.graph.CreateGraph(r.Context(), cypher); err != nil {
		s.authoringError(w, "create graph from concept", err)
		return
	}
	writeJSON(w, http.StatusOK, authoredResponse{OK: true, Cypher: cypher})
}

func (s *Server) handleConceptUpdate(w http.ResponseWriter, r *http.Request) {
	var body updateRequest
	if !s.decode(w, r, validate.Update, &body) || !s.requireAssistant(w) || !s.requireGraph(w) {
		return
	}
	cypher, err := s.assistant.GenerateUpdateCypher(r.Context(), body.Update)
	if err != nil {
		s.logger.Error("generate update cypher failed", "error", err)
		writeError(w, http.StatusBadGateway, "generation failed")
		return
	}
	if err := s.graph.UpdateGraph(r.Context(), cypher); err != nil {
		s.authoringError(w, "update graph from sentence", err)
		return
	}
	writeJSON(w, http.StatusOK, authoredResponse{OK: true, Cypher: cypher})
}

func (s *Server) handleLinkGraph(w http.ResponseWriter, r *http.Request) {
	var body linkRequest
	if !s.decode(w, r, validate.Link, &body) || !s.requireAssistant(w) || !s.requireGraph(w) {
		return
	}
	cypher, err := s.assistant.GraphCypherFromLink(r.Context(), body.URL)
	if err != nil {
		s.logger.Error("generate graph cypher from link failed", "url", body.URL, "error", err)
		writeError(w, http.StatusBadGateway, "generation from link failed")
		return
	}
	if err := s.graph.CreateGraph(r.Context(), cypher); err != nil {
		s.authoringError(w, "create graph from link", err)
		return
	}
	writeJSON(w, http.StatusOK, authoredResponse{OK: true, Cypher: cypher})
}

func (s *Server) handleLinkUpdate(w http.ResponseWriter, r *http.Request) {
	var body linkRequest
	if !s.decode(w, r, validate.Link, &body) || !s.requireAssistant(w) || !s.requireGraph(w) {
		return
	}
	cypher, err := s.assistant.UpdateCypherFromLink(r.Context(), body.URL)
	if err != nil {
		s.logger.Error("generate update cypher from link failed", "url", body.URL, "error", err)
		writeError(w, http.StatusBadGateway, "generation from link failed")
		return
	}
	if err := s.graph.UpdateGraph(r.Context(), cypher); err != nil {
		s.authoringError(w, "update graph from link", err)
		return
	}
	writeJSON(w, http.StatusOK, authoredResponse{OK: true, Cypher: cypher})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var body questionRequest
	if !s.decode(w, r, validate.Question, &body) || !s.requireAssistant(w) {
		return
	}
	ans, err := s.assistant.Query(r.Context(), body.Question)
	if err != nil {
		if errors.Is(err, rag.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("graph query failed", "error", err)
		writeError(w, http.StatusBadGateway, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, ans)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, schema string, dst any) bool {
	if err := validate.Decode(r.Body, schema, dst); err != nil {
		if errors.Is(err, validate.ErrInvalid) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			s.logger.Error("request validation unavailable", "error", err)
			writeError(w, http.StatusInternalServerError, "validation unavailable")
		}
		return false
	}
	return true
}

func (s *Server) requireGraph(w http.ResponseWriter) bool {
	if s.graph == nil {
		writeError(w, http.StatusServiceUnavailable, "graph database unavailable")
		return false
	}
	return true
}

func (s *Server) requireAssistant(w http.ResponseWriter) bool {
	if s.assistant == nil {
		writeError(w, http.StatusServiceUnavailable, "LLM features disabled: set GEMINI_API_KEY")
		return false
	}
	return true
}

func (s *Server) authoringError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, graph.ErrEmptyCypher) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error(op+" failed", "error", err)
	writeError(w, http.StatusBadGateway, op+" failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
