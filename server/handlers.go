package server

import (
	"encoding/json"
	"net/http"
)

func (s *Server[I, T, Q]) handlePost(w http.ResponseWriter, r *http.Request) {
	var in I
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "decode record: "+err.Error())
		return
	}
	if err := s.engine.Post(r.Context(), s.record(in)); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeOK(w)
}

func (s *Server[I, T, Q]) handlePostMulti(w http.ResponseWriter, r *http.Request) {
	var ins []I
	if err := json.NewDecoder(r.Body).Decode(&ins); err != nil {
		writeError(w, http.StatusBadRequest, "decode records: "+err.Error())
		return
	}
	recs := make([]T, len(ins))
	for i, in := range ins {
		recs[i] = s.record(in)
	}
	if err := s.engine.PostMulti(r.Context(), recs); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeOK(w)
}

func (s *Server[I, T, Q]) handleQuery(w http.ResponseWriter, r *http.Request) {
	var q Q
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "decode query: "+err.Error())
		return
	}
	recs, err := s.engine.Query(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": recs})
}

func writeOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
