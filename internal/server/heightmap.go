package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"faultmap/pkg/core"
	"faultmap/pkg/heightmap/export"
	"faultmap/pkg/heightmap/faultfractal"
)

func (s *Server) handleHeightMap(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	format, err := export.ParseFormat(vars["format"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	cfg, err := s.requestConfig(vars, req.URL.Query())
	if err == nil {
		err = s.checkLimits(cfg)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	hm, err := core.Build(s.cfg.Algorithm, cfg.Map(), s.log)
	if err != nil {
		s.writeError(w, err)
		return
	}

	palette := req.URL.Query().Get("palette")
	if palette == "" {
		palette = s.cfg.Palette
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, hm.Heights(), cfg.Seed, palette); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Error("write heightmap", "error", err)
	}
}

// requestConfig builds generation parameters from the path and query, falling
// back to the server defaults for anything not given.
func (s *Server) requestConfig(vars map[string]string, q url.Values) (faultfractal.Config, error) {
	cfg := s.cfg.Config

	var err error
	if cfg.Size, err = strconv.Atoi(vars["size"]); err != nil {
		return cfg, fmt.Errorf("%w: size: %v", core.ErrInvalidParameter, err)
	}
	if cfg.Seed, err = strconv.ParseInt(vars["seed"], 10, 64); err != nil {
		return cfg, fmt.Errorf("%w: seed: %v", core.ErrInvalidParameter, err)
	}

	ints := map[string]*int{"iterations": &cfg.Iterations, "min": &cfg.MinDelta, "max": &cfg.MaxDelta}
	for key, dst := range ints {
		v := q.Get(key)
		if v == "" {
			continue
		}
		if *dst, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", core.ErrInvalidParameter, key, err)
		}
	}
	if v := q.Get("filter"); v != "" {
		if cfg.Filter, err = strconv.ParseFloat(v, 64); err != nil {
			return cfg, fmt.Errorf("%w: filter: %v", core.ErrInvalidParameter, err)
		}
	}
	return cfg, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, core.ErrInvalidParameter) {
		status = http.StatusBadRequest
	} else {
		s.log.Error("heightmap request", "error", err)
	}
	http.Error(w, err.Error(), status)
}
