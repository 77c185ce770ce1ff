package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	op "github.com/XJIeI5/calculator/internal/operation"
	"github.com/XJIeI5/calculator/internal/provider"
)

type operationRequest struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
}

// insertConstant evaluates value as a prefix expression of domain d and
// registers name as a nullary operation returning the result.
func (s *storage) insertConstant(d domain, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d == complexDomain {
		v, ok, err := s.complexCalc.ComputeString(value)
		if err != nil {
			return err
		}
		if !ok {
			return errorEmptyExpression
		}
		return s.complexChain.Insert(name, op.NewNullary(func() complex128 { return v }))
	}

	v, ok, err := s.realCalc.ComputeString(value)
	if err != nil {
		return err
	}
	if !ok {
		return errorEmptyExpression
	}
	if _, err := s.complexChain.ParseOperand(name); err == nil {
		return fmt.Errorf("%w: %q is a complex literal", provider.ErrIllegalArgument, name)
	}
	return s.reals.Insert(name, op.NewNullary(func() float64 { return v }))
}

func (s *storage) handleInsertOperation(w http.ResponseWriter, r *http.Request) {
	if t := r.Header.Get("Content-Type"); t != "application/json" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	userId, err := s.getUserId(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	req := operationRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d, err := parseDomain(req.Domain)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = s.insertConstant(d, req.Name, req.Value)
	switch {
	case errors.Is(err, provider.ErrOperationExists):
		operationInsertTotal.WithLabelValues(string(d), "exists").Inc()
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		operationInsertTotal.WithLabelValues(string(d), "error").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	operationInsertTotal.WithLabelValues(string(d), "ok").Inc()
	s.logger.Info("operation inserted", "user", userId, "domain", d, "name", req.Name, "value", req.Value)
	w.WriteHeader(http.StatusCreated)
}

func (s *storage) handleListOperations(w http.ResponseWriter, r *http.Request) {
	d, err := parseDomain(r.URL.Query().Get("domain"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if d == complexDomain {
		writeJSON(w, s.complexes.Names())
		return
	}
	writeJSON(w, s.reals.Names())
}
