package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/XJIeI5/calculator/internal/calculator"
	"github.com/XJIeI5/calculator/internal/diary"
	"github.com/XJIeI5/calculator/internal/parser"
	"github.com/XJIeI5/calculator/internal/provider"
)

var errorEmptyExpression = errors.New("empty expression")

type computeRequest struct {
	Value  string `json:"expr"`
	Domain string `json:"domain"`
	Infix  bool   `json:"infix"`
}

type computeResponse struct {
	Id     int64  `json:"id"`
	Result string `json:"result"`
}

func evaluate[T any](calc *calculator.Calculator[T], expr string, infix bool, format func(T) string) (string, error) {
	tokens := strings.Fields(expr)
	if infix {
		var err error
		if tokens, err = parser.ParseToPrefix(expr, calc.Provider()); err != nil {
			return "", err
		}
	}
	res, ok, err := calc.ComputeTokens(tokens)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errorEmptyExpression
	}
	return format(res), nil
}

func (s *storage) compute(d domain, expr string, infix bool) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	defer func() { computeDuration.WithLabelValues(string(d)).Observe(time.Since(start).Seconds()) }()

	if d == complexDomain {
		return evaluate(s.complexCalc, expr, infix, provider.FormatComplex)
	}
	return evaluate(s.realCalc, expr, infix, provider.FormatReal)
}

func (s *storage) handleCompute(w http.ResponseWriter, r *http.Request) {
	if t := r.Header.Get("Content-Type"); t != "application/json" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	userId, err := s.getUserId(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	_expr := computeRequest{}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&_expr); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d, err := parseDomain(_expr.Domain)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.compute(d, _expr.Value, _expr.Infix)
	if err != nil {
		computeTotal.WithLabelValues(string(d), "error").Inc()
		s.logger.Debug("compute failed", "user", userId, "domain", d, "expr", _expr.Value, "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	computeTotal.WithLabelValues(string(d), "ok").Inc()

	id, err := storeEntry(r.Context(), s.db, userId, d, diary.Create(_expr.Value, result))
	if err != nil {
		s.logger.Error("store entry", "user", userId, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.logger.Info("computed", "user", userId, "id", id, "domain", d, "expr", _expr.Value, "result", result)
	writeJSON(w, computeResponse{Id: id, Result: result})
}

func (s *storage) handleGetResult(w http.ResponseWriter, r *http.Request) {
	userId, err := s.getUserId(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	strId := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(strId, 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := getEntry(r.Context(), s.db, userId, id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, fmt.Sprintf("no expr with id %d", id), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rec)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}

func (s *storage) handleHistory(w http.ResponseWriter, r *http.Request) {
	userId, err := s.getUserId(r.Header.Get("Authorization"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	query := r.URL.Query()
	after, err := parseTime(query.Get("after"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	before, err := parseTime(query.Get("before"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recs, err := listEntries(r.Context(), s.db, userId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	entries := make([]diary.Entry, len(recs))
	domains := make(map[int64]domain, len(recs))
	for i, rec := range recs {
		entries[i] = rec.Entry
		domains[rec.ID] = rec.Domain
	}

	res := make([]record, 0, len(entries))
	for _, e := range diary.Filter(entries, query.Get("keyword"), after, before) {
		res = append(res, record{Entry: e, Domain: domains[e.ID]})
	}
	writeJSON(w, res)
}
