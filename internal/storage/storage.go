package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/XJIeI5/calculator/internal/calculator"
	"github.com/XJIeI5/calculator/internal/config"
	"github.com/XJIeI5/calculator/internal/provider"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type domain string

const (
	realDomain    domain = "real"
	complexDomain domain = "complex"
)

func parseDomain(s string) (domain, error) {
	switch domain(s) {
	case "", realDomain:
		return realDomain, nil
	case complexDomain:
		return complexDomain, nil
	default:
		return "", fmt.Errorf("unknown domain '%s'", s)
	}
}

type storage struct {
	router *mux.Router
	db     *sql.DB
	cfg    config.Config
	logger *slog.Logger

	// mu guards the registries: computations read them, /operations
	// inserts into them.
	mu           sync.RWMutex
	reals        *provider.Registry[float64]
	complexes    *provider.Registry[complex128]
	complexChain provider.Chain[complex128]
	realCalc     *calculator.Calculator[float64]
	complexCalc  *calculator.Calculator[complex128]
}

func newStorage(cfg config.Config, db *sql.DB, logger *slog.Logger) *storage {
	s := &storage{
		db:        db,
		cfg:       cfg,
		logger:    logger,
		reals:     provider.NewReal(),
		complexes: provider.NewComplex(),
	}
	s.complexChain = provider.NewComplexChain(s.complexes, s.reals)
	s.realCalc = calculator.NewReal(s.reals)
	s.complexCalc = calculator.NewComplex(s.complexes, s.reals)

	r := mux.NewRouter()
	// user handle
	r.HandleFunc("/register", s.handleRegister).Methods("POST")
	r.HandleFunc("/login", s.handleLogin).Methods("POST")
	// expr handle
	r.HandleFunc("/compute", s.handleCompute).Methods("POST")
	r.HandleFunc("/get_result", s.handleGetResult).Methods("GET")
	r.HandleFunc("/history", s.handleHistory).Methods("GET")
	// operations handle
	r.HandleFunc("/operations", s.handleInsertOperation).Methods("POST")
	r.HandleFunc("/operations", s.handleListOperations).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	s.router = r

	return s
}

func (s *storage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func GetServer(cfg config.Config, db *sql.DB, logger *slog.Logger) *http.Server {
	var addr string
	if strings.Contains(cfg.Host, "localhost") || strings.Contains(cfg.Host, "127.0.0.1") {
		addr = fmt.Sprintf(":%d", cfg.Port)
	} else {
		addr = fmt.Sprintf("%s:%d", strings.TrimPrefix(cfg.Host, "http://"), cfg.Port)
	}
	return &http.Server{
		Addr:    addr,
		Handler: newStorage(cfg, db, logger),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
