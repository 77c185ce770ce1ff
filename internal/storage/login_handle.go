package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

type registerUser struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func decodeUser(w http.ResponseWriter, r *http.Request) (registerUser, bool) {
	if t := r.Header.Get("Content-Type"); t != "application/json" {
		w.WriteHeader(http.StatusBadRequest)
		return registerUser{}, false
	}
	user := registerUser{}
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return registerUser{}, false
	}
	if user.Login == "" || user.Password == "" {
		http.Error(w, "empty login or password", http.StatusBadRequest)
		return registerUser{}, false
	}
	return user, true
}

func (s *storage) handleRegister(w http.ResponseWriter, r *http.Request) {
	register, ok := decodeUser(w, r)
	if !ok {
		return
	}

	if _, _, err := getUser(r.Context(), s.db, register.Login); err == nil {
		http.Error(w, "login is already taken", http.StatusConflict)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(register.Password), s.cfg.BcryptCost)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	id, err := storeUser(r.Context(), s.db, register.Login, hashedPassword)
	if err != nil {
		s.logger.Error("store user", "login", register.Login, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.logger.Info("user registered", "id", id, "login", register.Login)
	w.WriteHeader(http.StatusCreated)
}

func (s *storage) handleLogin(w http.ResponseWriter, r *http.Request) {
	register, ok := decodeUser(w, r)
	if !ok {
		return
	}

	id, hashedPassword, err := getUser(r.Context(), s.db, register.Login)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "unknown user", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(register.Password)); err != nil {
		http.Error(w, "incorrect password", http.StatusUnauthorized)
		return
	}

	tokenString, err := s.newToken(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, tokenString)
}
