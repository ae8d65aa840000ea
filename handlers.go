package main

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/hickeroar/wordbayes/bayes"
	"github.com/hickeroar/wordbayes/tokenize"
)

const maxRequestBodyBytes = 1 << 20 // 1 MiB

var categoryPathPattern = regexp.MustCompile(`^[-_A-Za-z0-9]+$`)

// ClassifierAPI serves classifier HTTP endpoints and shared classifier state.
// The engine is not thread-safe, so every handler goes through mu.
type ClassifierAPI struct {
	classifier *bayes.Classifier
	tokenizer  *tokenize.Tokenizer
	mu         sync.RWMutex
	ready      atomic.Bool
}

// NewClassifierAPI returns an API serving classifier, tokenizing request bodies with tok.
func NewClassifierAPI(classifier *bayes.Classifier, tok *tokenize.Tokenizer) *ClassifierAPI {
	return &ClassifierAPI{classifier: classifier, tokenizer: tok}
}

// RegisterRoutes registers all API routes on the provided router. A non-empty authToken
// protects everything except health checks.
func (c *ClassifierAPI) RegisterRoutes(router *routegroup.Bundle, authToken string) {
	router.Use(rest.Recoverer(lgr.Default()), rest.AppInfo("wordbayes", "hickeroar", revision), rest.Ping)
	router.NotFoundHandler(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	router.HandleFunc("/healthz", HealthHandler)
	router.HandleFunc("/readyz", c.ReadyHandler)

	api := router.Group()
	if authToken != "" {
		api.Use(withAuthorizationToken(authToken))
	}
	api.HandleFunc("/info", c.InfoHandler)
	api.HandleFunc("/train/", c.TrainHandler)
	api.HandleFunc("/classify", c.ClassifyHandler)
	api.HandleFunc("/rank", c.RankHandler)
	api.HandleFunc("/probability", c.ProbabilityHandler)
	api.HandleFunc("/flush", c.FlushHandler)
}

func withAuthorizationToken(token string) func(http.Handler) http.Handler {
	expected := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			scheme, provided, ok := strings.Cut(req.Header.Get("Authorization"), " ")
			if !ok || scheme != "Bearer" || subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="wordbayes"`)
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	jsonResponse, err := json.Marshal(value)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(jsonResponse); err != nil {
		log.Printf("[WARN] failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func readBody(w http.ResponseWriter, req *http.Request) (string, bool) {
	req.Body = http.MaxBytesReader(w, req.Body, maxRequestBodyBytes)
	defer req.Body.Close()

	body, err := io.ReadAll(req.Body)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return "", false
		}
		writeError(w, http.StatusBadRequest, "unable to read request body")
		return "", false
	}

	return string(body), true
}

func categoryFromPath(path, prefix string) (string, bool) {
	category := strings.TrimPrefix(path, prefix)
	if category == "" || strings.Contains(category, "/") {
		return "", false
	}

	if !categoryPathPattern.MatchString(category) {
		return "", false
	}

	return category, true
}

func requireMethod(w http.ResponseWriter, req *http.Request, method string) bool {
	if req.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// InfoHandler returns the current classifier training state.
func (c *ClassifierAPI) InfoHandler(w http.ResponseWriter, req *http.Request) {
	if !requireMethod(w, req, http.MethodGet) {
		return
	}

	c.mu.RLock()
	response := NewInfoClassifierResponse(c)
	c.mu.RUnlock()

	writeJSON(w, http.StatusOK, response)
}

// TrainHandler trains a category using request body text, weighted by the optional weight query.
func (c *ClassifierAPI) TrainHandler(w http.ResponseWriter, req *http.Request) {
	if !requireMethod(w, req, http.MethodPost) {
		return
	}

	category, ok := categoryFromPath(req.URL.Path, "/train/")
	if !ok {
		writeError(w, http.StatusNotFound, "invalid category route")
		return
	}

	weight := bayes.DefaultWeight
	if raw := req.URL.Query().Get("weight"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "weight must be a number")
			return
		}
		weight = parsed
	}

	body, ok := readBody(w, req)
	if !ok {
		return
	}
	words := c.tokenizer.Tokenize(body)

	c.mu.Lock()
	err := c.classifier.Train(words, bayes.Weighted{Name: category, Weight: weight})
	response := NewTrainingClassifierResponse(c, err == nil)
	c.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("[DEBUG] trained %q with %d words, weight %v", category, len(words), weight)
	writeJSON(w, http.StatusOK, response)
}

// ClassifyHandler classifies request body text and returns every category, best first.
func (c *ClassifierAPI) ClassifyHandler(w http.ResponseWriter, req *http.Request) {
	if !requireMethod(w, req, http.MethodPost) {
		return
	}

	body, ok := readBody(w, req)
	if !ok {
		return
	}
	words := c.tokenizer.Tokenize(body)

	c.mu.RLock()
	ranking, err := c.classifier.Classify(words)
	c.mu.RUnlock()

	if err != nil {
		if errors.Is(err, bayes.ErrInvalidState) {
			writeError(w, http.StatusConflict, "classifier has not been trained")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, NewClassificationResponse(ranking, true))
}

// RankHandler ranks categories by the average per-word posterior of request body text.
func (c *ClassifierAPI) RankHandler(w http.ResponseWriter, req *http.Request) {
	if !requireMethod(w, req, http.MethodPost) {
		return
	}

	body, ok := readBody(w, req)
	if !ok {
		return
	}
	words := c.tokenizer.Tokenize(body)

	c.mu.RLock()
	ranking, err := c.classifier.RankByAverageProbability(words)
	c.mu.RUnlock()

	if err != nil {
		if errors.Is(err, bayes.ErrInvalidState) {
			writeError(w, http.StatusBadRequest, "request body has no words")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, NewClassificationResponse(ranking, false))
}

// ProbabilityHandler reports the elementary probabilities of a word for a category.
func (c *ClassifierAPI) ProbabilityHandler(w http.ResponseWriter, req *http.Request) {
	if !requireMethod(w, req, http.MethodGet) {
		return
	}

	category := req.URL.Query().Get("category")
	if !categoryPathPattern.MatchString(category) {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}
	word := c.tokenizer.Word(req.URL.Query().Get("word"))
	if word == "" {
		writeError(w, http.StatusBadRequest, "word must be a single token")
		return
	}

	c.mu.RLock()
	response := NewProbabilityResponse(c.classifier, category, word)
	c.mu.RUnlock()

	writeJSON(w, http.StatusOK, response)
}

// FlushHandler replaces the classifier with one bound to a fresh store.
func (c *ClassifierAPI) FlushHandler(w http.ResponseWriter, req *http.Request) {
	if !requireMethod(w, req, http.MethodPost) {
		return
	}

	c.mu.Lock()
	c.classifier = bayes.NewClassifier(nil)
	response := NewTrainingClassifierResponse(c, true)
	c.mu.Unlock()

	log.Printf("[INFO] classifier flushed")
	writeJSON(w, http.StatusOK, response)
}

// HealthHandler returns liveness status for process health checks.
func HealthHandler(w http.ResponseWriter, req *http.Request) {
	if !requireMethod(w, req, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadyHandler returns readiness status for traffic checks.
func (c *ClassifierAPI) ReadyHandler(w http.ResponseWriter, req *http.Request) {
	if !requireMethod(w, req, http.MethodGet) {
		return
	}
	if !c.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
