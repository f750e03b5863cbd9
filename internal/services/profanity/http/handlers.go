// Package http provides http transport for the profanity service
package http

import (
	stdhttp "net/http"

	"profanity/internal/core/profanity"
	"profanity/internal/modkit/httpkit"
	"profanity/internal/platform/net/http/bind"
	"profanity/internal/platform/net/middleware"
	"profanity/internal/services/profanity/domain"
)

func init() {
	_ = bind.RegisterTag("censor_type", "{0} must be one of word, word_length, first_char, first_vowel, all_vowels",
		func(fl bind.FieldLevel) bool {
			_, err := profanity.ParseCensorType(fl.Field().String())
			return err == nil
		})
}

// Deps are the handler dependencies
type Deps struct {
	Service domain.ServicePort
	// Auth guards the list mutation routes. nil leaves them open
	Auth middleware.AuthPort
}

type handlers struct{ svc domain.ServicePort }

// Register mounts the profanity routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{svc: d.Service}

	httpkit.PostJSON[domain.ExistsInput](r, "/exists", h.exists)
	httpkit.PostJSON[domain.CensorInput](r, "/censor", h.censor)
	httpkit.PostJSON[domain.MatchesInput](r, "/matches", h.matches)
	httpkit.Get(r, "/words", h.lists)
	httpkit.Get(r, "/languages", h.languages)
	httpkit.Get(r, "/stats", h.stats)

	mutations := func(r httpkit.Router) {
		httpkit.PostJSON[domain.WordsInput](r, "/words", h.addWords)
		httpkit.DeleteJSON[domain.WordsInput](r, "/words", h.removeWords)
		httpkit.PostJSON[domain.WordsInput](r, "/whitelist", h.addWhitelist)
		httpkit.DeleteJSON[domain.WordsInput](r, "/whitelist", h.removeWhitelist)
	}
	if d.Auth == nil {
		mutations(r)
		return
	}
	httpkit.Protected(r, d.Auth, mutations)
}

// swagger:route POST /profanity/exists Profanity profanityExists
// @Summary Check text for profanity
// @Tags Profanity
// @Accept json
// @Produce json
// @Param payload body domain.ExistsInput true "Text"
// @Success 200 {object} domain.ExistsResult "ok"
// @Router /profanity/exists [post]
func (h *handlers) exists(r *stdhttp.Request, in domain.ExistsInput) (any, error) {
	return h.svc.Exists(r.Context(), in)
}

// swagger:route POST /profanity/censor Profanity profanityCensor
// @Summary Censor profanity in text
// @Tags Profanity
// @Accept json
// @Produce json
// @Param payload body domain.CensorInput true "Text"
// @Success 200 {object} domain.CensorResult "ok"
// @Router /profanity/censor [post]
func (h *handlers) censor(r *stdhttp.Request, in domain.CensorInput) (any, error) {
	return h.svc.Censor(r.Context(), in)
}

// @Summary List profane spans in text
// @Tags Profanity
// @Router /profanity/matches [post]
func (h *handlers) matches(r *stdhttp.Request, in domain.MatchesInput) (any, error) {
	return h.svc.Matches(r.Context(), in)
}

// swagger:route GET /profanity/words Profanity profanityLists
// @Summary Custom whitelist, blacklist and removed words
// @Tags Profanity
// @Produce json
// @Success 200 {object} domain.ListsResult "ok"
// @Router /profanity/words [get]
func (h *handlers) lists(r *stdhttp.Request) (any, error) {
	return h.svc.Lists(r.Context())
}

// @Router /profanity/languages [get]
func (h *handlers) languages(r *stdhttp.Request) (any, error) {
	return h.svc.Languages(r.Context())
}

// @Summary Detection event totals per op
// @Tags Profanity
// @Produce json
// @Success 200 {object} domain.StatsResult "ok"
// @Router /profanity/stats [get]
func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.Stats(r.Context())
}

// @Summary Blacklist words, or restore removed dataset words
// @Tags Profanity
// @Security BearerAuth
// @Router /profanity/words [post]
func (h *handlers) addWords(r *stdhttp.Request, in domain.WordsInput) (any, error) {
	return h.svc.AddWords(r.Context(), in)
}

// @Summary Un-blacklist words, or suppress dataset words
// @Tags Profanity
// @Security BearerAuth
// @Router /profanity/words [delete]
func (h *handlers) removeWords(r *stdhttp.Request, in domain.WordsInput) (any, error) {
	return h.svc.RemoveWords(r.Context(), in)
}

// @Security BearerAuth
// @Router /profanity/whitelist [post]
func (h *handlers) addWhitelist(r *stdhttp.Request, in domain.WordsInput) (any, error) {
	return h.svc.AddWhitelist(r.Context(), in)
}

// @Security BearerAuth
// @Router /profanity/whitelist [delete]
func (h *handlers) removeWhitelist(r *stdhttp.Request, in domain.WordsInput) (any, error) {
	return h.svc.RemoveWhitelist(r.Context(), in)
}
