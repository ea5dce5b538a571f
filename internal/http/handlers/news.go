package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
)

const (
	defaultPageSize = 12
	maxPageSize     = 50
)

type newsItemDTO struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Intro       string `json:"intro,omitempty"`
	Status      string `json:"status"`
	PublishedAt string `json:"publishedAt,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toNewsDTO(n *domain.NewsItem) newsItemDTO {
	dto := newsItemDTO{
		ID:        n.ID,
		Slug:      n.Slug,
		Title:     n.Title,
		Intro:     n.Intro,
		Status:    n.Status,
		CreatedAt: n.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt: n.UpdatedAt.UTC().Format(timeLayout),
	}
	if n.PublishedAt != nil {
		dto.PublishedAt = n.PublishedAt.UTC().Format(timeLayout)
	}
	return dto
}

// PublicNewsList returns a page of published articles, newest first.
func (a *App) PublicNewsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, err := a.News.ListPublished(r.Context(), page, pageSize)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list published news failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load news")
		return
	}

	data := make([]newsItemDTO, 0, len(items))
	for i := range items {
		data = append(data, toNewsDTO(&items[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"data": data, "page": page, "pageSize": pageSize})
}

// PublicNewsBySlug returns one published article.
func (a *App) PublicNewsBySlug(w http.ResponseWriter, r *http.Request) {
	item, err := a.News.GetPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "news not found")
			return
		}
		a.Logger.Error().Err(err).Msg("load news by slug failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load news")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"data": toNewsDTO(item)})
}

type newsUpsertRequest struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Intro       string `json:"intro"`
	Status      string `json:"status"`
	PublishedAt string `json:"publishedAt"`
}

var errInvalidNewsPayload = errors.New("invalid news payload")

func (req *newsUpsertRequest) toItem() (*domain.NewsItem, error) {
	slug := strings.TrimSpace(req.Slug)
	title := strings.TrimSpace(req.Title)
	if slug == "" || title == "" {
		return nil, errInvalidNewsPayload
	}
	status := req.Status
	switch status {
	case "":
		status = domain.NewsDraft
	case domain.NewsDraft, domain.NewsPublished, domain.NewsArchived:
	default:
		return nil, errInvalidNewsPayload
	}

	item := &domain.NewsItem{Slug: slug, Title: title, Intro: req.Intro, Status: status}
	if req.PublishedAt != "" {
		at, err := time.Parse(timeLayout, req.PublishedAt)
		if err != nil {
			return nil, errInvalidNewsPayload
		}
		item.PublishedAt = &at
	} else if status == domain.NewsPublished {
		now := time.Now().UTC()
		item.PublishedAt = &now
	}
	return item, nil
}

// AdminNewsList returns every article for the admin panel.
func (a *App) AdminNewsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.News.List(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("admin list news failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load news")
		return
	}
	data := make([]newsItemDTO, 0, len(items))
	for i := range items {
		data = append(data, toNewsDTO(&items[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"data": data})
}

// AdminNewsGet returns one article by id.
func (a *App) AdminNewsGet(w http.ResponseWriter, r *http.Request) {
	item, err := a.News.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "news not found")
			return
		}
		a.Logger.Error().Err(err).Msg("admin get news failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load news")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"data": toNewsDTO(item)})
}

// AdminNewsCreate inserts a new article.
func (a *App) AdminNewsCreate(w http.ResponseWriter, r *http.Request) {
	var req newsUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	item, err := req.toItem()
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "slug, title and a valid status are required")
		return
	}

	created, err := a.News.Create(r.Context(), item)
	if err != nil {
		a.Logger.Error().Err(err).Msg("create news failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create news")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"data": toNewsDTO(created)})
}

// AdminNewsUpdate rewrites an article.
func (a *App) AdminNewsUpdate(w http.ResponseWriter, r *http.Request) {
	var req newsUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	item, err := req.toItem()
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "slug, title and a valid status are required")
		return
	}
	item.ID = chi.URLParam(r, "id")

	updated, err := a.News.Update(r.Context(), item)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "news not found")
			return
		}
		a.Logger.Error().Err(err).Msg("update news failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update news")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"data": toNewsDTO(updated)})
}

// AdminNewsDelete removes an article and, by cascade, its daily metrics.
func (a *App) AdminNewsDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.News.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "news not found")
			return
		}
		a.Logger.Error().Err(err).Msg("delete news failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete news")
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"success": true})
}
