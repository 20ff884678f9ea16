package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dendrascience/groupzip/groupzip"
)

func (webapp *WebApp) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		webapp.render(w, "home.html", map[string]any{
			"Extension": webapp.Options.Extension,
			"Policy":    webapp.Options.Policy.String(),
		})
	}
}

func (webapp *WebApp) zip() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			webapp.renderError(w, http.StatusBadRequest, "")
			return
		}
		dir := strings.TrimSpace(r.PostForm.Get("base_dir"))
		if dir == "" {
			webapp.renderError(w, http.StatusBadRequest, "A directory path is required.")
			return
		}

		opts := webapp.Options
		opts.Logger = webapp.Logger
		res, err := groupzip.Run(r.Context(), dir, opts)
		switch {
		case errors.Is(err, groupzip.ErrDirectoryNotFound), errors.Is(err, groupzip.ErrNotDirectory):
			webapp.renderError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			webapp.Logger.Error("run failed", "dir", dir, "err", err)
			webapp.renderError(w, http.StatusInternalServerError, err.Error())
			return
		}

		summary := runSummary{
			Directory: res.Directory,
			Archives:  res.Archives,
			Count:     res.Count,
			Skipped:   len(res.Skipped),
		}
		for _, f := range res.Failures {
			summary.Failures = append(summary.Failures, f.Error())
		}
		webapp.Sessions.save(webapp.Sessions.id(w, r), summary)

		http.Redirect(w, r, "/success", http.StatusSeeOther)
	}
}

func (webapp *WebApp) success() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, found := webapp.Sessions.load(r)
		webapp.render(w, "success.html", map[string]any{
			"Found":   found,
			"Summary": summary,
		})
	}
}
