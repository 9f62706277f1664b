// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package controller turns user actions into store operations and view
// renders. Each Control method shows a spinner while it waits on the
// network, calls the store, re-renders the affected regions, and returns
// the patches a browser needs to bring its page up to date.
//
// The controller is the recovery boundary for user actions: failures are
// logged, rendered into the affected region, and returned to the caller.
// Superseded loads are dropped without a message.
package controller

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"strings"

	"github.com/pdiddy/forkify/internal/model"
	"github.com/pdiddy/forkify/internal/view"
	"github.com/pdiddy/forkify/pkg/types"
)

// Page regions, one per view.
const (
	RegionRecipe     = "recipe"
	RegionResults    = "results"
	RegionPagination = "pagination"
	RegionBookmarks  = "bookmarks"
	RegionAddRecipe  = "addRecipe"
)

// Patches maps a page region to the changes it needs.
type Patches map[string][]view.Patch

func (p Patches) replace(region string, markup template.HTML) {
	p[region] = []view.Patch{{Op: view.OpReplace, HTML: string(markup)}}
}

func (p Patches) add(region string, patches []view.Patch) {
	if len(patches) > 0 {
		p[region] = append(p[region], patches...)
	}
}

// Options configures New.
type Options struct {
	// ModalCloseSec is the delay before the add-recipe modal closes after a
	// successful upload.
	ModalCloseSec float64
	Logger        *slog.Logger
}

// Controller wires user actions to the store and the views.
type Controller struct {
	store *model.Store
	views *view.Views
	log   *slog.Logger

	modalCloseSec float64
}

// New returns a controller over store and views.
func New(store *model.Store, views *view.Views, opts Options) *Controller {
	if opts.ModalCloseSec <= 0 {
		opts.ModalCloseSec = types.DefaultModalCloseSec
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		store:         store,
		views:         views,
		log:           log,
		modalCloseSec: opts.ModalCloseSec,
	}
}

// Views returns the views the controller renders into.
func (c *Controller) Views() *view.Views { return c.views }

// ModalCloseSec is the delay before the add-recipe modal closes.
func (c *Controller) ModalCloseSec() float64 { return c.modalCloseSec }

// Store returns the state store.
func (c *Controller) Store() *model.Store { return c.store }

// Init renders the regions that depend on persisted state. It runs once
// when the page is first served.
func (c *Controller) Init() {
	c.ControlBookmarks()
}

// ControlRecipes loads the recipe with the given id and shows it. An empty
// id does nothing.
func (c *Controller) ControlRecipes(ctx context.Context, id string) (Patches, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	p := Patches{}

	c.views.Recipe.RenderSpinner()
	c.markActive(p, id)

	if err := c.store.LoadRecipe(ctx, id); err != nil {
		if errors.Is(err, model.ErrSuperseded) {
			return nil, nil
		}
		c.log.Error("loading recipe", "id", id, "err", err)
		c.views.Recipe.RenderError("")
		p.replace(RegionRecipe, c.views.Recipe.Markup())
		return p, err
	}

	recipe, err := c.store.Recipe()
	if err != nil {
		return p, err
	}
	if err := c.views.Recipe.Render(recipe); err != nil {
		return p, err
	}
	p.replace(RegionRecipe, c.views.Recipe.Markup())
	return p, nil
}

// markActive highlights id in the visible result page and bookmark list.
func (c *Controller) markActive(p Patches, id string) {
	patches, err := c.views.Results.Update(view.ResultsData{Results: c.store.CurrentResultPage(), ActiveID: id})
	if err != nil {
		c.log.Warn("updating results", "err", err)
	}
	p.add(RegionResults, patches)

	patches, err = c.views.Bookmarks.Update(view.BookmarksData{Bookmarks: c.store.Bookmarks(), ActiveID: id})
	if err != nil {
		c.log.Warn("updating bookmarks", "err", err)
	}
	p.add(RegionBookmarks, patches)
}

// ControlSearchResults runs a search and shows its first page. An empty
// query leaves the spinner up and does nothing else.
func (c *Controller) ControlSearchResults(ctx context.Context, query string) (Patches, error) {
	c.views.Results.RenderSpinner()
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	p := Patches{}

	if err := c.store.LoadSearchResults(ctx, query); err != nil {
		if errors.Is(err, model.ErrSuperseded) {
			return nil, nil
		}
		c.views.Results.RenderError(err.Error())
		p.replace(RegionResults, c.views.Results.Markup())
		return p, err
	}

	if err := c.renderPage(p, c.store.SearchResultPage(1)); err != nil {
		return p, err
	}
	return p, nil
}

// ControlPagination shows the given page of the current search.
func (c *Controller) ControlPagination(page int) (Patches, error) {
	p := Patches{}
	if err := c.renderPage(p, c.store.SearchResultPage(page)); err != nil {
		return p, err
	}
	return p, nil
}

func (c *Controller) renderPage(p Patches, results []types.SearchResult) error {
	snap := c.store.Snapshot()
	active := ""
	if snap.Recipe != nil {
		active = snap.Recipe.ID
	}

	if err := c.views.Results.Render(view.ResultsData{Results: results, ActiveID: active}); err != nil {
		return err
	}
	p.replace(RegionResults, c.views.Results.Markup())

	if err := c.views.Pagination.Render(view.PaginationFor(snap.Search)); err != nil {
		return err
	}
	p.replace(RegionPagination, c.views.Pagination.Markup())
	return nil
}

// ControlServings rescales the current recipe to n servings. Values below
// one are ignored.
func (c *Controller) ControlServings(n int) (Patches, error) {
	if err := c.store.UpdateServings(n); err != nil {
		if errors.Is(err, model.ErrInvalidServings) {
			c.log.Debug("ignoring servings update", "servings", n)
			return nil, nil
		}
		return nil, err
	}
	return c.updateRecipe()
}

// ControlAddBookmark toggles the bookmark of the current recipe.
func (c *Controller) ControlAddBookmark(ctx context.Context) (Patches, error) {
	recipe, err := c.store.Recipe()
	if err != nil {
		return nil, err
	}

	if recipe.Bookmarked {
		err = c.store.DeleteBookmark(ctx, recipe.ID)
	} else {
		err = c.store.AddBookmark(ctx, recipe)
	}
	if err != nil {
		c.log.Error("saving bookmarks", "id", recipe.ID, "err", err)
	}

	p, uerr := c.updateRecipe()
	if uerr != nil {
		return p, uerr
	}
	c.renderBookmarks(p, recipe.ID)
	return p, err
}

// ControlBookmarks renders the bookmark list.
func (c *Controller) ControlBookmarks() Patches {
	p := Patches{}
	active := ""
	if r, err := c.store.Recipe(); err == nil {
		active = r.ID
	}
	c.renderBookmarks(p, active)
	return p
}

func (c *Controller) renderBookmarks(p Patches, activeID string) {
	if err := c.views.Bookmarks.Render(view.BookmarksData{Bookmarks: c.store.Bookmarks(), ActiveID: activeID}); err != nil {
		c.log.Warn("rendering bookmarks", "err", err)
		return
	}
	p.replace(RegionBookmarks, c.views.Bookmarks.Markup())
}

func (c *Controller) updateRecipe() (Patches, error) {
	recipe, err := c.store.Recipe()
	if err != nil {
		return nil, err
	}
	patches, err := c.views.Recipe.Update(recipe)
	if err != nil {
		return nil, err
	}
	p := Patches{}
	p.add(RegionRecipe, patches)
	return p, nil
}

// ControlAddRecipeForm mounts a blank add-recipe form.
func (c *Controller) ControlAddRecipeForm() Patches {
	p := Patches{}
	if err := c.views.AddRecipe.Render(view.NewAddRecipeForm(types.NewRecipeForm{})); err != nil {
		c.log.Warn("rendering add-recipe form", "err", err)
		return p
	}
	p.replace(RegionAddRecipe, c.views.AddRecipe.Markup())
	return p
}

// AddRecipeResult reports a successful upload.
type AddRecipeResult struct {
	// ID of the created recipe; the page navigates to it.
	ID string `json:"id"`
	// ModalCloseSec is how long the success message stays up.
	ModalCloseSec float64 `json:"modalCloseSec"`
	Patches       Patches `json:"patches"`
}

// ControlAddRecipe uploads a new recipe, shows it, and bookmarks it. On
// failure the add-recipe view shows the error and the form is kept for the
// next attempt.
func (c *Controller) ControlAddRecipe(ctx context.Context, form types.NewRecipeForm) (AddRecipeResult, error) {
	p := Patches{}
	c.views.AddRecipe.RenderSpinner()

	recipe, err := c.store.UploadRecipe(ctx, form)
	if err != nil && recipe.ID == "" {
		c.log.Error("uploading recipe", "err", err)
		c.views.AddRecipe.RenderError(err.Error())
		p.replace(RegionAddRecipe, c.views.AddRecipe.Markup())
		return AddRecipeResult{Patches: p}, err
	}
	if err != nil {
		// Created remotely but the bookmark did not persist.
		c.log.Error("saving bookmarks", "id", recipe.ID, "err", err)
	}

	if rerr := c.views.Recipe.Render(recipe); rerr != nil {
		return AddRecipeResult{Patches: p}, rerr
	}
	p.replace(RegionRecipe, c.views.Recipe.Markup())

	c.views.AddRecipe.RenderMessage("")
	p.replace(RegionAddRecipe, c.views.AddRecipe.Markup())

	c.renderBookmarks(p, recipe.ID)

	c.log.Info("uploaded recipe", "id", recipe.ID, "title", recipe.Title)
	return AddRecipeResult{ID: recipe.ID, ModalCloseSec: c.modalCloseSec, Patches: p}, err
}
