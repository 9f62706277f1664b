// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/forkify/internal/controller"
	"github.com/pdiddy/forkify/internal/forkify"
	"github.com/pdiddy/forkify/internal/model"
	"github.com/pdiddy/forkify/pkg/types"
)

// response is the JSON body of every action route.
type response struct {
	State   model.State                 `json:"state"`
	Patches controller.Patches          `json:"patches,omitempty"`
	Error   string                      `json:"error,omitempty"`
	Upload  *controller.AddRecipeResult `json:"upload,omitempty"`
}

// page feeds templates/page.html.
type page struct {
	Query         string
	Recipe        template.HTML
	Results       template.HTML
	Pagination    template.HTML
	Bookmarks     template.HTML
	AddRecipe     template.HTML
	ShowUpload    bool
	ModalCloseSec float64
	RecipeID      string
}

func (s *Server) handleIndex(c *gin.Context) {
	s.respond(c, nil, nil, false)
}

func (s *Server) handleRecipe(c *gin.Context) {
	p, err := s.ctrl.ControlRecipes(c.Request.Context(), c.Param("id"))
	s.respond(c, p, err, false)
}

func (s *Server) handleSearch(c *gin.Context) {
	p, err := s.ctrl.ControlSearchResults(c.Request.Context(), c.Query("q"))
	s.respond(c, p, err, false)
}

func (s *Server) handlePage(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("page"))
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
		return
	}
	p, err := s.ctrl.ControlPagination(n)
	s.respond(c, p, err, false)
}

// servingsRequest accepts either a form field or a JSON body.
type servingsRequest struct {
	Servings int `form:"servings" json:"servings"`
}

func (s *Server) handleServings(c *gin.Context) {
	var req servingsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.ctrl.ControlServings(req.Servings)
	s.respondAction(c, p, err)
}

func (s *Server) handleBookmark(c *gin.Context) {
	p, err := s.ctrl.ControlAddBookmark(c.Request.Context())
	s.respondAction(c, p, err)
}

func (s *Server) handleBookmarks(c *gin.Context) {
	s.respond(c, s.ctrl.ControlBookmarks(), nil, false)
}

func (s *Server) handleUploadForm(c *gin.Context) {
	s.respond(c, s.ctrl.ControlAddRecipeForm(), nil, true)
}

func (s *Server) handleAddRecipe(c *gin.Context) {
	form, err := readRecipeForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.ctrl.ControlAddRecipe(c.Request.Context(), form)
	if wantsJSON(c) {
		body := response{State: s.ctrl.Store().Snapshot(), Patches: res.Patches, Upload: &res}
		if err != nil {
			body.Error = err.Error()
		}
		c.JSON(statusFor(err, res.ID != ""), body)
		return
	}
	if res.ID == "" {
		s.renderPage(c, statusFor(err, false), true)
		return
	}
	c.Redirect(http.StatusSeeOther, "/recipes/"+url.PathEscape(res.ID))
}

// readRecipeForm accepts a JSON NewRecipeForm or form-encoded fields.
func readRecipeForm(c *gin.Context) (types.NewRecipeForm, error) {
	if c.ContentType() == gin.MIMEJSON {
		var form types.NewRecipeForm
		err := c.ShouldBindJSON(&form)
		return form, err
	}
	if err := c.Request.ParseForm(); err != nil {
		return types.NewRecipeForm{}, err
	}
	return model.FormFromValues(c.Request.PostForm), nil
}

// respondAction answers a POST action. Browsers without JavaScript are
// sent back to the recipe they acted on.
func (s *Server) respondAction(c *gin.Context, p controller.Patches, err error) {
	if wantsJSON(c) {
		s.respond(c, p, err, false)
		return
	}
	if err != nil {
		s.respond(c, p, err, false)
		return
	}
	target := "/"
	if r, rerr := s.ctrl.Store().Recipe(); rerr == nil {
		target = "/recipes/" + url.PathEscape(r.ID)
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (s *Server) respond(c *gin.Context, p controller.Patches, err error, showUpload bool) {
	status := statusFor(err, false)
	if wantsJSON(c) {
		body := response{State: s.ctrl.Store().Snapshot(), Patches: p}
		if err != nil {
			body.Error = err.Error()
		}
		c.JSON(status, body)
		return
	}
	s.renderPage(c, status, showUpload)
}

func (s *Server) renderPage(c *gin.Context, status int, showUpload bool) {
	v := s.ctrl.Views()
	snap := s.ctrl.Store().Snapshot()
	data := page{
		Query:         snap.Search.Query,
		Recipe:        v.Recipe.Markup(),
		Results:       v.Results.Markup(),
		Pagination:    v.Pagination.Markup(),
		Bookmarks:     v.Bookmarks.Markup(),
		AddRecipe:     v.AddRecipe.Markup(),
		ShowUpload:    showUpload,
		ModalCloseSec: s.ctrl.ModalCloseSec(),
	}
	if snap.Recipe != nil {
		data.RecipeID = snap.Recipe.ID
	}

	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page", data); err != nil {
		s.log.Error("rendering page", "err", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// statusFor maps an action error to an HTTP status. partial reports that
// the action took effect despite err.
func statusFor(err error, partial bool) int {
	var (
		ve *model.ValidationError
		fe *forkify.FetchError
		de *forkify.DecodeError
	)
	switch {
	case err == nil, partial:
		return http.StatusOK
	case errors.As(err, &ve), errors.Is(err, model.ErrIngredientFormat):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNoRecipe):
		return http.StatusConflict
	case errors.Is(err, forkify.ErrMissingKey):
		return http.StatusServiceUnavailable
	case errors.As(err, &fe):
		if fe.Status >= 400 && fe.Status < 500 {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.As(err, &de):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
