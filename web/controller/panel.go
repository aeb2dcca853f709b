package controller

import (
	"net/http"
	"strconv"

	"github.com/taskmanager/taskmanager/database/model"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/web/middleware"
	"github.com/taskmanager/taskmanager/web/session"
	"github.com/taskmanager/taskmanager/web/table"

	"github.com/gin-gonic/gin"
)

// userDialog is the create or edit form shown over the users table.
type userDialog struct {
	Edit     bool
	User     *model.User
	Action   string
	CloseURL string
	Roles    []model.Role
}

// PanelController serves the html pages behind the login.
type PanelController struct {
	BaseController
}

func NewPanelController(g *gin.RouterGroup, base BaseController) *PanelController {
	a := &PanelController{BaseController: base}
	a.initRouter(g)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	admin := g.Group("")
	admin.Use(a.adminOnly())
	admin.GET("/", a.usersPage)
	admin.GET("/users/row", a.userRow)

	g.GET("/selfintroduction", a.authRequired(), a.selfIntroduction)
}

func pageState(c *gin.Context) table.PageState {
	var page table.PageState
	if err := c.ShouldBindQuery(&page); err != nil {
		page = table.PageState{}
	}
	return page.Normalize()
}

// usersPage renders the users page: one page of the table, the pagination
// control and, when requested, the create or edit dialog.
func (a *PanelController) usersPage(c *gin.Context) {
	page := pageState(c)
	basePath := c.GetString("base_path")

	result, err := a.users.ListUsers(c.Request.Context(), page)
	if err != nil {
		logger.Error("failed to list users: ", err)
		htmlStatus(c, http.StatusInternalServerError, "error.html", "pages.users.title", gin.H{
			"message": I18nWeb(c, "somethingWentWrong"),
		})
		return
	}

	sizing := a.sizing.Get(session.GetSessionToken(c), usersTableID)
	tbl := newUsersTable(c, page, result.Users, sizing, a.openEditor(c, page))

	pager := &table.Pager{
		PageState:        page,
		TotalCount:       int(result.Total),
		CurrentPageCount: len(result.Users),
		UsePageSize:      true,
		PageURL: func(p int) string {
			return usersURL(basePath, table.PageState{Page: p, PageSize: page.PageSize})
		},
		PageSizeURL: func(size int) string {
			return usersURL(basePath, table.PageState{Page: 0, PageSize: size})
		},
	}

	html(c, "users.html", "pages.users.title", gin.H{
		"table":      tbl.Grid(),
		"pagination": pager.View(),
		"new_url":    usersURL(basePath, page, "new", "1"),
		"dialog":     a.dialog(c, page),
	})
}

func (a *PanelController) dialog(c *gin.Context, page table.PageState) *userDialog {
	basePath := c.GetString("base_path")
	closeURL := usersURL(basePath, page)

	if c.Query("new") != "" {
		return &userDialog{
			User:     &model.User{},
			Action:   basePath + "api/users",
			CloseURL: closeURL,
		}
	}
	id := c.Query("edit")
	if id == "" {
		return nil
	}
	user, err := a.users.GetUser(c.Request.Context(), id)
	if err != nil {
		logger.Warningf("cannot edit user %s: %v", id, err)
		return nil
	}
	return &userDialog{
		Edit:     true,
		User:     user,
		Action:   basePath + "api/users/" + user.Id,
		CloseURL: closeURL,
		Roles:    []model.Role{model.RoleAdmin, model.RoleUser},
	}
}

// openEditor is the users table row click handler: it opens the edit dialog of the clicked user.
func (a *PanelController) openEditor(c *gin.Context, page table.PageState) func(table.Row[model.User], int) {
	return func(row table.Row[model.User], _ int) {
		c.Redirect(http.StatusFound, usersURL(c.GetString("base_path"), page, "edit", row.Data.Id))
	}
}

// userRow dispatches a click on the current page to the table. The row is
// found by its key, or by its index when no key is sent.
func (a *PanelController) userRow(c *gin.Context) {
	page := pageState(c)
	back := usersURL(c.GetString("base_path"), page)

	key := c.Query("key")
	index, err := strconv.Atoi(c.Query("index"))
	if key == "" && err != nil {
		c.Redirect(http.StatusFound, back)
		return
	}
	result, err := a.users.ListUsers(c.Request.Context(), page)
	if err != nil {
		logger.Error("failed to list users: ", err)
		c.Redirect(http.StatusFound, back)
		return
	}
	tbl := newUsersTable(c, page, result.Users, nil, a.openEditor(c, page))

	var clicked bool
	if key != "" {
		clicked = tbl.ClickByID(key)
	} else {
		clicked = tbl.Click(index)
	}
	if !clicked {
		c.Redirect(http.StatusFound, back)
	}
}

func (a *PanelController) selfIntroduction(c *gin.Context) {
	intro, err := a.users.GetSelfIntroduction(c.Request.Context())
	if err != nil {
		logger.Error("failed to load self introduction: ", err)
	}
	html(c, "selfintroduction.html", "pages.selfintroduction.title", gin.H{
		"intro": intro,
		"user":  middleware.GetUser(c),
	})
}
