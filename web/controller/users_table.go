package controller

import (
	"bytes"
	"html/template"
	"net/url"
	"strconv"

	"github.com/taskmanager/taskmanager/database/model"
	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/web/table"

	"github.com/gin-gonic/gin"
)

const (
	usersTableID   = "users"
	dateTimeFormat = "2006/01/02 15:04:05"
)

var actionsTemplate = template.Must(template.New("actions").Parse(
	`<div class="dt-actions">` +
		`<a class="link" href="{{.EditURL}}">{{.Edit}}</a>` +
		`<form class="inline" method="post" action="{{.DeleteURL}}" data-api data-confirm="{{.Confirm}}" data-reload>` +
		`<button type="submit" class="link link-danger">{{.Delete}}</button>` +
		`</form></div>`))

// columnStyler returns the pinned-column styles of a table for a sizing state.
type columnStyler func(c *gin.Context, sizing table.Sizing) []table.ColumnStyle

// sizedTables lists the tables that accept browser width reports.
var sizedTables = map[string]columnStyler{
	usersTableID: func(c *gin.Context, sizing table.Sizing) []table.ColumnStyle {
		return newUsersTable(c, table.PageState{}, nil, sizing, nil).ColumnStyles()
	},
}

// usersURL links to the users page at page, with extra key/value query pairs.
func usersURL(basePath string, page table.PageState, extra ...string) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page.Page))
	q.Set("pageSize", strconv.Itoa(page.PageSize))
	for i := 0; i+1 < len(extra); i += 2 {
		q.Set(extra[i], extra[i+1])
	}
	return basePath + "?" + q.Encode()
}

// usersRowURL is the row click endpoint; the browser appends "&index=<row>".
func usersRowURL(basePath string, page table.PageState) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page.Page))
	q.Set("pageSize", strconv.Itoa(page.PageSize))
	return basePath + "users/row?" + q.Encode()
}

func newUsersTable(c *gin.Context, page table.PageState, users []model.User, sizing table.Sizing, onRowClick func(table.Row[model.User], int)) *table.Table[model.User] {
	return table.New(table.Options[model.User]{
		ID:           usersTableID,
		Columns:      userColumns(c, page),
		Data:         users,
		RowID:        func(u model.User, _ int) string { return u.Id },
		Sizing:       sizing,
		NoRecord:     template.HTML(template.HTMLEscapeString(I18nWeb(c, "table.noRecord"))),
		OutlineClass: "dt-outline",
		OnRowClick:   onRowClick,
		ClickURL:     usersRowURL(c.GetString("base_path"), page),
	})
}

func userColumns(c *gin.Context, page table.PageState) []table.Column[model.User] {
	basePath := c.GetString("base_path")
	header := func(key string) table.HeaderFunc {
		return table.Text(I18nWeb(c, "pages.users.columns."+key))
	}
	escape := func(s string) template.HTML {
		return template.HTML(template.HTMLEscapeString(s))
	}

	return []table.Column[model.User]{
		{
			ID:       "id",
			Header:   header("userId"),
			Accessor: func(u model.User) any { return u.Id },
			Pin:      table.PinLeft,
			Size:     300,
			Meta:     table.Meta{CellClass: "font-mono text-xs"},
		},
		{
			ID:     "name",
			Header: header("name"),
			Cell: func(r table.Row[model.User]) template.HTML {
				return escape(I18nWeb(c, "pages.users.nameSuffix", "Name=="+r.Data.Name))
			},
		},
		{
			ID:       "email",
			Header:   header("email"),
			Accessor: func(u model.User) any { return u.Email },
			Size:     220,
		},
		{
			ID:     "role",
			Header: header("role"),
			Cell: func(r table.Row[model.User]) template.HTML {
				return escape(I18nWeb(c, "pages.users.roles."+string(r.Data.Role)))
			},
			Size: 120,
		},
		{
			ID:     "createdAt",
			Header: header("createdAt"),
			Cell: func(r table.Row[model.User]) template.HTML {
				return escape(r.Data.CreatedAt.Local().Format(dateTimeFormat))
			},
			Size: 180,
			Meta: table.Meta{CellClass: "whitespace-nowrap"},
		},
		{
			ID:     "actions",
			Header: header("actions"),
			Cell: func(r table.Row[model.User]) template.HTML {
				var buf bytes.Buffer
				err := actionsTemplate.Execute(&buf, map[string]string{
					"EditURL":   usersURL(basePath, page, "edit", r.Data.Id),
					"DeleteURL": basePath + "api/users/" + url.PathEscape(r.Data.Id) + "/delete",
					"Confirm":   I18nWeb(c, "pages.users.confirmDelete", "Name=="+r.Data.Name),
					"Edit":      I18nWeb(c, "pages.users.edit"),
					"Delete":    I18nWeb(c, "pages.users.delete"),
				})
				if err != nil {
					logger.Warning("failed to render user actions: ", err)
					return ""
				}
				return template.HTML(buf.String())
			},
			Pin:  table.PinRight,
			Size: 120,
			Meta: table.Meta{HeaderClass: "text-center", CellClass: "text-center whitespace-nowrap"},
		},
	}
}
